package main

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/bot"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/fatih/color"
)

type script struct {
	moves []string
	next  int
}

func (s *script) Choose(moves []model.SimpleMove) (model.SimpleMove, bool) {
	if s.next >= len(s.moves) {
		return model.SimpleMove{}, false
	}
	want := s.moves[s.next]
	s.next++
	for _, m := range moves {
		if m.String() == want {
			return m, true
		}
	}
	return model.SimpleMove{}, false
}

func load(t *testing.T, fen string) (*model.Board, map[model.Color]*model.Side) {
	t.Helper()
	board, light, dark, err := model.LoadFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return board, map[model.Color]*model.Side{model.Light: light, model.Dark: dark}
}

func TestPlayEndsInMate(t *testing.T) {
	color.NoColor = true
	board, sides := load(t, model.StartingFEN)
	chooser := &script{moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"}}

	if got := play(board, sides, chooser, 10); got != model.StatusCheckmate {
		t.Fatalf("expected checkmate but got %s", got)
	}
}

func TestPlayStopsAtPlyBudget(t *testing.T) {
	color.NoColor = true
	board, sides := load(t, model.StartingFEN)

	got := play(board, sides, bot.NewRandomBot(3), 2)
	if got == model.StatusCheckmate || got == model.StatusStalemate {
		t.Fatalf("game over after two plies: %s", got)
	}
	if len(board.Pieces()) != 32 {
		t.Fatalf("a capture happened in the first two plies: %d pieces", len(board.Pieces()))
	}
}
