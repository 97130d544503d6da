package model

import (
	"errors"
	"testing"
)

func TestApplyMoveRejects(t *testing.T) {
	board, _, _ := newStartingSides(t)

	if _, err := ApplyMove(board, SimpleMove{From: Position{X: 4, Y: 3}, To: Position{X: 4, Y: 4}}); !errors.Is(err, ErrNoPiece) {
		t.Fatalf("expected ErrNoPiece but got %v", err)
	}
	if _, err := ApplyMove(board, SimpleMove{From: Position{X: 4, Y: 1}, To: Position{X: 4, Y: 4}}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove but got %v", err)
	}
	if pawn, _ := board.OccupantAt(Position{X: 4, Y: 1}); pawn.HasMoved() {
		t.Fatal("rejected move changed the pawn")
	}
}

func TestApplyMoveQuiet(t *testing.T) {
	board, _, _ := newStartingSides(t)
	tests := []struct {
		move string
		want string
	}{
		{"e2e4", "e4"},
		{"g8f6", "Nf6"},
		{"f1c4", "Bc4"},
	}
	for _, tt := range tests {
		move := SimpleMove{From: squares(t, tt.move[:2])[0], To: squares(t, tt.move[2:])[0]}
		ply, err := ApplyMove(board, move)
		if err != nil {
			t.Fatalf("%s: %v", tt.move, err)
		}
		if ply.Notation != tt.want {
			t.Errorf("%s: expected %s but got %s", tt.move, tt.want, ply.Notation)
		}
		if ply.CapturedPiece != nil || ply.CastleRookMove != nil {
			t.Errorf("%s: unexpected capture or castle in %+v", tt.move, ply)
		}
		if ply.Piece.Position != move.From || ply.Piece.HasMoved {
			t.Errorf("%s: ply should record the piece before it moved: %+v", tt.move, ply.Piece)
		}
	}
}

func TestApplyMoveCapture(t *testing.T) {
	board, _, dark, err := LoadFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	victim, _ := board.OccupantAt(Position{X: 3, Y: 4})

	ply, err := ApplyMove(board, SimpleMove{From: Position{X: 4, Y: 3}, To: Position{X: 3, Y: 4}})
	if err != nil {
		t.Fatal(err)
	}
	if ply.Notation != "exd5" {
		t.Fatalf("expected exd5 but got %s", ply.Notation)
	}
	if ply.CapturedPiece == nil || ply.CapturedPiece.Type != Pawn || ply.CapturedPiece.Color != Dark {
		t.Fatalf("unexpected captured piece %+v", ply.CapturedPiece)
	}
	if !victim.IsCaptured() {
		t.Fatal("victim not marked captured")
	}
	if occupant, _ := board.OccupantAt(Position{X: 3, Y: 4}); occupant == victim {
		t.Fatal("victim still on the board")
	}
	if got := len(dark.Pieces()); got != 1 {
		t.Fatalf("expected only the dark king left but got %d pieces", got)
	}
}

func TestApplyMoveCheckSuffix(t *testing.T) {
	board, _, dark, err := LoadFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	ply, err := ApplyMove(board, SimpleMove{From: Position{X: 0, Y: 0}, To: Position{X: 0, Y: 7}})
	if err != nil {
		t.Fatal(err)
	}
	if ply.Notation != "Ra8+" {
		t.Fatalf("expected Ra8+ but got %s", ply.Notation)
	}
	if !dark.InCheck() {
		t.Fatal("dark king should be in check")
	}
}

func TestSimpleMoveString(t *testing.T) {
	move := SimpleMove{From: Position{X: 6, Y: 0}, To: Position{X: 5, Y: 2}}
	if got := move.String(); got != "g1f3" {
		t.Fatalf("expected g1f3 but got %s", got)
	}
}

func TestNotationDisambiguates(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"by file", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "b1d2", "Nbd2"},
		{"by rank", "4k3/8/8/R7/8/8/8/R3K3 w - - 0 1", "a1a3", "R1a3"},
		{"by square", "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1", "a1b2", "Qa1b2"},
		{"other piece cannot reach", "4k3/8/8/8/8/8/8/1N2K2N w - - 0 1", "b1d2", "Nd2"},
		{"pawns use the file only on captures", "4k3/8/8/8/8/8/3PP3/4K3 w - - 0 1", "d2d4", "d4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, _, _, err := LoadFEN(tt.fen)
			if err != nil {
				t.Fatal(err)
			}
			move := SimpleMove{From: squares(t, tt.move[:2])[0], To: squares(t, tt.move[2:])[0]}
			ply, err := ApplyMove(board, move)
			if err != nil {
				t.Fatal(err)
			}
			if ply.Notation != tt.want {
				t.Fatalf("expected %s but got %s", tt.want, ply.Notation)
			}
		})
	}
}
