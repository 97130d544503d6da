// Command selfplay pits two random bots against each other and prints every
// ply, for eyeballing the rules engine from a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/benbeisheim/chessrules/internal/bot"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/fatih/color"
)

func main() {
	plies := flag.Int("plies", 80, "maximum number of plies to play")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed shared by both bots")
	fen := flag.String("fen", model.StartingFEN, "starting position")
	flag.Parse()

	board, light, dark, err := model.LoadFEN(*fen)
	if err != nil {
		log.Fatalf("loading position: %v", err)
	}

	result := play(board, map[model.Color]*model.Side{model.Light: light, model.Dark: dark}, bot.NewRandomBot(*seed), *plies)
	fmt.Print(board.String())
	fmt.Printf("seed %d: %s\n", *seed, result)
}

// play alternates light and dark until a side runs out of safe moves or the
// ply budget is spent, and returns the status of the side left to move.
func play(board *model.Board, sides map[model.Color]*model.Side, chooser model.MoveChooser, plies int) model.Status {
	check := color.New(color.FgRed, color.Bold)
	capture := color.New(color.FgYellow)
	castle := color.New(color.FgCyan)

	toMove := model.Light
	for n := 0; n < plies; n++ {
		side := sides[toMove]
		move, ok := chooser.Choose(side.SafeMoves())
		if !ok {
			return side.Status()
		}
		ply, err := model.ApplyMove(board, move)
		if err != nil {
			log.Fatalf("ply %d: %v", n+1, err)
		}

		line := fmt.Sprintf("%3d. %-5s %s", n+1, toMove, ply.Notation)
		switch {
		case sides[toMove.Opposite()].InCheck():
			check.Println(line)
		case ply.CastleRookMove != nil:
			castle.Println(line)
		case ply.CapturedPiece != nil:
			capture.Println(line)
		default:
			fmt.Println(line)
		}
		toMove = toMove.Opposite()
	}
	return sides[toMove].Status()
}
