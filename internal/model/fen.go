package model

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

var ErrBadFEN = errors.New("invalid FEN")

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// LoadFEN sets up an 8x8 board from the placement and castling fields of a
// FEN record. Pawns away from their home rank, and kings and rooks that no
// longer carry a castling right, are marked as moved. The en passant field
// and the clocks are ignored.
func LoadFEN(fen string) (*Board, *Side, *Side, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	pos := chess.NewGame(opt).Position()
	rights := pos.CastleRights()

	board := newStandardBoard()
	for sq, p := range pos.Board().SquareMap() {
		kind, ok := pieceTypeOf(p.Type())
		if !ok {
			continue
		}
		color := colorOf(p.Color())
		at := positionOf(sq)
		piece, err := NewPiece(kind, color, board, at)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
		}
		piece.hasMoved = !atHome(piece, rights)
	}
	return board, AdoptSide(Light, board), AdoptSide(Dark, board), nil
}

func atHome(p *Piece, rights chess.CastleRights) bool {
	home := 0
	if p.color == Dark {
		home = StandardSize - 1
	}
	c := chess.White
	if p.color == Dark {
		c = chess.Black
	}
	switch p.kind {
	case Pawn:
		return p.position.Y == home+p.color.forward()
	case King:
		return p.position == Position{X: 4, Y: home} &&
			(rights.CanCastle(c, chess.KingSide) || rights.CanCastle(c, chess.QueenSide))
	case Rook:
		switch p.position {
		case Position{X: 0, Y: home}:
			return rights.CanCastle(c, chess.QueenSide)
		case Position{X: StandardSize - 1, Y: home}:
			return rights.CanCastle(c, chess.KingSide)
		}
		return false
	}
	return true
}

func pieceTypeOf(t chess.PieceType) (PieceType, bool) {
	switch t {
	case chess.King:
		return King, true
	case chess.Queen:
		return Queen, true
	case chess.Rook:
		return Rook, true
	case chess.Bishop:
		return Bishop, true
	case chess.Knight:
		return Knight, true
	case chess.Pawn:
		return Pawn, true
	}
	return "", false
}

func colorOf(c chess.Color) Color {
	if c == chess.White {
		return Light
	}
	return Dark
}

func positionOf(sq chess.Square) Position {
	return Position{X: int(sq.File()), Y: int(sq.Rank())}
}
