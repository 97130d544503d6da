package model

import (
	"errors"
	"fmt"
)

var ErrUnsupportedLayout = errors.New("board too small for the standard layout")

var backRank = [...]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Side is one player's roster of pieces on a shared board.
type Side struct {
	color  Color
	board  *Board
	pieces []*Piece
}

// NewSide builds and registers the standard sixteen pieces for color. Light
// takes ranks 0 and 1, dark the last two ranks.
func NewSide(color Color, board *Board) (*Side, error) {
	if !color.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}
	if board.width < len(backRank) || board.height < 4 {
		return nil, fmt.Errorf("%w: %dx%d", ErrUnsupportedLayout, board.width, board.height)
	}

	back, front := 0, 1
	if color == Dark {
		back, front = board.height-1, board.height-2
	}

	side := &Side{color: color, board: board, pieces: make([]*Piece, 0, 2*len(backRank))}
	for x, kind := range backRank {
		if err := side.add(kind, Position{X: x, Y: back}); err != nil {
			return nil, err
		}
	}
	for x := range backRank {
		if err := side.add(Pawn, Position{X: x, Y: front}); err != nil {
			return nil, err
		}
	}
	return side, nil
}

// AdoptSide builds a roster from the pieces of color already on board.
func AdoptSide(color Color, board *Board) *Side {
	side := &Side{color: color, board: board}
	for _, piece := range board.Pieces() {
		if piece.color == color {
			side.pieces = append(side.pieces, piece)
		}
	}
	return side
}

func (s *Side) add(kind PieceType, p Position) error {
	piece, err := NewPiece(kind, s.color, s.board, p)
	if err != nil {
		return err
	}
	s.pieces = append(s.pieces, piece)
	return nil
}

func (s *Side) Color() Color {
	return s.color
}

// Pieces returns the pieces still in play in roster order.
func (s *Side) Pieces() []*Piece {
	active := make([]*Piece, 0, len(s.pieces))
	for _, piece := range s.pieces {
		if !piece.captured {
			active = append(active, piece)
		}
	}
	return active
}

func (s *Side) King() (KingPiece, bool) {
	for _, piece := range s.pieces {
		if piece.kind == King && !piece.captured {
			return KingPiece{piece}, true
		}
	}
	return KingPiece{}, false
}

func (s *Side) InCheck() bool {
	king, ok := s.King()
	return ok && king.InCheck()
}

// AllLegalMoves pairs every active piece with each of its possible
// destinations. The order follows the roster and is stable for a given
// board.
func (s *Side) AllLegalMoves() []SimpleMove {
	var moves []SimpleMove
	for _, piece := range s.pieces {
		if piece.captured {
			continue
		}
		for _, to := range piece.PossibleDestinations() {
			moves = append(moves, SimpleMove{From: piece.position, To: to})
		}
	}
	return moves
}

// SafeMoves is AllLegalMoves without the moves that would leave this side's
// own king in check.
func (s *Side) SafeMoves() []SimpleMove {
	moves := s.AllLegalMoves()
	king, ok := s.King()
	if !ok {
		return moves
	}
	safe := make([]SimpleMove, 0, len(moves))
	for _, move := range moves {
		piece, _ := s.board.OccupantAt(move.From)
		if piece.kind == King {
			safe = append(safe, move)
			continue
		}
		undo := s.board.relocate(piece, move.To)
		exposed := king.InCheck()
		undo()
		if !exposed {
			safe = append(safe, move)
		}
	}
	return safe
}

type Status string

const (
	StatusActive    Status = "active"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

func (s *Side) Status() Status {
	inCheck := s.InCheck()
	if len(s.SafeMoves()) == 0 {
		if inCheck {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	if inCheck {
		return StatusCheck
	}
	return StatusActive
}
