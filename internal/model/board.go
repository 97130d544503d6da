package model

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrOutOfBounds       = errors.New("square is off the board")
	ErrSquareOccupied    = errors.New("square is already occupied")
)

const StandardSize = 8

// Board owns the occupancy grid. Pieces keep a pointer back to the board
// but only the board writes the grid, and every write keeps the occupant's
// own position in step with the square it sits on.
type Board struct {
	width   int
	height  int
	squares []*Piece
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Board{
		width:   width,
		height:  height,
		squares: make([]*Piece, width*height),
	}, nil
}

func newStandardBoard() *Board {
	return &Board{
		width:   StandardSize,
		height:  StandardSize,
		squares: make([]*Piece, StandardSize*StandardSize),
	}
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) index(p Position) int {
	return p.Y*b.width + p.X
}

func (b *Board) IsInBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// OccupantAt reports the piece on p. Empty and off-board squares both
// answer (nil, false).
func (b *Board) OccupantAt(p Position) (*Piece, bool) {
	if !b.IsInBounds(p) {
		return nil, false
	}
	piece := b.squares[b.index(p)]
	return piece, piece != nil
}

func (b *Board) IsEmpty(p Position) bool {
	return b.IsInBounds(p) && b.squares[b.index(p)] == nil
}

// FirstOccupantInDirection walks from p (exclusive) along d and returns the
// first piece met, or (nil, false) once the walk leaves the board.
func (b *Board) FirstOccupantInDirection(p Position, d Direction) (*Piece, bool) {
	if d.isZero() {
		return nil, false
	}
	for next := p.Add(d); b.IsInBounds(next); next = next.Add(d) {
		if piece := b.squares[b.index(next)]; piece != nil {
			return piece, true
		}
	}
	return nil, false
}

// Place puts piece on p. If the piece currently occupies another square
// that square is vacated.
func (b *Board) Place(piece *Piece, p Position) error {
	if !b.IsInBounds(p) {
		return ErrOutOfBounds
	}
	if occupant := b.squares[b.index(p)]; occupant != nil && occupant != piece {
		return ErrSquareOccupied
	}
	if piece.board == b && b.IsInBounds(piece.position) && b.squares[b.index(piece.position)] == piece {
		b.squares[b.index(piece.position)] = nil
	}
	b.squares[b.index(p)] = piece
	piece.board = b
	piece.position = p
	return nil
}

func (b *Board) Clear(p Position) {
	if b.IsInBounds(p) {
		b.squares[b.index(p)] = nil
	}
}

// relocate stands piece on to without the bookkeeping of a real move and
// returns the function that restores the previous occupancy. Whatever was on
// to is lifted off the grid until then.
func (b *Board) relocate(piece *Piece, to Position) func() {
	from := piece.position
	displaced := b.squares[b.index(to)]
	onBoard := b.IsInBounds(from) && b.squares[b.index(from)] == piece
	if onBoard {
		b.squares[b.index(from)] = nil
	}
	b.squares[b.index(to)] = piece
	piece.position = to
	return func() {
		b.squares[b.index(to)] = displaced
		piece.position = from
		if onBoard {
			b.squares[b.index(from)] = piece
		}
	}
}

// Pieces lists every occupant, rank by rank from rank 0, files ascending.
func (b *Board) Pieces() []*Piece {
	pieces := make([]*Piece, 0, len(b.squares))
	for _, piece := range b.squares {
		if piece != nil {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

// String draws the board with the last rank on top. Light pieces are upper
// case, dark pieces lower case.
func (b *Board) String() string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		for x := 0; x < b.width; x++ {
			piece := b.squares[b.index(Position{X: x, Y: y})]
			if piece == nil {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(piece.Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
