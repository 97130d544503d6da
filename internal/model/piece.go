package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPieceType = errors.New("unknown piece type")
	ErrUnknownColor     = errors.New("unknown color")
	ErrPieceCaptured    = errors.New("piece has been captured")
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) valid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

type Color string

const (
	Light Color = "light"
	Dark  Color = "dark"
)

func (c Color) valid() bool {
	return c == Light || c == Dark
}

func (c Color) Opposite() Color {
	if c == Light {
		return Dark
	}
	return Light
}

// forward is the rank step of this color's pawns.
func (c Color) forward() int {
	if c == Light {
		return 1
	}
	return -1
}

// ParseColor accepts "light"/"dark" as well as "white"/"black".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "light", "white", "w":
		return Light, nil
	case "dark", "black", "b":
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

type Piece struct {
	kind     PieceType
	color    Color
	position Position
	hasMoved bool
	captured bool
	board    *Board
}

// NewPiece creates a piece and registers it on board at p.
func NewPiece(kind PieceType, color Color, board *Board, p Position) (*Piece, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPieceType, kind)
	}
	if !color.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}
	piece := &Piece{kind: kind, color: color}
	if err := board.Place(piece, p); err != nil {
		return nil, fmt.Errorf("placing %s %s on %s: %w", color, kind, p, err)
	}
	return piece, nil
}

func (p *Piece) Kind() PieceType {
	return p.kind
}

func (p *Piece) Color() Color {
	return p.color
}

func (p *Piece) Position() Position {
	return p.position
}

func (p *Piece) HasMoved() bool {
	return p.hasMoved
}

func (p *Piece) IsCaptured() bool {
	return p.captured
}

// Symbol is the FEN letter of the piece.
func (p *Piece) Symbol() string {
	s := p.kind.getPieceNotation()
	if p.kind == Pawn {
		s = "P"
	}
	if p.color == Dark {
		return strings.ToLower(s)
	}
	return s
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s on %s", p.color, p.kind, p.position)
}

// Move relocates the piece to an empty square and marks it as moved.
// Captures must be resolved with SetCaptured on the victim first.
func (p *Piece) Move(to Position) error {
	if p.captured {
		return ErrPieceCaptured
	}
	if err := p.board.Place(p, to); err != nil {
		return err
	}
	p.hasMoved = true
	return nil
}

// SetCaptured takes the piece out of play and vacates its square.
func (p *Piece) SetCaptured() {
	p.captured = true
	if occupant, ok := p.board.OccupantAt(p.position); ok && occupant == p {
		p.board.Clear(p.position)
	}
}

func (p *Piece) CanMoveTo(to Position) bool {
	return p.board.IsEmpty(to)
}

func (p *Piece) CanAttack(to Position) bool {
	occupant, ok := p.board.OccupantAt(to)
	return ok && occupant.color != p.color
}

// PossibleDestinations lists every square the piece can move to or capture
// on, in generation order and without duplicates. Kings exclude squares on
// which they would be in check.
func (p *Piece) PossibleDestinations() []Position {
	if p.captured {
		return nil
	}
	if p.kind == King {
		return KingPiece{p}.destinations()
	}
	return p.reach()
}
