package model

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrBadSquare = errors.New("invalid square name")

// Position is a square on the board. X is the file, Y is the rank, both
// counted from zero at the light side's queen-rook corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a step vector used both as a single offset and as the
// repeat vector of a sliding scan.
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (d Direction) isZero() bool {
	return d.X == 0 && d.Y == 0
}

func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Step returns the square n steps away from p along d.
func (p Position) Step(d Direction, n int) Position {
	return Position{X: p.X + n*d.X, Y: p.Y + n*d.Y}
}

func (p Position) String() string {
	return p.getSquareNotation()
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%s%d", p.getFileNotation(), p.Y+1)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+'a')
}

// ParseSquare converts algebraic square names such as "e2" into a Position.
// Ranks may have more than one digit so boards taller than 9 ranks work.
func ParseSquare(name string) (Position, error) {
	if len(name) < 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrBadSquare, name)
	}
	file := name[0]
	if file < 'a' || file > 'z' {
		return Position{}, fmt.Errorf("%w: %q", ErrBadSquare, name)
	}
	if name[1] < '1' || name[1] > '9' {
		return Position{}, fmt.Errorf("%w: %q", ErrBadSquare, name)
	}
	rank, err := strconv.Atoi(name[1:])
	if err != nil {
		return Position{}, fmt.Errorf("%w: %q", ErrBadSquare, name)
	}
	return Position{X: int(file - 'a'), Y: rank - 1}, nil
}
