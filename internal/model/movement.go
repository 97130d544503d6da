package model

// Movement tables, one per piece type. They are read-only.
var (
	knightOffsets = [...]Direction{
		{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: -1}, {X: 1, Y: -2},
		{X: -1, Y: -2}, {X: -2, Y: -1}, {X: -2, Y: 1}, {X: -1, Y: 2},
	}
	kingOffsets = [...]Direction{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
	bishopDirections = [...]Direction{
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
	rookDirections = [...]Direction{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	}
	queenDirections = [...]Direction{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
		{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
	}
)

// reach is the destination set from occupancy alone. It never asks whether a
// king would be safe, which keeps check detection one level deep.
func (p *Piece) reach() []Position {
	switch p.kind {
	case Pawn:
		return p.pawnReach()
	case Knight:
		return p.offsetReach(knightOffsets[:])
	case King:
		return p.offsetReach(kingOffsets[:])
	case Bishop:
		return p.slidingReach(bishopDirections[:])
	case Rook:
		return p.slidingReach(rookDirections[:])
	case Queen:
		return p.slidingReach(queenDirections[:])
	}
	return nil
}

func (p *Piece) pawnReach() []Position {
	var moves []Position
	forward := Direction{X: 0, Y: p.color.forward()}

	one := p.position.Add(forward)
	if p.CanMoveTo(one) {
		moves = append(moves, one)
		two := p.position.Step(forward, 2)
		if !p.hasMoved && p.CanMoveTo(two) {
			moves = append(moves, two)
		}
	}
	for _, dx := range [...]int{-1, 1} {
		target := p.position.Add(Direction{X: dx, Y: forward.Y})
		if p.CanAttack(target) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (p *Piece) offsetReach(offsets []Direction) []Position {
	var moves []Position
	for _, offset := range offsets {
		target := p.position.Add(offset)
		if p.CanMoveTo(target) || p.CanAttack(target) {
			moves = append(moves, target)
		}
	}
	return moves
}

func (p *Piece) slidingReach(directions []Direction) []Position {
	var moves []Position
	limit := max(p.board.width, p.board.height)
	for _, dir := range directions {
		for step := 1; step <= limit; step++ {
			target := p.position.Step(dir, step)
			if p.CanAttack(target) {
				moves = append(moves, target)
				break
			}
			if !p.CanMoveTo(target) {
				break
			}
			moves = append(moves, target)
		}
	}
	return moves
}
