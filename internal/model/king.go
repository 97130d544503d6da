package model

import "slices"

var castleDirections = [...]Direction{{X: -1, Y: 0}, {X: 1, Y: 0}}

// KingPiece is the king-only view of a piece: check detection and castling.
type KingPiece struct {
	*Piece
}

func AsKing(p *Piece) (KingPiece, bool) {
	if p == nil || p.kind != King {
		return KingPiece{}, false
	}
	return KingPiece{p}, true
}

func (k KingPiece) InCheck() bool {
	if k.captured {
		return false
	}
	return k.IsSquareAttacked(k.position)
}

// IsSquareAttacked reports whether an opposing piece could capture this king
// if it stood on sq. The king is lifted off its own square for the duration
// of the scan and whatever stands on sq is set aside, so a square the king
// would vacate is never shielded by the king itself and a defended piece
// counts as attacked.
func (k KingPiece) IsSquareAttacked(sq Position) bool {
	if !k.board.IsInBounds(sq) {
		return false
	}
	undo := k.board.relocate(k.Piece, sq)
	defer undo()
	return k.threatened()
}

func (k KingPiece) threatened() bool {
	for _, dir := range queenDirections {
		occupant, ok := k.board.FirstOccupantInDirection(k.position, dir)
		if !ok || occupant.color == k.color {
			continue
		}
		if slices.Contains(occupant.reach(), k.position) {
			return true
		}
	}
	for _, offset := range knightOffsets {
		occupant, ok := k.board.OccupantAt(k.position.Add(offset))
		if ok && occupant.kind == Knight && occupant.color != k.color {
			return true
		}
	}
	return false
}

func (k KingPiece) destinations() []Position {
	var moves []Position
	for _, target := range k.offsetReach(kingOffsets[:]) {
		if !k.IsSquareAttacked(target) {
			moves = append(moves, target)
		}
	}
	return append(moves, k.castlingDestinations()...)
}

// castlingDestinations offers the two-file king step toward every unmoved
// rook of the same color that is the first piece on that side. The king may
// not castle out of, through, or into check.
func (k KingPiece) castlingDestinations() []Position {
	if k.hasMoved || k.InCheck() {
		return nil
	}
	var moves []Position
	for _, dir := range castleDirections {
		rook, ok := k.board.FirstOccupantInDirection(k.position, dir)
		if !ok || rook.kind != Rook || rook.color != k.color || rook.hasMoved {
			continue
		}
		if (rook.position.X-k.position.X)*dir.X < 3 {
			continue
		}
		transit := k.position.Add(dir)
		dest := k.position.Step(dir, 2)
		if k.IsSquareAttacked(transit) || k.IsSquareAttacked(dest) {
			continue
		}
		moves = append(moves, dest)
	}
	return moves
}

// castlingRook returns the rook that travels with a castling king move to
// `to` and the square it lands on.
func (k KingPiece) castlingRook(to Position) (*Piece, Position, bool) {
	if to.Y != k.position.Y {
		return nil, Position{}, false
	}
	var dir Direction
	switch to.X - k.position.X {
	case 2:
		dir = Direction{X: 1}
	case -2:
		dir = Direction{X: -1}
	default:
		return nil, Position{}, false
	}
	rook, ok := k.board.FirstOccupantInDirection(k.position, dir)
	if !ok || rook.kind != Rook || rook.color != k.color {
		return nil, Position{}, false
	}
	return rook, k.position.Add(dir), true
}
