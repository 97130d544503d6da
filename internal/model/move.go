package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoPiece     = errors.New("no piece at from square")
	ErrIllegalMove = errors.New("illegal move")
)

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m SimpleMove) String() string {
	return m.From.String() + m.To.String()
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type PieceView struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`
}

func (p *Piece) View() PieceView {
	return PieceView{Type: p.kind, Color: p.color, Position: p.position, HasMoved: p.hasMoved}
}

// Ply records one applied move as it looked before it was played.
type Ply struct {
	Piece          PieceView       `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *PieceView      `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Notation       string          `json:"notation"`
}

// ApplyMove validates move against the mover's possible destinations and
// plays it. A captured piece leaves the board before the mover lands, and a
// castling king brings its rook to the square it passed over.
func ApplyMove(board *Board, move SimpleMove) (Ply, error) {
	piece, ok := board.OccupantAt(move.From)
	if !ok {
		return Ply{}, fmt.Errorf("%w: %s", ErrNoPiece, move.From)
	}
	if !slices.Contains(piece.PossibleDestinations(), move.To) {
		return Ply{}, fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}

	ply := Ply{
		Piece:    piece.View(),
		From:     move.From,
		To:       move.To,
		Notation: getNotation(board, piece, move),
	}

	var rook *Piece
	var rookTo Position
	if king, ok := AsKing(piece); ok {
		if r, to, castling := king.castlingRook(move.To); castling {
			rook, rookTo = r, to
			ply.CastleRookMove = &CastleRookMove{From: r.position, To: to}
			ply.Notation = castleNotation(move)
		}
	}

	if victim, ok := board.OccupantAt(move.To); ok {
		captured := victim.View()
		ply.CapturedPiece = &captured
		victim.SetCaptured()
	}
	if err := piece.Move(move.To); err != nil {
		return Ply{}, err
	}
	if rook != nil {
		if err := rook.Move(rookTo); err != nil {
			return Ply{}, err
		}
	}

	if king, ok := board.kingOf(piece.color.Opposite()); ok && king.InCheck() {
		ply.Notation += "+"
	}
	return ply, nil
}

func (b *Board) kingOf(color Color) (KingPiece, bool) {
	for _, piece := range b.squares {
		if piece != nil && piece.kind == King && piece.color == color {
			return KingPiece{piece}, true
		}
	}
	return KingPiece{}, false
}

func getNotation(board *Board, piece *Piece, move SimpleMove) string {
	prefix := piece.kind.getPieceNotation()
	capture := ""
	if _, ok := board.OccupantAt(move.To); ok {
		capture = "x"
	}
	origin := ""
	switch piece.kind {
	case Pawn:
		if move.From.X != move.To.X {
			origin = move.From.getFileNotation()
		}
	case Knight, Bishop, Rook, Queen:
		origin = disambiguation(board, piece, move)
	}
	return fmt.Sprintf("%s%s%s%s", prefix, origin, capture, move.To.getSquareNotation())
}

// disambiguation names the file, the rank, or the whole origin square when
// another piece of the same kind and color could also reach move.To.
func disambiguation(board *Board, piece *Piece, move SimpleMove) string {
	var rivals []*Piece
	for _, other := range board.Pieces() {
		if other == piece || other.kind != piece.kind || other.color != piece.color {
			continue
		}
		if slices.Contains(other.PossibleDestinations(), move.To) {
			rivals = append(rivals, other)
		}
	}
	if len(rivals) == 0 {
		return ""
	}
	sameFile, sameRank := false, false
	for _, other := range rivals {
		sameFile = sameFile || other.position.X == move.From.X
		sameRank = sameRank || other.position.Y == move.From.Y
	}
	switch {
	case !sameFile:
		return move.From.getFileNotation()
	case !sameRank:
		return fmt.Sprintf("%d", move.From.Y+1)
	}
	return move.From.getSquareNotation()
}

func castleNotation(move SimpleMove) string {
	if move.To.X < move.From.X {
		return "O-O-O"
	}
	return "O-O"
}
