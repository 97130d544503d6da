package model

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/benbeisheim/chessrules/internal/ws"
)

var (
	ErrGameFull     = errors.New("game is full")
	ErrNotSeated    = errors.New("player is not seated in this game")
	ErrNotYourPiece = errors.New("piece belongs to the other player")
	ErrNoMoves      = errors.New("no safe moves available")
	ErrGameOver     = errors.New("game is over")

	ErrNotAuthorized    = errors.New("not authorized to join this game")
	ErrAlreadyConnected = errors.New("player already has a connection to this game")
	ErrNotConnected     = errors.New("player has no connection to this game")
)

// Observer receives state pushes. *websocket.Conn satisfies it.
type Observer interface {
	WriteJSON(v interface{}) error
	Close() error
}

// observer serializes writes to one connection. State pushes and direct
// replies share it.
type observer struct {
	mu   sync.Mutex
	conn Observer
}

func (o *observer) writeJSON(v interface{}) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteJSON(v)
}

// MoveChooser picks one move out of a side's safe moves.
type MoveChooser interface {
	Choose(moves []SimpleMove) (SimpleMove, bool)
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*observer // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*observer),
	}
}

// Game is one board with its two sides and the players and observers
// attached to it. All engine access goes through g.mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	sides       map[Color]*Side
	state       GameState
	connections *GameConnections
	// updates carries snapshots to the broadcaster in the order they were
	// taken. Sends happen with mu held.
	updates     chan GameState
}

type GameState struct {
	Sound          string           `json:"sound"`
	Width          int              `json:"width"`
	Height         int              `json:"height"`
	Pieces         []PieceView      `json:"pieces"`
	MoveHistory    []Ply            `json:"moveHistory"`
	CapturedPieces CapturedPieces   `json:"capturedPieces"`
	InCheck        map[Color]bool   `json:"inCheck"`
	Status         map[Color]Status `json:"status"`
	Resolve        *string          `json:"resolve"`
	Players        Players          `json:"players"`
	LastMove       *SimpleMove      `json:"lastMove"`
}

// CapturedPieces lists the pieces each color has lost.
type CapturedPieces struct {
	Light []PieceView `json:"light"`
	Dark  []PieceView `json:"dark"`
}

func NewGame(id string) (*Game, error) {
	board := newStandardBoard()
	light, err := NewSide(Light, board)
	if err != nil {
		return nil, err
	}
	dark, err := NewSide(Dark, board)
	if err != nil {
		return nil, err
	}
	return newGame(id, board, light, dark), nil
}

func NewGameFromFEN(id, fen string) (*Game, error) {
	board, light, dark, err := LoadFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(id, board, light, dark), nil
}

func newGame(id string, board *Board, light, dark *Side) *Game {
	g := &Game{
		ID:          id,
		board:       board,
		sides:       map[Color]*Side{Light: light, Dark: dark},
		connections: NewGameConnections(),
		updates:     make(chan GameState, 64),
		state: GameState{
			MoveHistory: make([]Ply, 0),
			CapturedPieces: CapturedPieces{
				Light: make([]PieceView, 0),
				Dark:  make([]PieceView, 0),
			},
		},
	}
	g.refresh()
	go g.deliver()
	return g
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.state.Players.colorOf(playerID); ok {
		return color, nil
	}
	for _, color := range [...]Color{Light, Dark} {
		seat := g.state.Players.seat(color)
		if seat.ID == "" {
			*seat = ClientPlayer{ID: playerID, Color: color}
			return color, nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	state := g.state
	state.Pieces = slices.Clone(g.state.Pieces)
	state.MoveHistory = slices.Clone(g.state.MoveHistory)
	state.CapturedPieces.Light = slices.Clone(g.state.CapturedPieces.Light)
	state.CapturedPieces.Dark = slices.Clone(g.state.CapturedPieces.Dark)
	return state
}

func (g *Game) canSpectate() bool {
	return g.state.Players.Light.ID == "" || g.state.Players.Dark.ID == ""
}

// LegalMovesFrom returns the safe destinations of the piece on from.
func (g *Game) LegalMovesFrom(from Position) ([]Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	piece, ok := g.board.OccupantAt(from)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	destinations := make([]Position, 0)
	for _, move := range g.sides[piece.color].SafeMoves() {
		if move.From == from {
			destinations = append(destinations, move.To)
		}
	}
	return destinations, nil
}

// MakeMove plays move for a seated player. Players may only move pieces of
// their own color; the order of play is left to the caller.
func (g *Game) MakeMove(playerID string, move SimpleMove) (Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return Ply{}, ErrGameOver
	}
	color, ok := g.state.Players.colorOf(playerID)
	if !ok {
		return Ply{}, ErrNotSeated
	}
	piece, ok := g.board.OccupantAt(move.From)
	if !ok {
		return Ply{}, fmt.Errorf("%w: %s", ErrNoPiece, move.From)
	}
	if piece.color != color {
		return Ply{}, ErrNotYourPiece
	}
	if !slices.Contains(g.sides[color].SafeMoves(), move) {
		return Ply{}, fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}
	return g.executeMove(move)
}

// MakeBotMove lets chooser pick and play one of color's safe moves.
func (g *Game) MakeBotMove(color Color, chooser MoveChooser) (Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return Ply{}, ErrGameOver
	}
	side, ok := g.sides[color]
	if !ok {
		return Ply{}, fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}
	move, ok := chooser.Choose(side.SafeMoves())
	if !ok {
		return Ply{}, ErrNoMoves
	}
	return g.executeMove(move)
}

func (g *Game) executeMove(move SimpleMove) (Ply, error) {
	ply, err := ApplyMove(g.board, move)
	if err != nil {
		return Ply{}, err
	}

	switch {
	case ply.CastleRookMove != nil:
		g.state.Sound = "castle"
	case ply.CapturedPiece != nil:
		g.state.Sound = "capture"
	default:
		g.state.Sound = "move"
	}
	if ply.CapturedPiece != nil {
		switch ply.CapturedPiece.Color {
		case Light:
			g.state.CapturedPieces.Light = append(g.state.CapturedPieces.Light, *ply.CapturedPiece)
		case Dark:
			g.state.CapturedPieces.Dark = append(g.state.CapturedPieces.Dark, *ply.CapturedPiece)
		}
	}
	g.state.MoveHistory = append(g.state.MoveHistory, ply)
	g.state.LastMove = &SimpleMove{From: move.From, To: move.To}

	g.refresh()
	switch g.state.Status[ply.Piece.Color.Opposite()] {
	case StatusCheckmate:
		result := "checkmate"
		g.state.Resolve = &result
	case StatusStalemate:
		result := "stalemate"
		g.state.Resolve = &result
	}
	if g.state.InCheck[ply.Piece.Color.Opposite()] {
		g.state.Sound = "check"
	}

	g.updates <- g.snapshot()
	return ply, nil
}

func (g *Game) refresh() {
	g.state.Width = g.board.Width()
	g.state.Height = g.board.Height()
	g.state.Pieces = g.state.Pieces[:0]
	for _, piece := range g.board.Pieces() {
		g.state.Pieces = append(g.state.Pieces, piece.View())
	}
	g.state.InCheck = make(map[Color]bool, len(g.sides))
	g.state.Status = make(map[Color]Status, len(g.sides))
	for color, side := range g.sides {
		g.state.InCheck[color] = side.InCheck()
		g.state.Status[color] = side.Status()
	}
}

// RegisterConnection attaches conn as playerID's observer and queues the
// current state for it. Seated players may always watch; anyone else only
// while a seat is open. A player holds at most one connection per game.
func (g *Game) RegisterConnection(playerID string, conn Observer) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, seated := g.state.Players.colorOf(playerID)
	if !seated && !g.canSpectate() {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = &observer{conn: conn}
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection %p for player %s", g.ID, conn, playerID)

	g.updates <- g.snapshot()
	return nil
}

// UnregisterConnection detaches conn. A different connection registered for
// the same player is left alone.
func (g *Game) UnregisterConnection(playerID string, conn Observer) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current.conn == conn {
		log.Printf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Send writes msg to playerID's connection without racing state pushes.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	obs, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}
	return obs.writeJSON(msg)
}

func (g *Game) deliver() {
	for state := range g.updates {
		g.broadcastState(state)
	}
}

func (g *Game) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	// Snapshot the observers so no lock is held while writing.
	g.connections.mu.RLock()
	active := make(map[string]*observer, len(g.connections.connections))
	for playerID, obs := range g.connections.connections {
		active[playerID] = obs
	}
	g.connections.mu.RUnlock()

	for playerID, obs := range active {
		if err := obs.writeJSON(msg); err != nil {
			log.Printf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, obs.conn)
			obs.conn.Close()
		}
	}
}
