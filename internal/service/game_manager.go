// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type GameManager struct {
	games map[string]*model.Game
	bot   model.MoveChooser
	mu    sync.RWMutex
}

func NewGameManager(bot model.MoveChooser) *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
		bot:   bot,
	}
}

// CreateGame starts a game from fen, or from the standard layout when fen
// is empty, and returns its id.
func (gm *GameManager) CreateGame(fen string) (string, error) {
	gameID := uuid.New().String()

	var game *model.Game
	var err error
	if fen == "" {
		game, err = model.NewGame(gameID)
	} else {
		game, err = model.NewGameFromFEN(gameID, fen)
	}
	if err != nil {
		return "", err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.games[gameID] = game
	log.Printf("created game %s", gameID)
	return gameID, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMovesFrom(from)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.SimpleMove) (model.Ply, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Ply{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) MakeBotMove(gameID string, color model.Color) (model.Ply, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Ply{}, err
	}
	return game.MakeBotMove(color, gm.bot)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Observer) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Observer) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}
