package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(fen string) (string, error) {
	gameID, err := gs.gameManager.CreateGame(fen)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves resolves square (algebraic, e.g. "e2") and lists its piece's
// safe destinations.
func (gs *GameService) LegalMoves(gameID string, square string) ([]model.Position, error) {
	from, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.SimpleMove) (model.Ply, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandleBotMove(gameID string, color string) (model.Ply, error) {
	c, err := model.ParseColor(color)
	if err != nil {
		return model.Ply{}, err
	}
	return gs.gameManager.MakeBotMove(gameID, c)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Observer) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Observer) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// Send writes msg on the player's registered connection.
func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	return gs.gameManager.Send(gameID, playerID, msg)
}
