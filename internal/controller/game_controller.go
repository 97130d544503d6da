package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r moveRequest) toMove() (model.SimpleMove, error) {
	from, err := model.ParseSquare(r.From)
	if err != nil {
		return model.SimpleMove{}, err
	}
	to, err := model.ParseSquare(r.To)
	if err != nil {
		return model.SimpleMove{}, err
	}
	return model.SimpleMove{From: from, To: to}, nil
}

// statusFor maps engine and service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrGameFull), errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotSeated), errors.Is(err, model.ErrNotYourPiece):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrIllegalMove), errors.Is(err, model.ErrNoPiece), errors.Is(err, model.ErrNoMoves):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrBadSquare), errors.Is(err, model.ErrBadFEN), errors.Is(err, model.ErrUnknownColor):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	square := c.Query("square")
	destinations, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"square":       square,
		"destinations": squareNames(destinations),
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	move, err := req.toMove()
	if err != nil {
		return fail(c, err)
	}

	ply, err := gc.gameService.HandleMove(c.Params("gameId"), c.Locals("playerID").(string), move)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ply)
}

func (gc *GameController) MakeBotMove(c *fiber.Ctx) error {
	ply, err := gc.gameService.HandleBotMove(c.Params("gameId"), c.Query("color"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ply)
}
