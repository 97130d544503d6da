package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("Failed to register connection: %v", err)
		if msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()}); merr == nil {
			c.WriteJSON(msg)
		}
		if errors.Is(err, model.ErrAlreadyConnected) {
			c.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
			)
		}
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}
		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(gameID, playerID, err)
			continue
		}
		if reply != nil {
			if err := wsc.gameService.Send(gameID, playerID, *reply); err != nil {
				log.Printf("write error: %v", err)
			}
		}
	}
}

// handleMessage applies one client message. Moves are answered by the state
// broadcast, queries get a direct reply.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req moveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		move, err := req.toMove()
		if err != nil {
			return nil, err
		}
		_, err = wsc.gameService.HandleMove(gameID, playerID, move)
		return nil, err

	case ws.MessageTypeBotMove:
		var req ws.BotMoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		_, err := wsc.gameService.HandleBotMove(gameID, req.Color)
		return nil, err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		destinations, err := wsc.gameService.LegalMoves(gameID, req.Square)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesResponse{
			Square:       req.Square,
			Destinations: squareNames(destinations),
		})
		if err != nil {
			return nil, err
		}
		return &reply, nil

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func squareNames(positions []model.Position) []string {
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, p.String())
	}
	return names
}

func (wsc *WebSocketController) sendError(gameID, playerID string, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if err := wsc.gameService.Send(gameID, playerID, msg); err != nil {
		log.Printf("write error: %v", err)
	}
}
