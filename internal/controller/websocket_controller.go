package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/casualchess/internal/service"
	"github.com/benbeisheim/casualchess/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	log         *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, log *zap.Logger) *WebSocketController {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		log:         log,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	connID, _ := c.Locals("connID").(string)
	log := wsc.log.With(zap.String("gameID", gameID), zap.String("connID", connID))

	// Registering pushes the current state; later writes go through out.
	out, err := wsc.gameService.RegisterConnection(gameID, connID, c)
	if err != nil {
		log.Warn("failed to register connection", zap.Error(err))
		_ = c.WriteJSON(ws.ErrorMessage(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("socket closed", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug("parse error", zap.Error(err))
			_ = out.WriteJSON(ws.ErrorMessage(fmt.Errorf("malformed message: %w", err)))
			continue
		}
		if err := wsc.handleMessage(gameID, msg); err != nil {
			log.Debug("message rejected", zap.String("type", string(msg.Type)), zap.Error(err))
			if err := out.WriteJSON(ws.ErrorMessage(err)); err != nil {
				return
			}
		}
	}
}

// handleMessage applies one client command. Successful commands reach
// every socket on the game through the state broadcast.
func (wsc *WebSocketController) handleMessage(gameID string, msg ws.Message) error {
	var err error
	switch msg.Type {
	case ws.MessageTypeSelect:
		var p ws.SelectPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		_, err = wsc.gameService.SelectSquare(gameID, p.Square)
	case ws.MessageTypePromote:
		var p ws.PromotePayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		_, err = wsc.gameService.ChoosePromotion(gameID, p.Piece)
	case ws.MessageTypeUndo:
		_, err = wsc.gameService.Undo(gameID)
	case ws.MessageTypeReset:
		_, err = wsc.gameService.Reset(gameID)
	case ws.MessageTypeOpponent:
		var p ws.OpponentPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		_, err = wsc.gameService.SetOpponentEnabled(gameID, p.Enabled)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
	return err
}
