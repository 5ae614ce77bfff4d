package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/benbeisheim/variantchess-backend/internal/service"
	"github.com/benbeisheim/variantchess-backend/internal/ws"
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
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)
	log.Debugf("websocket opened for player %s in game %s", playerID, gameID)

	// Every write to c from here on goes through client.
	client := model.NewClient(c)
	defer client.Close()

	if err := wsc.gameService.RegisterConnection(gameID, playerID, client); err != nil {
		log.Warnf("failed to register connection: %v", err)
		wsc.sendError(client, err)
		client.SendClose(err.Error())
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, client)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			wsc.sendError(client, err)
			continue
		}

		if err := wsc.handleMessage(client, gameID, playerID, msg); err != nil {
			log.Debugf("handle error: %v", err)
			wsc.sendError(client, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(client *model.Client, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeSelect:
		var req model.SelectRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.HandleSelect(gameID, playerID, req.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeHints, fiber.Map{
			"square": req.Square,
			"moves":  moves,
		})
		if err != nil {
			return err
		}
		client.Send(reply)
		return nil

	case ws.MessageTypeUndo:
		req := model.UndoRequest{Steps: 1}
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				return err
			}
		}
		return wsc.gameService.HandleUndo(gameID, playerID, req.Steps)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(client *model.Client, err error) {
	reply, merr := ws.NewMessage(ws.MessageTypeError, fiber.Map{
		"error":  err.Error(),
		"status": statusFor(err),
	})
	if merr != nil {
		return
	}
	if !client.Send(reply) {
		log.Debugf("failed to queue error: %v", err)
	}
}

// HandleMatchmaking waits for the player's match and forwards it as a single
// matchFound message.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("wsPlayerID").(string)
	client := model.NewClient(c)
	defer client.Close()

	ch := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, ch); err != nil {
		wsc.sendError(client, err)
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	// A closed socket surfaces as a read error; stop waiting for a match then.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			// replaced by a newer connection for the same player
			return
		}
		client.Send(ws.Message{
			Type:    ws.MessageTypeMatchFound,
			Payload: json.RawMessage(event),
		})
	case <-gone:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}
