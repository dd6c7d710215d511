package controller

import (
	"encoding/json"
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/benbeisheim/chessrules/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves /ws/game/:gameId until the client goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("ws: register %s in game %s: %v", playerID, gameID, err)
		// Not registered, so nothing else writes to c.
		wsc.sendError(c, err)
		c.Close()
		return
	}
	reply := func(err error) {
		msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
		if merr != nil {
			return
		}
		if werr := wsc.gameService.SendToPlayer(gameID, playerID, msg); werr != nil {
			log.Printf("ws: send error to %s: %v", playerID, werr)
		}
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("ws: read from %s: %v", playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			reply(errors.Wrap(err, "malformed message"))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			reply(err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return errors.Wrap(err, "malformed move")
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)
	case ws.MessageTypeUndo:
		return wsc.gameService.HandleUndo(gameID, playerID)
	default:
		return errors.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking serves /ws/matchmaking: it waits for the player to be
// paired and pushes the match event.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)

	events := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, events); err != nil {
		wsc.sendError(c, err)
		c.Close()
		return
	}

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
	case event, ok := <-events:
		if !ok {
			return
		}
		if err := c.WriteJSON(ws.Message{
			Type:    ws.MessageTypeMatchFound,
			Payload: json.RawMessage(event),
		}); err != nil {
			log.Printf("ws: send match to %s: %v", playerID, err)
		}
	case <-gone:
		wsc.gameService.UnregisterMatchmakingChannel(playerID)
	}
}

// sendError writes straight to c; only for connections no game broadcasts to.
func (wsc *WebSocketController) sendError(c *websocket.Conn, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	if werr := c.WriteJSON(msg); werr != nil {
		log.Printf("ws: send error: %v", werr)
	}
}
