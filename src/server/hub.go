package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"iex-insight/src/helpers"
	"iex-insight/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client, ok := <-s.register:
			if !ok {
				return
			}
			s.clientsMutex.Lock()
			s.clients[client] = struct{}{}
			s.clientsMutex.Unlock()

			// Greet on connect so the client can capture its session id
			client.send <- &models.MWsEnvelope{Type: "WELCOME"}

		case client, ok := <-s.unregister:
			if !ok {
				return
			}
			s.clientsMutex.Lock()
			if _, exists := s.clients[client]; exists {
				delete(s.clients, client)
				close(client.send)
			}
			s.clientsMutex.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MWsEnvelope, 256),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MQueryCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "query" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := s.Answerer.Answer(ctx, models.MQueryRequest{
		SessionID: cmd.SessionID,
		Text:      cmd.Text,
		Limit:     cmd.Limit,
	})

	var envelope *models.MWsEnvelope
	if err != nil {
		if !helpers.IsValidationError(err) {
			s.Logger.Error("WebSocket query failed: %v", err)
		}
		envelope = &models.MWsEnvelope{Type: "ERROR", Error: err.Error()}
	} else {
		envelope = &models.MWsEnvelope{Type: "RESULT", Result: result}
	}

	// Use select to avoid blocking if client's send buffer is full
	select {
	case client.send <- envelope:
	default:
		// Client too slow, drop the frame rather than stall the reader
		s.Logger.Warning("Client send buffer full, dropping response")
	}
}
