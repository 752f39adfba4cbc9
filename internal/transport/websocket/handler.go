package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager       *ConnectionManager
	SessionManager    *game.SessionManager
	JWTSecret         string
	TokenTTL          time.Duration
	DefaultDifficulty bot.Difficulty
	Upgrader          websocket.Upgrader
	log               zerolog.Logger
}

// NewHandler creates a new WebSocket handler with dependencies
func NewHandler(cm *ConnectionManager, sm *game.SessionManager, jwtSecret string, tokenTTL time.Duration, difficulty bot.Difficulty, logger zerolog.Logger) *Handler {
	return &Handler{
		ConnManager:       cm,
		SessionManager:    sm,
		JWTSecret:         jwtSecret,
		TokenTTL:          tokenTTL,
		DefaultDifficulty: difficulty,
		Upgrader: websocket.Upgrader{
			// origins are already filtered by the CORS middleware
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.With().Str("component", "ws").Logger(),
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	h.handleConnection(r.Context(), conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	// 1. Wait for initialization: resume a game or start one
	gameID, ok := h.initialize(conn)
	if !ok {
		conn.Close()
		return
	}

	// 2. Cleanup on exit; gameID may change after new_game
	defer func() {
		h.log.Info().Str("game_id", gameID).Msg("connection closed")
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	// 3. Main Message Loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Str("game_id", gameID).Msg("client disconnected unexpectedly")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.ConnManager.SendMessage(gameID, errorMessage("Invalid message format"))
			continue
		}

		if !h.ConnManager.IsCurrentConnection(gameID, conn) {
			// a newer connection took over this game
			return
		}

		switch msg.Type {
		case MsgMakeMove:
			h.handleMove(ctx, gameID, msg)

		case MsgNewGame:
			oldID := gameID
			h.ConnManager.Detach(oldID, conn)
			newID, ok := h.startGame(conn, msg.Difficulty)
			if !ok {
				// keep playing the previous game
				h.ConnManager.AddConnection(oldID, conn)
				continue
			}
			gameID = newID

		default:
			h.ConnManager.SendMessage(gameID, errorMessage("Unknown message type"))
		}
	}
}

// initialize reads the first message and registers the connection under its game.
func (h *Handler) initialize(conn *websocket.Conn) (string, bool) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		h.log.Debug().Err(err).Msg("read error during init")
		return "", false
	}

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		conn.WriteJSON(errorMessage("Invalid message format"))
		return "", false
	}

	switch msg.Type {
	case MsgInit:
		claims, err := auth.ValidateGameToken(h.JWTSecret, msg.Token)
		if err != nil {
			conn.WriteJSON(errorMessage("Invalid token or game expired"))
			return "", false
		}
		session, exists := h.SessionManager.GetSession(claims.GameID)
		if !exists {
			conn.WriteJSON(errorMessage(game.ErrSessionNotFound.Error()))
			return "", false
		}

		h.ConnManager.AddConnection(session.GameID, conn)
		state := session.Snapshot()
		h.ConnManager.SendMessage(session.GameID, ServerMessage{Type: MsgGameState, GameID: session.GameID, State: &state})
		h.log.Info().Str("game_id", session.GameID).Msg("connection resumed game")
		return session.GameID, true

	case MsgNewGame:
		return h.startGame(conn, msg.Difficulty)

	default:
		conn.WriteJSON(errorMessage("Missing initialization"))
		return "", false
	}
}

func (h *Handler) startGame(conn *websocket.Conn, difficulty string) (string, bool) {
	d := h.DefaultDifficulty
	if difficulty != "" {
		d = bot.ParseDifficulty(difficulty)
	}

	session := h.SessionManager.CreateSession(d)
	token, err := auth.GenerateGameToken(h.JWTSecret, session.GameID, h.TokenTTL)
	if err != nil {
		h.log.Error().Err(err).Str("game_id", session.GameID).Msg("failed to sign game token")
		_ = h.SessionManager.RemoveSession(session.GameID)
		conn.WriteJSON(errorMessage("Failed to create game"))
		return "", false
	}

	h.ConnManager.AddConnection(session.GameID, conn)
	state := session.Snapshot()
	h.ConnManager.SendMessage(session.GameID, ServerMessage{
		Type:   MsgGameCreated,
		GameID: session.GameID,
		Token:  token,
		State:  &state,
	})
	return session.GameID, true
}

func (h *Handler) handleMove(ctx context.Context, gameID string, msg ClientMessage) {
	if msg.Column == nil {
		h.ConnManager.SendMessage(gameID, errorMessage("column is required"))
		return
	}

	result, err := h.SessionManager.PlayTurn(ctx, gameID, *msg.Column)
	if err != nil {
		h.ConnManager.SendMessage(gameID, errorMessage(err.Error()))
		return
	}

	for _, p := range result.Placements {
		h.ConnManager.SendMessage(gameID, ServerMessage{Type: MsgPiecePlaced, GameID: gameID, Piece: pieceEvent(p)})
	}

	msgType := MsgGameState
	if result.State.Status != domain.StatusActive {
		msgType = MsgGameOver
	}
	h.ConnManager.SendMessage(gameID, ServerMessage{Type: msgType, GameID: gameID, State: &result.State})
}

func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			// WriteControl may run alongside WriteJSON
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}
