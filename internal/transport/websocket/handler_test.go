package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
)

const testSecret = "ws-secret"

func newTestServer(t *testing.T) (*httptest.Server, *Handler) {
	t.Helper()
	sm := game.NewSessionManager(bot.NewEngine(2), zerolog.Nop())
	h := NewHandler(NewConnectionManager(), sm, testSecret, time.Hour, bot.Medium, zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func column(c int) *int { return &c }

func TestNewGameThenMove(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	send(t, conn, ClientMessage{Type: MsgNewGame, Difficulty: "hard"})
	created := readMessage(t, conn)
	if created.Type != MsgGameCreated || created.GameID == "" || created.Token == "" {
		t.Fatalf("unexpected creation message %+v", created)
	}
	if created.State == nil || created.State.Difficulty != bot.Hard {
		t.Fatalf("expected hard game state, got %+v", created.State)
	}

	send(t, conn, ClientMessage{Type: MsgMakeMove, Column: column(3)})

	human := readMessage(t, conn)
	if human.Type != MsgPiecePlaced || human.Piece.Owner != "human" || human.Piece.Index != 3 {
		t.Fatalf("unexpected human placement %+v", human.Piece)
	}
	reply := readMessage(t, conn)
	if reply.Type != MsgPiecePlaced || reply.Piece.Owner != "bot" {
		t.Fatalf("unexpected bot placement %+v", reply.Piece)
	}
	if reply.Piece.Index != reply.Piece.Row*domain.Columns+reply.Piece.Column {
		t.Fatalf("index does not match row and column: %+v", reply.Piece)
	}

	state := readMessage(t, conn)
	if state.Type != MsgGameState || state.State.MoveCount != 2 {
		t.Fatalf("expected game_state after two moves, got %+v", state)
	}
}

func TestInitResumesGame(t *testing.T) {
	srv, h := newTestServer(t)
	session := h.SessionManager.CreateSession(bot.Easy)
	token, err := auth.GenerateGameToken(testSecret, session.GameID, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	conn := dial(t, srv)
	send(t, conn, ClientMessage{Type: MsgInit, Token: token})
	msg := readMessage(t, conn)
	if msg.Type != MsgGameState || msg.GameID != session.GameID {
		t.Fatalf("expected state of %s, got %+v", session.GameID, msg)
	}
}

func TestInitRejectsBadToken(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	send(t, conn, ClientMessage{Type: MsgInit, Token: "garbage"})
	msg := readMessage(t, conn)
	if msg.Type != MsgError {
		t.Fatalf("expected error, got %+v", msg)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected the server to close the connection")
	}
}

func TestMoveBeforeInitIsRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	send(t, conn, ClientMessage{Type: MsgMakeMove, Column: column(0)})
	if msg := readMessage(t, conn); msg.Type != MsgError {
		t.Fatalf("expected error, got %+v", msg)
	}
}

func TestInvalidMoveKeepsConnection(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	send(t, conn, ClientMessage{Type: MsgNewGame})
	created := readMessage(t, conn)
	if created.State.Difficulty != bot.Medium {
		t.Fatalf("expected default difficulty, got %q", created.State.Difficulty)
	}

	send(t, conn, ClientMessage{Type: MsgMakeMove, Column: column(7)})
	if msg := readMessage(t, conn); msg.Type != MsgError {
		t.Fatalf("expected error for column 7, got %+v", msg)
	}
	send(t, conn, ClientMessage{Type: MsgMakeMove})
	if msg := readMessage(t, conn); msg.Type != MsgError {
		t.Fatalf("expected error for missing column, got %+v", msg)
	}

	send(t, conn, ClientMessage{Type: MsgMakeMove, Column: column(0)})
	if msg := readMessage(t, conn); msg.Type != MsgPiecePlaced {
		t.Fatalf("expected the connection to stay usable, got %+v", msg)
	}
}

func TestNewGameSwitchesConnection(t *testing.T) {
	srv, h := newTestServer(t)
	conn := dial(t, srv)

	send(t, conn, ClientMessage{Type: MsgNewGame})
	first := readMessage(t, conn)
	send(t, conn, ClientMessage{Type: MsgNewGame, Difficulty: "easy"})
	second := readMessage(t, conn)

	if second.Type != MsgGameCreated || second.GameID == first.GameID {
		t.Fatalf("expected a second game, got %+v", second)
	}
	if h.ConnManager.Count() != 1 {
		t.Fatalf("expected one tracked connection, got %d", h.ConnManager.Count())
	}
}
