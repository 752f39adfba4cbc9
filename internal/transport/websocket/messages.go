package websocket

import (
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

// client → server message types
const (
	MsgInit     = "init"
	MsgNewGame  = "new_game"
	MsgMakeMove = "make_move"
)

// server → client message types
const (
	MsgGameCreated = "game_created"
	MsgGameState   = "game_state"
	MsgPiecePlaced = "piece_placed"
	MsgGameOver    = "game_over"
	MsgError       = "error"
)

type ClientMessage struct {
	Type       string `json:"type"`
	Token      string `json:"token,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Column     *int   `json:"column,omitempty"`
}

type ServerMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	GameID  string      `json:"gameId,omitempty"`
	Token   string      `json:"token,omitempty"`
	Piece   *PieceEvent `json:"piece,omitempty"`
	State   *game.State `json:"state,omitempty"`
}

// PieceEvent is one placement; Index addresses the cell in a row-major grid
// whose first row is the bottom one.
type PieceEvent struct {
	Owner  string `json:"owner"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Index  int    `json:"index"`
}

func pieceEvent(p domain.Placement) *PieceEvent {
	return &PieceEvent{
		Owner:  p.Owner.String(),
		Row:    p.Row,
		Column: p.Column,
		Index:  p.Index(),
	}
}

func errorMessage(msg string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: msg}
}
