package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

const ErrSessionNotFound domain.Error = "game not found"

// MoveChooser is the part of the bot engine a session needs.
type MoveChooser interface {
	ChooseMove(ctx context.Context, board *domain.Board, owner domain.Owner, difficulty bot.Difficulty) int
}

// GameSession is one human playing the bot.
type GameSession struct {
	GameID       string
	Difficulty   bot.Difficulty
	Game         *domain.Game
	CreatedAt    time.Time
	LastActivity time.Time

	mu      sync.Mutex
	pending []domain.Placement
}

// State is a point-in-time view of a session, safe to hand to transports.
type State struct {
	GameID     string            `json:"gameId"`
	Difficulty bot.Difficulty    `json:"difficulty"`
	Status     domain.GameStatus `json:"status"`
	Turn       string            `json:"turn"`
	Winner     string            `json:"winner,omitempty"`
	WinLine    []domain.Position `json:"winLine,omitempty"`
	MoveCount  int               `json:"moveCount"`
	Board      [][]domain.Owner  `json:"board"`
	Score      int               `json:"score"`
}

// TurnResult is everything that happened during one PlayTurn call.
type TurnResult struct {
	Placements []domain.Placement `json:"placements"`
	BotColumn  int                `json:"botColumn"`
	State      State              `json:"state"`
}

func newGameSession(difficulty bot.Difficulty) *GameSession {
	now := time.Now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		Difficulty:   difficulty,
		CreatedAt:    now,
		LastActivity: now,
	}
	gs.Game = domain.NewGame(gs.record)
	return gs
}

func (gs *GameSession) record(p domain.Placement) {
	gs.pending = append(gs.pending, p)
}

// Snapshot returns the current state under the session lock.
func (gs *GameSession) Snapshot() State {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.stateLocked()
}

func (gs *GameSession) stateLocked() State {
	g := gs.Game
	s := State{
		GameID:     gs.GameID,
		Difficulty: gs.Difficulty,
		Status:     g.Status,
		Turn:       g.Turn.String(),
		MoveCount:  g.MoveCount,
		Board:      g.Board.Grid(),
		Score:      g.Board.Score(),
	}
	if g.Status == domain.StatusWon {
		s.Winner = g.Winner.String()
	}
	if g.WinLine != nil {
		s.WinLine = g.WinLine.Cells
	}
	return s
}

func (gs *GameSession) idleSince(now time.Time) time.Duration {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return now.Sub(gs.LastActivity)
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	engine   MoveChooser
	log      zerolog.Logger
}

func NewSessionManager(engine MoveChooser, logger zerolog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		engine:   engine,
		log:      logger,
	}
}

func (sm *SessionManager) CreateSession(difficulty bot.Difficulty) *GameSession {
	session := newGameSession(difficulty)

	sm.mu.Lock()
	sm.sessions[session.GameID] = session
	sm.mu.Unlock()

	sm.log.Info().Str("game_id", session.GameID).Str("difficulty", string(difficulty)).Msg("session created")
	return session
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[gameID]; !exists {
		return ErrSessionNotFound
	}
	delete(sm.sessions, gameID)
	sm.log.Info().Str("game_id", gameID).Msg("session removed")
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// PlayTurn applies the human move and, if the game goes on, the bot reply.
func (sm *SessionManager) PlayTurn(ctx context.Context, gameID string, column int) (TurnResult, error) {
	gs, ok := sm.GetSession(gameID)
	if !ok {
		return TurnResult{}, ErrSessionNotFound
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.LastActivity = time.Now()
	gs.pending = gs.pending[:0]
	result := TurnResult{BotColumn: bot.NoMove}

	if _, err := gs.Game.MakeMove(domain.Human, column); err != nil {
		return TurnResult{}, fmt.Errorf("human move in column %d: %w", column, err)
	}

	if !gs.Game.IsFinished() {
		// the search reads a snapshot; the live board only changes through MakeMove
		snapshot := gs.Game.Board.Snapshot()
		col := sm.engine.ChooseMove(ctx, &snapshot, domain.Bot, gs.Difficulty)
		if !gs.Game.Board.IsValidMove(col) {
			// a game that is still active always has a free column, so the turn never sticks on the bot
			fallback := gs.Game.Board.ValidMoves()[0]
			sm.log.Warn().Str("game_id", gs.GameID).Int("column", col).Int("fallback", fallback).Msg("bot chose an unplayable column")
			col = fallback
		}
		if _, err := gs.Game.MakeMove(domain.Bot, col); err != nil {
			return TurnResult{}, fmt.Errorf("bot move in column %d: %w", col, err)
		}
		result.BotColumn = col
	}

	result.Placements = append([]domain.Placement(nil), gs.pending...)
	result.State = gs.stateLocked()

	if gs.Game.IsFinished() {
		event := sm.log.Info().Str("game_id", gs.GameID).Str("status", string(gs.Game.Status))
		if gs.Game.WinLine != nil {
			event = event.Str("winner", gs.Game.Winner.String()).Str("line", gs.Game.WinLine.Orientation.String())
		}
		event.Int("moves", gs.Game.MoveCount).Msg("game finished")
	}
	return result, nil
}

// CleanupIdleSessions removes sessions untouched for longer than maxIdle and
// returns how many were removed.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	now := time.Now()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for id, gs := range sm.sessions {
		if gs.idleSince(now) > maxIdle {
			delete(sm.sessions, id)
			removed++
		}
	}
	return removed
}
