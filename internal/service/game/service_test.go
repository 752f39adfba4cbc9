package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

// scriptedBot plays the given columns in order.
type scriptedBot struct {
	columns []int
	calls   int
	boards  []string
}

func (s *scriptedBot) ChooseMove(ctx context.Context, board *domain.Board, owner domain.Owner, difficulty bot.Difficulty) int {
	s.boards = append(s.boards, board.Key())
	col := s.columns[s.calls%len(s.columns)]
	s.calls++
	return col
}

func newTestManager(b MoveChooser) *SessionManager {
	return NewSessionManager(b, zerolog.Nop())
}

func TestCreateAndGetSession(t *testing.T) {
	sm := newTestManager(&scriptedBot{columns: []int{6}})
	gs := sm.CreateSession(bot.Hard)

	if gs.GameID == "" {
		t.Fatalf("expected a game id")
	}
	got, ok := sm.GetSession(gs.GameID)
	if !ok || got != gs {
		t.Fatalf("expected to find session %s", gs.GameID)
	}
	state := gs.Snapshot()
	if state.Status != domain.StatusActive || state.Turn != "human" {
		t.Fatalf("unexpected initial state %+v", state)
	}
	if sm.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", sm.Count())
	}
}

func TestPlayTurnAppliesHumanThenBot(t *testing.T) {
	scripted := &scriptedBot{columns: []int{6}}
	sm := newTestManager(scripted)
	gs := sm.CreateSession(bot.Medium)

	res, err := sm.PlayTurn(context.Background(), gs.GameID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Placement{
		{Owner: domain.Human, Row: 0, Column: 3},
		{Owner: domain.Bot, Row: 0, Column: 6},
	}
	if len(res.Placements) != len(want) {
		t.Fatalf("expected %d placements, got %+v", len(want), res.Placements)
	}
	for i := range want {
		if res.Placements[i] != want[i] {
			t.Fatalf("placement %d: expected %+v, got %+v", i, want[i], res.Placements[i])
		}
	}
	if res.BotColumn != 6 {
		t.Fatalf("expected bot column 6, got %d", res.BotColumn)
	}
	if res.State.MoveCount != 2 || res.State.Turn != "human" {
		t.Fatalf("unexpected state after turn: %+v", res.State)
	}
	// the bot saw the board after the human move
	if len(scripted.boards) != 1 || scripted.boards[0][3*domain.Rows] != 'h' {
		t.Fatalf("expected bot to search the post-move board, got %v", scripted.boards)
	}
}

func TestPlayTurnHumanWinSkipsBot(t *testing.T) {
	scripted := &scriptedBot{columns: []int{6}}
	sm := newTestManager(scripted)
	gs := sm.CreateSession(bot.Easy)
	ctx := context.Background()

	var last TurnResult
	for _, col := range []int{0, 1, 2, 3} {
		res, err := sm.PlayTurn(ctx, gs.GameID, col)
		if err != nil {
			t.Fatalf("unexpected error at column %d: %v", col, err)
		}
		last = res
	}

	if last.State.Status != domain.StatusWon || last.State.Winner != "human" {
		t.Fatalf("expected human win, got %+v", last.State)
	}
	if last.BotColumn != bot.NoMove {
		t.Fatalf("expected no bot reply after the winning move, got %d", last.BotColumn)
	}
	if len(last.Placements) != 1 {
		t.Fatalf("expected only the winning placement, got %+v", last.Placements)
	}
	if len(last.State.WinLine) != domain.ToWin {
		t.Fatalf("expected a %d-cell winning line, got %v", domain.ToWin, last.State.WinLine)
	}
	if scripted.calls != 3 {
		t.Fatalf("expected 3 bot moves, got %d", scripted.calls)
	}

	if _, err := sm.PlayTurn(ctx, gs.GameID, 4); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestPlayTurnBotWin(t *testing.T) {
	sm := newTestManager(&scriptedBot{columns: []int{6}})
	gs := sm.CreateSession(bot.Hard)
	ctx := context.Background()

	var last TurnResult
	for _, col := range []int{0, 1, 0, 1} {
		res, err := sm.PlayTurn(ctx, gs.GameID, col)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		last = res
	}
	if last.State.Status != domain.StatusWon || last.State.Winner != "bot" {
		t.Fatalf("expected bot win, got %+v", last.State)
	}
}

func TestPlayTurnErrors(t *testing.T) {
	sm := newTestManager(&scriptedBot{columns: []int{6}})
	ctx := context.Background()

	if _, err := sm.PlayTurn(ctx, "missing", 3); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	gs := sm.CreateSession(bot.Medium)
	if _, err := sm.PlayTurn(ctx, gs.GameID, -1); !errors.Is(err, domain.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if gs.Snapshot().MoveCount != 0 {
		t.Fatalf("rejected move must not change the game")
	}
}

func TestRealEngineIntegration(t *testing.T) {
	sm := newTestManager(bot.NewEngine(3))
	gs := sm.CreateSession(bot.Hard)

	res, err := sm.PlayTurn(context.Background(), gs.GameID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BotColumn < 0 || res.BotColumn >= domain.Columns {
		t.Fatalf("expected a real bot column, got %d", res.BotColumn)
	}
	if len(res.Placements) != 2 {
		t.Fatalf("expected two placements, got %d", len(res.Placements))
	}
}

func TestRemoveSession(t *testing.T) {
	sm := newTestManager(&scriptedBot{columns: []int{6}})
	gs := sm.CreateSession(bot.Medium)
	if err := sm.RemoveSession(gs.GameID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sm.RemoveSession(gs.GameID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCleanupIdleSessions(t *testing.T) {
	sm := newTestManager(&scriptedBot{columns: []int{6}})
	stale := sm.CreateSession(bot.Medium)
	fresh := sm.CreateSession(bot.Medium)
	stale.LastActivity = time.Now().Add(-2 * time.Hour)

	if removed := sm.CleanupIdleSessions(time.Hour); removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}
	if _, ok := sm.GetSession(stale.GameID); ok {
		t.Fatalf("expected stale session to be gone")
	}
	if _, ok := sm.GetSession(fresh.GameID); !ok {
		t.Fatalf("expected fresh session to remain")
	}
}

func TestPlayTurnRecoversFromOutOfRangeBotColumn(t *testing.T) {
	for _, col := range []int{bot.NoMove, domain.Columns} {
		sm := newTestManager(&scriptedBot{columns: []int{col}})
		gs := sm.CreateSession(bot.Hard)

		res, err := sm.PlayTurn(context.Background(), gs.GameID, 3)
		if err != nil {
			t.Fatalf("column %d: unexpected error: %v", col, err)
		}
		if res.BotColumn != 0 || res.State.Turn != "human" || res.State.MoveCount != 2 {
			t.Fatalf("column %d: expected a fallback move in column 0, got %+v", col, res)
		}
	}
}

func TestPlayTurnRecoversFromFullBotColumn(t *testing.T) {
	sm := newTestManager(&scriptedBot{columns: []int{3}})
	gs := sm.CreateSession(bot.Hard)
	ctx := context.Background()

	// human and bot alternate in column 3 until it is full
	for i := 0; i < 3; i++ {
		if _, err := sm.PlayTurn(ctx, gs.GameID, 3); err != nil {
			t.Fatalf("setup turn %d: %v", i, err)
		}
	}

	res, err := sm.PlayTurn(ctx, gs.GameID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BotColumn != 0 || res.State.Turn != "human" {
		t.Fatalf("expected the bot to fall back to column 0, got %+v", res)
	}
	if _, err := sm.PlayTurn(ctx, gs.GameID, 6); err != nil {
		t.Fatalf("expected the session to keep going, got %v", err)
	}
}
