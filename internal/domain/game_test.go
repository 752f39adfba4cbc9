package domain

import (
	"errors"
	"testing"
)

func TestGameTurnOrder(t *testing.T) {
	g := NewGame(nil)
	if _, err := g.MakeMove(Bot, 3); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if _, err := g.MakeMove(Human, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Turn != Bot {
		t.Fatalf("expected bot to move next, got %v", g.Turn)
	}
	if g.MoveCount != 1 {
		t.Fatalf("expected move count 1, got %d", g.MoveCount)
	}
}

func TestGameRejectsBadColumns(t *testing.T) {
	g := NewGame(nil)
	if _, err := g.MakeMove(Human, Columns); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}

	for i := 0; i < Rows; i++ {
		owner := g.Turn
		if _, err := g.MakeMove(owner, 0); err != nil {
			t.Fatalf("unexpected error filling column: %v", err)
		}
	}
	if _, err := g.MakeMove(g.Turn, 0); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
}

func TestGameDetectsWin(t *testing.T) {
	var placements []Placement
	g := NewGame(func(p Placement) { placements = append(placements, p) })

	moves := []int{0, 6, 1, 6, 2, 5, 3}
	for _, col := range moves {
		if _, err := g.MakeMove(g.Turn, col); err != nil {
			t.Fatalf("unexpected error at column %d: %v", col, err)
		}
	}

	if g.Status != StatusWon || g.Winner != Human {
		t.Fatalf("expected human win, got status %s winner %v", g.Status, g.Winner)
	}
	if g.WinLine == nil || g.WinLine.Orientation != Horizontal {
		t.Fatalf("expected a horizontal winning line, got %+v", g.WinLine)
	}
	if len(placements) != len(moves) {
		t.Fatalf("expected %d placements, got %d", len(moves), len(placements))
	}
	if _, err := g.MakeMove(g.Turn, 4); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestGameDetectsDraw(t *testing.T) {
	g := NewGame(nil)
	pre := NewBoard()
	fillDrawn(pre, 6)
	g.Board.MergeFrom(pre)
	g.Turn = drawPattern(6, Rows-1)

	if _, err := g.MakeMove(g.Turn, 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Status != StatusDraw {
		t.Fatalf("expected draw, got %s", g.Status)
	}
	if g.Winner != Empty {
		t.Fatalf("expected no winner, got %v", g.Winner)
	}
}
