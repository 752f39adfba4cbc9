package domain

import "testing"

func TestWindowCount(t *testing.T) {
	counts := map[Orientation]int{}
	for _, w := range Windows() {
		if len(w.Cells) != ToWin {
			t.Fatalf("window has %d cells", len(w.Cells))
		}
		counts[w.Orientation]++
	}
	want := map[Orientation]int{
		Horizontal:      24,
		Vertical:        21,
		FallingDiagonal: 12,
		RisingDiagonal:  12,
	}
	for o, n := range want {
		if counts[o] != n {
			t.Errorf("%v: expected %d windows, got %d", o, n, counts[o])
		}
	}
}

func TestIsWinnerPerOrientation(t *testing.T) {
	tests := []struct {
		name   string
		build  func(b *Board)
		winner Owner
		want   Orientation
	}{
		{
			name: "horizontal",
			build: func(b *Board) {
				play(b, Human, 0, 1, 2, 3)
			},
			winner: Human,
			want:   Horizontal,
		},
		{
			name: "vertical",
			build: func(b *Board) {
				play(b, Bot, 5, 5, 5, 5)
			},
			winner: Bot,
			want:   Vertical,
		},
		{
			name: "rising diagonal",
			build: func(b *Board) {
				play(b, Bot, 0)
				play(b, Human, 1)
				play(b, Bot, 1)
				play(b, Human, 2, 2)
				play(b, Bot, 2)
				play(b, Human, 3, 3, 3)
				play(b, Bot, 3)
			},
			winner: Bot,
			want:   RisingDiagonal,
		},
		{
			name: "falling diagonal",
			build: func(b *Board) {
				play(b, Bot, 3)
				play(b, Human, 2)
				play(b, Bot, 2)
				play(b, Human, 1, 1)
				play(b, Bot, 1)
				play(b, Human, 0, 0, 0)
				play(b, Bot, 0)
			},
			winner: Bot,
			want:   FallingDiagonal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			tt.build(b)
			if !b.IsWinner(tt.winner) {
				t.Fatalf("expected %v to win\n%s", tt.winner, b)
			}
			if b.IsWinner(tt.winner.Opponent()) {
				t.Fatalf("did not expect %v to win\n%s", tt.winner.Opponent(), b)
			}
			w, ok := b.WinningWindow(tt.winner)
			if !ok || w.Orientation != tt.want {
				t.Fatalf("expected %v window, got %v (ok=%v)", tt.want, w.Orientation, ok)
			}
		})
	}
}

func TestThreeInARowIsNotAWin(t *testing.T) {
	b := NewBoard()
	play(b, Human, 0, 1, 2)
	play(b, Bot, 6, 6, 6)
	if b.IsWinner(Human) || b.IsWinner(Bot) {
		t.Fatalf("three in a row must not count as a win\n%s", b)
	}
}

func TestBrokenLineIsNotAWin(t *testing.T) {
	b := NewBoard()
	play(b, Human, 0, 1, 3, 4)
	play(b, Bot, 2)
	if b.IsWinner(Human) {
		t.Fatalf("line broken by an opponent piece must not win\n%s", b)
	}
}

func TestEmptyFillsEveryWindowOnANewBoard(t *testing.T) {
	b := NewBoard()
	if !b.IsWinner(Empty) {
		t.Fatalf("expected the win query to be total for Empty")
	}
	b.Place(0, Human)
	if _, ok := b.WinningWindow(Empty); !ok {
		t.Fatalf("expected untouched windows to remain fully empty")
	}
}
