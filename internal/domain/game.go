package domain

// Game is one human-vs-bot match on a live board. The human always moves first.
type Game struct {
	Board     *Board
	Turn      Owner
	Status    GameStatus
	Winner    Owner
	WinLine   *Window
	MoveCount int
}

// NewGame starts a match; observer (may be nil) receives every placement on the live board.
func NewGame(observer PlacementFunc) *Game {
	board := NewBoard()
	board.Observe(observer)
	return &Game{
		Board:  board,
		Turn:   Human,
		Status: StatusActive,
		Winner: Empty,
	}
}

func (g *Game) MakeMove(owner Owner, column int) (int, error) {
	if g.IsFinished() {
		return -1, ErrGameOver
	}
	if owner != g.Turn {
		return -1, ErrNotYourTurn
	}
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}
	if !g.Board.IsValidMove(column) {
		return -1, ErrColumnFull
	}

	row, _ := g.Board.Place(column, owner)
	g.MoveCount++

	if w, won := g.Board.WinningWindow(owner); won {
		g.Status = StatusWon
		g.Winner = owner
		g.WinLine = &w
		return row, nil
	}

	if g.Board.IsFull() {
		g.Status = StatusDraw
		return row, nil
	}

	g.Turn = owner.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
