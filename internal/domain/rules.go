package domain

// Orientation is the direction a window runs in.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	FallingDiagonal
	RisingDiagonal
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FallingDiagonal:
		return "falling diagonal"
	case RisingDiagonal:
		return "rising diagonal"
	default:
		return "unknown"
	}
}

// Window is a run of exactly ToWin contiguous cells.
type Window struct {
	Orientation Orientation `json:"-"`
	Cells       []Position  `json:"cells"`
}

// step per orientation, in detection precedence order
var orientationSteps = [...]struct {
	orientation Orientation
	dCol, dRow  int
}{
	{Horizontal, 1, 0},
	{Vertical, 0, 1},
	{FallingDiagonal, 1, -1},
	{RisingDiagonal, 1, 1},
}

// windows holds every window that fits on the grid, grouped by orientation.
var windows = buildWindows()

func buildWindows() []Window {
	all := []Window{}
	for _, step := range orientationSteps {
		for col := 0; col < Columns; col++ {
			for row := 0; row < Rows; row++ {
				endCol := col + step.dCol*(ToWin-1)
				endRow := row + step.dRow*(ToWin-1)
				if endCol < 0 || endCol >= Columns || endRow < 0 || endRow >= Rows {
					continue
				}
				cells := make([]Position, ToWin)
				for i := 0; i < ToWin; i++ {
					cells[i] = Position{Column: col + step.dCol*i, Row: row + step.dRow*i}
				}
				all = append(all, Window{Orientation: step.orientation, Cells: cells})
			}
		}
	}
	return all
}

// Windows returns every 4-cell window on the grid. Callers must not modify it.
func Windows() []Window {
	return windows
}

// IsWinner reports whether owner fully occupies at least one window.
func (b *Board) IsWinner(owner Owner) bool {
	_, ok := b.WinningWindow(owner)
	return ok
}

// WinningWindow returns the first window owned entirely by owner, checking
// horizontal, vertical, falling then rising windows.
func (b *Board) WinningWindow(owner Owner) (Window, bool) {
	for _, w := range windows {
		if b.OwnerCount(w.Cells, owner) == ToWin {
			return w, true
		}
	}
	return Window{}, false
}
