package domain

import "strings"

// Position addresses one cell. Column 0 is the left edge, row 0 the bottom.
type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Placement is emitted every time a piece lands on a live board.
type Placement struct {
	Owner  Owner `json:"owner"`
	Row    int   `json:"row"`
	Column int   `json:"column"`
}

// Index is the linear cell index a grid renderer uses (row-major, bottom row first).
func (p Placement) Index() int {
	return p.Row*Columns + p.Column
}

type PlacementFunc func(Placement)

// Board is a dense 7x6 grid. Every cell always holds Empty, Human or Bot.
// Observers are only notified by the board they were registered on;
// Snapshot and MergeFrom move cells, never observers.
type Board struct {
	cells     [Columns][Rows]Owner
	observers []PlacementFunc
}

func NewBoard() *Board {
	return &Board{}
}

// Observe registers fn to be called after each successful Place.
func (b *Board) Observe(fn PlacementFunc) {
	if fn != nil {
		b.observers = append(b.observers, fn)
	}
}

// Snapshot returns an independent copy of the cells.
func (b *Board) Snapshot() Board {
	return Board{cells: b.cells}
}

// MergeFrom overwrites every cell of b with the cells of other.
func (b *Board) MergeFrom(other *Board) {
	b.cells = other.cells
}

// Cell panics when the position is off the grid.
func (b *Board) Cell(column, row int) Owner {
	return b.cells[column][row]
}

// Place drops a piece into column and returns the row it landed on.
// A full or out-of-range column, or an Empty owner, leaves the board untouched
// and returns ok=false.
func (b *Board) Place(column int, owner Owner) (int, bool) {
	if column < 0 || column >= Columns || owner == Empty {
		return -1, false
	}

	// gravity: the lowest empty cell takes the piece
	for row := 0; row < Rows; row++ {
		if b.cells[column][row] == Empty {
			b.cells[column][row] = owner
			b.notify(Placement{Owner: owner, Row: row, Column: column})
			return row, true
		}
	}

	return -1, false
}

func (b *Board) notify(p Placement) {
	for _, fn := range b.observers {
		fn(p)
	}
}

// IsValidMove only looks at the top cell; gravity makes that equivalent to "column not full".
func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return b.cells[column][Rows-1] == Empty
}

// this is a helper function that will later be used by the bot
func (b *Board) ValidMoves() []int {
	validMoves := []int{}
	for col := 0; col < Columns; col++ {
		if b.IsValidMove(col) {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

func (b *Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b.IsValidMove(col) {
			return false
		}
	}
	return true
}

// OwnerCount counts how many of cells belong to owner.
func (b *Board) OwnerCount(cells []Position, owner Owner) int {
	count := 0
	for _, p := range cells {
		if b.cells[p.Column][p.Row] == owner {
			count++
		}
	}
	return count
}

// Key is a canonical 42-character encoding, column by column from the bottom.
// '.' is empty, 'h' human, 'b' bot.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Columns * Rows)
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			sb.WriteByte(cellByte(b.cells[col][row]))
		}
	}
	return sb.String()
}

// Grid returns the cells row-major with the top row first, the way a client draws them.
func (b *Board) Grid() [][]Owner {
	grid := make([][]Owner, Rows)
	for i := range grid {
		grid[i] = make([]Owner, Columns)
		row := Rows - 1 - i
		for col := 0; col < Columns; col++ {
			grid[i][col] = b.cells[col][row]
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(cellByte(b.cells[col][row]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellByte(o Owner) byte {
	switch o {
	case Human:
		return 'h'
	case Bot:
		return 'b'
	default:
		return '.'
	}
}
