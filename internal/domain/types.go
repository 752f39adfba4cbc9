package domain

// Owner is the state of a single cell. Empty is a marker, not a player:
// only Human and Bot ever take part in a search.
type Owner int8

const (
	Empty Owner = iota
	Human
	Bot
)

func (o Owner) String() string {
	switch o {
	case Human:
		return "human"
	case Bot:
		return "bot"
	default:
		return "empty"
	}
}

// Opponent returns the other real owner. Empty has no opponent.
func (o Owner) Opponent() Owner {
	switch o {
	case Human:
		return Bot
	case Bot:
		return Human
	default:
		return Empty
	}
}

const (
	Columns      = 7
	Rows         = 6
	ToWin        = 4
	CenterColumn = Columns / 2
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove Error = "invalid move"
	ErrColumnFull  Error = "column is full"
	ErrNotYourTurn Error = "not your turn"
	ErrGameOver    Error = "game is already over"
)
