package bot

import (
	"math"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

const (
	DefaultDepth = 5
	WinScore     = 999999999
	// NoMove is returned when a node has no playable column.
	NoMove = -1
)

// Result is the value of a node and the column that reaches it.
// Column is only meaningful at the root of a search.
type Result struct {
	Value  int
	Column int
}

// ChooseBestMove searches depth plies ahead and returns the column owner should play,
// or NoMove when the board is full.
func ChooseBestMove(board *domain.Board, depth int, owner domain.Owner) int {
	return Minimax(board, depth, owner, math.MinInt, math.MaxInt).Column
}

// Minimax scores board from the bot's point of view with alpha-beta pruning.
// owner is the side to move at this node. board is never modified: every
// explored move is applied to its own snapshot.
func Minimax(board *domain.Board, depth int, owner domain.Owner, alpha, beta int) Result {
	if board.IsWinner(owner) {
		switch owner {
		case domain.Bot:
			return Result{Value: WinScore, Column: NoMove}
		case domain.Human:
			return Result{Value: -WinScore, Column: NoMove}
		default:
			return Result{Value: 0, Column: NoMove}
		}
	}
	if depth == 0 {
		return Result{Value: board.Score(), Column: NoMove}
	}

	// a full board without a winner is a draw
	if board.IsFull() {
		return Result{Value: 0, Column: NoMove}
	}

	if owner == domain.Bot {
		return maximize(board, depth, alpha, beta)
	}
	return minimize(board, depth, alpha, beta)
}

func maximize(board *domain.Board, depth int, alpha, beta int) Result {
	best := Result{Value: math.MinInt, Column: domain.CenterColumn}

	for col := 0; col < domain.Columns; col++ {
		if !board.IsValidMove(col) {
			continue
		}
		child := board.Snapshot()
		child.Place(col, domain.Bot)

		score := Minimax(&child, depth-1, domain.Human, alpha, beta).Value
		if score > best.Value {
			best = Result{Value: score, Column: col}
		}
		alpha = max(alpha, score)
		if beta <= alpha {
			break // beta cutoff
		}
	}
	return best
}

func minimize(board *domain.Board, depth int, alpha, beta int) Result {
	best := Result{Value: math.MaxInt, Column: domain.CenterColumn}

	for col := 0; col < domain.Columns; col++ {
		if !board.IsValidMove(col) {
			continue
		}
		child := board.Snapshot()
		child.Place(col, domain.Human)

		score := Minimax(&child, depth-1, domain.Bot, alpha, beta).Value
		if score < best.Value {
			best = Result{Value: score, Column: col}
		}
		beta = min(beta, score)
		if beta <= alpha {
			break // alpha cutoff
		}
	}
	return best
}
