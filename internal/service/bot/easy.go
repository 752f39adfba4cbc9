package bot

import (
	"math/rand"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// chooseEasyMove takes an immediate win, else blocks an immediate loss,
// else plays a random valid column.
func chooseEasyMove(board *domain.Board, botPlayer domain.Owner, rng *rand.Rand) int {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return NoMove
	}

	opponent := botPlayer.Opponent()

	for _, col := range validColumns {
		testBoard := board.Snapshot()
		testBoard.Place(col, botPlayer)
		if testBoard.IsWinner(botPlayer) {
			return col
		}
	}

	for _, col := range validColumns {
		testBoard := board.Snapshot()
		testBoard.Place(col, opponent)
		if testBoard.IsWinner(opponent) {
			return col
		}
	}

	return validColumns[rng.Intn(len(validColumns))]
}
