package domain

// Heuristic weights. Bot is the maximizing side.
const (
	ScoreBotTwo     = 2
	ScoreBotThree   = 10
	ScoreHumanTwo   = -2
	ScoreHumanThree = -100
)

// columnWeights rewards bot pieces by distance from the center column.
var columnWeights = [Columns]int{0, 1, 2, 5, 2, 1, 0}

// Score is a static positional heuristic, not a win/loss value: a column
// preference term for bot pieces plus a term for every window.
func (b *Board) Score() int {
	score := b.scoreColumns()
	for _, w := range windows {
		score += b.scoreWindow(w.Cells)
	}
	return score
}

func (b *Board) scoreColumns() int {
	total := 0
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			if b.cells[col][row] == Bot {
				total += columnWeights[col]
			}
		}
	}
	return total
}

func (b *Board) scoreWindow(cells []Position) int {
	bot := b.OwnerCount(cells, Bot)
	human := b.OwnerCount(cells, Human)
	empty := b.OwnerCount(cells, Empty)

	switch {
	case bot == 2 && empty == 2:
		return ScoreBotTwo
	case bot == 3 && empty == 1:
		return ScoreBotThree
	case human == 2 && empty == 2:
		return ScoreHumanTwo
	case human == 3 && empty == 1:
		return ScoreHumanThree
	default:
		return 0
	}
}
