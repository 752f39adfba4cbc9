// Package ui is a terminal front-end for playing connect-four against the bot.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

// MoveChooser picks the bot's column.
type MoveChooser interface {
	ChooseMove(ctx context.Context, board *domain.Board, owner domain.Owner, difficulty bot.Difficulty) int
}

type BoardUI struct {
	Box        *tview.Box
	hint       *tview.TextView
	cfg        *Config
	engine     MoveChooser
	difficulty bot.Difficulty
	game       *domain.Game
	// cells mirrors the live board through placement notifications, indexed like Placement.Index
	cells    [domain.Rows * domain.Columns]domain.Owner
	lastMove int
	selCol   int
	message  string
}

func NewBoardUI(cfg *Config, engine MoveChooser, hint *tview.TextView) *BoardUI {
	b := &BoardUI{
		Box:        tview.NewBox(),
		hint:       hint,
		cfg:        cfg,
		engine:     engine,
		difficulty: bot.ParseDifficulty(cfg.Difficulty),
	}
	b.Box.SetDrawFunc(b.draw)
	b.NewGame()
	return b
}

// NewGame clears the grid and starts a fresh match with the human to move.
func (b *BoardUI) NewGame() {
	b.cells = [domain.Rows * domain.Columns]domain.Owner{}
	b.lastMove = -1
	b.selCol = domain.CenterColumn
	b.message = ""
	b.game = domain.NewGame(b.onPlacement)
	b.refreshHint()
}

func (b *BoardUI) onPlacement(p domain.Placement) {
	b.cells[p.Index()] = p.Owner
	b.lastMove = p.Index()
}

// Cell returns what the UI currently shows at row (0 = bottom) and column.
func (b *BoardUI) Cell(row, column int) domain.Owner {
	return b.cells[row*domain.Columns+column]
}

func (b *BoardUI) Game() *domain.Game {
	return b.game
}

func (b *BoardUI) MoveSelection(delta int) {
	col := b.selCol + delta
	if col < 0 || col >= domain.Columns {
		return
	}
	b.selCol = col
}

func (b *BoardUI) PlaySelected() {
	b.Play(b.selCol)
}

// Play drops the human piece in column and lets the bot answer.
func (b *BoardUI) Play(column int) {
	if b.game.IsFinished() {
		return
	}
	if _, err := b.game.MakeMove(domain.Human, column); err != nil {
		switch {
		case errors.Is(err, domain.ErrColumnFull):
			b.message = fmt.Sprintf("Column %d is full", column+1)
		default:
			b.message = err.Error()
		}
		b.refreshHint()
		return
	}
	b.message = ""
	b.selCol = column

	if !b.game.IsFinished() {
		snapshot := b.game.Board.Snapshot()
		col := b.engine.ChooseMove(context.Background(), &snapshot, domain.Bot, b.difficulty)
		if _, err := b.game.MakeMove(domain.Bot, col); err != nil {
			b.message = fmt.Sprintf("Bot move failed: %s", err)
		}
	}
	b.refreshHint()
}

// Banner describes the outcome, or is empty while the game is running.
func (b *BoardUI) Banner() string {
	switch b.game.Status {
	case domain.StatusWon:
		if b.game.Winner == domain.Human {
			return "You win!"
		}
		return "The bot wins."
	case domain.StatusDraw:
		return "Draw."
	}
	return ""
}

func (b *BoardUI) refreshHint() {
	if b.hint == nil {
		return
	}
	text := fmt.Sprintf("Difficulty: %s\nMoves: %d\n\n", b.difficulty, b.game.MoveCount)
	if banner := b.Banner(); banner != "" {
		text += "[::b]" + banner + "[::-]\n\nn: new game  q: quit"
	} else {
		text += "1-7 / ←→ + Enter: drop\nn: new game  q: quit"
	}
	if b.message != "" {
		text += "\n\n[red]" + b.message + "[-]"
	}
	b.hint.SetText(text)
}

func (b *BoardUI) onWinLine(row, column int) bool {
	if b.game.WinLine == nil {
		return false
	}
	for _, p := range b.game.WinLine.Cells {
		if p.Row == row && p.Column == column {
			return true
		}
	}
	return false
}

func (b *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	colors := b.cfg.Colors
	boardStyle := tcell.StyleDefault.Background(tcell.PaletteColor(colors.Board))
	left, top := x+2, y+1

	// cursor above the selected column
	if !b.game.IsFinished() {
		cursorStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(colors.Cursor))
		screen.SetContent(left+b.selCol*3+1, top, b.cfg.Symbols.Cursor, nil, cursorStyle)
	}

	for displayRow := 0; displayRow < domain.Rows; displayRow++ {
		row := domain.Rows - 1 - displayRow
		for col := 0; col < domain.Columns; col++ {
			r := b.cfg.Symbols.Empty
			fg := colors.Empty
			switch b.Cell(row, col) {
			case domain.Human:
				r, fg = b.cfg.Symbols.Human, colors.Human
			case domain.Bot:
				r, fg = b.cfg.Symbols.Bot, colors.Bot
			}
			style := boardStyle.Foreground(tcell.PaletteColor(fg))
			if b.onWinLine(row, col) {
				style = style.Background(tcell.PaletteColor(colors.WinLine))
			} else if row*domain.Columns+col == b.lastMove {
				style = style.Bold(true)
			}
			sx, sy := left+col*3, top+1+displayRow
			screen.SetContent(sx, sy, ' ', nil, boardStyle)
			screen.SetContent(sx+1, sy, r, nil, style)
			screen.SetContent(sx+2, sy, ' ', nil, boardStyle)
		}
	}

	labelStyle := tcell.StyleDefault
	for col := 0; col < domain.Columns; col++ {
		screen.SetContent(left+col*3+1, top+domain.Rows+1, rune('1'+col), nil, labelStyle)
	}

	return x, y, width, height
}

// HandleKey maps keys 1-7, arrows and Enter onto moves; other keys pass through.
func (b *BoardUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft:
		b.MoveSelection(-1)
	case tcell.KeyRight:
		b.MoveSelection(1)
	case tcell.KeyEnter:
		b.PlaySelected()
	case tcell.KeyRune:
		switch r := event.Rune(); {
		case r >= '1' && r < '1'+domain.Columns:
			b.Play(int(r - '1'))
		case r == 'h':
			b.MoveSelection(-1)
		case r == 'l':
			b.MoveSelection(1)
		case r == 'n':
			b.NewGame()
		default:
			return event
		}
	default:
		return event
	}
	return nil
}
