// connect4 is a terminal application to play connect-four against the bot.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/ui"
)

var (
	flagDifficulty = flag.String("difficulty", "", "Bot difficulty (easy, medium or hard)")
	flagDepth      = flag.Int("depth", 0, "Search depth for hard difficulty")
	flagSave       = flag.Bool("save", false, "Save the effective settings to the config file")
)

func main() {
	flag.Parse()

	cfg, err := ui.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *flagDifficulty != "" {
		cfg.Difficulty = string(bot.ParseDifficulty(*flagDifficulty))
	}
	if *flagDepth > 0 {
		cfg.Depth = *flagDepth
	}
	if *flagSave {
		if err := cfg.Save(); err != nil {
			fmt.Fprintln(os.Stderr, "Could not save config:", err)
		}
	}

	// the terminal belongs to tview, so engine logging stays off
	engine := bot.NewEngine(cfg.Depth, bot.WithLogger(zerolog.Nop()))

	app := tview.NewApplication()

	hint := tview.NewTextView().SetDynamicColors(true)
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)

	board := ui.NewBoardUI(cfg, engine, hint)
	board.Box.SetBorder(true).SetTitle(" 4 in a row ")
	board.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			app.Stop()
			return nil
		}
		return board.HandleKey(event)
	})

	layout := tview.NewFlex().
		AddItem(board.Box, 27, 0, true).
		AddItem(hint, 0, 1, false)

	if err := app.SetRoot(layout, true).SetFocus(board.Box).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
