package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adrg/xdg"

	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
)

var cfgFile = "connect4/config.json"

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type Colors struct {
	Board   int `json:"board"`
	Empty   int `json:"empty"`
	Human   int `json:"human"`
	Bot     int `json:"bot"`
	Cursor  int `json:"cursor"`
	WinLine int `json:"win_line"`
}

type Symbols struct {
	Human  rune `json:"human"`
	Bot    rune `json:"bot"`
	Empty  rune `json:"empty"`
	Cursor rune `json:"cursor"`
}

type Config struct {
	Colors     Colors  `json:"colors"`
	Symbols    Symbols `json:"symbols"`
	Difficulty string  `json:"difficulty"`
	Depth      int     `json:"depth"`
}

func DefaultConfig() Config {
	return Config{
		Colors: Colors{
			Board:   19,
			Empty:   236,
			Human:   220,
			Bot:     196,
			Cursor:  250,
			WinLine: 46,
		},
		Symbols: Symbols{
			Human:  '●',
			Bot:    '●',
			Empty:  '○',
			Cursor: '▼',
		},
		Difficulty: string(bot.Hard),
		Depth:      bot.DefaultDepth,
	}
}

// LoadConfig reads connect4/config.json from the XDG config dirs, falling back
// to the defaults for anything the file leaves out.
func LoadConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		cfg := DefaultConfig()
		return &cfg, nil
	}
	return loadConfigFile(absPath)
}

func loadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Symbols.Human, c.Symbols.Bot, c.Symbols.Empty, c.Symbols.Cursor} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Depth < 1 {
		return &InvalidConfig{"depth must be at least 1"}
	}
	return nil
}

// Save writes the config to the user's XDG config dir.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(absPath, data, 0664)
}
