// Package config loads game settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"putmop/pkg/game/layout"
	"putmop/pkg/game/memory"
)

// Renderer backends
const (
	RendererTUI    = "tui"
	RendererEbiten = "ebiten"
)

// Config holds every tunable of a session
type Config struct {
	// Map size in cells; zero means fit the terminal or window.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Seed for the layout; zero picks one from the clock.
	Seed int64 `yaml:"seed"`

	MemoryCells int      `yaml:"memory_cells"`
	Bots        BotsSpec `yaml:"bots"`
	Keys        KeySpec  `yaml:"keys"`

	PlayerSymbol string `yaml:"player_symbol"`
	MoveLength   int    `yaml:"move_length"`

	Renderer string `yaml:"renderer"`
	LogFile  string `yaml:"log_file,omitempty"`
}

// BotsSpec configures the bots
type BotsSpec struct {
	Count         int    `yaml:"count"`
	ProgramLength int    `yaml:"program_length"`
	Mode          string `yaml:"mode"`
}

// KeySpec holds the initial key bindings, one character each
type KeySpec struct {
	MoveLeft     string `yaml:"move_left"`
	MoveRight    string `yaml:"move_right"`
	MoveUp       string `yaml:"move_up"`
	MoveDown     string `yaml:"move_down"`
	PutValue     string `yaml:"put_value"`
	PutCellValue string `yaml:"put_cell_value"`
	PutCellPtr   string `yaml:"put_cell_pointer"`
	UpdateCell   string `yaml:"update_cell"`
	IfTest       string `yaml:"if_test"`
	ElseTest     string `yaml:"else_test"`
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults.
func Parse(b []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the settings of the original game
func Defaults() Config {
	return Config{
		MemoryCells: 10,
		Bots: BotsSpec{
			Count:         5,
			ProgramLength: 5,
			Mode:          string(layout.BotsRandom),
		},
		Keys: KeySpec{
			MoveLeft:     "h",
			MoveRight:    "l",
			MoveUp:       "k",
			MoveDown:     "j",
			PutValue:     "p",
			PutCellValue: "c",
			PutCellPtr:   "C",
			UpdateCell:   "e",
			IfTest:       "?",
			ElseTest:     ":",
		},
		PlayerSymbol: "@",
		MoveLength:   1,
		Renderer:     RendererTUI,
	}
}

// Normalize fills in blanks and canonicalises names.
func (c *Config) Normalize() {
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	if c.Renderer == "" {
		c.Renderer = RendererTUI
	}
	c.Bots.Mode = strings.ToLower(strings.TrimSpace(c.Bots.Mode))
	if c.Bots.Mode == "" {
		c.Bots.Mode = string(layout.BotsRandom)
	}
	if c.PlayerSymbol == "" {
		c.PlayerSymbol = "@"
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.New("width and height must not be negative")
	}
	if c.MemoryCells < 1 {
		return errors.New("memory_cells must be at least 1")
	}
	if c.Bots.Count < 0 {
		return errors.New("bots.count must not be negative")
	}
	if c.Bots.ProgramLength < 2 {
		return errors.New("bots.program_length must be at least 2")
	}
	switch layout.BotMode(c.Bots.Mode) {
	case layout.BotsRandom, layout.BotsScripted:
	default:
		return fmt.Errorf("bots.mode %q: want random or scripted", c.Bots.Mode)
	}
	switch c.Renderer {
	case RendererTUI, RendererEbiten:
	default:
		return fmt.Errorf("renderer %q: want tui or ebiten", c.Renderer)
	}
	if utf8.RuneCountInString(c.PlayerSymbol) != 1 {
		return fmt.Errorf("player_symbol %q: want one character", c.PlayerSymbol)
	}

	seen := make(map[rune]string)
	for name, k := range c.Keys.fields() {
		if utf8.RuneCountInString(k) != 1 {
			return fmt.Errorf("keys.%s %q: want one character", name, k)
		}
		r, _ := utf8.DecodeRuneInString(k)
		if other, dup := seen[r]; dup {
			return fmt.Errorf("keys.%s and keys.%s are both %q", other, name, k)
		}
		seen[r] = name
	}
	return nil
}

func (k KeySpec) fields() map[string]string {
	return map[string]string{
		"move_left":        k.MoveLeft,
		"move_right":       k.MoveRight,
		"move_up":          k.MoveUp,
		"move_down":        k.MoveDown,
		"put_value":        k.PutValue,
		"put_cell_value":   k.PutCellValue,
		"put_cell_pointer": k.PutCellPtr,
		"update_cell":      k.UpdateCell,
		"if_test":          k.IfTest,
		"else_test":        k.ElseTest,
	}
}

func firstRune(s string) memory.Cell {
	r, _ := utf8.DecodeRuneInString(s)
	return memory.Cell(r)
}

// LayoutOptions converts the settings into allocator options.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{
		MemoryCells:   c.MemoryCells,
		Bots:          c.Bots.Count,
		ProgramLength: c.Bots.ProgramLength,
		BotMode:       layout.BotMode(c.Bots.Mode),
		Keys: map[memory.Entity]memory.Cell{
			memory.MoveLeftKey:       firstRune(c.Keys.MoveLeft),
			memory.MoveRightKey:      firstRune(c.Keys.MoveRight),
			memory.MoveUpKey:         firstRune(c.Keys.MoveUp),
			memory.MoveDownKey:       firstRune(c.Keys.MoveDown),
			memory.PutValKey:         firstRune(c.Keys.PutValue),
			memory.PutCellValKey:     firstRune(c.Keys.PutCellValue),
			memory.PutCellPointerKey: firstRune(c.Keys.PutCellPtr),
			memory.UpdateCellKey:     firstRune(c.Keys.UpdateCell),
			memory.IfTestKey:         firstRune(c.Keys.IfTest),
			memory.ElseTestKey:       firstRune(c.Keys.ElseTest),
		},
		PlayerSymbol: firstRune(c.PlayerSymbol),
		MoveLength:   memory.Cell(c.MoveLength),
	}
}
