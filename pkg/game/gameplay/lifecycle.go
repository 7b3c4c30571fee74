// Package gameplay runs the turn loop: one keystroke, one player command,
// one instruction for every bot, then a redraw.
package gameplay

import (
	"errors"
	"fmt"
	"log"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/layout"
	"putmop/pkg/game/locale"
	"putmop/pkg/game/memory"
	"putmop/pkg/game/state"
)

// ErrFault is returned when a turn touches an address outside the world.
var ErrFault = errors.New("memory fault")

// BuildSession lays out a new world and greets the player.
func BuildSession(opts layout.Options, grid engineworld.Grid, seed int64) (*state.Session, error) {
	s, err := state.NewSession(opts, grid, seed)
	if err != nil {
		return nil, err
	}
	logMessage(s, "WELCOME")
	return s, nil
}

// RestartWorld replaces the world with one laid out from the seed cell.
func RestartWorld(s *state.Session) error {
	if err := s.Restart(); err != nil {
		return err
	}
	log.Printf("restarted with seed %d", s.Seed)
	logMessage(s, "WORLD_RESTARTED", s.Seed)
	return nil
}

// fault wraps an out-of-bounds access so callers can tell it from I/O
// errors.
func fault(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, memory.ErrOutOfBounds) {
		return fmt.Errorf("%w: %w", ErrFault, err)
	}
	return err
}

func logMessage(s *state.Session, key string, a ...any) {
	s.AddMessage(locale.Get(key, a...))
}
