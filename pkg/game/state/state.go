package state

import (
	"fmt"
	"log"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/layout"
	"putmop/pkg/game/memory"
)

// Session is the state of one running world
type Session struct {
	World *memory.World
	Grid  engineworld.Grid

	Options layout.Options
	Seed    int64

	Messages []string

	Turn int
}

// NewSession lays out a fresh world on grid.
func NewSession(opts layout.Options, grid engineworld.Grid, seed int64) (*Session, error) {
	s := &Session{
		Grid:     grid,
		Options:  opts,
		Messages: make([]string, 0),
	}
	if err := s.build(seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) build(seed int64) error {
	res, err := layout.Generate(s.Options, s.Grid, seed)
	if err != nil {
		return err
	}
	s.World = res.World
	s.Seed = seed
	s.Turn = 0
	log.Printf("world laid out: %d cells, seed %d, position table at %d",
		s.World.Len(), seed, res.Positions[memory.Positions])
	return nil
}

// AddMessage adds a message to the session's message log
func (s *Session) AddMessage(msg string) {
	const maxMessages = 5
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (s *Session) ClearMessages() {
	s.Messages = make([]string, 0)
}

// LastMessage returns the newest message, or an empty string
func (s *Session) LastMessage() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1]
}

// Sync copies the cell under the player into the player-value cell.
func (s *Session) Sync() error {
	pos, err := s.World.ConstantAddress(memory.PlayerPos)
	if err != nil {
		return err
	}
	v, err := s.World.Read(pos)
	if err != nil {
		return fmt.Errorf("player at %d: %w", pos, err)
	}
	return s.World.SetConstant(memory.PlayerValue, v)
}

// Running reports whether the win flag still reads true.
func (s *Session) Running() (bool, error) {
	v, err := s.World.Constant(memory.WinFlag)
	return v != 0, err
}

// RestartRequested reports whether the restart cell has been set.
func (s *Session) RestartRequested() (bool, error) {
	v, err := s.World.Constant(memory.RestartGame)
	return v != 0, err
}

// Restart discards the world and lays out a new one from the seed held in
// the seed cell, so a player can pick the next world by editing it.
func (s *Session) Restart() error {
	seed, err := s.World.Constant(memory.Seed)
	if err != nil {
		return err
	}
	if err := s.build(int64(seed)); err != nil {
		return err
	}
	s.ClearMessages()
	return nil
}
