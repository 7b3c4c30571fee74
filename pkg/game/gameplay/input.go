package gameplay

import (
	"errors"
	"log"

	"putmop/pkg/engine/input"
	"putmop/pkg/game/bot"
	"putmop/pkg/game/player"
	"putmop/pkg/game/renderer"
	"putmop/pkg/game/state"
)

// ProcessKey plays one turn for key: the player's command (with any
// prompts it needs), one step of every bot, the observed-value sync and
// the restart check. Out-of-bounds accesses come back wrapped in ErrFault.
func ProcessKey(s *state.Session, key player.Key, in player.Prompter) error {
	res, err := player.Interpret(s.World, key, in)
	if err != nil {
		return fault(err)
	}
	if err := bot.StepAll(s.World); err != nil {
		return fault(err)
	}
	if err := s.Sync(); err != nil {
		return fault(err)
	}
	s.Turn++
	log.Printf("turn %d: %v", s.Turn, res.Command)

	restart, err := s.RestartRequested()
	if err != nil {
		return fault(err)
	}
	if restart {
		return fault(RestartWorld(s))
	}
	return nil
}

// Run draws the world and plays turns until the win flag reads zero or the
// renderer reports quit. Quitting is not an error.
func Run(s *state.Session, r renderer.Renderer) error {
	if err := s.Sync(); err != nil {
		return fault(err)
	}
	if err := render(s, r); err != nil {
		return err
	}

	for {
		running, err := s.Running()
		if err != nil {
			return fault(err)
		}
		if !running {
			logMessage(s, "GAME_WON")
			log.Printf("win flag cleared after %d turns", s.Turn)
			return render(s, r)
		}

		key, err := r.ReadKey()
		if errors.Is(err, input.ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		err = ProcessKey(s, key, r)
		if errors.Is(err, input.ErrQuit) {
			return nil
		}
		if err != nil {
			if errors.Is(err, ErrFault) {
				logMessage(s, "MEMORY_FAULT", err.Error())
				if rerr := render(s, r); rerr != nil {
					log.Printf("drawing fault frame: %v", rerr)
					err = errors.Join(err, rerr)
				}
			}
			return err
		}

		if err := render(s, r); err != nil {
			return err
		}
	}
}

func render(s *state.Session, r renderer.Renderer) error {
	f, err := renderer.BuildFrame(s.World, s.Turn, s.LastMessage())
	if err != nil {
		return fault(err)
	}
	if err := r.RenderFrame(f); err != nil {
		if errors.Is(err, input.ErrQuit) {
			return nil
		}
		return err
	}
	return nil
}
