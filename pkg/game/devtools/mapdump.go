// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"putmop/pkg/game/memory"
	"putmop/pkg/game/player"
	"putmop/pkg/game/renderer"
	"putmop/pkg/game/state"
)

// DumpWorld writes a debug dump of s: metadata, the drawn map, every
// entity's address and value, the bots' registers and the memory bank.
func DumpWorld(out io.Writer, s *state.Session) error {
	w := s.World

	// --- Metadata ---
	fmt.Fprintln(out, "=== WORLD DUMP ===")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "--- Metadata ---")
	fmt.Fprintf(out, "seed: %d\n", s.Seed)
	fmt.Fprintf(out, "turn: %d\n", s.Turn)
	fmt.Fprintf(out, "cells: %d\n", w.Len())
	for _, a := range []memory.Address{memory.PosPos, memory.MaxX, memory.MaxY} {
		v, err := w.Read(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "cell_%d: %d\n", a, v)
	}
	fmt.Fprintln(out, "")

	// --- Map ---
	fmt.Fprintln(out, "--- Map (player and bots drawn with the player symbol) ---")
	f, err := renderer.BuildFrame(w, s.Turn, "")
	if err != nil {
		fmt.Fprintf(out, "unavailable: %v\n", err)
	} else {
		for row := 0; row < f.Grid.Rows(); row++ {
			fmt.Fprintln(out, f.Row(row))
		}
	}
	fmt.Fprintln(out, "")

	// --- Entities ---
	fmt.Fprintln(out, "--- Entities (id, name, address, value) ---")
	for id := memory.Entity(0); id < memory.Entity(memory.InhabitedCount(w.Bots())); id++ {
		addr, err := w.EntityAddress(id)
		if err != nil {
			fmt.Fprintf(out, "  %2d %-16s unresolved: %v\n", id, id, err)
			continue
		}
		v, err := w.Read(addr)
		if err != nil {
			fmt.Fprintf(out, "  %2d %-16s at %d: %v\n", id, id, addr, err)
			continue
		}
		fmt.Fprintf(out, "  %2d %-16s at %5d = %d\n", id, id, addr, v)
	}
	fmt.Fprintln(out, "")

	// --- Bots ---
	fmt.Fprintln(out, "--- Bots ---")
	for i := 0; i < w.Bots(); i++ {
		base, err := w.BotBase(i)
		if err != nil {
			fmt.Fprintf(out, "  bot %d: %v\n", i, err)
			continue
		}
		regs := make([]memory.Cell, memory.BotProgram)
		for off := range regs {
			regs[off], _ = w.Read(base + memory.Address(off))
		}
		fmt.Fprintf(out, "  bot %d at %d: pos %d cell %d flag %d bool %d pc %d\n",
			i, base, regs[memory.BotPos], regs[memory.BotCellVal], regs[memory.BotFlagVal],
			regs[memory.BotBool], regs[memory.BotProgramCounter])
	}
	fmt.Fprintln(out, "")

	// --- Bank ---
	fmt.Fprintln(out, "--- Memory bank (slot: effective value) ---")
	for i := 0; i < w.BankSize(); i++ {
		v, err := player.Effective(w, i)
		if err != nil {
			fmt.Fprintf(out, "  %d: %v\n", i, err)
			continue
		}
		fmt.Fprintf(out, "  %d: %d\n", i, v)
	}
	return nil
}

// DumpWorldToFile writes DumpWorld to path and returns its absolute path.
func DumpWorldToFile(s *state.Session, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpWorld(f, s); err != nil {
		return "", err
	}
	return absPath, nil
}
