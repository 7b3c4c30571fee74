package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/layout"
	"putmop/pkg/game/state"
)

func newSession(t *testing.T) *state.Session {
	t.Helper()
	opts := layout.DefaultOptions()
	opts.BotMode = layout.BotsScripted
	s, err := state.NewSession(opts, engineworld.NewGrid(6, 40), 2)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDumpWorld_Sections(t *testing.T) {
	s := newSession(t)
	var buf bytes.Buffer
	if err := DumpWorld(&buf, s); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"seed: 2",
		"cells: 240",
		"win-flag",
		"bot-4",
		"bot 0 at",
		"pos 50",
		"--- Memory bank",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q", want)
		}
	}

	// Six map rows of forty glyphs.
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if len(line) == 40 && !strings.Contains(line, " ") {
			rows++
		}
	}
	if rows != 6 {
		t.Errorf("found %d map rows, want 6", rows)
	}
}

func TestDumpWorldToFile(t *testing.T) {
	s := newSession(t)
	path := filepath.Join(t.TempDir(), "world.txt")

	got, err := DumpWorldToFile(s, path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "=== WORLD DUMP ===") {
		t.Errorf("file starts with %q", string(b[:20]))
	}
}
