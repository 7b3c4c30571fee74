package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gookit/color"

	"putmop/pkg/engine/input"
	"putmop/pkg/engine/terminal"
	"putmop/pkg/game/locale"
	"putmop/pkg/game/memory"
	"putmop/pkg/game/player"
	"putmop/pkg/game/renderer"
)

// Lines drawn around the map: two border rows, the turn line, the message
// line and the prompt. The status bar is counted separately since it wraps.
const reservedRows = 5

// Bank size used when estimating the status bar height before a world exists.
const assumedBankSize = 10

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	styles map[renderer.TextStyle]color.Style

	out io.Writer

	// Swappable for tests.
	readKey  func() (input.Key, error)
	readLine func() (string, error)
	clear    func()
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{
		out:      os.Stdout,
		readKey:  input.ReadKey,
		readLine: input.ReadLine,
		clear:    clearScreen,
	}
}

// Init sets up the colour styles.
func (t *TUIRenderer) Init() error {
	t.styles = map[renderer.TextStyle]color.Style{
		renderer.StyleEmpty:   {color.FgGray},
		renderer.StyleCell:    {color.FgCyan},
		renderer.StylePlayer:  {color.FgGreen, color.BgBlack, color.OpBold},
		renderer.StyleBot:     {color.FgYellow, color.OpBold},
		renderer.StyleStatus:  {color.FgBlue},
		renderer.StylePrompt:  {color.FgMagenta, color.OpBold},
		renderer.StyleMessage: {color.FgGray, color.OpBold},
	}
	if !terminal.IsTerminal() {
		color.Disable()
	}
	return nil
}

// Close leaves the cursor below the last frame.
func (t *TUIRenderer) Close() error {
	_, err := fmt.Fprintln(t.out)
	return err
}

func clearScreen() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// Size returns the map area inside the border, above the HUD.
func (t *TUIRenderer) Size() (cols, rows int) {
	width, height := terminal.GetSize()
	cols = width - 2
	status := len(renderer.StatusLines(make([]memory.Cell, assumedBankSize), width))
	rows = height - reservedRows - status
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	if s, ok := t.styles[style]; ok {
		return s.Sprint(text)
	}
	return text
}

// RenderFrame clears the screen and draws f.
func (t *TUIRenderer) RenderFrame(f *renderer.Frame) error {
	t.clear()
	_, err := io.WriteString(t.out, t.frameText(f))
	return err
}

func (t *TUIRenderer) frameText(f *renderer.Frame) string {
	var sb strings.Builder
	cols := f.Grid.Cols()

	border := t.StyleText("+"+strings.Repeat("-", cols)+"+", renderer.StyleMessage)
	sb.WriteString(border + "\r\n")

	for row := 0; row < f.Grid.Rows(); row++ {
		sb.WriteString(t.StyleText("|", renderer.StyleMessage))
		for _, tile := range f.Tiles[row*cols : (row+1)*cols] {
			sb.WriteString(t.StyleText(string(tile.Glyph), tile.Style))
		}
		sb.WriteString(t.StyleText("|", renderer.StyleMessage) + "\r\n")
	}
	sb.WriteString(border + "\r\n")

	for _, line := range renderer.StatusLines(f.Status, cols+2) {
		sb.WriteString(t.StyleText(line, renderer.StyleStatus) + "\r\n")
	}

	hud := locale.Get("TURN_COUNTER", f.Turn) + "  " + locale.Get("PLAYER_VALUE", f.PlayerValue)
	sb.WriteString(t.StyleText(hud, renderer.StyleMessage) + "\r\n")

	if f.Message != "" {
		sb.WriteString(f.Message)
	}
	sb.WriteString("\r\n")
	return sb.String()
}

// ReadKey reads one raw keystroke.
func (t *TUIRenderer) ReadKey() (player.Key, error) {
	k, err := t.readKey()
	if err != nil {
		return player.Key{}, err
	}
	if k.Arrow {
		return player.ArrowKey(k.Dir), nil
	}
	return player.CodeKey(k.Rune), nil
}

// Prompt shows the command glyph and reads one cooked line.
func (t *TUIRenderer) Prompt(glyph rune) (string, error) {
	fmt.Fprint(t.out, t.StyleText(string(glyph)+"> ", renderer.StylePrompt))
	return t.readLine()
}
