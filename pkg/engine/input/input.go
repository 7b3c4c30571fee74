// Package input reads keystrokes and typed lines from the terminal.
package input

import (
	"errors"
	"io"
	"os"

	"putmop/pkg/engine/terminal"
	"putmop/pkg/engine/world"
)

// ErrQuit is returned when the player asks to leave (Ctrl+C, Ctrl+D or end
// of input).
var ErrQuit = errors.New("quit")

// Key is one decoded keystroke.
type Key struct {
	Rune  rune
	Arrow bool
	Dir   world.Direction
}

// byteReader reads stdin one byte at a time, so nothing typed is held in
// a buffer between raw keystrokes and cooked line reads.
type byteReader struct {
	r io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	buf := make([]byte, 1)
	for {
		n, err := b.r.Read(buf)
		if n == 1 {
			return buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

var stdin io.ByteReader = byteReader{r: os.Stdin}

// ReadKey reads a single keystroke in raw mode.
func ReadKey() (Key, error) {
	restore, err := terminal.MakeRaw()
	if err != nil {
		return Key{}, err
	}
	defer restore()
	return DecodeKey(stdin)
}

// ReadLine reads one line of typed text in cooked mode, without the
// trailing newline.
func ReadLine() (string, error) {
	return DecodeLine(stdin)
}

// DecodeKey reads one keystroke from r. Arrow escape sequences (CSI and SS3)
// become arrow keys; other escape sequences are discarded.
func DecodeKey(r io.ByteReader) (Key, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return Key{}, quitOn(err)
		}

		switch b {
		case 3, 4: // Ctrl+C, Ctrl+D
			return Key{}, ErrQuit
		case 0x1b:
			k, ok, err := decodeEscape(r)
			if err != nil {
				return Key{}, err
			}
			if ok {
				return k, nil
			}
			continue
		}
		return Key{Rune: rune(b)}, nil
	}
}

func decodeEscape(r io.ByteReader) (Key, bool, error) {
	b2, err := r.ReadByte()
	if err != nil {
		return Key{}, false, quitOn(err)
	}
	if b2 != '[' && b2 != 'O' {
		return Key{}, false, nil
	}
	b3, err := r.ReadByte()
	if err != nil {
		return Key{}, false, quitOn(err)
	}

	switch b3 {
	case 'A':
		return Key{Arrow: true, Dir: world.North}, true, nil
	case 'B':
		return Key{Arrow: true, Dir: world.South}, true, nil
	case 'C':
		return Key{Arrow: true, Dir: world.East}, true, nil
	case 'D':
		return Key{Arrow: true, Dir: world.West}, true, nil
	}
	// Unknown escape sequence - discard it
	return Key{}, false, nil
}

// DecodeLine reads up to a newline from r. A final line without a newline
// is returned as-is; an empty input is ErrQuit.
func DecodeLine(r io.ByteReader) (string, error) {
	var line []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				return string(line), nil
			}
			return "", quitOn(err)
		}

		switch b {
		case '\n':
			return trimCR(line), nil
		case 127, 8: // backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
			}
			continue
		}
		line = append(line, b)
	}
}

func trimCR(line []byte) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}

func quitOn(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrQuit
	}
	return err
}
