package player

import (
	"strconv"
	"strings"

	"putmop/pkg/game/memory"
)

// ParseInt reads a typed integer the way C's strtoll does with base 0:
// leading blanks and a sign are allowed, a 0x prefix means hex and a
// leading 0 means octal, and parsing stops at the first character that
// does not fit. Input with no digits parses as 0.
func ParseInt(s string) memory.Cell {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	switch {
	case len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && isDigit(s[2], 16):
		base = 16
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		base = 8
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0
	}

	u, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil {
		// Overflow saturates like strtoll.
		if neg {
			return memory.Cell(-1 << 63)
		}
		return memory.Cell(1<<63 - 1)
	}
	if neg {
		if u > 1<<63 {
			return memory.Cell(-1 << 63)
		}
		return memory.Cell(-int64(u))
	}
	if u > 1<<63-1 {
		return memory.Cell(1<<63 - 1)
	}
	return memory.Cell(u)
}

func isDigit(c byte, base int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'f':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < base
}
