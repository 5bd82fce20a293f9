// Package numlit parses the integer literal syntax accepted by vrisc
// assembly source: decimal with no prefix, and 0x/0o/0b prefixed
// hexadecimal/octal/binary.
package numlit

import (
	"errors"
	"strings"
)

// ErrNotANumber is returned when a token is not a syntactically valid
// integer literal in any supported base.
var ErrNotANumber = errors.New("not an integer")

// ErrOverflow is returned when a literal's digit count exceeds the
// destination width's conservative bound (see Parse).
var ErrOverflow = errors.New("integer literal overflows destination width")

// Unsigned is the set of destination widths Parse supports.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// base classifies the prefix of tok, returning the numeric base and the
// unprefixed digit string. A token with no 0x/0o/0b prefix is classified
// as decimal; base does not check the digits (see digitsValid).
func base(tok string) (int, string) {
	switch {
	case strings.HasPrefix(tok, "0x"):
		return 16, tok[2:]
	case strings.HasPrefix(tok, "0o"):
		return 8, tok[2:]
	case strings.HasPrefix(tok, "0b"):
		return 2, tok[2:]
	default:
		return 10, tok
	}
}

func digitsValid(digits string, b int) bool {
	if digits == "" {
		return false
	}
	for _, c := range digits {
		if digitValue(byte(c)) < 0 || digitValue(byte(c)) >= b {
			return false
		}
	}
	return true
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// IsNumber reports whether tok is a syntactically valid integer literal
// (any accepted base), independent of destination width.
func IsNumber(tok string) bool {
	b, digits := base(tok)
	return digitsValid(digits, b)
}

// widthBytes returns the destination width, in bytes, of N.
func widthBytes[N Unsigned]() int {
	var zero N
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	default:
		return 8
	}
}

// Parse parses tok as an unsigned integer of width N, applying the same
// conservative overflow bounds as the original assembler: hex literals may
// have at most 2*width-bytes digits, binary at most 8*width-bytes digits,
// and octal/decimal at most (8*width-bytes)/3 digits. The decimal bound is
// tighter than mathematically necessary (it reuses the octal bound) and is
// preserved deliberately — see DESIGN.md.
func Parse[N Unsigned](tok string) (N, error) {
	b, digits := base(tok)
	if !digitsValid(digits, b) {
		var zero N
		return zero, ErrNotANumber
	}

	wb := widthBytes[N]()
	var limit int
	switch b {
	case 16:
		limit = 2 * wb
	case 2:
		limit = 8 * wb
	default: // 8, 10
		limit = 8 * wb / 3
	}
	if len(digits) > limit {
		var zero N
		return zero, ErrOverflow
	}

	var num uint64
	switch b {
	case 2:
		for i := 0; i < len(digits); i++ {
			num <<= 1
			num += uint64(digitValue(digits[i]))
		}
	case 8:
		for i := 0; i < len(digits); i++ {
			num <<= 3
			num += uint64(digitValue(digits[i]))
		}
	case 16:
		for i := 0; i < len(digits); i++ {
			num <<= 4
			num += uint64(digitValue(digits[i]))
		}
	default: // 10
		for i := 0; i < len(digits); i++ {
			num *= 10
			num += uint64(digitValue(digits[i]))
		}
	}

	return N(num), nil
}
