package bcmath

import (
	"fmt"
	"strings"
)

// Canonical validates a plain decimal numeral and returns its canonical form.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	.5
//	7.
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	numeric-string ::= [sign] significand
//
// The canonical form has no plus sign, no leading zeros in the integer part
// (except a single 0), no trailing zeros in the fractional part, no dangling
// decimal point, and no negative zero.
func Canonical(num string) (string, error) {
	var (
		pos     int
		width   int
		neg     bool
		intBeg  int
		intEnd  int
		fracBeg int
		fracEnd int
		hascoef bool
	)

	width = len(num)

	// Sign
	switch {
	case pos == width:
		// skip
	case num[pos] == '-':
		neg = true
		pos++
	case num[pos] == '+':
		pos++
	}

	// Integer
	intBeg = pos
	for pos < width && num[pos] >= '0' && num[pos] <= '9' {
		hascoef = true
		pos++
	}
	intEnd = pos

	// Fraction
	fracBeg, fracEnd = pos, pos
	if pos < width && num[pos] == '.' {
		pos++
		fracBeg = pos
		for pos < width && num[pos] >= '0' && num[pos] <= '9' {
			hascoef = true
			pos++
		}
		fracEnd = pos
	}

	if pos != width {
		return "", fmt.Errorf("invalid character %q: %w", num[pos], ErrNotNumeric)
	}
	if !hascoef {
		return "", fmt.Errorf("no digits: %w", ErrNotNumeric)
	}

	whole := strings.TrimLeft(num[intBeg:intEnd], "0")
	frac := strings.TrimRight(num[fracBeg:fracEnd], "0")

	if whole == "" && frac == "" {
		return "0", nil
	}
	if whole == "" {
		whole = "0"
	}

	var b strings.Builder
	b.Grow(len(whole) + len(frac) + 2)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(whole)
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String(), nil
}

// IsNumeric reports whether num is a valid plain decimal numeral.
// Also see [Canonical].
func IsNumeric(num string) bool {
	_, err := Canonical(num)
	return err == nil
}

// Scale returns the number of digits after the decimal point in num.
// For canonical numerals this is the number of significant fractional digits.
func Scale(num string) int {
	i := strings.IndexByte(num, '.')
	if i < 0 {
		return 0
	}
	return len(num) - i - 1
}
