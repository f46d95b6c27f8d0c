// Package bcmath implements arbitrary precision arithmetic on decimal numerals.
//
// Every function accepts plain numeric strings (see [Canonical]) and a scale,
// which is the number of digits after the decimal point in the result.
// Results are rounded exactly once, at the requested scale, using
// "half away from zero" rounding, and are returned as strings with exactly
// scale fractional digits.
//
// Addition, subtraction, multiplication and remainder are computed exactly
// before rounding.
// Division, power and square root are computed with guard digits that make
// the final rounding correct.
package bcmath

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Errors returned by the arithmetic functions.
var (
	ErrNotNumeric       = errors.New("not a numeric string")           // operand is not a plain numeral
	ErrScaleRange       = errors.New("scale out of range")             // scale is negative
	ErrDivisionByZero   = errors.New("division by zero")               // divisor is zero
	ErrNegativeRadicand = errors.New("square root of negative number") // radicand is negative
	ErrInvalidOperation = errors.New("invalid operation")              // result is undefined or out of range
)

// guardDigits is the number of extra significant digits carried by inexact
// operations before the final rounding.
const guardDigits = 3

// Add returns x + y rounded to scale digits after the decimal point.
func Add(x, y string, scale int) (string, error) {
	return binary("Add", x, y, scale, func(z, a, b *apd.Decimal) error {
		c := newContext(max(adjusted(a), adjusted(b))+2-min(exponent(a), exponent(b)), apd.RoundHalfUp)
		_, err := c.Add(z, a, b)
		return err
	})
}

// Sub returns x - y rounded to scale digits after the decimal point.
func Sub(x, y string, scale int) (string, error) {
	return binary("Sub", x, y, scale, func(z, a, b *apd.Decimal) error {
		c := newContext(max(adjusted(a), adjusted(b))+2-min(exponent(a), exponent(b)), apd.RoundHalfUp)
		_, err := c.Sub(z, a, b)
		return err
	})
}

// Mul returns x * y rounded to scale digits after the decimal point.
func Mul(x, y string, scale int) (string, error) {
	return binary("Mul", x, y, scale, func(z, a, b *apd.Decimal) error {
		c := newContext(a.NumDigits()+b.NumDigits(), apd.RoundHalfUp)
		_, err := c.Mul(z, a, b)
		return err
	})
}

// Div returns x / y rounded to scale digits after the decimal point.
//
// Div returns [ErrDivisionByZero] if y is 0.
func Div(x, y string, scale int) (string, error) {
	return binary("Div", x, y, scale, func(z, a, b *apd.Decimal) error {
		if b.IsZero() {
			return ErrDivisionByZero
		}
		if a.IsZero() {
			z.SetInt64(0)
			return nil
		}
		// Truncation followed by a single half-away rounding is exact as long
		// as at least one digit beyond the scale is kept.
		c := newContext(adjusted(a)-adjusted(b)+int64(scale)+guardDigits, apd.RoundDown)
		_, err := c.Quo(z, a, b)
		return err
	})
}

// Mod returns the remainder of x / y rounded to scale digits after
// the decimal point.
// The quotient is truncated towards zero, so the remainder has the sign of x.
//
// Mod returns [ErrDivisionByZero] if y is 0.
func Mod(x, y string, scale int) (string, error) {
	return binary("Mod", x, y, scale, func(z, a, b *apd.Decimal) error {
		if b.IsZero() {
			return ErrDivisionByZero
		}
		p := a.NumDigits() + b.NumDigits() + absInt64(exponent(a)-exponent(b)) + 1
		c := newContext(p, apd.RoundHalfUp)
		_, err := c.Rem(z, a, b)
		return err
	})
}

// Pow returns x raised to the power y rounded to scale digits after
// the decimal point.
// The exponent y may have a fractional part.
//
// Pow returns:
//   - [ErrDivisionByZero] if x is 0 and y is negative;
//   - [ErrInvalidOperation] if x is negative and y is not an integer,
//     or if |x^y| is too large to be represented.
func Pow(x, y string, scale int) (string, error) {
	return binary("Pow", x, y, scale, func(z, a, b *apd.Decimal) error {
		integ, frac := new(apd.Decimal), new(apd.Decimal)
		b.Modf(integ, frac)
		if _, err := integ.Int64(); err != nil {
			return fmt.Errorf("exponent %v: %w", b, err)
		}

		// Special cases
		switch {
		case b.IsZero():
			z.SetInt64(1)
			return nil
		case a.IsZero() && b.Sign() < 0:
			return ErrDivisionByZero
		case a.IsZero():
			z.SetInt64(0)
			return nil
		case a.Sign() < 0 && !frac.IsZero():
			return fmt.Errorf("negative base with fractional exponent: %w", ErrInvalidOperation)
		}

		// Estimate log10|x^y| to size the context and to catch results
		// that round to zero or cannot be represented.
		yf, err := b.Float64()
		if err != nil {
			return fmt.Errorf("exponent %v: %w", b, err)
		}
		e := log10(a) * yf
		margin := 1 + math.Abs(e)*1e-9 + math.Abs(yf)*1e-14
		switch {
		case e+margin < -float64(scale)-1:
			z.SetInt64(0)
			return nil
		case e+margin > apd.MaxExponent:
			return fmt.Errorf("result exceeds 10^%v: %w", apd.MaxExponent, ErrInvalidOperation)
		}

		// Repeated squaring multiplies the relative error by up to |y|.
		p := int64(math.Ceil(max(e, 0)+margin+math.Log10(math.Abs(yf)+1))) + 1 + int64(scale) + guardDigits
		c := newContext(p, apd.RoundDown)
		_, err = c.Pow(z, a, b)
		return err
	})
}

// Sqrt returns the square root of x rounded to scale digits after
// the decimal point.
//
// Sqrt returns [ErrNegativeRadicand] if x is negative.
func Sqrt(x string, scale int) (string, error) {
	return unary("Sqrt", x, scale, func(z, a *apd.Decimal) error {
		if a.Sign() < 0 {
			return ErrNegativeRadicand
		}
		if a.IsZero() {
			z.SetInt64(0)
			return nil
		}
		c := newContext(adjusted(a)/2+int64(scale)+guardDigits, apd.RoundDown)
		_, err := c.Sqrt(z, a)
		return err
	})
}

// Round returns x rounded to scale digits after the decimal point.
// If x has fewer digits after the decimal point, the result is zero-padded.
func Round(x string, scale int) (string, error) {
	return unary("Round", x, scale, func(z, a *apd.Decimal) error {
		z.Set(a)
		return nil
	})
}

// Comp compares x and y, both truncated to scale digits after the decimal
// point, and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
func Comp(x, y string, scale int) (int, error) {
	if scale < 0 {
		return 0, fmt.Errorf("Comp(%q, %q, %v) failed: %w", x, y, scale, ErrScaleRange)
	}
	a, err := parse(x)
	if err != nil {
		return 0, fmt.Errorf("Comp(%q, %q, %v) failed: %w", x, y, scale, err)
	}
	b, err := parse(y)
	if err != nil {
		return 0, fmt.Errorf("Comp(%q, %q, %v) failed: %w", x, y, scale, err)
	}
	a, err = truncate(a, scale)
	if err != nil {
		return 0, fmt.Errorf("Comp(%q, %q, %v) failed: %w", x, y, scale, err)
	}
	b, err = truncate(b, scale)
	if err != nil {
		return 0, fmt.Errorf("Comp(%q, %q, %v) failed: %w", x, y, scale, err)
	}
	return a.Cmp(b), nil
}

func unary(op, x string, scale int, f func(z, a *apd.Decimal) error) (string, error) {
	if scale < 0 {
		return "", fmt.Errorf("%v(%q, %v) failed: %w", op, x, scale, ErrScaleRange)
	}
	a, err := parse(x)
	if err != nil {
		return "", fmt.Errorf("%v(%q, %v) failed: %w", op, x, scale, err)
	}
	z := new(apd.Decimal)
	if err = f(z, a); err != nil {
		return "", fmt.Errorf("%v(%q, %v) failed: %w", op, x, scale, err)
	}
	z, err = quantize(z, scale)
	if err != nil {
		return "", fmt.Errorf("%v(%q, %v) failed: %w", op, x, scale, err)
	}
	return z.Text('f'), nil
}

func binary(op, x, y string, scale int, f func(z, a, b *apd.Decimal) error) (string, error) {
	if scale < 0 {
		return "", fmt.Errorf("%v(%q, %q, %v) failed: %w", op, x, y, scale, ErrScaleRange)
	}
	a, err := parse(x)
	if err != nil {
		return "", fmt.Errorf("%v(%q, %q, %v) failed: %w", op, x, y, scale, err)
	}
	b, err := parse(y)
	if err != nil {
		return "", fmt.Errorf("%v(%q, %q, %v) failed: %w", op, x, y, scale, err)
	}
	z := new(apd.Decimal)
	if err = f(z, a, b); err != nil {
		return "", fmt.Errorf("%v(%q, %q, %v) failed: %w", op, x, y, scale, err)
	}
	z, err = quantize(z, scale)
	if err != nil {
		return "", fmt.Errorf("%v(%q, %q, %v) failed: %w", op, x, y, scale, err)
	}
	return z.Text('f'), nil
}

// parse converts a plain numeral to *apd.Decimal.
// Exponents, NaN and infinities are rejected before apd sees the string.
func parse(num string) (*apd.Decimal, error) {
	s, err := Canonical(num)
	if err != nil {
		return nil, err
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrNotNumeric)
	}
	return d, nil
}

// quantize rounds d half away from zero to scale digits after the decimal point.
func quantize(d *apd.Decimal, scale int) (*apd.Decimal, error) {
	return rescale(d, scale, apd.RoundHalfUp)
}

// truncate drops the digits of d beyond scale digits after the decimal point.
func truncate(d *apd.Decimal, scale int) (*apd.Decimal, error) {
	return rescale(d, scale, apd.RoundDown)
}

func rescale(d *apd.Decimal, scale int, r apd.Rounder) (*apd.Decimal, error) {
	p := adjusted(d) + 1
	if p < 0 {
		p = 0
	}
	c := newContext(p+int64(scale)+1, r)
	z := new(apd.Decimal)
	if _, err := c.Quantize(z, d, -int32(scale)); err != nil {
		return nil, err
	}
	if z.IsZero() {
		z.Negative = false
	}
	return z, nil
}

// newContext returns a context with the given number of significant digits.
func newContext(prec int64, r apd.Rounder) *apd.Context {
	if prec < 1 {
		prec = 1
	}
	if prec > math.MaxUint32 {
		prec = math.MaxUint32
	}
	c := apd.BaseContext.WithPrecision(uint32(prec))
	c.Rounding = r
	return c
}

// adjusted returns the exponent of the most significant digit of d.
func adjusted(d *apd.Decimal) int64 {
	if d.IsZero() {
		return 0
	}
	return d.NumDigits() + int64(d.Exponent) - 1
}

// log10 returns an approximation of log10|d| for a non-zero d.
func log10(d *apd.Decimal) float64 {
	s := d.Coeff.String()
	if len(s) > 17 {
		s = s[:17]
	}
	m, _ := strconv.ParseFloat(s[:1]+"."+s[1:], 64)
	return float64(adjusted(d)) + math.Log10(m)
}

func exponent(d *apd.Decimal) int64 {
	return int64(d.Exponent)
}

func absInt64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}
