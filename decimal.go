package bcnum

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/govalues/bcnum/internal/bcmath"
)

// Decimal type is a representation of an exact decimal number of arbitrary
// length.
// The zero value is the numeric value of 0 with precision 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A decimal type is a struct with two parameters:
//
//   - Numeral: a canonical decimal string holding the exact value of the decimal.
//   - Precision: a non-negative integer indicating how many digits after
//     the decimal point are used when the decimal is formatted.
//
// Unless specified explicitly, the precision is inferred from the value itself:
// it is equal to the number of digits after the decimal point, not counting
// trailing zeros.
// For example, the precision of 1.2300 is 2, and the precision of 10 is 0.
type Decimal struct {
	num  string // canonical numeral, empty for 0
	prec int    // number of digits after the decimal point used by String
}

// Precisions used by arithmetic, comparison, and rounding.
const (
	WorkingPrecision      = 20 // digits after the decimal point kept by arithmetic operations
	ComparisonPrecision   = 20 // digits after the decimal point compared by [Decimal.Equal]
	DefaultRoundPrecision = 2  // customary precision for [Decimal.Round], [Decimal.Floor], and [Decimal.Ceil]
)

// Errors returned by constructors and operations.
// They are wrapped, so they should be checked with [errors.Is].
var (
	ErrInvalidValue     = errors.New("invalid value")          // operand is not numeric
	ErrPrecisionRange   = errors.New("precision out of range") // precision is negative
	ErrDivisionByZero   = bcmath.ErrDivisionByZero             // division or remainder by zero, or zero to a negative power
	ErrNegativeRadicand = bcmath.ErrNegativeRadicand           // square root of a negative number
	ErrInvalidOperation = bcmath.ErrInvalidOperation           // result is undefined or cannot be represented
)

// newDecimal expects num to be canonical.
func newDecimal(num string, prec int) Decimal {
	if num == "0" {
		num = ""
	}
	return Decimal{num: num, prec: prec}
}

// New returns a decimal equal to v.
// The following types of v are supported:
//
//   - Decimal and *Decimal: the result is a copy of v.
//   - string and []byte: see [Parse] for the supported format.
//   - int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64.
//   - float32 and float64: see [NewFromFloat64].
//
// New returns an error wrapping [ErrInvalidValue] if v is not numeric.
func New(v any) (Decimal, error) {
	if d, ok := v.(Decimal); ok {
		return d, nil
	}
	if d, ok := v.(*Decimal); ok && d != nil {
		return *d, nil
	}
	num, err := convert(v)
	if err != nil {
		return Decimal{}, fmt.Errorf("New(%v) failed: %w", v, err)
	}
	return newDecimal(num, bcmath.Scale(num)), nil
}

// NewWithPrecision is similar to [New], but it allows you to specify
// how many digits after the decimal point are used when formatting the result.
//
// NewWithPrecision returns an error if:
//   - v is not numeric;
//   - precision is negative.
func NewWithPrecision(v any, prec int) (Decimal, error) {
	if prec < 0 {
		return Decimal{}, fmt.Errorf("NewWithPrecision(%v, %v) failed: %w", v, prec, ErrPrecisionRange)
	}
	num, err := convert(v)
	if err != nil {
		return Decimal{}, fmt.Errorf("NewWithPrecision(%v, %v) failed: %w", v, prec, err)
	}
	return newDecimal(num, prec), nil
}

// MustNew is like [New] but panics if v is not numeric.
// It simplifies safe initialization of global variables holding decimals.
func MustNew(v any) Decimal {
	d, err := New(v)
	if err != nil {
		panic(fmt.Sprintf("MustNew(%v) failed: %v", v, err))
	}
	return d
}

// NewFromInt64 converts an integer to a decimal with precision 0.
func NewFromInt64(i int64) Decimal {
	return newDecimal(strconv.FormatInt(i, 10), 0)
}

// NewFromFloat64 converts a float to a decimal.
// The float is first converted to the shortest decimal text that reads back
// as the same float, so 0.1 becomes exactly 0.1.
// The binary value itself is never used in arithmetic.
//
// NewFromFloat64 returns an error wrapping [ErrInvalidValue] if f is
// NaN or an infinity.
func NewFromFloat64(f float64) (Decimal, error) {
	num, err := convertFloat(f, 64)
	if err != nil {
		return Decimal{}, fmt.Errorf("NewFromFloat64(%v) failed: %w", f, err)
	}
	return newDecimal(num, bcmath.Scale(num)), nil
}

// Parse converts a string to a decimal.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	.5
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	numeric-string ::= [sign] significand
//
// Scientific notation, NaN and infinities are not supported.
// Parse returns an error wrapping [ErrInvalidValue] if the string
// does not represent a valid decimal number.
func Parse(num string) (Decimal, error) {
	c, err := canonical(num)
	if err != nil {
		return Decimal{}, fmt.Errorf("Parse(%q) failed: %w", num, err)
	}
	return newDecimal(c, bcmath.Scale(c)), nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding decimals.
func MustParse(num string) Decimal {
	d, err := Parse(num)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", num, err))
	}
	return d
}

// parseExact is like [Parse], but the precision is equal to the number
// of digits after the decimal point as written, trailing zeros included.
func parseExact(num string) (Decimal, error) {
	c, err := canonical(num)
	if err != nil {
		return Decimal{}, err
	}
	return newDecimal(c, bcmath.Scale(num)), nil
}

// convert returns the canonical numeral of a numeric value.
func convert(v any) (string, error) {
	switch v := v.(type) {
	case Decimal:
		return v.value(), nil
	case *Decimal:
		if v == nil {
			return "", fmt.Errorf("invalid type %T for number conversion: %w", v, ErrInvalidValue)
		}
		return v.value(), nil
	case string:
		return canonical(v)
	case []byte:
		return canonical(string(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	case float64:
		return convertFloat(v, 64)
	case float32:
		return convertFloat(float64(v), 32)
	default:
		return "", fmt.Errorf("invalid type %T for number conversion: %w", v, ErrInvalidValue)
	}
}

func convertFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("special value %v: %w", f, ErrInvalidValue)
	}
	return canonical(strconv.FormatFloat(f, 'f', -1, bits))
}

func canonical(num string) (string, error) {
	c, err := bcmath.Canonical(num)
	if err != nil {
		return "", fmt.Errorf("invalid numeric string %q: %w", num, ErrInvalidValue)
	}
	return c, nil
}

// value returns the canonical numeral of d.
func (d Decimal) value() string {
	if d.num == "" {
		return "0"
	}
	return d.num
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of a decimal value with exactly [Decimal.Precision]
// digits after the decimal point.
// If the value has more digits after the decimal point, it is rounded
// half away from zero; if fewer, it is zero-padded.
//
// The returned string does not use scientific or engineering notation and is
// formatted according to the following formal EBNF grammar:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | digits
//	numeric-string ::= [sign] significand
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Decimal) String() string {
	num := d.value()
	scale := bcmath.Scale(num)

	switch {
	case d.prec == scale:
		return num
	case d.prec > scale:
		var b strings.Builder
		b.Grow(len(num) + d.prec - scale + 1)
		b.WriteString(num)
		if scale == 0 {
			b.WriteByte('.')
		}
		for i := scale; i < d.prec; i++ {
			b.WriteByte('0')
		}
		return b.String()
	default:
		s, err := bcmath.Round(num, d.prec)
		if err != nil {
			panic(fmt.Sprintf("%q.String() failed: %v", num, err)) // unexpected by design
		}
		return s
	}
}

// Precision returns number of digits after the decimal point used by
// [Decimal.String].
func (d Decimal) Precision() int {
	return d.prec
}

// Scale returns number of significant digits after the decimal point,
// regardless of the precision.
func (d Decimal) Scale() int {
	return bcmath.Scale(d.num)
}

// WithPrecision returns a copy of d that is formatted with prec digits after
// the decimal point.
// The value of the decimal is not changed.
//
// WithPrecision panics if prec is negative.
func (d Decimal) WithPrecision(prec int) Decimal {
	if prec < 0 {
		panic(fmt.Sprintf("%q.WithPrecision(%v) failed: %v", d, prec, ErrPrecisionRange))
	}
	return Decimal{num: d.num, prec: prec}
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Unlike [Parse], the precision is equal to the number of digits after
// the decimal point in the text, so that text produced by
// [Decimal.MarshalText] reads back with the same precision.
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Decimal) UnmarshalText(text []byte) error {
	var err error
	*d, err = parseExact(string(text))
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// The text is the same as [Decimal.String], unless the precision is lower
// than the scale: then all significant digits are written, so the value
// is never rounded away.
// Such text reads back with the precision equal to the scale.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.text()), nil
}

// text returns d with at least all of its significant digits.
func (d Decimal) text() string {
	if d.prec < d.Scale() {
		return d.value()
	}
	return d.String()
}

// Scan implements the [sql.Scanner] interface.
// Strings and byte slices keep the number of digits after the decimal point
// as the precision, see [Decimal.UnmarshalText].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Decimal) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = parseExact(value)
	case []byte:
		*d, err = parseExact(string(value))
	case int64:
		*d = NewFromInt64(value)
	case float64:
		*d, err = NewFromFloat64(value)
	default:
		err = fmt.Errorf("failed to convert from %T to %T: %w", value, Decimal{}, ErrInvalidValue)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The value is the same string as produced by [Decimal.MarshalText].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Decimal) Value() (driver.Value, error) {
	return d.text(), nil
}

// NullDecimal represents a decimal that can be null.
// Its zero value is null.
// NullDecimal is not thread-safe.
type NullDecimal struct {
	Decimal Decimal
	Valid   bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Decimal.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullDecimal) Scan(value any) error {
	if value == nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return nil
	}
	err := n.Decimal.Scan(value)
	if err != nil {
		n.Decimal = Decimal{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the [driver.Valuer] interface.
// See also method [Decimal.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullDecimal) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Decimal.Value()
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Decimal) Sign() int {
	switch {
	case d.num == "":
		return 0
	case d.num[0] == '-':
		return -1
	}
	return 1
}

// IsNeg returns true if d < 0.
func (d Decimal) IsNeg() bool {
	return d.Sign() < 0
}

// IsPos returns true if d > 0.
func (d Decimal) IsPos() bool {
	return d.Sign() > 0
}

// IsZero returns true if d == 0.
func (d Decimal) IsZero() bool {
	return d.num == ""
}

// Neg returns d with opposite sign.
func (d Decimal) Neg() Decimal {
	switch d.Sign() {
	case -1:
		return Decimal{num: d.num[1:], prec: d.prec}
	case 1:
		return Decimal{num: "-" + d.num, prec: d.prec}
	}
	return d
}

// Abs returns absolute value of d.
func (d Decimal) Abs() Decimal {
	if d.IsNeg() {
		return d.Neg()
	}
	return d
}

// Add returns the sum of d and v rounded to [WorkingPrecision] digits
// after the decimal point.
// The operand v is converted the same way as in [New].
//
// Add returns an error wrapping [ErrInvalidValue] if v is not numeric.
func (d Decimal) Add(v any) (Decimal, error) {
	return d.apply("Add", bcmath.Add, v)
}

// Sub returns the difference of d and v rounded to [WorkingPrecision] digits
// after the decimal point.
// The operand v is converted the same way as in [New].
//
// Sub returns an error wrapping [ErrInvalidValue] if v is not numeric.
func (d Decimal) Sub(v any) (Decimal, error) {
	return d.apply("Sub", bcmath.Sub, v)
}

// Mul returns the product of d and v rounded to [WorkingPrecision] digits
// after the decimal point.
// The operand v is converted the same way as in [New].
//
// Mul returns an error wrapping [ErrInvalidValue] if v is not numeric.
func (d Decimal) Mul(v any) (Decimal, error) {
	return d.apply("Mul", bcmath.Mul, v)
}

// Times is an alias for [Decimal.Mul].
func (d Decimal) Times(v any) (Decimal, error) {
	return d.Mul(v)
}

// Div returns the quotient of d and v rounded to [WorkingPrecision] digits
// after the decimal point.
// The operand v is converted the same way as in [New].
//
// Div returns an error if:
//   - v is not numeric;
//   - v is 0, the error wraps [ErrDivisionByZero].
func (d Decimal) Div(v any) (Decimal, error) {
	return d.apply("Div", bcmath.Div, v)
}

// Mod returns the remainder of d divided by v rounded to [WorkingPrecision]
// digits after the decimal point.
// The quotient is truncated towards zero, so the remainder has the same sign as d.
// The operand v is converted the same way as in [New].
//
// Mod returns an error if:
//   - v is not numeric;
//   - v is 0, the error wraps [ErrDivisionByZero].
func (d Decimal) Mod(v any) (Decimal, error) {
	return d.apply("Mod", bcmath.Mod, v)
}

// Pow returns d raised to the power v rounded to [WorkingPrecision] digits
// after the decimal point.
// The exponent may be negative or have a fractional part.
// The operand v is converted the same way as in [New].
//
// Pow returns an error if:
//   - v is not numeric;
//   - d is 0 and v is negative, the error wraps [ErrDivisionByZero];
//   - d is negative and v is not an integer, the error wraps [ErrInvalidOperation];
//   - the absolute value of the result is 10^100000 or more, the error wraps [ErrInvalidOperation].
func (d Decimal) Pow(v any) (Decimal, error) {
	return d.apply("Pow", bcmath.Pow, v)
}

// Sqrt returns the square root of d rounded to [WorkingPrecision] digits
// after the decimal point.
//
// Sqrt returns an error wrapping [ErrNegativeRadicand] if d is negative.
func (d Decimal) Sqrt() (Decimal, error) {
	res, err := bcmath.Sqrt(d.value(), WorkingPrecision)
	if err != nil {
		return Decimal{}, fmt.Errorf("%q.Sqrt() failed: %w", d, cause(err))
	}
	return result(res), nil
}

func (d Decimal) apply(op string, f func(x, y string, scale int) (string, error), v any) (Decimal, error) {
	num, err := convert(v)
	if err != nil {
		return Decimal{}, fmt.Errorf("%q.%v(%v) failed: %w", d, op, v, err)
	}
	res, err := f(d.value(), num, WorkingPrecision)
	if err != nil {
		return Decimal{}, fmt.Errorf("%q.%v(%v) failed: %w", d, op, v, cause(err))
	}
	return result(res), nil
}

// result converts a numeral computed by bcmath to a decimal whose precision
// is the number of significant digits after the decimal point.
func result(res string) Decimal {
	num, err := bcmath.Canonical(res)
	if err != nil {
		panic(fmt.Sprintf("result(%q) failed: %v", res, err)) // unexpected by design
	}
	return newDecimal(num, bcmath.Scale(num))
}

// cause strips the bcmath call details from well-known errors.
func cause(err error) error {
	for _, target := range [...]error{ErrDivisionByZero, ErrNegativeRadicand, ErrInvalidOperation} {
		if errors.Is(err, target) {
			return target
		}
	}
	return err
}

// Equal reports whether d and v are equal when both are truncated to
// [ComparisonPrecision] digits after the decimal point.
// The operand v is converted the same way as in [New].
// The precisions of the operands are ignored.
//
// Equal returns an error wrapping [ErrInvalidValue] if v is not numeric.
func (d Decimal) Equal(v any) (bool, error) {
	num, err := convert(v)
	if err != nil {
		return false, fmt.Errorf("%q.Equal(%v) failed: %w", d, v, err)
	}
	c, err := bcmath.Comp(d.value(), num, ComparisonPrecision)
	if err != nil {
		return false, fmt.Errorf("%q.Equal(%v) failed: %w", d, v, err)
	}
	return c == 0, nil
}

// Cmp compares d and e numerically, using all of their digits, and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
//
// The precisions of the operands are ignored.
func (d Decimal) Cmp(e Decimal) int {
	scale := max(bcmath.Scale(d.num), bcmath.Scale(e.num))
	c, err := bcmath.Comp(d.value(), e.value(), scale)
	if err != nil {
		panic(fmt.Sprintf("%q.Cmp(%q) failed: %v", d, e, err)) // unexpected by design
	}
	return c
}

// Round returns d rounded half away from zero to prec digits after
// the decimal point.
// If d has fewer digits after the decimal point, the result is zero-padded.
// The precision of d is ignored and d itself is not changed.
//
// Round panics if prec is negative.
func (d Decimal) Round(prec int) string {
	if prec < 0 {
		panic(fmt.Sprintf("%q.Round(%v) failed: %v", d, prec, ErrPrecisionRange))
	}
	s, err := bcmath.Round(d.value(), prec)
	if err != nil {
		panic(fmt.Sprintf("%q.Round(%v) failed: %v", d, prec, err)) // unexpected by design
	}
	return s
}

// Floor returns d rounded towards negative infinity to prec digits after
// the decimal point.
// If d has fewer digits after the decimal point, the result is zero-padded.
// The precision of d is ignored and d itself is not changed.
// Also see method [Decimal.Ceil].
//
// Floor panics if prec is negative.
func (d Decimal) Floor(prec int) string {
	if prec < 0 {
		panic(fmt.Sprintf("%q.Floor(%v) failed: %v", d, prec, ErrPrecisionRange))
	}

	var (
		num   string
		scale int
		s     string
		err   error
	)

	num = d.value()
	scale = max(bcmath.Scale(num), prec+1)

	// Rounding half away from zero after the bias is rounding down
	switch {
	case d.IsZero():
		s = num
	case d.IsNeg():
		s, err = bcmath.Sub(num, nearHalfULP(prec, scale), scale)
	default:
		s, err = bcmath.Sub(num, halfULP(prec), scale)
	}
	if err == nil {
		s, err = bcmath.Round(s, prec)
	}
	if err != nil {
		panic(fmt.Sprintf("%q.Floor(%v) failed: %v", d, prec, err)) // unexpected by design
	}
	return s
}

// Ceil returns d rounded towards positive infinity to prec digits after
// the decimal point.
// If d has fewer digits after the decimal point, the result is zero-padded.
// The precision of d is ignored and d itself is not changed.
// Also see method [Decimal.Floor].
//
// Ceil panics if prec is negative.
func (d Decimal) Ceil(prec int) string {
	if prec < 0 {
		panic(fmt.Sprintf("%q.Ceil(%v) failed: %v", d, prec, ErrPrecisionRange))
	}

	var (
		num   string
		scale int
		s     string
		err   error
	)

	num = d.value()
	scale = max(bcmath.Scale(num), prec+1)

	// Rounding half away from zero after the bias is rounding up
	switch {
	case d.IsNeg():
		s, err = bcmath.Add(num, halfULP(prec), scale)
	default:
		s, err = bcmath.Add(num, nearHalfULP(prec, scale), scale)
	}
	if err == nil {
		s, err = bcmath.Round(s, prec)
	}
	if err != nil {
		panic(fmt.Sprintf("%q.Ceil(%v) failed: %v", d, prec, err)) // unexpected by design
	}
	return s
}

// halfULP returns 0.{prec zeros}5, a half of the unit in the last place.
func halfULP(prec int) string {
	return "0." + strings.Repeat("0", prec) + "5"
}

// nearHalfULP returns 0.{prec zeros}4{nines}, the largest number with scale
// digits after the decimal point that is less than halfULP(prec).
// It requires scale > prec.
func nearHalfULP(prec, scale int) string {
	return "0." + strings.Repeat("0", prec) + "4" + strings.Repeat("9", scale-prec-1)
}
