package bcnum

import "fmt"

// MustAdd is like [Decimal.Add] but panics if computing error.
func (d Decimal) MustAdd(v any) Decimal {
	f, err := d.Add(v)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", v, err))
	}
	return f
}

// MustSub is like [Decimal.Sub] but panics if computing error.
func (d Decimal) MustSub(v any) Decimal {
	f, err := d.Sub(v)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", v, err))
	}
	return f
}

// MustMul is like [Decimal.Mul] but panics if computing error.
func (d Decimal) MustMul(v any) Decimal {
	f, err := d.Mul(v)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", v, err))
	}
	return f
}

// MustTimes is like [Decimal.Times] but panics if computing error.
func (d Decimal) MustTimes(v any) Decimal {
	return d.MustMul(v)
}

// MustDiv is like [Decimal.Div] but panics if computing error.
func (d Decimal) MustDiv(v any) Decimal {
	f, err := d.Div(v)
	if err != nil {
		panic(fmt.Sprintf("MustDiv(%v) failed: %v", v, err))
	}
	return f
}

// MustMod is like [Decimal.Mod] but panics if computing error.
func (d Decimal) MustMod(v any) Decimal {
	f, err := d.Mod(v)
	if err != nil {
		panic(fmt.Sprintf("MustMod(%v) failed: %v", v, err))
	}
	return f
}

// MustPow is like [Decimal.Pow] but panics if computing error.
func (d Decimal) MustPow(v any) Decimal {
	f, err := d.Pow(v)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v) failed: %v", v, err))
	}
	return f
}

// MustSqrt is like [Decimal.Sqrt] but panics if computing error.
func (d Decimal) MustSqrt() Decimal {
	f, err := d.Sqrt()
	if err != nil {
		panic(fmt.Sprintf("MustSqrt() failed: %v", err))
	}
	return f
}

// MustEqual is like [Decimal.Equal] but panics if v is not numeric.
func (d Decimal) MustEqual(v any) bool {
	ok, err := d.Equal(v)
	if err != nil {
		panic(fmt.Sprintf("MustEqual(%v) failed: %v", v, err))
	}
	return ok
}
