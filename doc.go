/*
Package bcnum implements immutable decimal numbers of arbitrary length.
It is designed for calculations where binary floating-point errors are
not acceptable, such as prices and balances: 0.1 + 0.2 is exactly 0.3.

# Representation

[Decimal] is a struct with two fields:

  - Numeral: a canonical decimal string holding the exact value.
    It has no plus sign, no leading zeros in the integer part, no trailing
    zeros in the fractional part and no exponent.
    Negative zero is stored as 0.
  - Precision: a non-negative integer indicating how many digits after
    the decimal point are used by [Decimal.String].
    If the numeral has more digits after the decimal point, they are
    still kept and used in arithmetic; only the text is rounded.

Unless set explicitly with [NewWithPrecision] or [Decimal.WithPrecision],
the precision is inferred from the value: it is equal to the number of digits
after the decimal point once trailing zeros are removed.
For example:

	| Value    | Precision | String  |
	| -------- | --------- | ------- |
	| 10       | 0         | 10      |
	| 1.2300   | 2         | 1.23    |
	| 0.1+0.02 | 2         | 0.12    |
	| 3^3      | 0         | 27      |

The length of a decimal is limited only by available memory.
Special values such as [NaN], [Infinity], or [negative zeros] are not supported.

# Conversions

The package provides methods for converting decimals:

  - from/to string:
    [Parse], [Decimal.String], [Decimal.MarshalText], [Decimal.UnmarshalText].
  - from float64:
    [NewFromFloat64].
    The float is converted to the shortest text that reads back as the same
    float, so 0.1 becomes exactly 0.1.
  - from int64:
    [NewFromInt64].
  - from any of the above:
    [New], [NewWithPrecision].
  - from/to database columns:
    [Decimal.Scan], [Decimal.Value], [NullDecimal].

# Operations

Arithmetic methods accept an operand of any type supported by [New], so both
d.Add(e) and d.Add("0.1") are valid.
Every operation returns a new decimal and never modifies its receiver.

Results of [Decimal.Add], [Decimal.Sub] and [Decimal.Mul] are exact as long
as they fit into [WorkingPrecision] digits after the decimal point.
Results of [Decimal.Div], [Decimal.Mod], [Decimal.Pow] and [Decimal.Sqrt]
are rounded half away from zero to [WorkingPrecision] digits after
the decimal point.
The precision of a result is inferred from its value.

[Decimal.Equal] compares numbers truncated to [ComparisonPrecision] digits,
while [Decimal.Cmp] compares all digits.

# Rounding

The package provides three methods for explicit rounding.
Each of them returns a string with exactly the requested number of digits
after the decimal point:

  - half away from zero:
    [Decimal.Round].
  - towards positive infinity:
    [Decimal.Ceil].
  - towards negative infinity:
    [Decimal.Floor].

[DefaultRoundPrecision] is the customary precision for monetary amounts.

# Errors

Arithmetic methods return errors in the following cases:

  - Invalid Value.
    The operand cannot be converted to a decimal.
  - Division by Zero.
    [Decimal.Div] and [Decimal.Mod] do not panic when dividing by 0.
    [Decimal.Pow] returns this error if 0 is raised to a negative power.
  - Invalid Operation.
    [Decimal.Pow] returns an error if a negative number is raised to
    a fractional power.
  - Negative Radicand.
    [Decimal.Sqrt] returns an error for negative numbers.

Methods with the Must prefix panic instead of returning errors,
which makes chains like MustNew("0.1").MustAdd("0.7").MustMul(10) possible.
Rounding methods panic if the requested precision is negative.

[Infinity]: https://en.wikipedia.org/wiki/Infinity#Computing
[NaN]: https://en.wikipedia.org/wiki/NaN
[negative zeros]: https://en.wikipedia.org/wiki/Signed_zero
*/
package bcnum
