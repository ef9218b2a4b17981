// Package fix64 implements a Q31.32 signed fixed-point number on an int64:
// 32 integer bits and 32 fractional bits, giving a resolution of 1/2^32.
//
// All arithmetic is integer-only, so the same inputs produce bit-identical
// results on every platform and compiler. Floating point cannot guarantee
// that because of differing FPU rounding and contraction behavior.
//
// The overflow policy is defined per operation and is never corrected by
// layers higher up:
//   - addition, subtraction and negation use the native int64 operators
//     and wrap (two's complement);
//   - Mul uses a 128-bit intermediate and truncates toward zero;
//   - Div uses a 128-bit intermediate, saturates to MinVal/MaxVal when the
//     quotient does not fit, and saturates to the MaxVal/MinVal sentinel on
//     a zero divisor;
//   - Sqrt of a nonpositive value is Zero.
package fix64

import (
	"math"
	"math/bits"
)

const (
	// Shift is the number of fractional bits.
	Shift = 32
	// Scale is the raw representation of one whole unit.
	Scale = 1 << Shift

	Zero Q = 0
	One  Q = 1 << Shift
	Half Q = 1 << (Shift - 1)
	// Epsilon is the smallest representable step, 1/2^32.
	Epsilon Q = 1
	MinVal  Q = math.MinInt64
	MaxVal  Q = math.MaxInt64
)

// Q is a Q31.32 fixed-point number.
// The native +, -, ==, < and > operators on Q are the deterministic scalar
// operations for addition, subtraction, equality and ordering.
type Q int64

func FromInt(i int) Q {
	return Q(int64(i) << Shift)
}

// Int truncates toward negative infinity.
func (q Q) Int() int {
	return int(q >> Shift)
}

// FromFloat64 is meant for ingesting external (display-precision) values.
// Never use floats in arithmetic that has to stay deterministic.
func FromFloat64(f float64) Q {
	return Q(f * Scale)
}

func (q Q) Float64() float64 {
	return float64(q) / Scale
}

// Mul multiplies with a 128-bit intermediate, truncating toward zero.
// Results wider than 64 bits wrap.
func (x Q) Mul(y Q) Q {
	if x == 0 || y == 0 {
		return 0
	}
	negative := (x < 0) != (y < 0)
	ux, uy := uint64(x), uint64(y)
	if x < 0 {
		ux = uint64(-x)
	}
	if y < 0 {
		uy = uint64(-y)
	}

	hi, lo := bits.Mul64(ux, uy)
	// Q31.32 * Q31.32 = Q63.64, shift right 32 for Q31.32
	result := int64((hi << 32) | (lo >> 32))

	if negative {
		return Q(-result)
	}
	return Q(result)
}

// Div divides with a 128-bit intermediate. A quotient that does not fit in
// 64 bits saturates to MinVal or MaxVal. A zero divisor yields the
// MaxVal/MinVal sentinel depending on the sign of the dividend, never an
// error or a panic.
func (x Q) Div(y Q) Q {
	if y == 0 {
		if x < 0 {
			return MinVal
		}
		return MaxVal
	}
	negative := (x < 0) != (y < 0)
	ux, uy := uint64(x), uint64(y)
	if x < 0 {
		ux = uint64(-x)
	}
	if y < 0 {
		uy = uint64(-y)
	}

	// x << 32 as 128-bit: hi = x >> 32, lo = x << 32
	hi := ux >> 32
	lo := ux << 32

	// bits.Div64 panics if the quotient does not fit, so saturate up front.
	// This happens if |x| * Scale >= |y| * 2^64 (e.g. x=Scale, y=1).
	if hi >= uy {
		if negative {
			return MinVal
		}
		return MaxVal
	}

	quo, _ := bits.Div64(hi, lo, uy)

	if quo > math.MaxInt64 {
		if negative {
			return MinVal
		}
		return MaxVal
	}

	if negative {
		return Q(-int64(quo))
	}
	return Q(int64(quo))
}

// Sqrt returns the square root, computed digit by digit on the raw bits.
// Perfect squares come out exact, everything else is correctly rounded to
// the nearest representable value. Nonpositive input yields Zero.
func (q Q) Sqrt() Q {
	if q <= 0 {
		return 0
	}

	num := uint64(q)
	var result uint64
	bit := uint64(1) << 62
	for bit > num {
		bit >>= 2
	}

	// Two passes: the first resolves the integer half of the result, the
	// second the fractional half after shifting the remainder up 32 bits.
	for i := 0; i < 2; i++ {
		for bit != 0 {
			if num >= result+bit {
				num -= result + bit
				result = (result >> 1) + bit
			} else {
				result >>= 1
			}
			bit >>= 2
		}
		if i == 0 {
			if num > (1<<32)-1 {
				// The remainder would overflow when shifted; offset both
				// the remainder and the result instead.
				num -= result
				num = (num << 32) - half64
				result = (result << 32) + half64
			} else {
				num <<= 32
				result <<= 32
			}
			bit = 1 << 30
		}
	}
	// round to nearest
	if num > result {
		result++
	}
	return Q(result)
}

// half64 is the raw representation of one half, as a uint64 for the
// remainder arithmetic in Sqrt.
const half64 = uint64(Half)

// Abs returns the absolute value. Abs(MinVal) wraps to MinVal.
func (q Q) Abs() Q {
	if q < 0 {
		return -q
	}
	return q
}

// Neg returns the negation. Neg(MinVal) wraps to MinVal.
func (q Q) Neg() Q {
	return -q
}

func Min(a, b Q) Q {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Q) Q {
	if a > b {
		return a
	}
	return b
}

// Hash returns a well-mixed 64-bit hash of the raw value (the splitmix64
// finalizer). Equal values hash equal; the mixing exists so that component
// hashes can be combined order-sensitively.
func (q Q) Hash() uint64 {
	z := uint64(q)
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}
