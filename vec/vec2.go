// Package vec implements a 2D vector on Q31.32 fixed-point scalars.
//
// Every operation is expressed purely in terms of the deterministic scalar
// operations of package fix64, so vector math produces bit-identical results
// on every platform. Overflow, division by zero and square roots of negative
// components behave exactly as the scalar layer documents; this layer adds
// no guards or corrections of its own.
package vec

import (
	"github.com/pdok/fixvec/fix64"
	"github.com/pdok/fixvec/morton"
)

// Vec2 is an immutable pair of Q31.32 scalars. All operations return new
// vectors; the zero value is the zero vector. Vec2 is comparable: == is
// exact componentwise equality, not tolerance-based.
type Vec2 struct {
	x, y fix64.Q
}

var (
	Zero  = Vec2{}
	One   = Vec2{fix64.One, fix64.One}
	Up    = Vec2{0, fix64.One}
	Down  = Vec2{0, -fix64.One}
	Right = Vec2{fix64.One, 0}
	Left  = Vec2{-fix64.One, 0}
	// MinVec and MaxVec have both components at the representable extremes.
	MinVec = Vec2{fix64.MinVal, fix64.MinVal}
	MaxVec = Vec2{fix64.MaxVal, fix64.MaxVal}
)

func New(x, y fix64.Q) Vec2 {
	return Vec2{x, y}
}

// Splat broadcasts one scalar to both components.
func Splat(s fix64.Q) Vec2 {
	return Vec2{s, s}
}

func (v Vec2) X() fix64.Q { return v.x }
func (v Vec2) Y() fix64.Q { return v.y }

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.x + o.x, v.y + o.y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.x - o.x, v.y - o.y}
}

// Mul is the componentwise (Hadamard) product, not the dot product.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.x.Mul(o.x), v.y.Mul(o.y)}
}

// Scale multiplies both components by s. Scalar multiplication commutes,
// so this covers both operand orders.
func (v Vec2) Scale(s fix64.Q) Vec2 {
	return Vec2{v.x.Mul(s), v.y.Mul(s)}
}

// Div is the componentwise quotient.
func (v Vec2) Div(o Vec2) Vec2 {
	return Vec2{v.x.Div(o.x), v.y.Div(o.y)}
}

// DivQ divides both components by s, computed as v * (1/s). The reciprocal
// rounds once before the multiplication, so the result can differ from
// per-component division by a few ulp. Callers rely on exactly this
// rounding; keep the reciprocal form.
func (v Vec2) DivQ(s fix64.Q) Vec2 {
	return v.Scale(fix64.One.Div(s))
}

func (v Vec2) Neg() Vec2 {
	return Zero.Sub(v)
}

func (v Vec2) Dot(o Vec2) fix64.Q {
	return v.x.Mul(o.x) + v.y.Mul(o.y)
}

// LengthSq is monotonic with Length and needs no square root, which makes
// it the cheap choice for comparisons.
func (v Vec2) LengthSq() fix64.Q {
	return v.Dot(v)
}

func (v Vec2) Length() fix64.Q {
	return v.LengthSq().Sqrt()
}

// Normalized returns v scaled to unit length. The zero vector has zero
// length, so the scalar division-by-zero sentinel applies: 1/0 saturates to
// fix64.MaxVal and scaling zero components by it yields the zero vector
// again.
func (v Vec2) Normalized() Vec2 {
	return v.DivQ(v.Length())
}

func (v Vec2) Distance(o Vec2) fix64.Q {
	return v.Sub(o).Length()
}

func (v Vec2) DistanceSq(o Vec2) fix64.Q {
	return v.Sub(o).LengthSq()
}

// Reflect mirrors v off a surface with the given normal:
// v - 2*dot(v, normal)*normal. The normal is assumed to be unit length;
// it is not normalized here.
func (v Vec2) Reflect(normal Vec2) Vec2 {
	d := v.Dot(normal)
	return v.Sub(normal.Scale(d + d))
}

// Clamp clamps componentwise. The max bound is checked first on each axis,
// so with degenerate bounds (min > max) a value above max comes out as max
// regardless of min.
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	x := v.x
	if x > max.x {
		x = max.x
	} else if x < min.x {
		x = min.x
	}
	y := v.y
	if y > max.y {
		y = max.y
	} else if y < min.y {
		y = min.y
	}
	return Vec2{x, y}
}

// Lerp interpolates linearly: v + (o-v)*t. t is not clamped; values outside
// [0,1] extrapolate.
func (v Vec2) Lerp(o Vec2, t fix64.Q) Vec2 {
	return v.Add(o.Sub(v).Scale(t))
}

func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{fix64.Min(v.x, o.x), fix64.Min(v.y, o.y)}
}

func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{fix64.Max(v.x, o.x), fix64.Max(v.y, o.y)}
}

func (v Vec2) Abs() Vec2 {
	return Vec2{v.x.Abs(), v.y.Abs()}
}

// Sqrt takes the square root of each component independently (this is not
// the magnitude). Negative components follow the scalar contract and come
// out as zero.
func (v Vec2) Sqrt() Vec2 {
	return Vec2{v.x.Sqrt(), v.y.Sqrt()}
}

// Hash combines the component hashes order-sensitively, so swapping x and y
// generally changes the hash. Equal vectors hash equal.
func (v Vec2) Hash() uint64 {
	h := v.x.Hash()
	h ^= v.y.Hash() + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	return h
}

// ZKey returns the Morton key of the integer parts, for deterministic
// spatial ordering and bucketing. The fractional bits are dropped.
func (v Vec2) ZKey() morton.Z {
	return morton.ToZSigned(int32(v.x>>fix64.Shift), int32(v.y>>fix64.Shift))
}
