package mathhelp

import "golang.org/x/exp/constraints"

// BetweenInc reports whether f lies between p and q inclusive,
// in either bound order.
func BetweenInc[T constraints.Ordered](f, p, q T) bool {
	if p <= q {
		return p <= f && f <= q
	}
	return q <= f && f <= p
}
