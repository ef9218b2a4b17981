package vec

import (
	"github.com/go-spatial/geom"

	"github.com/pdok/fixvec/fix64"
)

// ToGeomPoint converts to a float geom.Point, for display and export only.
// Float coordinates must never flow back into deterministic arithmetic.
func (v Vec2) ToGeomPoint() geom.Point {
	return geom.Point{v.x.Float64(), v.y.Float64()}
}

func FromGeomPoint(p geom.Point) Vec2 {
	return Vec2{fix64.FromFloat64(p.X()), fix64.FromFloat64(p.Y())}
}
