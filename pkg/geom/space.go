package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
)

// PlaneNormal returns the unit normal of the plane through a, b and c,
// oriented as (b−a)×(c−a). ok is false when the points are collinear or
// coincident.
func PlaneNormal(a, b, c Point3) (Point3, bool) {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// Angle returns the unsigned angle in radians between u and v, in [0, π].
// Zero-length inputs yield 0.
func Angle(u, v Point3) float64 {
	return math.Atan2(u.Cross(v).Length(), u.Dot(v))
}

// Rotate rotates v by angle radians about axis using the right hand rule.
// The axis need not be normalized but must be non-zero.
func Rotate(v, axis Point3, angle float64) Point3 {
	m := sdf.Rotate3d(axis.Vec(), angle)
	return FromVec(m.MulPosition(v.Vec()))
}

// Circumcenter returns the center of the circle through a, b and c.
// ok is false when the three points are collinear.
func Circumcenter(a, b, c Point3) (Point3, bool) {
	u := b.Sub(a)
	v := c.Sub(a)
	w := u.Cross(v)
	w2 := w.Dot(w)
	if w2 == 0 || math.IsNaN(w2) {
		return Point3{}, false
	}
	num := v.Cross(w).Scale(u.Dot(u)).Add(w.Cross(u).Scale(v.Dot(v)))
	return a.Add(num.Scale(1 / (2 * w2))), true
}
