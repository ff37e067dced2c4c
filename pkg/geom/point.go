package geom

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3 is an immutable 3D coordinate. It doubles as a displacement vector.
type Point3 struct {
	X, Y, Z float64
}

// Pt returns the point (x, y, z).
func Pt(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// FromVec converts an sdfx vector to a Point3.
func FromVec(v v3.Vec) Point3 {
	return Point3{X: v.X, Y: v.Y, Z: v.Z}
}

// Vec converts p to an sdfx vector.
func (p Point3) Vec() v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Add returns p+o.
func (p Point3) Add(o Point3) Point3 {
	return FromVec(p.Vec().Add(o.Vec()))
}

// Sub returns p−o.
func (p Point3) Sub(o Point3) Point3 {
	return FromVec(p.Vec().Sub(o.Vec()))
}

// Scale returns p multiplied by s.
func (p Point3) Scale(s float64) Point3 {
	return FromVec(p.Vec().MulScalar(s))
}

// Lerp linearly interpolates from p towards o. t=0 yields p, t=1 yields o.
// t is not clamped.
func (p Point3) Lerp(o Point3, t float64) Point3 {
	return p.Add(o.Sub(p).Scale(t))
}

// Midpoint returns the midpoint of p and o.
func (p Point3) Midpoint(o Point3) Point3 {
	return p.Add(o).Scale(0.5)
}

// Length returns the euclidean length of p seen as a vector.
func (p Point3) Length() float64 {
	return p.Vec().Length()
}

// Distance returns the euclidean distance between p and o.
func (p Point3) Distance(o Point3) float64 {
	return p.Sub(o).Length()
}

// Dot returns the dot product.
func (p Point3) Dot(o Point3) float64 {
	return p.Vec().Dot(o.Vec())
}

// Cross returns the cross product p×o.
func (p Point3) Cross(o Point3) Point3 {
	return FromVec(p.Vec().Cross(o.Vec()))
}

// Normalize returns the unit vector in the direction of p. ok is false when
// p has zero (or non-finite) length, in which case the zero vector is returned.
func (p Point3) Normalize() (n Point3, ok bool) {
	l := p.Length()
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return Point3{}, false
	}
	return p.Scale(1 / l), true
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (p Point3) IsFinite() bool {
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether p and o are within tol of each other.
func (p Point3) ApproxEqual(o Point3, tol float64) bool {
	return p.Distance(o) <= tol
}
