package geom

// CubicBezier is a cubic Bezier segment in 3D with endpoints P0, P3 and
// control points P1, P2.
type CubicBezier struct {
	P0, P1, P2, P3 Point3
}

// Eval returns the point at parameter t using the Bernstein form.
func (c CubicBezier) Eval(t float64) Point3 {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return c.P0.Scale(a).Add(c.P1.Scale(b)).Add(c.P2.Scale(d)).Add(c.P3.Scale(e))
}

// Sample evaluates the curve at n parameter values spaced uniformly over
// [0, 1], both ends included. The endpoints are returned exactly.
// n < 2 yields nil.
func (c CubicBezier) Sample(n int) []Point3 {
	if n < 2 {
		return nil
	}
	pts := make([]Point3, n)
	last := float64(n - 1)
	for i := range n {
		pts[i] = c.Eval(float64(i) / last)
	}
	pts[0] = c.P0
	pts[n-1] = c.P3
	return pts
}
