package fillet

import (
	"github.com/chazu/fillet/pkg/geom"
	"github.com/chazu/fillet/pkg/graph"
)

// collinearEps is the relative tolerance, against the cut distance, below
// which the chord or its offset from the focal point counts as zero.
const collinearEps = 1e-9

// Segment is a line segment between two points.
type Segment struct {
	From geom.Point3 `json:"from"`
	To   geom.Point3 `json:"to"`
}

// Construction is the output of Solve in world space: the two cut points and
// the guide segment running from the focal point to the arc center.
type Construction struct {
	CutPoints [2]geom.Point3 `json:"cut_points"`
	Guide     Segment        `json:"guide"`
	Collapsed bool           `json:"collapsed"` // zero cut distance; everything is the focal point
}

// FocalPoint returns the focal point, the guide's first endpoint.
func (c Construction) FocalPoint() geom.Point3 { return c.Guide.From }

// Center returns the arc center, the guide's second endpoint.
func (c Construction) Center() geom.Point3 { return c.Guide.To }

// Radius returns the distance from the center to the first cut point.
func (c Construction) Radius() float64 {
	return c.CutPoints[0].Distance(c.Guide.To)
}

// Sweep returns the arc's angular extent seen from the center, in radians.
func (c Construction) Sweep() float64 {
	center := c.Guide.To
	return geom.Angle(c.CutPoints[0].Sub(center), c.CutPoints[1].Sub(center))
}

// Solve places the two cut points at maxRadius·ratio from the focal vertex
// along each adjacent edge and derives the arc center tangent to both edges.
//
// Positions are taken in world space (object origin applied). A zero cut
// distance returns a collapsed construction rather than an error. Collinear
// adjacent directions, opposite or coincident, fail with
// ErrDegenerateGeometry.
func Solve(g *graph.PolylineGraph, sel Selection, b Bound, ratio float64, method CenterMethod) (Construction, error) {
	if !inUnit(ratio) {
		return Construction{}, newError(KindInvalidRequest, sel.Focal, "ratio %v outside [0, 1]", ratio)
	}

	focal := g.WorldPosition(sel.Focal)
	dist := b.MaxRadius * ratio

	var c Construction
	c.Guide.From = focal
	for i, n := range sel.Neighbors {
		if b.Distances[i] == 0 {
			c.CutPoints[i] = focal
			continue
		}
		c.CutPoints[i] = focal.Lerp(g.WorldPosition(n), dist/b.Distances[i])
	}

	if dist == 0 {
		c.CutPoints = [2]geom.Point3{focal, focal}
		c.Guide.To = focal
		c.Collapsed = true
		return c, nil
	}

	mid := c.CutPoints[0].Midpoint(c.CutPoints[1])
	ab := focal.Distance(mid)
	bc := mid.Distance(c.CutPoints[1])
	if ab <= collinearEps*dist {
		return Construction{}, newError(KindDegenerateGeometry, sel.Focal,
			"adjacent edges are collinear and opposite, no finite arc center")
	}
	if bc <= collinearEps*dist {
		return Construction{}, newError(KindDegenerateGeometry, sel.Focal,
			"adjacent edges overlap, cut points coincide")
	}

	var center geom.Point3
	switch method {
	case CenterBisector:
		// Right triangle focal(A), cut(C), center(D) with the chord midpoint B
		// as the foot of the altitude from C: BC² = AB·BD.
		bd := bc / ab * bc
		center = focal.Lerp(mid, (ab+bd)/ab)
	case CenterCircumcircle:
		o, ok := geom.Circumcenter(focal, c.CutPoints[0], c.CutPoints[1])
		if !ok {
			return Construction{}, newError(KindDegenerateGeometry, sel.Focal,
				"focal and cut points are collinear")
		}
		center = o.Scale(2).Sub(focal)
	default:
		return Construction{}, newError(KindInvalidRequest, sel.Focal, "unknown center method %d", int(method))
	}

	if !center.IsFinite() {
		return Construction{}, newError(KindDegenerateGeometry, sel.Focal, "arc center is not finite")
	}
	c.Guide.To = center
	return c, nil
}
