package fillet

import (
	"github.com/chazu/fillet/pkg/geom"
)

// Sample discretizes the fillet curve into req.SampleCount points, first and
// last being the two cut points.
//
// ModeBezier builds a cubic Bezier whose control points sit on the adjacent
// edges, each lerped from its cut point towards the focal end of the guide by
// the matching handle weight. ModeArc rotates the first radius vector about
// the arc plane normal in equal angular steps, so every sample lies on the
// circle through both cut points.
//
// A collapsed construction yields the focal point repeated. ModeArc fails
// with ErrDegenerateSweep when center and cut points do not span a plane.
func Sample(c Construction, req Request) ([]geom.Point3, error) {
	n := req.SampleCount
	if n < MinSamples || n > MaxSamples {
		return nil, newError(KindInvalidRequest, -1, "sample count %d outside [%d, %d]", n, MinSamples, MaxSamples)
	}

	cut0, cut1 := c.CutPoints[0], c.CutPoints[1]
	if c.Collapsed || cut0 == cut1 {
		pts := make([]geom.Point3, n)
		for i := range pts {
			pts[i] = cut0
		}
		return pts, nil
	}

	switch req.Mode {
	case ModeBezier:
		return sampleBezier(c, req.Handles, n), nil
	case ModeArc:
		return sampleArc(c, n)
	default:
		return nil, newError(KindInvalidRequest, -1, "unknown mode %d", int(req.Mode))
	}
}

func sampleBezier(c Construction, handles [2]float64, n int) []geom.Point3 {
	anchor := c.Guide.From
	bez := geom.CubicBezier{
		P0: c.CutPoints[0],
		P1: c.CutPoints[0].Lerp(anchor, handles[0]),
		P2: c.CutPoints[1].Lerp(anchor, handles[1]),
		P3: c.CutPoints[1],
	}
	return bez.Sample(n)
}

func sampleArc(c Construction, n int) ([]geom.Point3, error) {
	center := c.Guide.To
	start, end := c.CutPoints[0], c.CutPoints[1]

	axis, ok := geom.PlaneNormal(center, end, start)
	if !ok {
		return nil, newError(KindDegenerateSweep, -1,
			"center %s and cut points %s, %s do not define a plane", center, start, end)
	}

	radial := start.Sub(center)
	step := geom.Angle(radial, end.Sub(center)) / float64(n-1)

	pts := make([]geom.Point3, n)
	for i := range n {
		pts[i] = center.Add(geom.Rotate(radial, axis, -float64(i)*step))
	}
	pts[0] = start
	pts[n-1] = end
	return pts, nil
}
