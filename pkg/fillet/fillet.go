package fillet

import (
	"errors"
	"fmt"

	"github.com/chazu/fillet/pkg/geom"
	"github.com/chazu/fillet/pkg/graph"
)

// Result is everything a renderer needs to draw one fillet preview. All
// points are in world space.
type Result struct {
	Selection
	Bound
	Construction
	Mode   Mode          `json:"mode"`
	Points []geom.Point3 `json:"points"`
	Origin geom.Point3   `json:"origin"`
}

// Label returns the on-screen summary, e.g. "12 vert fillet, 11 edges".
func (r *Result) Label() string {
	n := len(r.Points)
	edges := n - 1
	suffix := "edges"
	if edges == 1 {
		suffix = "edge"
	}
	return fmt.Sprintf("%d vert fillet, %d %s", n, edges, suffix)
}

// Local returns a copy of r with every point converted back to the object's
// local space, ready to be written into vertex positions.
func (r *Result) Local() *Result {
	local := *r
	toLocal := func(p geom.Point3) geom.Point3 { return p.Sub(r.Origin) }

	local.CutPoints = [2]geom.Point3{toLocal(r.CutPoints[0]), toLocal(r.CutPoints[1])}
	local.Guide = Segment{From: toLocal(r.Guide.From), To: toLocal(r.Guide.To)}
	local.Points = make([]geom.Point3, len(r.Points))
	for i, p := range r.Points {
		local.Points[i] = toLocal(p)
	}
	local.Origin = geom.Point3{}
	return &local
}

// Compute runs the full pipeline on a graph snapshot: validate the request,
// resolve the topology, bound the radius, solve the construction and sample
// the curve. Any failure is an *Error; the graph is never modified.
func Compute(g *graph.PolylineGraph, req Request) (*Result, error) {
	log := Logger()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	sel, err := Resolve(g)
	if err != nil {
		log.Debug("fillet: topology rejected", "err", err)
		return nil, err
	}
	log.Debug("fillet: vertex selected", "vertex", sel.Focal, "neighbors", sel.Neighbors)

	b := MaxRadius(g, sel)
	log.Debug("fillet: radius bound",
		"distance0", b.Distances[0], "distance1", b.Distances[1], "max_radius", b.MaxRadius)

	c, err := Solve(g, sel, b, req.Ratio, req.Center)
	if err != nil {
		log.Debug("fillet: construction failed", "err", err)
		return nil, err
	}

	pts, err := Sample(c, req)
	if err != nil {
		var fe *Error
		if errors.As(err, &fe) && fe.Vertex < 0 {
			fe.Vertex = sel.Focal
		}
		log.Debug("fillet: sampling failed", "err", err)
		return nil, err
	}

	return &Result{
		Selection:    sel,
		Bound:        b,
		Construction: c,
		Mode:         req.Mode,
		Points:       pts,
		Origin:       g.Origin,
	}, nil
}
