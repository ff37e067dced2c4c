package fillet

import "github.com/chazu/fillet/pkg/graph"

// Selection is the focal vertex and its two neighbors. Neighbor order follows
// edge table order: stable for a given graph, otherwise arbitrary.
type Selection struct {
	Focal     graph.VertexID    `json:"focal"`
	Neighbors [2]graph.VertexID `json:"neighbors"`
}

// Resolve finds the single selected vertex and its two neighbors.
//
// It fails with ErrAmbiguousSelection unless exactly one vertex is selected,
// and with ErrInvalidDegree unless that vertex has exactly two incident edges
// leading to two distinct, existing vertices other than itself.
func Resolve(g *graph.PolylineGraph) (Selection, error) {
	selected := g.Selected()
	if len(selected) != 1 {
		return Selection{}, newError(KindAmbiguousSelection, -1,
			"select exactly one vertex, %d selected", len(selected))
	}
	f := selected[0]

	incident := g.IncidentEdges(f)
	if len(incident) != 2 {
		return Selection{}, newError(KindInvalidDegree, f,
			"vertex has %d incident edges, need exactly 2", len(incident))
	}

	sel := Selection{Focal: f}
	for i, e := range incident {
		other, _ := e.Other(f)
		if other == f {
			return Selection{}, newError(KindInvalidDegree, f, "incident edge is a self-loop")
		}
		if !g.Has(other) {
			return Selection{}, newError(KindInvalidDegree, f, "neighbor %d does not exist", other)
		}
		sel.Neighbors[i] = other
	}
	if sel.Neighbors[0] == sel.Neighbors[1] {
		return Selection{}, newError(KindInvalidDegree, f,
			"both incident edges lead to vertex %d", sel.Neighbors[0])
	}

	return sel, nil
}

// Bound is the radius limit of a fillet: the distance to each neighbor and
// the smaller of the two.
type Bound struct {
	MaxRadius float64    `json:"max_radius"`
	Distances [2]float64 `json:"distances"`
}

// MaxRadius measures the focal vertex's distance to each neighbor. A zero
// distance (coincident vertices) makes MaxRadius zero, which later stages
// treat as a fillet collapsed onto the focal point.
func MaxRadius(g *graph.PolylineGraph, sel Selection) Bound {
	focal := g.Position(sel.Focal)
	var b Bound
	for i, n := range sel.Neighbors {
		b.Distances[i] = focal.Distance(g.Position(n))
	}
	b.MaxRadius = min(b.Distances[0], b.Distances[1])
	return b
}
