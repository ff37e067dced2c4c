package graph

import (
	"fmt"

	"github.com/chazu/fillet/pkg/geom"
)

// VertexID is the index of a vertex in a PolylineGraph's vertex table.
type VertexID int

// Vertex is a single polyline vertex. Position is in object-local space.
type Vertex struct {
	Position geom.Point3 `json:"position" yaml:"position"`
	Selected bool        `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Edge is an unordered pair of vertex indices.
type Edge struct {
	A VertexID `json:"a" yaml:"a"`
	B VertexID `json:"b" yaml:"b"`
}

// Other returns the endpoint of e that is not v, and whether v is an
// endpoint of e at all.
func (e Edge) Other(v VertexID) (VertexID, bool) {
	switch v {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	default:
		return 0, false
	}
}

// Touches reports whether v is an endpoint of e.
func (e Edge) Touches(v VertexID) bool {
	return e.A == v || e.B == v
}

// PolylineGraph is the vertex and edge table of one object.
// Origin is the object-space origin; world = local + Origin.
type PolylineGraph struct {
	Vertices []Vertex    `json:"vertices" yaml:"vertices"`
	Edges    []Edge      `json:"edges" yaml:"edges"`
	Origin   geom.Point3 `json:"origin" yaml:"origin"`
}

// New creates an empty PolylineGraph with its origin at (0,0,0).
func New() *PolylineGraph {
	return &PolylineGraph{}
}

// AddVertex appends a vertex at the given local position and returns its ID.
func (g *PolylineGraph) AddVertex(p geom.Point3) VertexID {
	g.Vertices = append(g.Vertices, Vertex{Position: p})
	return VertexID(len(g.Vertices) - 1)
}

// AddEdge connects a and b. Both must already exist.
func (g *PolylineGraph) AddEdge(a, b VertexID) error {
	if !g.Has(a) {
		return fmt.Errorf("graph: edge endpoint %d does not exist", a)
	}
	if !g.Has(b) {
		return fmt.Errorf("graph: edge endpoint %d does not exist", b)
	}
	g.Edges = append(g.Edges, Edge{A: a, B: b})
	return nil
}

// Polyline appends the given points as new vertices joined in order by edges
// and returns their IDs.
func (g *PolylineGraph) Polyline(points ...geom.Point3) []VertexID {
	ids := make([]VertexID, len(points))
	for i, p := range points {
		ids[i] = g.AddVertex(p)
		if i > 0 {
			g.Edges = append(g.Edges, Edge{A: ids[i-1], B: ids[i]})
		}
	}
	return ids
}

// Has reports whether id indexes an existing vertex.
func (g *PolylineGraph) Has(id VertexID) bool {
	return id >= 0 && int(id) < len(g.Vertices)
}

// Select sets the selection flag on id.
func (g *PolylineGraph) Select(id VertexID) error {
	if !g.Has(id) {
		return fmt.Errorf("graph: cannot select vertex %d: out of range", id)
	}
	g.Vertices[id].Selected = true
	return nil
}

// Deselect clears the selection flag on id.
func (g *PolylineGraph) Deselect(id VertexID) error {
	if !g.Has(id) {
		return fmt.Errorf("graph: cannot deselect vertex %d: out of range", id)
	}
	g.Vertices[id].Selected = false
	return nil
}

// ClearSelection deselects every vertex.
func (g *PolylineGraph) ClearSelection() {
	for i := range g.Vertices {
		g.Vertices[i].Selected = false
	}
}

// Selected returns the IDs of all selected vertices in table order.
func (g *PolylineGraph) Selected() []VertexID {
	var ids []VertexID
	for i, v := range g.Vertices {
		if v.Selected {
			ids = append(ids, VertexID(i))
		}
	}
	return ids
}

// IncidentEdges returns the edges touching id, in edge table order.
func (g *PolylineGraph) IncidentEdges(id VertexID) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Touches(id) {
			edges = append(edges, e)
		}
	}
	return edges
}

// Position returns the local position of id. It panics if id is out of range.
func (g *PolylineGraph) Position(id VertexID) geom.Point3 {
	return g.Vertices[id].Position
}

// WorldPosition returns the position of id with the object origin applied.
func (g *PolylineGraph) WorldPosition(id VertexID) geom.Point3 {
	return g.Vertices[id].Position.Add(g.Origin)
}

// ToLocal converts a world-space point back into object-local space.
func (g *PolylineGraph) ToLocal(p geom.Point3) geom.Point3 {
	return p.Sub(g.Origin)
}

// VertexCount returns the number of vertices.
func (g *PolylineGraph) VertexCount() int {
	return len(g.Vertices)
}

// Clone returns a deep copy of g.
func (g *PolylineGraph) Clone() *PolylineGraph {
	c := &PolylineGraph{
		Vertices: make([]Vertex, len(g.Vertices)),
		Edges:    make([]Edge, len(g.Edges)),
		Origin:   g.Origin,
	}
	copy(c.Vertices, g.Vertices)
	copy(c.Edges, g.Edges)
	return c
}
