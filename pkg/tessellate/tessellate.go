// Package tessellate turns a fillet preview into triangle meshes using a
// geometry kernel. One mesh is produced per preview element: the source
// polyline, the fillet curve, the cut chord, the guide and the cut points.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/geom"
	"github.com/chazu/fillet/pkg/graph"
	"github.com/chazu/fillet/pkg/kernel"
)

// Mesh names, in output order.
const (
	MeshPolyline = "polyline"
	MeshFillet   = "fillet"
	MeshChord    = "chord"
	MeshGuide    = "guide"
	MeshCut0     = "cut-0"
	MeshCut1     = "cut-1"
)

// Options sizes the preview solids.
type Options struct {
	// Thickness is the tube radius. Zero derives it from the scene extent.
	Thickness float64
	// PointScale multiplies Thickness for the cut point spheres. Zero means 2.
	PointScale float64
}

// element is one named preview part: a path of tube segments or a point.
type element struct {
	name  string
	path  []geom.Point3
	point bool
}

// Tessellate produces one mesh per preview element of g and res using the
// provided kernel. Either argument may be nil; with both nil it returns nil.
// Positions are in world space. Neither input is mutated.
func Tessellate(g *graph.PolylineGraph, res *fillet.Result, k kernel.Kernel, opts Options) ([]*kernel.Mesh, error) {
	elems := collect(g, res)
	if len(elems) == 0 {
		return nil, nil
	}

	thickness := opts.Thickness
	if thickness <= 0 {
		thickness = 0.02 * extent(elems)
		if thickness == 0 {
			thickness = 0.02
		}
	}
	pointScale := opts.PointScale
	if pointScale <= 0 {
		pointScale = 2
	}

	meshes := make([]*kernel.Mesh, 0, len(elems))
	for _, el := range elems {
		r := thickness
		if el.point {
			r = thickness * pointScale
		}
		solid, err := buildPath(k, el.path, r)
		if err != nil {
			return nil, fmt.Errorf("tessellate: building %s: %w", el.name, err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", el.name, err)
		}
		mesh.Name = el.name
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// collect lists the preview elements in output order.
func collect(g *graph.PolylineGraph, res *fillet.Result) []element {
	var elems []element

	if g != nil {
		var path []geom.Point3
		for _, e := range g.Edges {
			if !g.Has(e.A) || !g.Has(e.B) {
				continue
			}
			path = append(path, g.WorldPosition(e.A), g.WorldPosition(e.B))
		}
		if len(path) > 0 {
			elems = append(elems, element{name: MeshPolyline, path: path})
		}
	}

	if res != nil && len(res.Points) > 0 {
		elems = append(elems,
			element{name: MeshFillet, path: chain(res.Points)},
			element{name: MeshChord, path: []geom.Point3{res.CutPoints[0], res.CutPoints[1]}},
			element{name: MeshGuide, path: []geom.Point3{res.Guide.From, res.Guide.To}},
			element{name: MeshCut0, path: []geom.Point3{res.CutPoints[0]}, point: true},
			element{name: MeshCut1, path: []geom.Point3{res.CutPoints[1]}, point: true},
		)
	}
	return elems
}

// chain turns a point sequence into segment pairs.
func chain(pts []geom.Point3) []geom.Point3 {
	if len(pts) < 2 {
		return pts
	}
	out := make([]geom.Point3, 0, 2*(len(pts)-1))
	for i := 1; i < len(pts); i++ {
		out = append(out, pts[i-1], pts[i])
	}
	return out
}

// extent returns the largest bounding box side over all element points.
func extent(elems []element) float64 {
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, el := range elems {
		for _, p := range el.path {
			for i, v := range [3]float64{p.X, p.Y, p.Z} {
				lo[i] = math.Min(lo[i], v)
				hi[i] = math.Max(hi[i], v)
			}
		}
	}
	return math.Max(hi[0]-lo[0], math.Max(hi[1]-lo[1], hi[2]-lo[2]))
}

// buildPath unions a tube per segment pair in path. A single point becomes
// a sphere.
func buildPath(k kernel.Kernel, path []geom.Point3, radius float64) (kernel.Solid, error) {
	if len(path) == 1 {
		s, err := k.Sphere(radius)
		if err != nil {
			return nil, err
		}
		return k.Translate(s, path[0]), nil
	}

	var parts []kernel.Solid
	for i := 0; i+1 < len(path); i += 2 {
		a, b := path[i], path[i+1]
		tube, err := k.Tube(a, b, radius)
		if err != nil {
			return nil, err
		}
		parts = append(parts, tube)
	}
	return k.Union(parts...), nil
}
