// Package kernel defines the geometry kernel interface used to turn a fillet
// preview into solids and triangle meshes. The sdfx subpackage provides the
// implementation; the abstraction keeps the tessellator independent of it.
package kernel

import "github.com/chazu/fillet/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the geometry kernel interface.
type Kernel interface {
	// Primitives. Sphere is centered on the origin; Tube is a cylinder of
	// the given radius whose axis runs from one point to the other.
	Sphere(radius float64) (Solid, error)
	Tube(from, to geom.Point3, radius float64) (Solid, error)

	// Union combines one or more solids.
	Union(solids ...Solid) Solid

	// Transforms
	Translate(s Solid, offset geom.Point3) Solid
	Rotate(s Solid, axis geom.Point3, angle float64) Solid // radians, right hand rule

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
