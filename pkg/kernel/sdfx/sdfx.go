// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/fillet/pkg/geom"
	"github.com/chazu/fillet/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution along the
// longest bounding box axis.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel meshing with the given marching cubes
// resolution. cells <= 0 selects DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// Cells returns the marching cubes resolution.
func (k *SdfxKernel) Cells() int { return k.cells }

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Sphere creates a sphere centered on the origin.
func (k *SdfxKernel) Sphere(radius float64) (kernel.Solid, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Sphere3D: %w", err)
	}
	return wrap(s), nil
}

// Tube creates a cylinder of the given radius from one point to another.
// sdf.Cylinder3D is centered on the origin along Z, so the cylinder is
// rotated onto the segment direction and moved to its midpoint. A zero
// length segment yields a sphere.
func (k *SdfxKernel) Tube(from, to geom.Point3, radius float64) (kernel.Solid, error) {
	d := to.Sub(from)
	length := d.Length()
	if length == 0 {
		s, err := k.Sphere(radius)
		if err != nil {
			return nil, err
		}
		return k.Translate(s, from), nil
	}

	s, err := sdf.Cylinder3D(length, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Cylinder3D: %w", err)
	}
	solid := wrap(s)

	z := geom.Pt(0, 0, 1)
	if axis, ok := z.Cross(d).Normalize(); ok {
		solid = k.Rotate(solid, axis, geom.Angle(z, d))
	} else if d.Z < 0 {
		solid = k.Rotate(solid, geom.Pt(1, 0, 0), math.Pi)
	}
	return k.Translate(solid, from.Midpoint(to)), nil
}

// Union returns the union of the given solids.
func (k *SdfxKernel) Union(solids ...kernel.Solid) kernel.Solid {
	s := make([]sdf.SDF3, len(solids))
	for i, solid := range solids {
		s[i] = unwrap(solid)
	}
	return wrap(sdf.Union3D(s...))
}

// Translate moves a solid by offset.
func (k *SdfxKernel) Translate(s kernel.Solid, offset geom.Point3) kernel.Solid {
	m := sdf.Translate3d(offset.Vec())
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by angle radians about axis through the origin.
func (k *SdfxKernel) Rotate(s kernel.Solid, axis geom.Point3, angle float64) kernel.Solid {
	m := sdf.Rotate3d(axis.Vec(), angle)
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numVerts := len(triangles) * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
