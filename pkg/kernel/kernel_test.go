package kernel

import (
	"testing"

	"github.com/chazu/fillet/pkg/geom"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshBounds(t *testing.T) {
	m := &Mesh{Vertices: []float32{1, 2, 3, -1, 5, 0, 4, -2, 1}}
	min, max := m.Bounds()
	if min != [3]float64{-1, -2, 0} {
		t.Errorf("min = %v, want [-1 -2 0]", min)
	}
	if max != [3]float64{4, 5, 3} {
		t.Errorf("max = %v, want [4 5 3]", max)
	}

	min, max = (&Mesh{}).Bounds()
	if min != ([3]float64{}) || max != ([3]float64{}) {
		t.Errorf("empty mesh bounds = %v %v, want zero", min, max)
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{}

func (k *stubKernel) Sphere(radius float64) (Solid, error) {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, -radius},
		maxBB: [3]float64{radius, radius, radius},
	}, nil
}

func (k *stubKernel) Tube(from, to geom.Point3, radius float64) (Solid, error) {
	return &stubSolid{
		minBB: [3]float64{min(from.X, to.X) - radius, min(from.Y, to.Y) - radius, min(from.Z, to.Z) - radius},
		maxBB: [3]float64{max(from.X, to.X) + radius, max(from.Y, to.Y) + radius, max(from.Z, to.Z) + radius},
	}, nil
}

func (k *stubKernel) Union(solids ...Solid) Solid { return solids[0] }

func (k *stubKernel) Translate(s Solid, _ geom.Point3) Solid        { return s }
func (k *stubKernel) Rotate(s Solid, _ geom.Point3, _ float64) Solid { return s }

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelTubeBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, err := k.Tube(geom.Pt(0, 0, 0), geom.Pt(10, 20, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	min, max := s.BoundingBox()
	if min != [3]float64{-1, -1, -1} {
		t.Errorf("Tube min = %v, want [-1 -1 -1]", min)
	}
	if max != [3]float64{11, 21, 1} {
		t.Errorf("Tube max = %v, want [11 21 1]", max)
	}
}

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, _ := k.Sphere(1)
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
}
