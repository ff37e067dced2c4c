package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/geom"
	"github.com/chazu/fillet/pkg/graph"
)

func corner(a, f, b geom.Point3) *graph.PolylineGraph {
	g := graph.New()
	ids := g.Polyline(a, f, b)
	_ = g.Select(ids[1])
	return g
}

func compute(t *testing.T, g *graph.PolylineGraph) *fillet.Result {
	t.Helper()
	req := fillet.DefaultRequest()
	req.Ratio = 0.8
	req.SampleCount = 9
	res, err := fillet.Compute(g, req)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return res
}

func isBackground(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	br, bg, bb, _ := background.Color().RGBA()
	near := func(x, y uint32) bool { return math.Abs(float64(x)-float64(y)) < 0x0800 }
	return near(r, br) && near(g, bg) && near(b, bb)
}

func TestParsePlane(t *testing.T) {
	tests := []struct {
		in      string
		want    Plane
		wantErr bool
	}{
		{"", PlaneAuto, false},
		{"auto", PlaneAuto, false},
		{"XY", PlaneXY, false},
		{"xz", PlaneXZ, false},
		{" yz ", PlaneYZ, false},
		{"zx", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePlane(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePlane(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && got.String() == "" {
			t.Errorf("Plane(%d).String() is empty", got)
		}
	}
}

func TestAutoPlane(t *testing.T) {
	tests := []struct {
		name    string
		a, f, b geom.Point3
		want    Plane
	}{
		{"xy", geom.Pt(5, 0, 0), geom.Pt(0, 0, 0), geom.Pt(0, 5, 0), PlaneXY},
		{"xz", geom.Pt(5, 0, 0), geom.Pt(0, 0, 0), geom.Pt(0, 0, 5), PlaneXZ},
		{"yz", geom.Pt(0, 5, 0), geom.Pt(0, 0, 0), geom.Pt(0, 0, 5), PlaneYZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := compute(t, corner(tt.a, tt.f, tt.b))
			if got := autoPlane(res); got != tt.want {
				t.Errorf("autoPlane() = %v, want %v", got, tt.want)
			}
		})
	}
	if got := autoPlane(nil); got != PlaneXY {
		t.Errorf("autoPlane(nil) = %v, want xy", got)
	}
}

func TestProjectionFitsAndFlips(t *testing.T) {
	opts := Options{Width: 200, Height: 100, Margin: 10}
	pts := []geom.Point3{geom.Pt(0, 0, 0), geom.Pt(4, 2, 0)}
	pr := newProjection(PlaneXY, opts, pts)

	// Aspect 2:1 content fits 180x80 at scale 40, centered.
	if pr.scale != 40 {
		t.Fatalf("scale = %v, want 40", pr.scale)
	}
	x0, y0 := pr.apply(pts[0])
	x1, y1 := pr.apply(pts[1])
	if x0 != 20 || y0 != 90 {
		t.Errorf("origin maps to (%v,%v), want (20,90)", x0, y0)
	}
	if x1 != 180 || y1 != 10 {
		t.Errorf("far corner maps to (%v,%v), want (180,10)", x1, y1)
	}
}

func TestProjectionSinglePoint(t *testing.T) {
	opts := Options{Width: 100, Height: 100, Margin: 10}
	pr := newProjection(PlaneXY, opts, []geom.Point3{geom.Pt(3, 3, 3)})
	x, y := pr.apply(geom.Pt(3, 3, 3))
	if x != 50 || y != 50 {
		t.Errorf("single point maps to (%v,%v), want center", x, y)
	}
}

func TestRender(t *testing.T) {
	g := corner(geom.Pt(5, 0, 0), geom.Pt(0, 0, 0), geom.Pt(0, 5, 0))
	res := compute(t, g)
	opts := Options{Width: 320, Height: 240, Plane: PlaneAuto, Margin: 20}

	img, err := Render(g, res, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("bounds = %v", b)
	}

	// Corners stay background; sample points are drawn.
	if !isBackground(img.At(1, 1)) {
		t.Errorf("corner pixel %v is not background", img.At(1, 1))
	}
	pr := newProjection(PlaneXY, opts, scenePoints(g, res))
	for i, p := range res.Points {
		x, y := pr.apply(p)
		if isBackground(img.At(int(math.Round(x)), int(math.Round(y)))) {
			t.Errorf("sample %d at (%v,%v) was not drawn", i, x, y)
		}
	}
}

func TestWritePNG(t *testing.T) {
	g := corner(geom.Pt(5, 0, 0), geom.Pt(0, 0, 0), geom.Pt(0, 5, 0))
	res := compute(t, g)

	var buf bytes.Buffer
	if err := WritePNG(&buf, g, res, DefaultOptions()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 800, 600) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestSavePNG(t *testing.T) {
	g := corner(geom.Pt(5, 0, 0), geom.Pt(0, 0, 0), geom.Pt(0, 5, 0))
	path := filepath.Join(t.TempDir(), "fillet.png")
	if err := SavePNG(path, g, nil, Options{Width: 64, Height: 64, Margin: 4}); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("PNG file is empty")
	}
}

func TestRenderInvalidSize(t *testing.T) {
	if _, err := Render(nil, nil, Options{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestRenderEmptyScene(t *testing.T) {
	img, err := Render(nil, nil, Options{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !isBackground(img.At(8, 8)) {
		t.Error("empty scene should be background only")
	}
}
