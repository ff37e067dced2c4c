// Package render draws a 2D snapshot of a fillet preview with gogpu/gg: the
// source polyline, the stippled cut chord and guide, the sampled curve and
// its points, projected orthographically onto a coordinate plane.
package render

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/geom"
	"github.com/chazu/fillet/pkg/graph"
)

// Plane selects the projection. PlaneAuto drops the axis closest to the
// fillet's plane normal, falling back to XY.
type Plane int

const (
	PlaneAuto Plane = iota
	PlaneXY
	PlaneXZ
	PlaneYZ
)

func (p Plane) String() string {
	switch p {
	case PlaneAuto:
		return "auto"
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	default:
		return fmt.Sprintf("Plane(%d)", int(p))
	}
}

// ParsePlane accepts auto, xy, xz and yz.
func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PlaneAuto, nil
	case "xy":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "yz":
		return PlaneYZ, nil
	}
	return 0, fmt.Errorf("unknown plane %q, expected auto, xy, xz or yz", s)
}

// Options controls the snapshot.
type Options struct {
	Width, Height int
	Plane         Plane
	Margin        float64 // pixels around the content
}

// DefaultOptions returns an 800x600 auto-plane snapshot.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Plane: PlaneAuto, Margin: 40}
}

// Palette.
var (
	background   = gg.RGB(0.13, 0.13, 0.15)
	polylineCol  = gg.RGB(0.55, 0.55, 0.6)
	constructCol = gg.RGB(0.9, 0.75, 0.3)
	curveCol     = gg.RGB(0.3, 0.8, 1)
	pointCol     = gg.RGB(1, 1, 1)
)

// Render draws g and res into an image. Either may be nil.
func Render(g *graph.PolylineGraph, res *fillet.Result, opts Options) (image.Image, error) {
	dc, err := draw(g, res, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// WritePNG draws g and res and encodes the snapshot as PNG to w.
func WritePNG(w io.Writer, g *graph.PolylineGraph, res *fillet.Result, opts Options) error {
	dc, err := draw(g, res, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// SavePNG draws g and res into a PNG file at path.
func SavePNG(path string, g *graph.PolylineGraph, res *fillet.Result, opts Options) error {
	dc, err := draw(g, res, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

func draw(g *graph.PolylineGraph, res *fillet.Result, opts Options) (*gg.Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", opts.Width, opts.Height)
	}

	plane := opts.Plane
	if plane == PlaneAuto {
		plane = autoPlane(res)
	}
	proj := newProjection(plane, opts, scenePoints(g, res))

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(background)

	p := &painter{dc: dc, proj: proj}

	if g != nil {
		p.color(polylineCol, 2)
		for _, e := range g.Edges {
			if g.Has(e.A) && g.Has(e.B) {
				p.line(g.WorldPosition(e.A), g.WorldPosition(e.B))
			}
		}
		p.stroke()
	}

	if res != nil && len(res.Points) > 0 {
		// Construction lines are stippled.
		p.color(constructCol, 1.5)
		dc.SetDash(6, 4)
		p.line(res.CutPoints[0], res.CutPoints[1])
		p.line(res.Guide.From, res.Guide.To)
		p.stroke()
		dc.ClearDash()

		p.color(curveCol, 2.5)
		p.polyline(res.Points)
		p.stroke()

		p.color(pointCol, 0)
		for _, pt := range res.Points {
			p.dot(pt, 3)
		}
		p.color(constructCol, 0)
		p.dot(res.CutPoints[0], 5)
		p.dot(res.CutPoints[1], 5)
		p.dot(res.Guide.From, 4)
	}

	if p.err != nil {
		_ = dc.Close()
		return nil, fmt.Errorf("render: %w", p.err)
	}
	return dc, nil
}

// painter wraps a gg.Context with world-space drawing and keeps the first
// rasterizer error.
type painter struct {
	dc   *gg.Context
	proj projection
	err  error
}

func (p *painter) color(c gg.RGBA, width float64) {
	p.dc.SetRGBA(c.R, c.G, c.B, c.A)
	if width > 0 {
		p.dc.SetLineWidth(width)
	}
}

func (p *painter) line(a, b geom.Point3) {
	ax, ay := p.proj.apply(a)
	bx, by := p.proj.apply(b)
	p.dc.MoveTo(ax, ay)
	p.dc.LineTo(bx, by)
}

func (p *painter) polyline(pts []geom.Point3) {
	for i, pt := range pts {
		x, y := p.proj.apply(pt)
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
}

func (p *painter) stroke() {
	p.keep(p.dc.Stroke())
}

func (p *painter) dot(pt geom.Point3, r float64) {
	x, y := p.proj.apply(pt)
	p.dc.DrawCircle(x, y, r)
	p.keep(p.dc.Fill())
}

func (p *painter) keep(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

func scenePoints(g *graph.PolylineGraph, res *fillet.Result) []geom.Point3 {
	var pts []geom.Point3
	if g != nil {
		for i := range g.Vertices {
			pts = append(pts, g.WorldPosition(graph.VertexID(i)))
		}
	}
	if res != nil {
		pts = append(pts, res.Points...)
		pts = append(pts, res.CutPoints[0], res.CutPoints[1], res.Guide.From, res.Guide.To)
	}
	return pts
}

// autoPlane picks the coordinate plane most parallel to the fillet.
func autoPlane(res *fillet.Result) Plane {
	if res == nil || res.Collapsed {
		return PlaneXY
	}
	n, ok := geom.PlaneNormal(res.Guide.From, res.CutPoints[0], res.CutPoints[1])
	if !ok {
		return PlaneXY
	}
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case az >= ax && az >= ay:
		return PlaneXY
	case ay >= ax:
		return PlaneXZ
	default:
		return PlaneYZ
	}
}

// projection maps world points to pixels: drop one axis, scale uniformly to
// fit the content box and flip the vertical axis.
type projection struct {
	plane      Plane
	scale      float64
	offX, offY float64
	height     float64
	minU, minV float64
}

func newProjection(plane Plane, opts Options, pts []geom.Point3) projection {
	pr := projection{plane: plane, height: float64(opts.Height), scale: 1}
	if len(pts) == 0 {
		return pr
	}

	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		u, v := pr.uv(p)
		minU, maxU = math.Min(minU, u), math.Max(maxU, u)
		minV, maxV = math.Min(minV, v), math.Max(maxV, v)
	}
	pr.minU, pr.minV = minU, minV

	availW := float64(opts.Width) - 2*opts.Margin
	availH := float64(opts.Height) - 2*opts.Margin
	spanU, spanV := maxU-minU, maxV-minV

	switch {
	case spanU == 0 && spanV == 0:
		pr.scale = 1
	case spanU == 0:
		pr.scale = availH / spanV
	case spanV == 0:
		pr.scale = availW / spanU
	default:
		pr.scale = math.Min(availW/spanU, availH/spanV)
	}

	// Center the content.
	pr.offX = (float64(opts.Width) - spanU*pr.scale) / 2
	pr.offY = (float64(opts.Height) - spanV*pr.scale) / 2
	return pr
}

func (pr projection) uv(p geom.Point3) (float64, float64) {
	switch pr.plane {
	case PlaneXZ:
		return p.X, p.Z
	case PlaneYZ:
		return p.Y, p.Z
	default:
		return p.X, p.Y
	}
}

func (pr projection) apply(p geom.Point3) (x, y float64) {
	u, v := pr.uv(p)
	x = pr.offX + (u-pr.minU)*pr.scale
	y = pr.height - (pr.offY + (v-pr.minV)*pr.scale)
	return x, y
}
