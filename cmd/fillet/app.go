package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chazu/fillet/pkg/config"
	"github.com/chazu/fillet/pkg/engine"
	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/kernel"
	"github.com/chazu/fillet/pkg/kernel/sdfx"
	"github.com/chazu/fillet/pkg/render"
	"github.com/chazu/fillet/pkg/tessellate"
)

// colorPalette assigns distinct colors to preview meshes, in tessellate
// output order.
var colorPalette = []string{
	"#8C8C99", "#4DCCFF", "#E6BF4D", "#E6BF4D",
	"#FFFFFF", "#FFFFFF",
}

// App binds the engine, the fillet pipeline and the preview outputs.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	mesh   tessellate.Options
	view   render.Options
	meshes bool
	log    *slog.Logger
}

// MeshData is the JSON-serializable mesh format written by -mesh.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable script error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// EvalResult is everything one evaluation produced. Diagnostic is set when
// the fillet could not be computed; in that case nothing is drawn. Fillet is
// nil for a script that never called (fillet ...), whose preview is the
// polyline alone.
type EvalResult struct {
	Label      string          `json:"label,omitempty"`
	Diagnostic string          `json:"diagnostic,omitempty"`
	Fillet     *fillet.Result  `json:"fillet,omitempty"`
	Meshes     []MeshData      `json:"meshes"`
	Errors     []EvalErrorData `json:"errors"`
	Warnings   []EvalErrorData `json:"warnings"`

	scene *engine.Scene
}

// OK reports whether the script ran and, if it asked for one, the fillet
// was computed.
func (r EvalResult) OK() bool {
	return len(r.Errors) == 0 && r.Diagnostic == ""
}

// NewApp creates an App from loaded settings. Meshes are only tessellated
// when withMeshes is set; marching cubes dominates the run time.
func NewApp(cfg *config.Config, withMeshes bool, log *slog.Logger) (*App, error) {
	req, err := cfg.Request()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	view, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &App{
		engine: engine.NewEngine(engine.WithDefaults(req)),
		kernel: sdfx.New(cfg.Mesh.Cells),
		mesh:   cfg.TessellateOptions(),
		view:   view,
		meshes: withMeshes,
		log:    log,
	}, nil
}

// Evaluate runs a scene script and computes its fillet preview.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the script into a polyline graph.
	scene, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate failed", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Message: e.Message,
			})
		}
		return result
	}
	for _, w := range scene.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Error()})
	}
	result.scene = scene

	// Nothing to fillet in an empty scene.
	if scene.Graph.VertexCount() == 0 {
		return result
	}

	// Step 2: Compute the fillet. Core failures are diagnostics, not script
	// errors. Without (fillet ...) only the polyline is previewed.
	var res *fillet.Result
	if scene.Filleted {
		res, err = fillet.Compute(scene.Graph, scene.Request)
		if err != nil {
			var ferr *fillet.Error
			if errors.As(err, &ferr) {
				a.log.Debug("fillet not computed", "kind", ferr.Kind, "vertex", ferr.Vertex)
			}
			result.Diagnostic = err.Error()
			return result
		}
		result.Fillet = res
		result.Label = res.Label()
	} else {
		a.log.Debug("no fillet requested", "vertices", scene.Graph.VertexCount())
	}

	if !a.meshes {
		return result
	}

	// Step 3: Tessellate the preview into triangle meshes.
	meshes, err := tessellate.Tessellate(scene.Graph, res, a.kernel, a.mesh)
	if err != nil {
		a.log.Error("tessellate failed", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 4: Convert kernel meshes to the output format.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// SavePNG draws a result's preview to path. Nothing is drawn for a result
// that failed.
func (a *App) SavePNG(r EvalResult, path string) error {
	if !r.OK() || r.scene == nil {
		return errors.New("no preview to draw")
	}
	return render.SavePNG(path, r.scene.Graph, r.Fillet, a.view)
}

// Summary formats a result for the terminal.
func Summary(r EvalResult) string {
	var b strings.Builder
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(&b, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(&b, "error: %s\n", e.Message)
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w.Message)
	}
	if r.Diagnostic != "" {
		fmt.Fprintln(&b, r.Diagnostic)
	}
	res := r.Fillet
	if res == nil {
		if r.OK() && r.scene != nil && r.scene.Graph.VertexCount() > 0 {
			fmt.Fprintf(&b, "polyline only: %d verts, %d edges\n",
				r.scene.Graph.VertexCount(), len(r.scene.Graph.Edges))
		}
		return b.String()
	}

	fmt.Fprintln(&b, r.Label)
	fmt.Fprintf(&b, "mode:       %s\n", res.Mode)
	fmt.Fprintf(&b, "max radius: %.6g\n", res.MaxRadius)
	fmt.Fprintf(&b, "cut points: %s %s\n", res.CutPoints[0], res.CutPoints[1])
	fmt.Fprintf(&b, "center:     %s\n", res.Center())
	if !res.Collapsed {
		fmt.Fprintf(&b, "radius:     %.6g\n", res.Radius())
	}
	for i, p := range res.Points {
		fmt.Fprintf(&b, "  %2d %.6f %.6f %.6f\n", i, p.X, p.Y, p.Z)
	}
	return b.String()
}
