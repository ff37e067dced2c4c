package graph

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/fillet/pkg/geom"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildCorner creates a valid three-vertex L-shaped polyline with the corner
// vertex selected.
func buildCorner() *PolylineGraph {
	g := New()
	ids := g.Polyline(geom.Pt(5, 0, 0), geom.Pt(0, 0, 0), geom.Pt(0, 5, 0))
	_ = g.Select(ids[1])
	return g
}

// hasError returns true if errs contains at least one error-severity finding
// whose message contains substr.
func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// hasWarning returns true if errs contains at least one warning-severity
// finding whose message contains substr.
func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// errorCount returns the number of error-severity findings.
func errorCount(errs []ValidationError) int {
	n := 0
	for _, e := range errs {
		if e.Severity == SeverityError {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestValidateValidCorner(t *testing.T) {
	errs := Validate(buildCorner())
	if len(errs) != 0 {
		t.Fatalf("expected no findings, got %v", errs)
	}
}

func TestValidateEmptyGraph(t *testing.T) {
	if errs := Validate(New()); len(errs) != 0 {
		t.Fatalf("expected no findings for empty graph, got %v", errs)
	}
}

func TestValidateDanglingEdge(t *testing.T) {
	g := buildCorner()
	g.Edges = append(g.Edges, Edge{A: 0, B: 7})

	errs := Validate(g)
	if !hasError(errs, "does not exist") {
		t.Fatalf("expected dangling endpoint error, got %v", errs)
	}
	if errs[0].Edge != 2 {
		t.Errorf("finding edge = %d, want 2", errs[0].Edge)
	}
}

func TestValidateNegativeEndpoint(t *testing.T) {
	g := buildCorner()
	g.Edges = append(g.Edges, Edge{A: -1, B: 0})
	if !hasError(Validate(g), "does not exist") {
		t.Fatal("expected negative endpoint to be rejected")
	}
}

func TestValidateSelfLoop(t *testing.T) {
	g := buildCorner()
	g.Edges = append(g.Edges, Edge{A: 1, B: 1})
	if !hasError(Validate(g), "self-loop") {
		t.Fatal("expected self-loop error")
	}
}

func TestValidateDuplicateEdge(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
	}{
		{"same order", Edge{A: 0, B: 1}},
		{"reversed order", Edge{A: 1, B: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildCorner()
			g.Edges = append(g.Edges, tt.edge)

			errs := Validate(g)
			if !hasWarning(errs, "duplicate edge") {
				t.Fatalf("expected duplicate edge warning, got %v", errs)
			}
			if errorCount(errs) != 0 {
				t.Errorf("duplicate edge should not be an error, got %v", errs)
			}
		})
	}
}

func TestValidateZeroLengthEdge(t *testing.T) {
	g := New()
	ids := g.Polyline(geom.Pt(5, 0, 0), geom.Pt(0, 0, 0), geom.Pt(0, 0, 0))

	errs := Validate(g)
	if !hasWarning(errs, "zero-length edge") {
		t.Fatalf("expected zero-length edge warning, got %v", errs)
	}
	if errorCount(errs) != 0 || len(errs) != 1 {
		t.Errorf("want a single warning, got %v", errs)
	}
	if errs[0].Edge != 1 {
		t.Errorf("warning on edge %d, want 1", errs[0].Edge)
	}

	// A self-loop is reported as an error only.
	g.Edges = append(g.Edges, Edge{A: ids[0], B: ids[0]})
	errs = Validate(g)
	if len(errs) != 2 || !hasError(errs, "self-loop") {
		t.Errorf("want the zero-length warning plus one self-loop error, got %v", errs)
	}
}

func TestValidateNonFinite(t *testing.T) {
	g := buildCorner()
	g.Vertices[2].Position = geom.Pt(math.NaN(), 0, 0)
	g.Origin = geom.Pt(0, math.Inf(1), 0)

	errs := Validate(g)
	if errorCount(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if !hasError(errs, "origin") {
		t.Error("expected origin finding")
	}
	if !hasError(errs, "position") {
		t.Error("expected position finding")
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	g := buildCorner()
	g.Edges = append(g.Edges, Edge{A: 2, B: 2})
	before := g.Clone()

	Validate(g)

	if len(g.Edges) != len(before.Edges) || len(g.Vertices) != len(before.Vertices) {
		t.Fatal("Validate changed the graph shape")
	}
	for i := range g.Vertices {
		if g.Vertices[i] != before.Vertices[i] {
			t.Errorf("vertex %d changed", i)
		}
	}
}

func TestValidateAllSplitsSeverity(t *testing.T) {
	g := buildCorner()
	g.Edges = append(g.Edges, Edge{A: 1, B: 0}, Edge{A: 2, B: 2})

	res := ValidateAll(g)
	if len(res.Errors) != 1 {
		t.Errorf("errors = %d, want 1", len(res.Errors))
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(res.Warnings))
	}
	if res.OK() {
		t.Error("OK() = true with errors present")
	}
}

func TestValidationErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  ValidationError
		want string
	}{
		{"edge", ValidationError{Vertex: -1, Edge: 3, Message: "bad", Severity: SeverityError}, "[error] edge 3: bad"},
		{"vertex", ValidationError{Vertex: 2, Edge: -1, Message: "odd", Severity: SeverityWarning}, "[warning] vertex 2: odd"},
		{"graph", ValidationError{Vertex: -1, Edge: -1, Message: "nope", Severity: SeverityError}, "[error] nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	if SeverityError.String() != "error" || SeverityWarning.String() != "warning" {
		t.Error("unexpected severity names")
	}
	if got := ValidationSeverity(9).String(); got != "ValidationSeverity(9)" {
		t.Errorf("unknown severity = %q", got)
	}
}
