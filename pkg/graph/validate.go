package graph

import "fmt"

// ValidationSeverity indicates whether a validation finding means the graph
// cannot be trusted or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // graph is malformed
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Vertex   VertexID           // offending vertex, -1 if not vertex-specific
	Edge     int                // offending edge index, -1 if not edge-specific
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	switch {
	case e.Edge >= 0:
		return fmt.Sprintf("[%s] edge %d: %s", e.Severity, e.Edge, e.Message)
	case e.Vertex >= 0:
		return fmt.Sprintf("[%s] vertex %d: %s", e.Severity, e.Vertex, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
}

// ValidationResult bundles errors and warnings separately.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether no blocking errors were found.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural checks on g and returns every finding.
// An empty slice means the graph is well formed. Validate never mutates g.
func Validate(g *PolylineGraph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateCoordinates(g)...)
	errs = append(errs, validateEdgeEndpoints(g)...)
	errs = append(errs, validateSelfLoops(g)...)
	errs = append(errs, validateDuplicateEdges(g)...)
	errs = append(errs, validateEdgeLengths(g)...)
	return errs
}

// ValidateAll runs Validate and splits the findings by severity.
func ValidateAll(g *PolylineGraph) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(g) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, e)
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	return result
}

// validateCoordinates rejects vertices and origins that are NaN or infinite.
func validateCoordinates(g *PolylineGraph) []ValidationError {
	var errs []ValidationError

	if !g.Origin.IsFinite() {
		errs = append(errs, ValidationError{
			Vertex:   -1,
			Edge:     -1,
			Message:  fmt.Sprintf("object origin %s is not finite", g.Origin),
			Severity: SeverityError,
		})
	}

	for i, v := range g.Vertices {
		if !v.Position.IsFinite() {
			errs = append(errs, ValidationError{
				Vertex:   VertexID(i),
				Edge:     -1,
				Message:  fmt.Sprintf("position %s is not finite", v.Position),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateEdgeEndpoints checks that every edge references existing vertices.
func validateEdgeEndpoints(g *PolylineGraph) []ValidationError {
	var errs []ValidationError

	for i, e := range g.Edges {
		for _, end := range [2]VertexID{e.A, e.B} {
			if !g.Has(end) {
				errs = append(errs, ValidationError{
					Vertex:   -1,
					Edge:     i,
					Message:  fmt.Sprintf("endpoint %d does not exist (graph has %d vertices)", end, len(g.Vertices)),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateSelfLoops rejects edges whose endpoints are the same vertex.
func validateSelfLoops(g *PolylineGraph) []ValidationError {
	var errs []ValidationError

	for i, e := range g.Edges {
		if e.A == e.B {
			errs = append(errs, ValidationError{
				Vertex:   e.A,
				Edge:     i,
				Message:  "self-loop: edge connects a vertex to itself",
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// edgeKey is the canonical form of an unordered edge so that (a,b) and (b,a)
// compare equal.
type edgeKey struct {
	lo, hi VertexID
}

func makeEdgeKey(e Edge) edgeKey {
	if e.A <= e.B {
		return edgeKey{lo: e.A, hi: e.B}
	}
	return edgeKey{lo: e.B, hi: e.A}
}

// validateDuplicateEdges warns when two edges connect the same pair.
func validateDuplicateEdges(g *PolylineGraph) []ValidationError {
	var errs []ValidationError
	seen := make(map[edgeKey]int) // first edge index that used this key

	for i, e := range g.Edges {
		key := makeEdgeKey(e)
		if first, exists := seen[key]; exists {
			errs = append(errs, ValidationError{
				Vertex:   -1,
				Edge:     i,
				Message:  fmt.Sprintf("duplicate edge: vertices %d and %d already joined by edge %d", key.lo, key.hi, first),
				Severity: SeverityWarning,
			})
		} else {
			seen[key] = i
		}
	}

	return errs
}

// validateEdgeLengths warns about edges between distinct but coincident
// vertices. A fillet at either end collapses onto its focal point.
func validateEdgeLengths(g *PolylineGraph) []ValidationError {
	var errs []ValidationError

	for i, e := range g.Edges {
		if e.A == e.B || !g.Has(e.A) || !g.Has(e.B) {
			continue
		}
		if g.Position(e.A) == g.Position(e.B) {
			errs = append(errs, ValidationError{
				Vertex:   -1,
				Edge:     i,
				Message:  fmt.Sprintf("zero-length edge: vertices %d and %d coincide at %s", e.A, e.B, g.Position(e.A)),
				Severity: SeverityWarning,
			})
		}
	}

	return errs
}
