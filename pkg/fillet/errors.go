package fillet

import (
	"fmt"

	"github.com/chazu/fillet/pkg/graph"
)

// ErrorKind classifies a recoverable fillet failure.
type ErrorKind int

const (
	KindAmbiguousSelection ErrorKind = iota + 1 // zero or several vertices selected
	KindInvalidDegree                           // focal vertex lacks exactly two distinct neighbors
	KindDegenerateGeometry                      // adjacent directions are collinear
	KindDegenerateSweep                         // no rotation plane for arc sampling
	KindInvalidRequest                          // request parameters out of range
)

func (k ErrorKind) String() string {
	switch k {
	case KindAmbiguousSelection:
		return "ambiguous selection"
	case KindInvalidDegree:
		return "invalid degree"
	case KindDegenerateGeometry:
		return "degenerate geometry"
	case KindDegenerateSweep:
		return "degenerate sweep"
	case KindInvalidRequest:
		return "invalid request"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the error type returned by every stage. Callers usually match it
// with errors.Is against the sentinel values below.
type Error struct {
	Kind    ErrorKind
	Vertex  graph.VertexID // focal vertex, -1 when unknown
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "fillet: " + e.Kind.String()
	}
	if e.Vertex >= 0 {
		return fmt.Sprintf("fillet: %s at vertex %d: %s", e.Kind, e.Vertex, e.Message)
	}
	return fmt.Sprintf("fillet: %s: %s", e.Kind, e.Message)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrAmbiguousSelection = &Error{Kind: KindAmbiguousSelection, Vertex: -1}
	ErrInvalidDegree      = &Error{Kind: KindInvalidDegree, Vertex: -1}
	ErrDegenerateGeometry = &Error{Kind: KindDegenerateGeometry, Vertex: -1}
	ErrDegenerateSweep    = &Error{Kind: KindDegenerateSweep, Vertex: -1}
	ErrInvalidRequest     = &Error{Kind: KindInvalidRequest, Vertex: -1}
)

func newError(kind ErrorKind, v graph.VertexID, format string, args ...any) *Error {
	return &Error{Kind: kind, Vertex: v, Message: fmt.Sprintf(format, args...)}
}
