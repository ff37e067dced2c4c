package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/geom"
	"github.com/chazu/fillet/pkg/graph"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites scene source into something zygomys reads:
//
//  1. :keyword becomes the string "__kw_keyword". Keywords never reach the
//     global symbol table, so :select and a user (def select ...) coexist.
//  2. Hyphens between identifier characters become underscores, in symbols
//     and keywords alike: corner-vert -> corner_vert, :sample-count ->
//     "__kw_sample_count". zygomys would read the hyphen as subtraction.
//  3. ; and ;; line comments become //.
//
// String literals pass through untouched. A hyphen before a digit or
// after whitespace stays a minus sign.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// "..." with backslash escapes.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Raw `...` strings.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Comments run to end of line and are copied verbatim, so a
		// :keyword inside one is left alone.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// := is assignment, not a keyword.
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, kwName(b[i+1:j])...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// corner-vert, not (- a b) or -2.5.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// kwName spells a keyword body the way identifiers are spelled after
// preprocessing, so :sample-count and :sample_count name the same key.
func kwName(body []byte) []byte {
	name := make([]byte, len(body))
	for k, c := range body {
		if c == '-' {
			c = '_'
		}
		name[k] = c
	}
	return name
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Point3 so it can be passed between builtins.
type sexpVec3 struct {
	vec geom.Point3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	return strings.CutPrefix(str.S, kwPrefix)
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_arc) and plain strings ("arc").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 extracts a point from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Point3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Point3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toVertex extracts a vertex index and checks it exists in g.
func toVertex(g *graph.PolylineGraph, s zygo.Sexp) (graph.VertexID, error) {
	n, err := toInt(s)
	if err != nil {
		return 0, fmt.Errorf("vertex index: %w", err)
	}
	id := graph.VertexID(n)
	if !g.Has(id) {
		return 0, fmt.Errorf("vertex %d does not exist (%d vertices)", n, g.VertexCount())
	}
	return id, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// pointArgs reads a point given either as one vec3 or as three numbers.
func pointArgs(fn string, args []zygo.Sexp) (geom.Point3, error) {
	switch len(args) {
	case 1:
		p, err := toVec3(args[0])
		if err != nil {
			return geom.Point3{}, fmt.Errorf("%s: %w", fn, err)
		}
		return p, nil
	case 3:
		var xyz [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return geom.Point3{}, fmt.Errorf("%s: %c: %w", fn, "xyz"[i], err)
			}
			xyz[i] = f
		}
		return geom.Pt(xyz[0], xyz[1], xyz[2]), nil
	}
	return geom.Point3{}, fmt.Errorf("%s requires a vec3 or 3 numbers, got %d arguments", fn, len(args))
}

func vertexSexp(id graph.VertexID) zygo.Sexp {
	return &zygo.SexpInt{Val: int64(id)}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins populate scene during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {
	g := scene.Graph

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		p, err := pointArgs("vec3", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: p}, nil
	})

	// -----------------------------------------------------------------------
	// (origin (vec3 1 0 0)) or (origin 1 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("origin", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := pointArgs("origin", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		g.Origin = p
		return &sexpVec3{vec: p}, nil
	})

	// -----------------------------------------------------------------------
	// (vert 0 0 0) or (vert (vec3 0 0 0)) -> vertex index
	// -----------------------------------------------------------------------
	env.AddFunction("vert", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := pointArgs("vert", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return vertexSexp(g.AddVertex(p)), nil
	})

	// -----------------------------------------------------------------------
	// (edge a b)
	// -----------------------------------------------------------------------
	env.AddFunction("edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("edge requires exactly 2 vertex indices, got %d", len(args))
		}
		a, err := toVertex(g, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: %w", err)
		}
		b, err := toVertex(g, args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: %w", err)
		}
		if err := g.AddEdge(a, b); err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: %w", err)
		}
		return &zygo.SexpInt{Val: int64(len(g.Edges) - 1)}, nil
	})

	// -----------------------------------------------------------------------
	// (select a ...) / (deselect a ...)
	// -----------------------------------------------------------------------
	selection := func(on bool) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			for _, a := range args {
				id, err := toVertex(g, a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
				}
				if on {
					err = g.Select(id)
				} else {
					err = g.Deselect(id)
				}
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
				}
			}
			return zygo.SexpNull, nil
		}
	}
	env.AddFunction("select", selection(true))
	env.AddFunction("deselect", selection(false))

	// -----------------------------------------------------------------------
	// (polyline (vec3 5 0 0) (vec3 0 0 0) (vec3 0 5 0) :select 1)
	// -> list of vertex indices
	// -----------------------------------------------------------------------
	env.AddFunction("polyline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("polyline requires at least 2 points, got %d", len(pa.positional))
		}

		pts := make([]geom.Point3, len(pa.positional))
		for i, a := range pa.positional {
			p, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: point %d: %w", i, err)
			}
			pts[i] = p
		}

		ids := g.Polyline(pts...)

		if v, ok := pa.kw["select"]; ok {
			k, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: select: %w", err)
			}
			if k < 0 || k >= len(ids) {
				return zygo.SexpNull, fmt.Errorf("polyline: select: index %d outside polyline of %d points", k, len(ids))
			}
			if err := g.Select(ids[k]); err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: %w", err)
			}
		}

		out := make([]zygo.Sexp, len(ids))
		for i, id := range ids {
			out[i] = vertexSexp(id)
		}
		return zygo.MakeList(out), nil
	})

	// -----------------------------------------------------------------------
	// (fillet :mode :arc :ratio 0.5 :samples 12 :handles (list 0.55 0.55)
	//         :center :bisector)
	// -----------------------------------------------------------------------
	env.AddFunction("fillet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("fillet takes keyword arguments only")
		}
		req := scene.Request

		if v, ok := pa.kw["mode"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: mode: %w", err)
			}
			m, err := fillet.ParseMode(s)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
			}
			req.Mode = m
		}
		if v, ok := pa.kw["ratio"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: ratio: %w", err)
			}
			req.Ratio = f
		}
		if v, ok := pa.kw["samples"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: samples: %w", err)
			}
			req.SampleCount = n
		}
		if v, ok := pa.kw["handles"]; ok {
			h, err := toHandles(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: handles: %w", err)
			}
			req.Handles = h
		}
		if v, ok := pa.kw["center"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: center: %w", err)
			}
			c, err := fillet.ParseCenterMethod(s)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
			}
			req.Center = c
		}

		if err := req.Validate(); err != nil {
			return zygo.SexpNull, err
		}
		scene.Request = req
		scene.Filleted = true
		return zygo.SexpNull, nil
	})
}

// toHandles accepts a single weight for both handles or a two-element list.
func toHandles(s zygo.Sexp) ([2]float64, error) {
	if f, err := toFloat64(s); err == nil {
		return [2]float64{f, f}, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return [2]float64{}, err
	}
	if len(items) != 2 {
		return [2]float64{}, fmt.Errorf("expected 2 weights, got %d", len(items))
	}
	var h [2]float64
	for i, it := range items {
		f, err := toFloat64(it)
		if err != nil {
			return [2]float64{}, fmt.Errorf("weight %d: %w", i+1, err)
		}
		h[i] = f
	}
	return h, nil
}
