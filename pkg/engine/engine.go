// Package engine evaluates fillet scene scripts. It wraps zygomys in a
// sandboxed environment and produces a Scene: the polyline graph described
// by the script plus the fillet settings it requested.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/graph"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code, or a structurally
// invalid polyline.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Scene is the output of a successful evaluation.
type Scene struct {
	Graph   *graph.PolylineGraph
	Request fillet.Request

	// Filleted is true when the script called (fillet ...). Without it the
	// host shows the polyline only.
	Filleted bool

	// Warnings holds non-fatal structural findings such as duplicate edges.
	Warnings []graph.ValidationError
}

// Engine wraps the zygomys interpreter for scene evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	defaults fillet.Request
	timeout  time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithDefaults sets the request a scene starts from before its (fillet ...)
// form overrides individual settings. Typically the loaded config.
func WithDefaults(req fillet.Request) Option {
	return func(e *Engine) { e.defaults = req }
}

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		defaults: fillet.DefaultRequest(),
		timeout:  EvalTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate takes scene source code and produces a new Scene.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns scene + nil errors + nil error
//   - On parse/eval/structure failure: returns nil scene + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Scene, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		ch <- evalResult{scene: s, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Scene, []EvalError, error) {
	scene := &Scene{Graph: graph.New(), Request: e.defaults}

	// Empty source is a valid program that produces an empty scene.
	if strings.TrimSpace(source) == "" {
		return scene, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, scene)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	res := graph.ValidateAll(scene.Graph)
	if len(res.Errors) > 0 {
		evalErrs := make([]EvalError, len(res.Errors))
		for i, ve := range res.Errors {
			evalErrs[i] = EvalError{Message: ve.Error()}
		}
		return nil, evalErrs, nil
	}
	scene.Warnings = res.Warnings

	return scene, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
