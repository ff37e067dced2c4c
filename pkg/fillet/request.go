package fillet

import (
	"fmt"
	"math"
	"strings"
)

// Kappa is the handle weight that makes a cubic Bezier approximate a 90°
// circular arc: 4·(√2−1)/3.
const Kappa = 4 * (math.Sqrt2 - 1) / 3

const (
	MinSamples     = 2
	MaxSamples     = 64
	DefaultSamples = 12
	DefaultRatio   = 0.5
)

// Mode selects the curve sampling strategy.
type Mode int

const (
	ModeArc    Mode = iota // exact rotational sampling of the circular arc
	ModeBezier             // cubic Bezier approximation with adjustable handles
)

func (m Mode) String() string {
	switch m {
	case ModeArc:
		return "arc"
	case ModeBezier:
		return "bezier"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "arc"/"trig" and "bezier"/"kappa", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arc", "trig":
		return ModeArc, nil
	case "bezier", "kappa":
		return ModeBezier, nil
	}
	return 0, fmt.Errorf("unknown fillet mode %q, expected arc or bezier", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeArc && m != ModeBezier {
		return nil, fmt.Errorf("cannot marshal %s", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// CenterMethod selects how the arc center is derived from the cut points.
type CenterMethod int

const (
	// CenterBisector extends focal→chord-midpoint by BC²/AB, the altitude
	// relation of the right triangle focal/cut point/center.
	CenterBisector CenterMethod = iota
	// CenterCircumcircle reflects the focal point through the circumcenter
	// of (focal, cut0, cut1). The center lies diametrically opposite the
	// focal point on that circle since both cut angles are right angles.
	CenterCircumcircle
)

func (c CenterMethod) String() string {
	switch c {
	case CenterBisector:
		return "bisector"
	case CenterCircumcircle:
		return "circumcircle"
	default:
		return fmt.Sprintf("CenterMethod(%d)", int(c))
	}
}

// ParseCenterMethod accepts "bisector" and "circumcircle".
func ParseCenterMethod(s string) (CenterMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bisector", "":
		return CenterBisector, nil
	case "circumcircle", "circumcenter":
		return CenterCircumcircle, nil
	}
	return 0, fmt.Errorf("unknown center method %q, expected bisector or circumcircle", s)
}

// Request is the per-call fillet configuration.
type Request struct {
	Mode        Mode         `json:"mode"`
	Ratio       float64      `json:"ratio"`        // fraction of the max radius, [0,1]
	SampleCount int          `json:"sample_count"` // [2,64]
	Handles     [2]float64   `json:"handles"`      // Bezier handle weights per cut point, [0,1]
	Center      CenterMethod `json:"center"`
}

// DefaultRequest returns arc mode at half the max radius with 12 samples and
// both handles at Kappa.
func DefaultRequest() Request {
	return Request{
		Mode:        ModeArc,
		Ratio:       DefaultRatio,
		SampleCount: DefaultSamples,
		Handles:     [2]float64{Kappa, Kappa},
		Center:      CenterBisector,
	}
}

// Validate checks every parameter range. The returned error matches
// ErrInvalidRequest.
func (r Request) Validate() error {
	if r.Mode != ModeArc && r.Mode != ModeBezier {
		return newError(KindInvalidRequest, -1, "unknown mode %d", int(r.Mode))
	}
	if r.Center != CenterBisector && r.Center != CenterCircumcircle {
		return newError(KindInvalidRequest, -1, "unknown center method %d", int(r.Center))
	}
	if !inUnit(r.Ratio) {
		return newError(KindInvalidRequest, -1, "ratio %v outside [0, 1]", r.Ratio)
	}
	if r.SampleCount < MinSamples || r.SampleCount > MaxSamples {
		return newError(KindInvalidRequest, -1, "sample count %d outside [%d, %d]", r.SampleCount, MinSamples, MaxSamples)
	}
	for i, h := range r.Handles {
		if !inUnit(h) {
			return newError(KindInvalidRequest, -1, "handle %d weight %v outside [0, 1]", i+1, h)
		}
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// StepSamples returns a copy of r with the sample count moved by delta and
// clamped to [MinSamples, MaxSamples].
func (r Request) StepSamples(delta int) Request {
	r.SampleCount = min(max(r.SampleCount+delta, MinSamples), MaxSamples)
	return r
}

// ResetHandles returns a copy of r with both handle weights set to Kappa.
func (r Request) ResetHandles() Request {
	r.Handles = [2]float64{Kappa, Kappa}
	return r
}
