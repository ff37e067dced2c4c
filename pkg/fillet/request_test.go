package fillet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestKappa(t *testing.T) {
	// Kappa is a constant; importers cannot move the default handle weight.
	const handle float64 = Kappa
	if handle != DefaultRequest().Handles[0] {
		t.Errorf("default handle = %v, want %v", DefaultRequest().Handles[0], handle)
	}
	if math.Abs(Kappa-0.5522847498) > 1e-9 {
		t.Errorf("Kappa = %v", Kappa)
	}
}

func TestDefaultRequestIsValid(t *testing.T) {
	r := DefaultRequest()
	if err := r.Validate(); err != nil {
		t.Fatalf("DefaultRequest().Validate() = %v", err)
	}
	if r.Mode != ModeArc || r.Ratio != 0.5 || r.SampleCount != 12 {
		t.Errorf("DefaultRequest() = %+v", r)
	}
	if r.Handles != [2]float64{Kappa, Kappa} {
		t.Errorf("Handles = %v, want Kappa", r.Handles)
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr bool
	}{
		{"defaults", func(*Request) {}, false},
		{"ratio zero", func(r *Request) { r.Ratio = 0 }, false},
		{"ratio one", func(r *Request) { r.Ratio = 1 }, false},
		{"ratio negative", func(r *Request) { r.Ratio = -0.01 }, true},
		{"ratio above one", func(r *Request) { r.Ratio = 1.5 }, true},
		{"ratio NaN", func(r *Request) { r.Ratio = math.NaN() }, true},
		{"min samples", func(r *Request) { r.SampleCount = MinSamples }, false},
		{"max samples", func(r *Request) { r.SampleCount = MaxSamples }, false},
		{"one sample", func(r *Request) { r.SampleCount = 1 }, true},
		{"too many samples", func(r *Request) { r.SampleCount = 65 }, true},
		{"handle negative", func(r *Request) { r.Handles[0] = -1 }, true},
		{"handle above one", func(r *Request) { r.Handles[1] = 1.2 }, true},
		{"unknown mode", func(r *Request) { r.Mode = Mode(7) }, true},
		{"unknown center", func(r *Request) { r.Center = CenterMethod(3) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRequest()
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Validate() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestStepSamples(t *testing.T) {
	tests := []struct {
		start, delta, want int
	}{
		{12, 1, 13},
		{12, -1, 11},
		{2, -1, 2},
		{64, 1, 64},
		{10, 100, 64},
		{10, -100, 2},
	}
	for _, tt := range tests {
		r := DefaultRequest()
		r.SampleCount = tt.start
		got := r.StepSamples(tt.delta)
		if got.SampleCount != tt.want {
			t.Errorf("StepSamples(%d) from %d = %d, want %d", tt.delta, tt.start, got.SampleCount, tt.want)
		}
		if r.SampleCount != tt.start {
			t.Error("StepSamples modified the receiver")
		}
	}
}

func TestResetHandles(t *testing.T) {
	r := DefaultRequest()
	r.Handles = [2]float64{0.1, 0.9}
	if got := r.ResetHandles().Handles; got != [2]float64{Kappa, Kappa} {
		t.Errorf("ResetHandles() = %v", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"arc", ModeArc, false},
		{"TRIG", ModeArc, false},
		{" bezier ", ModeBezier, false},
		{"Kappa", ModeBezier, false},
		{"spline", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseCenterMethod(t *testing.T) {
	for in, want := range map[string]CenterMethod{
		"":             CenterBisector,
		"bisector":     CenterBisector,
		"circumcircle": CenterCircumcircle,
		"Circumcenter": CenterCircumcircle,
	} {
		got, err := ParseCenterMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseCenterMethod(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCenterMethod("incircle"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestRequestJSON(t *testing.T) {
	r := DefaultRequest()
	r.Mode = ModeBezier
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"mode":"bezier"`) {
		t.Errorf("mode not encoded as text: %s", data)
	}

	var back Request
	if err := json.Unmarshal([]byte(`{"mode":"trig","ratio":0.25,"sample_count":5}`), &back); err != nil {
		t.Fatal(err)
	}
	if back.Mode != ModeArc || back.Ratio != 0.25 || back.SampleCount != 5 {
		t.Errorf("Unmarshal = %+v", back)
	}

	if err := json.Unmarshal([]byte(`{"mode":"spline"}`), &back); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{ErrDegenerateSweep, "fillet: degenerate sweep"},
		{newError(KindInvalidRequest, -1, "ratio %v outside [0, 1]", 2.0), "fillet: invalid request: ratio 2 outside [0, 1]"},
		{newError(KindInvalidDegree, 4, "vertex has 3 incident edges"), "fillet: invalid degree at vertex 4: vertex has 3 incident edges"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	err := newError(KindDegenerateGeometry, 3, "collinear")
	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Error("errors.Is(err, ErrDegenerateGeometry) = false")
	}
	if errors.Is(err, ErrDegenerateSweep) {
		t.Error("errors.Is(err, ErrDegenerateSweep) = true")
	}
	if errors.Is(err, errors.New("fillet: degenerate geometry")) {
		t.Error("matched a plain error")
	}
}

func TestSetLoggerCapturesCompute(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	if Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default logger should be silent")
	}

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if _, err := Compute(rightCorner(), DefaultRequest()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "radius bound") {
		t.Errorf("expected radius bound in log output, got: %s", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
