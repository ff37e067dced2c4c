// Package config loads persisted fillet settings from YAML with .env and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/render"
	"github.com/chazu/fillet/pkg/tessellate"
)

// Environment overrides.
const (
	EnvMode    = "FILLET_MODE"
	EnvRatio   = "FILLET_RATIO"
	EnvSamples = "FILLET_SAMPLES"
)

// DefaultMeshCells is the marching-cubes resolution used for previews.
const DefaultMeshCells = 100

// Config holds the persisted settings: fillet defaults, the PNG snapshot
// view and the preview mesh resolution. Load fills it from YAML, then .env
// and the environment.
type Config struct {
	Fillet struct {
		Mode    string  `yaml:"mode"` // arc or bezier
		Ratio   float64 `yaml:"ratio"`
		Samples int     `yaml:"samples"`
		Handle1 float64 `yaml:"handle1"`
		Handle2 float64 `yaml:"handle2"`
		Center  string  `yaml:"center"` // bisector or circumcircle
	} `yaml:"fillet"`
	Render struct {
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
		Plane  string `yaml:"plane"`
	} `yaml:"render"`
	Mesh struct {
		Cells     int     `yaml:"cells"`
		Thickness float64 `yaml:"thickness"` // 0 derives it from the scene
	} `yaml:"mesh"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	req := fillet.DefaultRequest()
	view := render.DefaultOptions()

	var cfg Config
	cfg.Fillet.Mode = req.Mode.String()
	cfg.Fillet.Ratio = req.Ratio
	cfg.Fillet.Samples = req.SampleCount
	cfg.Fillet.Handle1 = req.Handles[0]
	cfg.Fillet.Handle2 = req.Handles[1]
	cfg.Fillet.Center = req.Center.String()
	cfg.Render.Width = view.Width
	cfg.Render.Height = view.Height
	cfg.Render.Plane = view.Plane.String()
	cfg.Mesh.Cells = DefaultMeshCells
	return &cfg
}

// Load reads path over the defaults. A missing file is not an error; an
// empty path skips the file. Environment variables, including those from a
// .env file in the working directory, override the file.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	// 3. Override with Environment Variables if present
	if mode := os.Getenv(EnvMode); mode != "" {
		cfg.Fillet.Mode = mode
	}
	if ratio := os.Getenv(EnvRatio); ratio != "" {
		v, err := strconv.ParseFloat(ratio, 64)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvRatio, err)
		}
		cfg.Fillet.Ratio = v
	}
	if samples := os.Getenv(EnvSamples); samples != "" {
		v, err := strconv.Atoi(samples)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvSamples, err)
		}
		cfg.Fillet.Samples = v
	}

	return cfg, nil
}

// Request converts the fillet section to a validated request.
func (c *Config) Request() (fillet.Request, error) {
	mode, err := fillet.ParseMode(c.Fillet.Mode)
	if err != nil {
		return fillet.Request{}, err
	}
	center, err := fillet.ParseCenterMethod(c.Fillet.Center)
	if err != nil {
		return fillet.Request{}, err
	}
	req := fillet.Request{
		Mode:        mode,
		Ratio:       c.Fillet.Ratio,
		SampleCount: c.Fillet.Samples,
		Handles:     [2]float64{c.Fillet.Handle1, c.Fillet.Handle2},
		Center:      center,
	}
	if err := req.Validate(); err != nil {
		return fillet.Request{}, err
	}
	return req, nil
}

// RenderOptions converts the render section. Margin keeps its default.
func (c *Config) RenderOptions() (render.Options, error) {
	plane, err := render.ParsePlane(c.Render.Plane)
	if err != nil {
		return render.Options{}, err
	}
	opts := render.DefaultOptions()
	opts.Width = c.Render.Width
	opts.Height = c.Render.Height
	opts.Plane = plane
	if opts.Width <= 0 || opts.Height <= 0 {
		return render.Options{}, fmt.Errorf("config: invalid render size %dx%d", opts.Width, opts.Height)
	}
	return opts, nil
}

// TessellateOptions converts the mesh section.
func (c *Config) TessellateOptions() tessellate.Options {
	return tessellate.Options{Thickness: c.Mesh.Thickness}
}
