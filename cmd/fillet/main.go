// Command fillet evaluates a scene script, computes the fillet at its
// selected vertex and prints the result. It can also write a PNG snapshot
// and preview meshes, and recompute whenever the script changes.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chazu/fillet/pkg/config"
	"github.com/chazu/fillet/pkg/fillet"
	"github.com/chazu/fillet/pkg/watch"
)

var (
	rootCmd = &cobra.Command{
		Use:          "fillet [flags] scene.lisp",
		Short:        "Compute a vertex fillet for a polyline scene",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	configPath string
	pngPath    string
	meshPath   string
	watchMode  bool
	verbose    bool
)

// errFailed marks a run whose output already explains the failure.
var errFailed = errors.New("fillet failed")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "fillet.yaml", "Path to the settings file (YAML)")
	rootCmd.Flags().StringVar(&pngPath, "png", "", "Write a PNG snapshot of the preview")
	rootCmd.Flags().StringVar(&meshPath, "mesh", "", "Write preview meshes as JSON")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Recompute whenever the script changes")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	fillet.SetLogger(log.With("component", "fillet"))

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app, err := NewApp(cfg, meshPath != "", log)
	if err != nil {
		return err
	}

	script := args[0]
	out := cmd.OutOrStdout()

	if !watchMode {
		if !runOnce(app, script, out, log) {
			return errFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchLoop(ctx, app, script, out, log)
}

// runOnce evaluates script and writes every requested output. It reports
// whether the script ran and any fillet it asked for was computed.
func runOnce(app *App, script string, out io.Writer, log *slog.Logger) bool {
	source, err := os.ReadFile(script)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}

	result := app.Evaluate(string(source))
	fmt.Fprint(out, Summary(result))
	if !result.OK() {
		return false
	}

	if pngPath != "" {
		if err := app.SavePNG(result, pngPath); err != nil {
			log.Error("png snapshot failed", "path", pngPath, "error", err)
			return false
		}
		log.Debug("wrote png", "path", pngPath)
	}
	if meshPath != "" {
		if err := writeJSON(meshPath, result.Meshes); err != nil {
			log.Error("mesh export failed", "path", meshPath, "error", err)
			return false
		}
		log.Debug("wrote meshes", "path", meshPath, "count", len(result.Meshes))
	}
	return true
}

// watchLoop recomputes on every change to script until ctx is done.
func watchLoop(ctx context.Context, app *App, script string, out io.Writer, log *slog.Logger) error {
	w, err := watch.New(watch.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	events, err := w.Watch(ctx, script)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", script, err)
	}

	runOnce(app, script, out, log)
	for ev := range events {
		if ev.Op == watch.Removed {
			log.Info("script removed, waiting", "path", ev.Path)
			continue
		}
		log.Debug("script changed", "path", ev.Path)
		fmt.Fprintln(out)
		runOnce(app, script, out, log)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
