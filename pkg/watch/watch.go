// Package watch reports changes to a scene script so the caller can
// recompute the fillet preview. Bursts of filesystem events are coalesced
// into a single change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a change
// is reported.
const DefaultDebounce = 100 * time.Millisecond

// Op describes what happened to the watched file.
type Op int

const (
	Modified Op = iota // created, written or replaced
	Removed
)

func (o Op) String() string {
	if o == Removed {
		return "removed"
	}
	return "modified"
}

// Event is one coalesced change to the watched file.
type Event struct {
	Path string
	Op   Op
}

// Watcher watches a single file through its parent directory, so editors
// that save by renaming a temp file over the original are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero or negative reports every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger routes watcher errors to l.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher.
func New(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{watcher: fw, debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts monitoring path and emits coalesced events until ctx is done
// or the watcher is stopped. The returned channel is closed on exit.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return nil, err
	}

	events := make(chan Event, 1)

	go func() {
		defer close(events)

		var (
			timer   *time.Timer
			fire    <-chan time.Time
			pending Event
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		emit := func(ev Event) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}

				var op Op
				switch {
				case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
					op = Modified
				case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					op = Removed
				default:
					continue
				}
				pending = Event{Path: abs, Op: op}

				if w.debounce <= 0 {
					if !emit(pending) {
						return
					}
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if !emit(pending) {
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("watch error", "path", abs, "error", err)
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher and closes any event channel returned by Watch.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
