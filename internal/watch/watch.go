// Package watch re-runs a callback whenever a monitored transcript file
// is written.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher monitors a single file via its parent directory, since editors
// often replace files wholesale rather than writing in place.
type Watcher struct {
	target   string
	debounce time.Duration
	onChange func()
	log      zerolog.Logger
	fw       *fsnotify.Watcher
}

// New sets up a watcher on target's directory. Events are debounced so a
// burst of writes triggers onChange once.
func New(target string, debounce time.Duration, log zerolog.Logger, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		target:   abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		fw:       fw,
	}, nil
}

// Run blocks until ctx is done, invoking the callback for writes to the
// target file. Watcher errors are logged, never fatal.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.log.Debug().Str("event", ev.Op.String()).Msg("transcript changed")
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			w.onChange()
		}
	}
}
