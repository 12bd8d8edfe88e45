package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a config file when it changes on disk
// The parent directory is watched so rename-over-write saves are seen
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
}

// NewWatcher starts watching the directory holding path
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		fsw:      fsw,
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// SetDebounce overrides the quiet window; call before Run
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done, calling onChange with every valid reload
// Invalid files are logged and skipped; the previous config stays in effect
func (w *Watcher) Run(ctx context.Context, onChange func(*Config)) error {
	defer w.fsw.Close()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watch error", zap.Error(err))

		case <-timerC:
			timerC = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.logger.Warn("config reload rejected", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.logger.Info("config reloaded", zap.String("path", w.path))
			onChange(cfg)
		}
	}
}
