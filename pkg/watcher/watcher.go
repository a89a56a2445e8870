// Package watcher reports edits to the content file so a running reader can
// reload it. fsnotify is used when available; polling takes over when it is
// not, or when FOLIO_FORCE_POLL is set.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/folio/pkg/debug"
)

// DefaultPollInterval is the stat interval in polling mode.
const DefaultPollInterval = time.Second

var (
	ErrFileRemoved    = errors.New("content file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Mode is how the watcher learns about changes.
type Mode int

const (
	ModeStopped Mode = iota
	ModeNotify
	ModePolling
)

func (m Mode) String() string {
	switch m {
	case ModeNotify:
		return "fsnotify"
	case ModePolling:
		return "polling"
	default:
		return "stopped"
	}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithPollInterval sets the stat interval for polling mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.pollInterval = d
		}
	}
}

// WithOnChange sets a callback run (on the watcher goroutine) after each
// debounced change.
func WithOnChange(fn func()) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the error callback.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithForcePoll skips fsnotify.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) {
		w.forcePoll = force
	}
}

// stamp identifies a version of the file for polling.
type stamp struct {
	mtime time.Time
	size  int64
}

func (s stamp) same(o stamp) bool {
	return s.mtime.Equal(o.mtime) && s.size == o.size
}

func statStamp(path string) (stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return stamp{}, err
	}
	return stamp{mtime: info.ModTime(), size: info.Size()}, nil
}

// Watcher watches one content file.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool
	onChange     func()
	onError      func(error)

	debouncer *Debouncer
	changeCh  chan struct{}

	mu      sync.RWMutex
	mode    Mode
	fsType  FilesystemType
	cancel  context.CancelFunc
	fsw     *fsnotify.Watcher
	last    stamp
	wg      sync.WaitGroup
	running bool
}

// New creates a watcher for path. Nothing happens until Start.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:         abs,
		pollInterval: DefaultPollInterval,
		onChange:     func() {},
		onError:      func(error) {},
		changeCh:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounce)
	return w, nil
}

// Start begins watching until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return ErrAlreadyStarted
	}

	st, err := statStamp(w.path)
	if err != nil && os.IsPermission(err) {
		return ErrPermission
	}
	// A missing file is fine; it may be created later.
	w.last = st

	ctx, w.cancel = context.WithCancel(ctx)

	w.fsType = DetectFilesystemType(filepath.Dir(w.path))
	w.mode = ModePolling
	if w.fsType.IsRemote() {
		debug.Log("watcher: %s is on %s, polling", w.path, w.fsType)
	} else if !w.forcePoll && !envBool("FOLIO_FORCE_POLL") {
		if fsw, err := fsnotify.NewWatcher(); err == nil {
			// The directory, not the file: editors that save by rename
			// would otherwise detach the watch.
			if err := fsw.Add(filepath.Dir(w.path)); err == nil {
				w.fsw = fsw
				w.mode = ModeNotify
			} else {
				fsw.Close()
				debug.Log("watcher: fsnotify add failed, polling: %v", err)
			}
		} else {
			debug.Log("watcher: fsnotify unavailable, polling: %v", err)
		}
	}

	w.wg.Add(1)
	if w.mode == ModeNotify {
		go w.runNotify(ctx, w.fsw)
	} else {
		go w.runPolling(ctx)
	}
	w.running = true
	debug.Log("watcher: watching %s via %s", w.path, w.mode)
	return nil
}

// Stop ends watching and waits for the watcher goroutine to exit. The
// Changed channel is left open so a blocked receiver simply never fires.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mode = ModeStopped
	w.cancel()
	if w.fsw != nil {
		w.fsw.Close()
		w.fsw = nil
	}
	w.mu.Unlock()

	w.debouncer.Cancel()
	w.wg.Wait()
}

// Mode reports the active watch mode.
func (w *Watcher) Mode() Mode {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mode
}

// FilesystemType reports what Start detected under the watched file.
func (w *Watcher) FilesystemType() FilesystemType {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fsType
}

// IsPolling reports whether the watcher fell back to polling.
func (w *Watcher) IsPolling() bool {
	return w.Mode() == ModePolling
}

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Changed receives after each debounced change.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

// PollInterval returns the polling interval.
func (w *Watcher) PollInterval() time.Duration {
	return w.pollInterval
}

func (w *Watcher) runNotify(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	target := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove):
				w.onError(ErrFileRemoved)
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create), ev.Has(fsnotify.Rename):
				w.debouncer.Trigger(w.notify)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) runPolling(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	st, err := statStamp(w.path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			w.mu.Lock()
			hadFile := !w.last.mtime.IsZero()
			w.last = stamp{}
			w.mu.Unlock()
			if hadFile {
				w.onError(ErrFileRemoved)
			}
		case os.IsPermission(err):
			w.onError(ErrPermission)
		default:
			w.onError(err)
		}
		return
	}

	w.mu.Lock()
	changed := !st.same(w.last)
	w.last = st
	w.mu.Unlock()

	if changed {
		w.debouncer.Trigger(w.notify)
	}
}

func (w *Watcher) notify() {
	if !w.IsStarted() {
		return
	}
	w.onChange()
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
