// Package watcher re-runs the rename pass when the target directory or the reference file changes.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	DebounceMs     int      `yaml:"debounceMs,omitempty" json:"debounceMs,omitempty"`         // Quiet period before a pass (default: 2000)
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty" json:"ignorePatterns,omitempty"` // Glob patterns to ignore (e.g., "*.part")
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceMs:     2000,
		IgnorePatterns: DefaultIgnorePatterns(),
	}
}

// WatchSummary contains stats from the watch session.
type WatchSummary struct {
	Passes        int
	FilesRenamed  int
	FailedPasses  int
	EventsSkipped int
	Duration      time.Duration
}

// PassHandler runs one complete rename pass.
// It returns the filenames it created so that the resulting events are not
// mistaken for new arrivals.
type PassHandler func() (created []string, err error)

// ErrorHandler is called for watcher and pass errors.
type ErrorHandler func(err error)

// passKey is the single debounce key shared by all triggering events.
const passKey = "pass"

// Watcher monitors the target directory and the reference file.
type Watcher struct {
	config     *WatchConfig
	handler    PassHandler
	onError    ErrorHandler
	fsWatcher  *fsnotify.Watcher
	fileFilter *FileFilter
	debouncer  *Debouncer
	done       chan struct{}
	wg         sync.WaitGroup
	startTime  time.Time

	directory string
	reference string

	passMu sync.Mutex // serializes passes

	mu            sync.Mutex
	running       bool
	deferred      []string
	created       map[string]bool
	passes        int
	filesRenamed  int
	failedPasses  int
	eventsSkipped int
}

// New creates a new Watcher with the given configuration.
// If config is nil, default configuration is used.
func New(config *WatchConfig, handler PassHandler, onError ErrorHandler) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	w := &Watcher{
		config:  config,
		handler: handler,
		onError: onError,
		created: make(map[string]bool),
		done:    make(chan struct{}),
	}
	w.debouncer = NewDebouncer(time.Duration(config.DebounceMs)*time.Millisecond, func(string) {
		w.RunPass()
	})
	return w
}

// Start begins watching directory and referencePath.
// Only files with one of the given extensions trigger a pass from the directory;
// any write to the reference file triggers one too. The watcher runs until Stop is called.
func (w *Watcher) Start(directory, referencePath string, extensions []string) error {
	var err error
	w.directory, err = filepath.Abs(directory)
	if err != nil {
		return err
	}
	w.reference, err = filepath.Abs(referencePath)
	if err != nil {
		return err
	}
	w.fileFilter = NewFileFilter(w.config.IgnorePatterns, extensions)

	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Editors replace files atomically, so the reference file is watched through its directory.
	for _, dir := range []string{w.directory, filepath.Dir(w.reference)} {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.fsWatcher.Close()
			return err
		}
	}

	w.startTime = time.Now()
	w.done = make(chan struct{})

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop shuts down the watcher, waits for a running pass and returns a summary of the session.
func (w *Watcher) Stop() *WatchSummary {
	close(w.done)
	w.wg.Wait()
	w.debouncer.CancelAll()

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}

	w.passMu.Lock()
	defer w.passMu.Unlock()
	w.mu.Lock()
	defer w.mu.Unlock()

	return &WatchSummary{
		Passes:        w.passes,
		FilesRenamed:  w.filesRenamed,
		FailedPasses:  w.failedPasses,
		EventsSkipped: w.eventsSkipped,
		Duration:      time.Since(w.startTime),
	}
}

// processEvents handles file system events from fsnotify.
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.isTrigger(event) {
				w.debouncer.Add(passKey)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// isTrigger decides whether an event should schedule a pass.
// Directory events that arrive while a pass is running are held back until
// the pass reports which files it created.
func (w *Watcher) isTrigger(event fsnotify.Event) bool {
	path := filepath.Clean(event.Name)

	if path == w.reference {
		return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
	}
	if filepath.Dir(path) != w.directory || !event.Has(fsnotify.Create) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		w.deferred = append(w.deferred, path)
		return false
	}
	return w.isNewArrival(path)
}

// isNewArrival reports whether a created path is a relevant file that the
// watcher did not create itself. w.mu must be held.
func (w *Watcher) isNewArrival(path string) bool {
	name := filepath.Base(path)
	if w.created[name] {
		delete(w.created, name)
		return false
	}
	if !w.fileFilter.Relevant(path) {
		w.eventsSkipped++
		return false
	}
	return true
}

// RunPass runs the handler once, serialized with any other pass.
func (w *Watcher) RunPass() {
	if w.handler == nil {
		return
	}

	w.passMu.Lock()
	defer w.passMu.Unlock()

	select {
	case <-w.done:
		return // stopped while the timer was firing
	default:
	}

	w.mu.Lock()
	w.running = true
	w.mu.Unlock()

	created, err := w.handler()

	w.mu.Lock()
	w.running = false
	w.passes++
	w.filesRenamed += len(created)
	for _, name := range created {
		w.created[name] = true
	}
	if err != nil {
		w.failedPasses++
	}
	retrigger := false
	for _, path := range w.deferred {
		if w.isNewArrival(path) {
			retrigger = true
		}
	}
	w.deferred = nil
	w.mu.Unlock()

	if retrigger {
		w.debouncer.Add(passKey)
	}
	if err != nil && w.onError != nil {
		w.onError(err)
	}
}
