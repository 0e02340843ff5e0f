package beacon

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Scan period limits.
const (
	// DefaultScanPeriod is how long a scan runs before it stops itself.
	DefaultScanPeriod = 10 * time.Second

	// MaxScanPeriod is the longest allowed scan period.
	MaxScanPeriod = 10 * time.Minute
)

// WindowState is the state of a scan window.
type WindowState uint8

const (
	// WindowIdle means no scan is running.
	WindowIdle WindowState = iota

	// WindowScanning means the radio is scanning.
	WindowScanning
)

// String returns a human-readable state name.
func (s WindowState) String() string {
	switch s {
	case WindowIdle:
		return "IDLE"
	case WindowScanning:
		return "SCANNING"
	default:
		return "UNKNOWN"
	}
}

// Window errors.
var (
	ErrScanInProgress = errors.New("scan already in progress")
	ErrInvalidPeriod  = errors.New("invalid scan period")
)

// Window runs one bounded scan at a time.
type Window struct {
	mu sync.RWMutex

	radio  Radio
	state  WindowState
	period time.Duration

	timer     *time.Timer
	startedAt time.Time
	cancel    context.CancelFunc
	done      chan struct{}

	// gen identifies the current scan so a stale timer or a late Scan
	// return from a previous scan is ignored.
	gen uint64

	onStateChange func(oldState, newState WindowState)
	onTimeout     func()
	onError       func(error)
}

// NewWindow creates an idle window around radio.
func NewWindow(radio Radio) *Window {
	done := make(chan struct{})
	close(done)
	return &Window{
		radio:  radio,
		state:  WindowIdle,
		period: DefaultScanPeriod,
		done:   done,
	}
}

// State returns the current window state.
func (w *Window) State() WindowState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// IsScanning returns true while a scan runs.
func (w *Window) IsScanning() bool {
	return w.State() == WindowScanning
}

// SetPeriod sets the scan period used by the next Start.
func (w *Window) SetPeriod(d time.Duration) error {
	if d <= 0 || d > MaxScanPeriod {
		return ErrInvalidPeriod
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.period = d
	return nil
}

// Period returns the scan period.
func (w *Window) Period() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.period
}

// RemainingTime returns the time left in the running scan, or 0.
func (w *Window) RemainingTime() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.state != WindowScanning {
		return 0
	}
	remaining := w.period - time.Since(w.startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Done returns a channel closed when the current scan's radio call has
// returned.
func (w *Window) Done() <-chan struct{} {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.done
}

// Start begins a scan that delivers sightings to fn and stops after the
// scan period. Returns ErrScanInProgress if a scan is already running.
func (w *Window) Start(ctx context.Context, fn func(Sighting)) error {
	w.mu.Lock()
	if w.state == WindowScanning {
		w.mu.Unlock()
		return ErrScanInProgress
	}

	w.gen++
	gen := w.gen
	scanCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	w.state = WindowScanning
	w.startedAt = time.Now()
	w.cancel = cancel
	w.done = done
	w.timer = time.AfterFunc(w.period, func() {
		w.handleTimeout(gen)
	})
	stateChangeFn := w.onStateChange
	w.mu.Unlock()

	if stateChangeFn != nil {
		stateChangeFn(WindowIdle, WindowScanning)
	}

	go func() {
		err := w.radio.Scan(scanCtx, fn)
		close(done)
		if scanCtx.Err() != nil {
			err = nil
		}
		w.finish(gen, err)
	}()

	return nil
}

// Stop ends the running scan early. OnTimeout is not called.
func (w *Window) Stop() {
	w.mu.Lock()
	if w.state != WindowScanning {
		w.mu.Unlock()
		return
	}
	stateChangeFn := w.closeLocked()
	w.mu.Unlock()

	_ = w.radio.StopScan()
	if stateChangeFn != nil {
		stateChangeFn(WindowScanning, WindowIdle)
	}
}

// OnStateChange sets a callback for state changes.
func (w *Window) OnStateChange(fn func(oldState, newState WindowState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onStateChange = fn
}

// OnTimeout sets a callback for when a scan period expires.
func (w *Window) OnTimeout(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onTimeout = fn
}

// OnError sets a callback for when the radio fails during a scan.
func (w *Window) OnError(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// handleTimeout is called when the scan timer expires.
func (w *Window) handleTimeout(gen uint64) {
	w.mu.Lock()
	if gen != w.gen || w.state != WindowScanning {
		w.mu.Unlock()
		return
	}
	stateChangeFn := w.closeLocked()
	timeoutFn := w.onTimeout
	w.mu.Unlock()

	_ = w.radio.StopScan()

	// Callbacks run outside the lock so they may restart the window.
	if stateChangeFn != nil {
		stateChangeFn(WindowScanning, WindowIdle)
	}
	if timeoutFn != nil {
		timeoutFn()
	}
}

// finish is called when the radio's Scan returns on its own.
func (w *Window) finish(gen uint64, err error) {
	w.mu.Lock()
	if gen != w.gen || w.state != WindowScanning {
		w.mu.Unlock()
		return
	}
	stateChangeFn := w.closeLocked()
	errorFn := w.onError
	w.mu.Unlock()

	if stateChangeFn != nil {
		stateChangeFn(WindowScanning, WindowIdle)
	}
	if err != nil && errorFn != nil {
		errorFn(err)
	}
}

// closeLocked moves to idle and returns the state change callback.
func (w *Window) closeLocked() func(oldState, newState WindowState) {
	w.state = WindowIdle
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return w.onStateChange
}
