package scan

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mjstratton7/PrivacyScan/pkg/beacon"
	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/log"
	"github.com/mjstratton7/PrivacyScan/pkg/present"
	"github.com/mjstratton7/PrivacyScan/pkg/tracking"
)

// Stats counts what a session has seen.
type Stats struct {
	Markers   int
	Beacons   int
	Services  int
	URLFrames int
	Errors    int
	Ignored   int
	Dropped   uint64
}

// Session is one scan session.
type Session struct {
	mu sync.Mutex

	config Config
	id     string
	state  State

	tracker    *tracking.Manager
	window     *beacon.Window
	dispatcher *present.Dispatcher
	prints     *Fingerprinter

	ctx          context.Context
	cancel       context.CancelFunc
	browseCancel context.CancelFunc
	browseWG     sync.WaitGroup

	// chanMu serializes starting and stopping the channels.
	chanMu sync.Mutex

	// seen holds beacon identities presented in the current scan window.
	seen map[string]bool

	stats  Stats
	logger *slog.Logger
	events log.Logger
	now    func() time.Time
}

// NewSession creates an idle session presenting findings to sink.
func NewSession(config Config, sink present.Presenter) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	prints, err := NewFingerprinter()
	if err != nil {
		return nil, err
	}

	id := config.ID
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		config: config,
		id:     id,
		prints: prints,
		seen:   make(map[string]bool),
		logger: config.Logger,
		events: config.EventLogger,
		now:    time.Now,
	}
	if s.events == nil {
		s.events = log.NoopLogger{}
	}

	anchors := config.Anchors
	if anchors == nil {
		anchors = placeholderAnchors{}
	}
	s.tracker = tracking.NewManager(anchors, s.decodeLabel)
	s.tracker.SetLogger(config.Logger)

	s.dispatcher = present.NewDispatcher(sink, config.QueueSize)
	s.dispatcher.SetLogger(config.Logger)

	if config.Radio != nil {
		s.window = beacon.NewWindow(config.Radio)
		if err := s.window.SetPeriod(config.ScanPeriod); err != nil {
			return nil, err
		}
		s.window.OnStateChange(s.handleWindowState)
		s.window.OnTimeout(s.handleWindowTimeout)
		s.window.OnError(s.handleRadioError)
	}

	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tracker returns the marker lifecycle manager, for render queries.
func (s *Session) Tracker() *tracking.Manager {
	return s.tracker
}

// Window returns the beacon scan window, or nil without a radio.
func (s *Session) Window() *beacon.Window {
	return s.window
}

// Stats returns a copy of the session counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	st := s.stats
	s.mu.Unlock()
	st.Dropped = s.dispatcher.Dropped()
	return st
}

// Start starts presentation and the beacon and network channels.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return ErrClosed
	case StateIdle:
	default:
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.state = StateRunning
	s.mu.Unlock()

	s.dispatcher.Start()
	s.logState(StateIdle, StateRunning, "start")
	s.startChannels()
	return nil
}

// Pause stops the radio and the browse. Tracked markers are kept.
func (s *Session) Pause() error {
	if err := s.transition(StateRunning, StatePaused); err != nil {
		return err
	}
	s.stopChannels()
	s.logState(StateRunning, StatePaused, "pause")
	return nil
}

// Resume restarts the radio and the browse after Pause.
func (s *Session) Resume() error {
	if err := s.transition(StatePaused, StateRunning); err != nil {
		return err
	}
	s.logState(StatePaused, StateRunning, "resume")
	s.startChannels()
	return nil
}

// Rescan opens a new beacon scan window if none is running.
func (s *Session) Rescan() error {
	if s.State() != StateRunning {
		return ErrNotRunning
	}
	if s.window == nil {
		return nil
	}
	err := s.startWindow()
	if errors.Is(err, beacon.ErrScanInProgress) {
		return nil
	}
	return err
}

// Close stops every channel, releases every marker anchor and flushes
// pending findings. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	old := s.state
	if old == StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = StateClosed
	cancel := s.cancel
	s.mu.Unlock()

	s.stopChannels()
	if s.config.Browser != nil {
		s.config.Browser.Stop()
	}
	if cancel != nil {
		cancel()
	}

	released := s.tracker.Reset()
	s.dispatcher.Stop()

	s.debugLog("scan: session closed", "session", s.id, "released", released)
	s.logState(old, StateClosed, "close")
	return nil
}

// ApplyFrame applies one frame's marker reports and presents the resulting
// identifications.
func (s *Session) ApplyFrame(reports []tracking.Report) ([]tracking.Event, error) {
	if s.State() != StateRunning {
		return nil, ErrNotRunning
	}

	events := s.tracker.Apply(reports)
	for _, ev := range events {
		s.handleTrackingEvent(ev)
	}
	return events, nil
}

func (s *Session) transition(from, to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}
	if s.state != from {
		return ErrNotRunning
	}
	s.state = to
	return nil
}

func (s *Session) startChannels() {
	s.chanMu.Lock()
	defer s.chanMu.Unlock()

	if s.window != nil {
		if err := s.startWindow(); err != nil {
			s.debugLog("scan: beacon window not started", "error", err)
		}
	}
	if s.config.Browser != nil {
		s.startBrowse()
	}
}

func (s *Session) stopChannels() {
	s.chanMu.Lock()
	defer s.chanMu.Unlock()

	if s.window != nil {
		s.window.Stop()
	}

	s.mu.Lock()
	cancel := s.browseCancel
	s.browseCancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.browseWG.Wait()
}

func (s *Session) startWindow() error {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if err := s.window.Start(ctx, s.handleSighting); err != nil {
		return err
	}
	return nil
}

func (s *Session) startBrowse() {
	s.mu.Lock()
	ctx, cancel := context.WithCancel(s.ctx)
	s.browseCancel = cancel
	s.mu.Unlock()

	services, err := s.config.Browser.BrowseIdent(ctx)
	if err != nil {
		cancel()
		s.debugLog("scan: browse failed", "error", err)
		s.logError(log.ChannelNetwork, "", "", err, "browse")
		return
	}
	s.logScan(log.ScanEntityBrowse, "IDLE", "BROWSING", "")

	s.browseWG.Add(1)
	go func() {
		defer s.browseWG.Done()
		for svc := range services {
			s.handleService(svc)
		}
		s.logScan(log.ScanEntityBrowse, "BROWSING", "IDLE", "")
	}()
}

func (s *Session) decodeLabel(label string) (*ident.DeviceRecord, error) {
	return ident.DecodeLabel(label, s.config.Tables)
}

func (s *Session) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

// placeholderAnchors hands out anchors with nothing behind them.
type placeholderAnchors struct{}

type placeholderAnchor struct{}

func (placeholderAnchors) Acquire(int, any) (tracking.Anchor, error) {
	return placeholderAnchor{}, nil
}

func (placeholderAnchor) Release() {}
