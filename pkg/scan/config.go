package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mjstratton7/PrivacyScan/pkg/beacon"
	"github.com/mjstratton7/PrivacyScan/pkg/discovery"
	"github.com/mjstratton7/PrivacyScan/pkg/log"
	"github.com/mjstratton7/PrivacyScan/pkg/present"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
	"github.com/mjstratton7/PrivacyScan/pkg/tracking"
)

// Session errors.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNotRunning     = errors.New("session not running")
	ErrAlreadyStarted = errors.New("session already started")
	ErrClosed         = errors.New("session closed")
)

// State is the session lifecycle state.
type State uint8

const (
	// StateIdle - session created but not started.
	StateIdle State = iota

	// StateRunning - channels are being sensed.
	StateRunning

	// StatePaused - radio and browse stopped, markers kept.
	StatePaused

	// StateClosed - session torn down.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Session.
type Config struct {
	// ID is the session id. If empty, a random UUID is used.
	ID string

	// Tables resolves keys and indices. Required.
	Tables *tables.Tables

	// Anchors creates marker anchors. If nil, anchors are placeholders and
	// the marker channel still tracks lifecycle.
	Anchors tracking.AnchorProvider

	// Radio is the BLE scanner. If nil, the beacon channel is disabled.
	Radio beacon.Radio

	// Browser browses for network identification services. If nil, the
	// network channel is disabled.
	Browser discovery.Browser

	// ScanPeriod is the length of one BLE scan window (default: 10s).
	ScanPeriod time.Duration

	// Continuous reopens the scan window each time it closes. Otherwise a
	// new window is only opened by Rescan or Resume.
	Continuous bool

	// NameMarker is the substring a beacon name must contain, compared
	// case-insensitively (default: "IDENT").
	NameMarker string

	// QueueSize is the presentation queue size (default: 64).
	QueueSize int

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives session log events.
	// If nil, events are discarded.
	EventLogger log.Logger
}

// DefaultConfig returns a config with default values and the built-in
// English tables.
func DefaultConfig() Config {
	return Config{
		Tables:     tables.Builtin(),
		ScanPeriod: beacon.DefaultScanPeriod,
		NameMarker: beacon.NameMarker,
		QueueSize:  present.DefaultQueueSize,
	}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Tables == nil {
		return fmt.Errorf("%w: tables are required", ErrInvalidConfig)
	}
	if c.ScanPeriod <= 0 || c.ScanPeriod > beacon.MaxScanPeriod {
		return fmt.Errorf("%w: scan period %v out of range", ErrInvalidConfig, c.ScanPeriod)
	}
	if c.NameMarker == "" {
		return fmt.Errorf("%w: name marker is empty", ErrInvalidConfig)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("%w: negative queue size", ErrInvalidConfig)
	}
	return nil
}
