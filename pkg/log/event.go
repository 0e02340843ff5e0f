package log

import (
	"time"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
)

// Event represents a session log event from any channel.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the scan session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Channel the event came from.
	Channel Channel `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Source identifies the sensed thing: a marker label, a beacon address
	// fingerprint or a service instance name.
	Source string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Tracking *TrackingEvent  `cbor:"10,keyasint,omitempty"`
	Ident    *IdentEvent     `cbor:"11,keyasint,omitempty"`
	Scan     *ScanEvent      `cbor:"12,keyasint,omitempty"`
	Error    *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// Channel identifies the sensing channel of an event.
type Channel uint8

const (
	// ChannelMarker is the visual marker channel.
	ChannelMarker Channel = 0
	// ChannelBeacon is the BLE advertisement channel.
	ChannelBeacon Channel = 1
	// ChannelNetwork is the DNS-SD channel.
	ChannelNetwork Channel = 2
	// ChannelSession is for events about the session itself.
	ChannelSession Channel = 3
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelMarker:
		return "MARKER"
	case ChannelBeacon:
		return "BEACON"
	case ChannelNetwork:
		return "NETWORK"
	case ChannelSession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryTracking indicates a marker lifecycle transition.
	CategoryTracking Category = 0
	// CategoryIdent indicates an identification.
	CategoryIdent Category = 1
	// CategoryScan indicates a scan or session state change.
	CategoryScan Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTracking:
		return "TRACKING"
	case CategoryIdent:
		return "IDENT"
	case CategoryScan:
		return "SCAN"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// TrackingEvent captures a marker lifecycle transition.
type TrackingEvent struct {
	// MarkerID is the marker's index in the marker database.
	MarkerID int `cbor:"1,keyasint"`

	// Transition is the lifecycle event name (FOUND, LOST, ...).
	Transition string `cbor:"2,keyasint"`

	// State and Method are the reported tracking state and method.
	State  string `cbor:"3,keyasint,omitempty"`
	Method string `cbor:"4,keyasint,omitempty"`
}

// IdentEvent captures a successful identification or a non-identifying
// beacon frame.
type IdentEvent struct {
	// Raw is the encoded identifier: a label or an instance id.
	Raw string `cbor:"1,keyasint"`

	// Record is the decoded device record.
	Record *ident.DeviceRecord `cbor:"2,keyasint,omitempty"`

	// RSSI is the received signal strength for beacon sightings.
	RSSI *int `cbor:"3,keyasint,omitempty"`

	// URL is set for Eddystone URL frames, which carry no record.
	URL string `cbor:"4,keyasint,omitempty"`
}

// ScanEvent captures scan window and session lifecycle events.
type ScanEvent struct {
	// Entity being changed.
	Entity ScanEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ScanEntity indicates what changed state.
type ScanEntity uint8

const (
	// ScanEntitySession indicates a session state change.
	ScanEntitySession ScanEntity = 0
	// ScanEntityWindow indicates a BLE scan window state change.
	ScanEntityWindow ScanEntity = 1
	// ScanEntityBrowse indicates an mDNS browse state change.
	ScanEntityBrowse ScanEntity = 2
)

// String returns the scan entity name.
func (s ScanEntity) String() string {
	switch s {
	case ScanEntitySession:
		return "SESSION"
	case ScanEntityWindow:
		return "WINDOW"
	case ScanEntityBrowse:
		return "BROWSE"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures decode and radio failures.
type ErrorEventData struct {
	// Kind is the short error kind, e.g. "SegmentCountMismatch".
	Kind string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Raw is the input that failed to decode, if any.
	Raw string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
