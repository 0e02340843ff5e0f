// Package present is the boundary where identifications from every channel
// are shown to the user.
package present

import (
	"time"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
)

// Channel identifies how a device was sensed.
type Channel uint8

const (
	// ChannelMarker is a recognized visual marker.
	ChannelMarker Channel = iota

	// ChannelBeacon is a BLE advertisement.
	ChannelBeacon

	// ChannelNetwork is a DNS-SD service instance.
	ChannelNetwork
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelMarker:
		return "marker"
	case ChannelBeacon:
		return "beacon"
	case ChannelNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Finding is one identification, successful or not.
type Finding struct {
	Channel Channel

	// Source is the marker label, "name (address)" for beacons or the
	// service instance name.
	Source string

	// Record is nil when Err is set.
	Record *ident.DeviceRecord
	Err    error

	At time.Time
}

// Presenter shows findings. Implementations passed to a Dispatcher are only
// ever called from one goroutine.
type Presenter interface {
	Present(f Finding)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(f Finding)

// Present calls fn(f).
func (fn PresenterFunc) Present(f Finding) {
	fn(f)
}
