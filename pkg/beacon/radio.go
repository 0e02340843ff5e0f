package beacon

import (
	"context"
	"sync"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// Sighting is one received advertisement.
type Sighting struct {
	Name    string
	Address string
	RSSI    int

	// Payload holds the raw AD structures.
	Payload []byte
}

// Source returns the "name (address)" form shown to the user.
func (s Sighting) Source() string {
	return s.Name + " (" + s.Address + ")"
}

// Decode extracts the UID instance id from the sighting and decodes it.
func Decode(s Sighting, t *tables.Tables) (*ident.DeviceRecord, error) {
	id, err := InstanceID(s.Payload)
	if err != nil {
		return nil, err
	}
	return ident.DecodeInstanceID(id, t)
}

// Radio is a BLE scanner.
type Radio interface {
	// Scan delivers sightings to fn until StopScan is called or ctx is done.
	// fn may be called from any goroutine.
	Scan(ctx context.Context, fn func(Sighting)) error

	// StopScan ends a running Scan.
	StopScan() error
}

// ScriptedRadio replays a fixed list of sightings on every scan, then waits
// to be stopped. It stands in for a real adapter in replays and tests.
type ScriptedRadio struct {
	mu        sync.Mutex
	sightings []Sighting
	stop      chan struct{}
	scans     int
}

// NewScriptedRadio creates a radio that replays sightings.
func NewScriptedRadio(sightings ...Sighting) *ScriptedRadio {
	return &ScriptedRadio{sightings: sightings}
}

// Scan implements Radio.
func (r *ScriptedRadio) Scan(ctx context.Context, fn func(Sighting)) error {
	r.mu.Lock()
	stop := make(chan struct{})
	r.stop = stop
	r.scans++
	sightings := append([]Sighting(nil), r.sightings...)
	r.mu.Unlock()

	for _, s := range sightings {
		select {
		case <-stop:
			return nil
		case <-ctx.Done():
			return nil
		default:
		}
		fn(s)
	}

	select {
	case <-stop:
	case <-ctx.Done():
	}
	return nil
}

// StopScan implements Radio.
func (r *ScriptedRadio) StopScan() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	return nil
}

// Scans returns how many scans have been started.
func (r *ScriptedRadio) Scans() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scans
}
