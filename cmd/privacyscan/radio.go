package main

import (
	"context"
	"encoding/binary"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/mjstratton7/PrivacyScan/pkg/beacon"
)

var eddystoneUUID = bluetooth.New16BitUUID(beacon.EddystoneUUID)

// bleRadio scans with a host Bluetooth adapter.
type bleRadio struct {
	adapter *bluetooth.Adapter

	enableOnce sync.Once
	enableErr  error
}

func newBLERadio(adapter *bluetooth.Adapter) *bleRadio {
	return &bleRadio{adapter: adapter}
}

// Scan implements beacon.Radio.
func (r *bleRadio) Scan(ctx context.Context, fn func(beacon.Sighting)) error {
	r.enableOnce.Do(func() {
		r.enableErr = r.adapter.Enable()
	})
	if r.enableErr != nil {
		return r.enableErr
	}

	stop := context.AfterFunc(ctx, func() {
		_ = r.adapter.StopScan()
	})
	defer stop()

	return r.adapter.Scan(func(_ *bluetooth.Adapter, res bluetooth.ScanResult) {
		fn(toSighting(res))
	})
}

// StopScan implements beacon.Radio.
func (r *bleRadio) StopScan() error {
	return r.adapter.StopScan()
}

// toSighting converts a scan result. Some host stacks only expose parsed
// fields, so the Eddystone service data and name are re-encoded as AD
// structures when the raw payload is missing.
func toSighting(res bluetooth.ScanResult) beacon.Sighting {
	s := beacon.Sighting{
		Name:    res.LocalName(),
		Address: res.Address.String(),
		RSSI:    int(res.RSSI),
	}

	if raw := res.Bytes(); len(raw) > 0 {
		s.Payload = append([]byte(nil), raw...)
		return s
	}

	var payload []byte
	for _, sd := range res.ServiceData() {
		if sd.UUID != eddystoneUUID {
			continue
		}
		data := binary.LittleEndian.AppendUint16(nil, beacon.EddystoneUUID)
		payload = beacon.AppendStructure(payload, beacon.ADTypeServiceData16, append(data, sd.Data...))
	}
	if s.Name != "" {
		payload = beacon.AppendStructure(payload, beacon.ADTypeCompleteLocalName, []byte(s.Name))
	}
	s.Payload = payload
	return s
}
