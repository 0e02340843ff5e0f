package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mjstratton7/PrivacyScan/pkg/beacon"
	"github.com/mjstratton7/PrivacyScan/pkg/scan"
	"github.com/mjstratton7/PrivacyScan/pkg/tracking"
)

// defaultNamespace is the UID namespace used for scripted beacons.
var defaultNamespace = [10]byte{'p', 'r', 'i', 'v', 'a', 'c', 'y', 's', 'c', 'n'}

// Script is a recorded or hand-written session: marker frames applied in
// order and beacon sightings replayed in every scan window.
type Script struct {
	// Interval is the pause between frames (default: 500ms).
	Interval time.Duration `yaml:"interval"`

	Frames    []ScriptFrame    `yaml:"frames"`
	Sightings []ScriptSighting `yaml:"sightings"`
}

// ScriptFrame is one frame of marker reports.
type ScriptFrame struct {
	ScriptReports []ScriptReport `yaml:"reports"`
}

// ScriptReport is one marker report.
type ScriptReport struct {
	ID     int    `yaml:"id"`
	State  string `yaml:"state"`
	Method string `yaml:"method"`
	Label  string `yaml:"label"`
}

// ScriptSighting is one beacon advertisement. Either Instance (a UID
// instance id, built into a UID payload) or Payload (raw AD bytes in hex)
// must be set.
type ScriptSighting struct {
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	RSSI     int    `yaml:"rssi"`
	Instance string `yaml:"instance"`
	Payload  string `yaml:"payload"`
}

// LoadScript reads a replay script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript parses a replay script from YAML bytes.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse replay script: %w", err)
	}
	if s.Interval <= 0 {
		s.Interval = 500 * time.Millisecond
	}
	for i, sg := range s.Sightings {
		if sg.Instance == "" && sg.Payload == "" {
			return nil, fmt.Errorf("sighting %d (%s): instance or payload required", i, sg.Name)
		}
	}
	return &s, nil
}

// Reports converts a frame to tracking reports.
func (f ScriptFrame) Reports() []tracking.Report {
	out := make([]tracking.Report, len(f.ScriptReports))
	for i, r := range f.ScriptReports {
		out[i] = tracking.Report{
			ID:     r.ID,
			State:  tracking.ParseState(r.State),
			Method: tracking.ParseMethod(r.Method),
			Label:  r.Label,
		}
	}
	return out
}

// Sighting converts a scripted sighting to a beacon sighting.
func (sg ScriptSighting) Sighting() (beacon.Sighting, error) {
	s := beacon.Sighting{Name: sg.Name, Address: sg.Address, RSSI: sg.RSSI}
	if sg.Payload != "" {
		payload, err := hex.DecodeString(sg.Payload)
		if err != nil {
			return s, fmt.Errorf("sighting %s: invalid payload: %w", sg.Name, err)
		}
		s.Payload = payload
		return s, nil
	}

	inst, err := beacon.ParseInstance(sg.Instance)
	if err != nil {
		return s, err
	}
	s.Payload = beacon.UIDPayload(sg.Name, -21, defaultNamespace, inst)
	return s, nil
}

// Radio returns a radio that replays the script's sightings.
func (s *Script) Radio() (*beacon.ScriptedRadio, error) {
	sightings := make([]beacon.Sighting, 0, len(s.Sightings))
	for _, sg := range s.Sightings {
		sighting, err := sg.Sighting()
		if err != nil {
			return nil, err
		}
		sightings = append(sightings, sighting)
	}
	return beacon.NewScriptedRadio(sightings...), nil
}

// runReplay applies the script's frames to sess, one per interval.
func runReplay(ctx context.Context, sess *scan.Session, script *Script) error {
	ticker := time.NewTicker(script.Interval)
	defer ticker.Stop()

	for i, frame := range script.Frames {
		// Frames are dropped while the session is paused.
		if _, err := sess.ApplyFrame(frame.Reports()); err != nil && !errors.Is(err, scan.ErrNotRunning) {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	log.Printf("Replay finished (%d frames)", len(script.Frames))
	return nil
}
