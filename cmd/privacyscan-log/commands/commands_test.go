package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExtension)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 10, 19, 14, 25, 1, 123456000, time.UTC)
	rssi := -61
	return []log.Event{
		{
			Timestamp: ts,
			SessionID: "6f1c2e4a-0000-4000-8000-000000000001",
			Channel:   log.ChannelSession,
			Category:  log.CategoryScan,
			Scan:      &log.ScanEvent{Entity: log.ScanEntitySession, OldState: "IDLE", NewState: "RUNNING", Reason: "start"},
		},
		{
			Timestamp: ts.Add(time.Second),
			SessionID: "6f1c2e4a-0000-4000-8000-000000000001",
			Channel:   log.ChannelBeacon,
			Category:  log.CategoryIdent,
			Source:    "IDENT-CAM (fp:0011223344556677)",
			Ident: &log.IdentEvent{
				Raw: "011010011000",
				Record: &ident.DeviceRecord{
					Type:       "Camera",
					Brand:      "Arlo",
					Model:      "Arlo",
					Categories: []string{"Audio", "Video"},
				},
				RSSI: &rssi,
			},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			SessionID: "6f1c2e4a-0000-4000-8000-000000000001",
			Channel:   log.ChannelMarker,
			Category:  log.CategoryTracking,
			Source:    "[LIGHT][HUE][A19][PRESENCE].png",
			Tracking:  &log.TrackingEvent{MarkerID: 3, Transition: "FOUND", State: "TRACKING", Method: "FULL_TRACKING"},
		},
		{
			Timestamp: ts.Add(3 * time.Second),
			SessionID: "6f1c2e4a-0000-4000-8000-000000000001",
			Channel:   log.ChannelNetwork,
			Category:  log.CategoryError,
			Source:    "mystery",
			Error:     &log.ErrorEventData{Kind: "UnknownKey", Message: `ident: unknown key: brand "ACME"`, Raw: "[CAMERA][ACME][X][].png", Context: "label decode"},
		},
	}
}

func TestFormatIdentEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[1])
	output := buf.String()

	for _, want := range []string{
		"2026-10-19T14:25:02.123456Z",
		"[sess:6f1c2e4a]",
		"BEACON",
		"IDENT Device",
		"Source: IDENT-CAM (fp:0011223344556677)",
		"Raw: 011010011000",
		"Device: Camera Arlo Arlo",
		"Data: Audio, Video",
		"RSSI: -61 dBm",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestFormatOtherEvents(t *testing.T) {
	events := sampleEvents()
	tests := []struct {
		event log.Event
		want  []string
	}{
		{events[0], []string{"SESSION SCAN SESSION", "IDLE -> RUNNING", "Reason: start"}},
		{events[2], []string{"MARKER  TRACKING FOUND", "Marker: 3", "State: TRACKING (FULL_TRACKING)"}},
		{events[3], []string{"ERROR UnknownKey", "Raw: [CAMERA][ACME][X][].png", "Context: label decode"}},
		{log.Event{Channel: log.ChannelBeacon, Ident: &log.IdentEvent{URL: "https://hue.com"}}, []string{"URL: https://hue.com", "IDENT URL"}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		formatEvent(&buf, tt.event)
		for _, want := range tt.want {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %q in output, got:\n%s", want, buf.String())
			}
		}
	}
}

func TestRunViewFilters(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	beacon := log.ChannelBeacon
	errs := log.CategoryError
	tests := []struct {
		name   string
		filter ViewFilter
		want   int
	}{
		{"All", ViewFilter{}, 4},
		{"Channel", ViewFilter{Channel: &beacon}, 1},
		{"Category", ViewFilter{Category: &errs}, 1},
		{"Source", ViewFilter{Source: "mystery"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RunView(path, tt.filter, &buf); err != nil {
				t.Fatalf("RunView failed: %v", err)
			}
			if got := strings.Count(buf.String(), "[sess:"); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}

	if err := RunView(filepath.Join(t.TempDir(), "missing.pslog"), ViewFilter{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseFlags(t *testing.T) {
	if c, err := ParseChannelFlag("Beacon"); err != nil || c != log.ChannelBeacon {
		t.Errorf("ParseChannelFlag: got %v, %v", c, err)
	}
	if _, err := ParseChannelFlag("wifi"); err == nil {
		t.Error("expected error for unknown channel")
	}
	if c, err := ParseCategoryFlag("ERROR"); err != nil || c != log.CategoryError {
		t.Errorf("ParseCategoryFlag: got %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if first["channel"] != "BEACON" {
		t.Errorf("channel: got %v, want BEACON", first["channel"])
	}
	if first["ident"] == nil {
		t.Error("ident payload missing")
	}

	var scan map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &scan); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if s, ok := scan["scan"].(map[string]any); !ok || s["entity"] != "SESSION" {
		t.Errorf("scan payload: got %v", scan["scan"])
	}
}

func TestExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if rows[0][0] != "timestamp" {
		t.Errorf("header: got %v", rows[0])
	}
	row := rows[2]
	if row[7] != "Camera Arlo Arlo" || row[8] != "Audio;Video" || row[9] != "-61" {
		t.Errorf("ident row: got %v", row)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	if err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunFilter(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered"+log.FileExtension)

	n, err := RunFilter(path, FilterOptions{
		Output:    out,
		TimeStart: "2026-10-19T14:25:02Z",
		Channel:   "beacon",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d events, want 1", n)
	}

	r, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	events, _ := r.ReadAll()
	if len(events) != 1 || events[0].Ident == nil {
		t.Errorf("filtered file: got %v", events)
	}
}

func TestRunFilterBadOptions(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered"+log.FileExtension)

	for _, opts := range []FilterOptions{
		{Output: out, TimeStart: "yesterday"},
		{Output: out, TimeEnd: "tomorrow"},
		{Output: out, Channel: "wifi"},
		{Output: out, Category: "message"},
	} {
		if _, err := RunFilter(path, opts); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 4",
		"BEACON:",
		"TRACKING:",
		"Camera Arlo Arlo",
		"Sessions: 1",
		"[6f1c2e4a] 4 events, 1 identifications",
		"Errors: 1",
		"UnknownKey:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Errors:") {
		t.Error("no errors section expected")
	}
}

func TestRunStatsTruncatedLog(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Total Events: 3") {
		t.Errorf("expected the complete records only, got:\n%s", output)
	}
	if !strings.Contains(output, "Last record is incomplete") {
		t.Errorf("expected truncation note, got:\n%s", output)
	}
}
