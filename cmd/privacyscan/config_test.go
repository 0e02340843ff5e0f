package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.Period != 10*time.Second {
		t.Errorf("Period = %v, want 10s", cfg.Period)
	}
	if cfg.NameMarker != "IDENT" {
		t.Errorf("NameMarker = %q, want IDENT", cfg.NameMarker)
	}
	if !cfg.BLE || !cfg.MDNS || !cfg.Continuous {
		t.Errorf("BLE/MDNS/Continuous should default to true: %+v", cfg)
	}
}

func TestParseConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "privacyscan.yaml")
	data := `
log_level: debug
period: 30s
name_marker: PRIV
mdns: false
session_log: /var/log/privacyscan
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := parseConfig([]string{"-config", path, "-period", "5s"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}

	if cfg.Period != 5*time.Second {
		t.Errorf("Period = %v, want flag value 5s", cfg.Period)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug from file", cfg.LogLevel)
	}
	if cfg.NameMarker != "PRIV" {
		t.Errorf("NameMarker = %q, want PRIV from file", cfg.NameMarker)
	}
	if cfg.MDNS {
		t.Error("MDNS should be disabled by the file")
	}
	if !cfg.BLE {
		t.Error("BLE should keep its default")
	}
	if cfg.SessionLog != "/var/log/privacyscan" {
		t.Errorf("SessionLog = %q", cfg.SessionLog)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"BadLevel", []string{"-log-level", "verbose"}, "unknown log level"},
		{"ZeroPeriod", []string{"-period", "0s"}, "scan period"},
		{"EmptyMarker", []string{"-name-marker", ""}, "name marker"},
		{"NegativeQueue", []string{"-queue", "-1"}, "queue size"},
		{"MissingFile", []string{"-config", "/nonexistent/privacyscan.yaml"}, "failed to read config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
