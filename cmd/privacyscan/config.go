package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mjstratton7/PrivacyScan/pkg/beacon"
	"github.com/mjstratton7/PrivacyScan/pkg/present"
)

// Config holds the scanner configuration. Values come from the defaults,
// then the -config file, then flags given on the command line.
type Config struct {
	ConfigFile string `yaml:"-"`

	Tables     string        `yaml:"tables"`
	LogLevel   string        `yaml:"log_level"`
	Period     time.Duration `yaml:"period"`
	Continuous bool          `yaml:"continuous"`
	NameMarker string        `yaml:"name_marker"`
	QueueSize  int           `yaml:"queue_size"`

	BLE       bool   `yaml:"ble"`
	MDNS      bool   `yaml:"mdns"`
	MDNSIface string `yaml:"mdns_interface"`

	SessionLog  string `yaml:"session_log"`
	Details     bool   `yaml:"details"`
	Interactive bool   `yaml:"interactive"`
	Replay      string `yaml:"replay"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:   "info",
		Period:     beacon.DefaultScanPeriod,
		Continuous: true,
		NameMarker: beacon.NameMarker,
		QueueSize:  present.DefaultQueueSize,
		BLE:        true,
		MDNS:       true,
	}
}

func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("privacyscan", flag.ContinueOnError)
	fs.StringVar(&cfg.ConfigFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&cfg.Tables, "tables", cfg.Tables, "Lookup table file (YAML, default: built-in English tables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.DurationVar(&cfg.Period, "period", cfg.Period, "BLE scan window length")
	fs.BoolVar(&cfg.Continuous, "continuous", cfg.Continuous, "Reopen the scan window when it closes")
	fs.StringVar(&cfg.NameMarker, "name-marker", cfg.NameMarker, "Substring identification beacon names carry")
	fs.IntVar(&cfg.QueueSize, "queue", cfg.QueueSize, "Presentation queue size")
	fs.BoolVar(&cfg.BLE, "ble", cfg.BLE, "Scan for identification beacons")
	fs.BoolVar(&cfg.MDNS, "mdns", cfg.MDNS, "Browse for identification services")
	fs.StringVar(&cfg.MDNSIface, "mdns-iface", cfg.MDNSIface, "Network interface to browse on (default: all)")
	fs.StringVar(&cfg.SessionLog, "session-log", cfg.SessionLog, "Directory to write session logs to")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "Print device information with each finding")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Start the interactive console")
	fs.StringVar(&cfg.Replay, "replay", cfg.Replay, "Replay a scripted session (YAML) instead of using hardware")
	return fs
}

// parseConfig builds the configuration from args.
func parseConfig(args []string) (Config, error) {
	cfg := defaultConfig()
	fs := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.ConfigFile != "" {
		data, err := os.ReadFile(cfg.ConfigFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", cfg.ConfigFile, err)
		}
		// Flags given on the command line win over the file.
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Period <= 0 || c.Period > beacon.MaxScanPeriod {
		return fmt.Errorf("scan period must be in (0, %v], got %v", beacon.MaxScanPeriod, c.Period)
	}
	if c.NameMarker == "" {
		return fmt.Errorf("name marker must not be empty")
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue size must not be negative, got %d", c.QueueSize)
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
