// Command privacyscan finds nearby devices that announce what they are and
// what data they collect.
//
// Devices are sensed on three channels:
//   - visual markers, fed as frames of tracking reports
//   - BLE identification beacons (Eddystone UID)
//   - DNS-SD identification services on the local network
//
// Usage:
//
//	privacyscan [flags]
//
// Flags:
//
//	-config string       Configuration file path (YAML)
//	-tables string       Lookup table file (default: built-in English tables)
//	-log-level string    Log level: debug, info, warn, error (default "info")
//	-period duration     BLE scan window length (default 10s)
//	-continuous          Reopen the scan window when it closes (default true)
//	-name-marker string  Substring identification beacon names carry (default "IDENT")
//	-ble                 Scan for identification beacons (default true)
//	-mdns                Browse for identification services (default true)
//	-mdns-iface string   Network interface to browse on
//	-session-log string  Directory to write session logs to
//	-details             Print device information with each finding
//	-interactive         Start the interactive console
//	-replay string       Replay a scripted session instead of using hardware
//
// Examples:
//
//	# Scan with the default settings
//	privacyscan
//
//	# Scan only the network, writing a session log
//	privacyscan -ble=false -session-log ./logs
//
//	# Replay a recorded session in the interactive console
//	privacyscan -replay testdata/replay.yaml -interactive
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/mjstratton7/PrivacyScan/cmd/privacyscan/interactive"
	"github.com/mjstratton7/PrivacyScan/pkg/discovery"
	pslog "github.com/mjstratton7/PrivacyScan/pkg/log"
	"github.com/mjstratton7/PrivacyScan/pkg/present"
	"github.com/mjstratton7/PrivacyScan/pkg/scan"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.SetFlags(log.Ltime | log.Lmicroseconds)

	var shell *interactive.Shell
	out := io.Writer(os.Stdout)
	if cfg.Interactive {
		shell, err = interactive.NewShell()
		if err != nil {
			log.Fatalf("Failed to start console: %v", err)
		}
		out = shell.Stdout()
		log.SetOutput(shell.Stderr())
	}

	level, _ := parseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(log.Writer(), &slog.HandlerOptions{Level: level}))

	log.Println("PrivacyScan")
	log.Println("===========")

	t := tables.Builtin()
	if cfg.Tables != "" {
		if t, err = tables.Load(cfg.Tables); err != nil {
			log.Fatalf("Failed to load tables: %v", err)
		}
	}
	log.Printf("Tables: %s (%d categories)", t.Locale(), t.CategoryCount())

	scanCfg := scan.DefaultConfig()
	scanCfg.ID = uuid.NewString()
	scanCfg.Tables = t
	scanCfg.ScanPeriod = cfg.Period
	scanCfg.NameMarker = cfg.NameMarker
	scanCfg.Continuous = cfg.Continuous
	scanCfg.QueueSize = cfg.QueueSize
	scanCfg.Logger = logger

	events := []pslog.Logger{pslog.NewSlogAdapter(logger)}
	if cfg.SessionLog != "" {
		fl, err := openSessionLog(cfg.SessionLog, scanCfg.ID)
		if err != nil {
			log.Fatalf("Failed to open session log: %v", err)
		}
		defer func() {
			if err := fl.Err(); err != nil {
				log.Printf("Session log write failed: %v", err)
			}
			_ = fl.Close()
			log.Printf("Session log: %s (%d events)", fl.Path(), fl.Written())
		}()
		events = append(events, fl)
	}
	scanCfg.EventLogger = pslog.NewMultiLogger(events...)

	var script *Script
	if cfg.Replay != "" {
		if script, err = LoadScript(cfg.Replay); err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		radio, err := script.Radio()
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		scanCfg.Radio = radio
		log.Printf("Replaying %s (%d frames, %d sightings)", cfg.Replay, len(script.Frames), len(script.Sightings))
	} else {
		if cfg.BLE {
			scanCfg.Radio = newBLERadio(bluetooth.DefaultAdapter)
		}
		if cfg.MDNS {
			browserCfg := discovery.DefaultBrowserConfig()
			browserCfg.Interface = cfg.MDNSIface
			browser, err := discovery.NewMDNSBrowser(browserCfg)
			if err != nil {
				log.Fatalf("Failed to create browser: %v", err)
			}
			browser.SetLogger(logger)
			scanCfg.Browser = browser
		}
	}

	presenter := present.NewWriterPresenter(out, t)
	presenter.ShowDetails = cfg.Details

	sess, err := scan.NewSession(scanCfg, presenter)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sess.Start(ctx); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	log.Printf("Session %s started (beacons: %t, network: %t, period: %s)",
		sess.ID(), scanCfg.Radio != nil, scanCfg.Browser != nil, cfg.Period)

	if script != nil {
		go func() {
			if err := runReplay(ctx, sess, script); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Replay stopped: %v", err)
			}
		}()
	}

	if shell != nil {
		go shell.Run(ctx, cancel, interactive.NewConsole(sess, t, out))
	}

	// Wait for shutdown signal or console exit
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	if err := sess.Close(); err != nil {
		log.Printf("Error closing session: %v", err)
	}
	printStats(sess.Stats())
}

func openSessionLog(dir, sessionID string) (*pslog.FileLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return pslog.NewFileLogger(pslog.SessionPath(dir, sessionID, time.Now()))
}

func printStats(st scan.Stats) {
	log.Println("")
	log.Println("============================================")
	log.Println("               SESSION SUMMARY              ")
	log.Println("============================================")
	log.Printf("  Markers:  %d", st.Markers)
	log.Printf("  Beacons:  %d (%d URL frames)", st.Beacons, st.URLFrames)
	log.Printf("  Services: %d", st.Services)
	log.Printf("  Errors:   %d", st.Errors)
	log.Printf("  Ignored:  %d", st.Ignored)
	if st.Dropped > 0 {
		log.Printf("  Dropped:  %d", st.Dropped)
	}
	log.Println("============================================")
}
