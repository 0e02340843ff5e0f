// Package log provides the structured session event log for PrivacyScan.
//
// This package defines the Logger interface and Event types for capturing
// what a scan session saw on each sensing channel (marker, beacon, network).
// It is separate from operational logging (slog): the session log is a
// complete machine-readable trace for debugging and later analysis, not
// state that is ever reloaded.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For capture: write to a binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/privacyscan/session.pslog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Each event carries one payload:
//   - Tracking: marker lifecycle transitions (TrackingEvent)
//   - Identification: decoded device records and Eddystone URLs (IdentEvent)
//   - Scan: scan window and session state changes (ScanEvent)
//   - Error: decode and radio failures (ErrorEventData)
//
// # File Format
//
// Log files are a CBOR sequence of events with the .pslog extension.
// Timestamps are tagged RFC 3339 strings. A Reader skips a partial last
// record left by an interrupted writer and reports it via Truncated.
// The privacyscan-log CLI tool provides viewing, filtering, export and
// statistics.
package log
