// Package commands implements the privacyscan-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mjstratton7/PrivacyScan/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Channel  *log.Channel
	Category *log.Category
	Source   string
}

// matches returns true if the event passes the filter.
func (f ViewFilter) matches(e log.Event) bool {
	lf := log.Filter{Channel: f.Channel, Category: f.Category, Source: f.Source}
	return lf.Matches(e)
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] CHANNEL CATEGORY Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [sess:%s] %-7s %s %s\n",
		ts, sessID, event.Channel.String(), event.Category.String(), eventTypeLabel(event))

	if event.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", event.Source)
	}

	switch {
	case event.Tracking != nil:
		formatTrackingDetails(w, event.Tracking)
	case event.Ident != nil:
		formatIdentDetails(w, event.Ident)
	case event.Scan != nil:
		formatScanDetails(w, event.Scan)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// eventTypeLabel names the payload carried by the event.
func eventTypeLabel(event log.Event) string {
	switch {
	case event.Tracking != nil:
		return event.Tracking.Transition
	case event.Ident != nil:
		if event.Ident.URL != "" {
			return "URL"
		}
		return "Device"
	case event.Scan != nil:
		return event.Scan.Entity.String()
	case event.Error != nil:
		return event.Error.Kind
	default:
		return "Unknown"
	}
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatTrackingDetails(w io.Writer, te *log.TrackingEvent) {
	fmt.Fprintf(w, "  Marker: %d\n", te.MarkerID)
	if te.State != "" {
		fmt.Fprintf(w, "  State: %s", te.State)
		if te.Method != "" {
			fmt.Fprintf(w, " (%s)", te.Method)
		}
		fmt.Fprintln(w)
	}
}

func formatIdentDetails(w io.Writer, ie *log.IdentEvent) {
	if ie.Raw != "" {
		fmt.Fprintf(w, "  Raw: %s\n", ie.Raw)
	}
	if ie.Record != nil {
		fmt.Fprintf(w, "  Device: %s %s %s\n", ie.Record.Type, ie.Record.Brand, ie.Record.Model)
		if len(ie.Record.Categories) > 0 {
			fmt.Fprintf(w, "  Data: %s\n", strings.Join(ie.Record.Categories, ", "))
		}
	}
	if ie.URL != "" {
		fmt.Fprintf(w, "  URL: %s\n", ie.URL)
	}
	if ie.RSSI != nil {
		fmt.Fprintf(w, "  RSSI: %d dBm\n", *ie.RSSI)
	}
}

func formatScanDetails(w io.Writer, se *log.ScanEvent) {
	if se.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", se.OldState, se.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", se.NewState)
	}
	if se.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", se.Reason)
	}
}

func formatErrorDetails(w io.Writer, ee *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", ee.Message)
	if ee.Raw != "" {
		fmt.Fprintf(w, "  Raw: %s\n", ee.Raw)
	}
	if ee.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", ee.Context)
	}
}

// ParseChannelFlag parses a channel string from command-line flag (case-insensitive).
func ParseChannelFlag(s string) (log.Channel, error) {
	switch strings.ToLower(s) {
	case "marker":
		return log.ChannelMarker, nil
	case "beacon":
		return log.ChannelBeacon, nil
	case "network":
		return log.ChannelNetwork, nil
	case "session":
		return log.ChannelSession, nil
	default:
		return 0, fmt.Errorf("invalid channel: %s (must be marker, beacon, network, or session)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "tracking":
		return log.CategoryTracking, nil
	case "ident":
		return log.CategoryIdent, nil
	case "scan":
		return log.CategoryScan, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be tracking, ident, scan, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if !filter.matches(event) {
			continue
		}
		formatEvent(output, event)
	}

	return nil
}
