package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mjstratton7/PrivacyScan/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSONL form of an event, with enums written as names.
type jsonEvent struct {
	Timestamp string              `json:"timestamp"`
	SessionID string              `json:"session_id"`
	Channel   string              `json:"channel"`
	Category  string              `json:"category"`
	Source    string              `json:"source,omitempty"`
	Tracking  *log.TrackingEvent  `json:"tracking,omitempty"`
	Ident     *log.IdentEvent     `json:"ident,omitempty"`
	Scan      *jsonScanEvent      `json:"scan,omitempty"`
	Error     *log.ErrorEventData `json:"error,omitempty"`
}

type jsonScanEvent struct {
	Entity   string `json:"entity"`
	OldState string `json:"old_state,omitempty"`
	NewState string `json:"new_state"`
	Reason   string `json:"reason,omitempty"`
}

func toJSONEvent(e log.Event) jsonEvent {
	je := jsonEvent{
		Timestamp: e.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		SessionID: e.SessionID,
		Channel:   e.Channel.String(),
		Category:  e.Category.String(),
		Source:    e.Source,
		Tracking:  e.Tracking,
		Ident:     e.Ident,
		Error:     e.Error,
	}
	if e.Scan != nil {
		je.Scan = &jsonScanEvent{
			Entity:   e.Scan.Entity.String(),
			OldState: e.Scan.OldState,
			NewState: e.Scan.NewState,
			Reason:   e.Scan.Reason,
		}
	}
	return je
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSONEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

// csvHeader lists the CSV columns.
var csvHeader = []string{"timestamp", "session_id", "channel", "category", "source", "type", "raw", "device", "categories", "rssi", "detail"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func csvRow(event log.Event) []string {
	var raw, device, categories, rssi, detail string
	switch {
	case event.Tracking != nil:
		raw = strconv.Itoa(event.Tracking.MarkerID)
		detail = event.Tracking.State
	case event.Ident != nil:
		raw = event.Ident.Raw
		if r := event.Ident.Record; r != nil {
			device = r.Type + " " + r.Brand + " " + r.Model
			categories = strings.Join(r.Categories, ";")
		}
		if event.Ident.RSSI != nil {
			rssi = strconv.Itoa(*event.Ident.RSSI)
		}
		detail = event.Ident.URL
	case event.Scan != nil:
		detail = event.Scan.OldState + "->" + event.Scan.NewState
	case event.Error != nil:
		raw = event.Error.Raw
		detail = event.Error.Message
	}

	return []string{
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		event.SessionID,
		event.Channel.String(),
		event.Category.String(),
		event.Source,
		eventTypeLabel(event),
		raw,
		device,
		categories,
		rssi,
		detail,
	}
}
