package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects session log events. A zero field selects everything for
// that field; set fields must all match.
type Filter struct {
	SessionID string
	Channel   *Channel
	Category  *Category
	Source    string

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// Matches reports whether event passes the filter.
func (f *Filter) Matches(event Event) bool {
	switch {
	case f.SessionID != "" && f.SessionID != event.SessionID:
		return false
	case f.Channel != nil && *f.Channel != event.Channel:
		return false
	case f.Category != nil && *f.Category != event.Category:
		return false
	case f.Source != "" && f.Source != event.Source:
		return false
	case f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart):
		return false
	case f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

// Reader streams events from a session log file.
//
// A scanner killed mid-write leaves a partial last record. The reader stops
// there with io.EOF and reports it through Truncated.
type Reader struct {
	f      *os.File
	dec    *cbor.Decoder
	filter Filter

	truncated bool
}

// NewReader opens a session log and reads every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens a session log and reads the events filter selects.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{f: f, dec: newEventDecoder(f), filter: filter}, nil
}

// Next returns the next selected event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		err := r.dec.Decode(&event)
		switch {
		case err == nil:
			if r.filter.Matches(event) {
				return event, nil
			}
		case errors.Is(err, io.ErrUnexpectedEOF):
			r.truncated = true
			return Event{}, io.EOF
		default:
			return Event{}, err
		}
	}
}

// ReadAll returns the remaining selected events.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
}

// Truncated reports whether the file ended in a partial record.
func (r *Reader) Truncated() bool {
	return r.truncated
}

// Close closes the file.
func (r *Reader) Close() error {
	return r.f.Close()
}
