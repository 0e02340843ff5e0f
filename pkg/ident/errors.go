package ident

import (
	"errors"
	"fmt"
)

// Decode errors. Every error returned by a decoder wraps exactly one of these.
var (
	ErrMalformedEnvelope       = errors.New("malformed envelope")
	ErrSegmentCountMismatch    = errors.New("segment count mismatch")
	ErrUnknownKey              = errors.New("unknown key")
	ErrIndexOutOfRange         = errors.New("index out of range")
	ErrInvalidFlagCharacter    = errors.New("invalid flag character")
	ErrFlagFieldLengthMismatch = errors.New("flag field length mismatch")
)

// DecodeError describes why an identifier could not be decoded.
type DecodeError struct {
	// Err is the sentinel for the failure kind.
	Err error

	// Segment names the field that failed ("type", "brand", "flags", ...).
	Segment string

	// Value is the offending raw text.
	Value string

	// Index is the position of the offending character or the parsed index.
	Index int

	// Bound is the expected length or table size, where one applies.
	Bound int
}

func (e *DecodeError) Error() string {
	switch e.Err {
	case ErrUnknownKey:
		return fmt.Sprintf("ident: %v: %s %q", e.Err, e.Segment, e.Value)
	case ErrIndexOutOfRange:
		return fmt.Sprintf("ident: %v: %s index %d (table size %d)", e.Err, e.Segment, e.Index, e.Bound)
	case ErrInvalidFlagCharacter:
		return fmt.Sprintf("ident: %v: %q at position %d", e.Err, e.Value, e.Index)
	case ErrFlagFieldLengthMismatch:
		return fmt.Sprintf("ident: %v: got %d, want %d", e.Err, e.Index, e.Bound)
	case ErrSegmentCountMismatch:
		return fmt.Sprintf("ident: %v: got %d, want %d", e.Err, e.Index, e.Bound)
	}
	if e.Segment != "" {
		return fmt.Sprintf("ident: %v: %s %q", e.Err, e.Segment, e.Value)
	}
	return fmt.Sprintf("ident: %v: %q", e.Err, e.Value)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind returns a short machine-readable name for the error kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedEnvelope):
		return "MalformedEnvelope"
	case errors.Is(err, ErrSegmentCountMismatch):
		return "SegmentCountMismatch"
	case errors.Is(err, ErrUnknownKey):
		return "UnknownKey"
	case errors.Is(err, ErrIndexOutOfRange):
		return "IndexOutOfRange"
	case errors.Is(err, ErrInvalidFlagCharacter):
		return "InvalidFlagCharacter"
	case errors.Is(err, ErrFlagFieldLengthMismatch):
		return "FlagFieldLengthMismatch"
	default:
		return "Unknown"
	}
}
