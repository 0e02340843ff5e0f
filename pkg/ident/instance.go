package ident

import (
	"fmt"
	"strings"

	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// Field is a positional decimal field inside an instance id.
type Field struct {
	Offset int
	Len    int
}

// end returns the exclusive end offset.
func (f Field) end() int {
	return f.Offset + f.Len
}

// InstanceLayout describes where each field sits in an instance id string.
type InstanceLayout struct {
	// Version identifies the layout revision.
	Version uint8

	Type  Field
	Brand Field
	Model Field

	// FlagsOffset is where the category flag field starts; it runs to the
	// end of the string.
	FlagsOffset int

	// Width is the exact length of an id in this layout. Zero accepts any
	// length and leaves the flag field width to the tables.
	Width int
}

// LayoutV1 is the layout of the first beacon firmware: "TT B MM FFFFFFF".
var LayoutV1 = InstanceLayout{
	Version:     1,
	Type:        Field{Offset: 0, Len: 2},
	Brand:       Field{Offset: 2, Len: 1},
	Model:       Field{Offset: 3, Len: 2},
	FlagsOffset: 5,
	Width:       InstanceIDHexLen,
}

// MinWidth returns the shortest string that holds every positional field.
func (l InstanceLayout) MinWidth() int {
	w := l.FlagsOffset
	for _, f := range []Field{l.Type, l.Brand, l.Model} {
		if f.end() > w {
			w = f.end()
		}
	}
	return w
}

// InstanceIDHexLen is the length of an Eddystone instance id in hex characters.
const InstanceIDHexLen = 12

// DecodeInstanceID decodes an instance id using LayoutV1.
func DecodeInstanceID(hex string, t *tables.Tables) (*DeviceRecord, error) {
	return DecodeInstanceIDWithLayout(hex, LayoutV1, t)
}

// DecodeInstanceIDWithLayout decodes an instance id using an explicit layout.
// A leading "0x" is ignored.
func DecodeInstanceIDWithLayout(hex string, layout InstanceLayout, t *tables.Tables) (*DeviceRecord, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if layout.Width > 0 && len(s) != layout.Width {
		return nil, &DecodeError{Err: ErrMalformedEnvelope, Value: hex, Index: len(s), Bound: layout.Width}
	}
	if len(s) < layout.MinWidth() {
		return nil, &DecodeError{Err: ErrMalformedEnvelope, Value: hex, Index: len(s), Bound: layout.MinWidth()}
	}

	deviceType, err := resolveIndex(t.Types(), s, layout.Type)
	if err != nil {
		return nil, err
	}
	brand, err := resolveIndex(t.Brands(), s, layout.Brand)
	if err != nil {
		return nil, err
	}
	model, err := resolveIndex(t.Models(), s, layout.Model)
	if err != nil {
		return nil, err
	}

	categories, err := DecodeFlags(s[layout.FlagsOffset:], t)
	if err != nil {
		return nil, err
	}

	return &DeviceRecord{
		Type:       deviceType,
		Brand:      brand,
		Model:      model,
		Categories: categories,
	}, nil
}

func resolveIndex(tbl *tables.Table, s string, f Field) (string, error) {
	raw := s[f.Offset:f.end()]

	idx, ok := parseDecimal(raw)
	if !ok {
		return "", &DecodeError{
			Err:     ErrMalformedEnvelope,
			Segment: tbl.Kind().String(),
			Value:   raw,
		}
	}

	e, ok := tbl.At(idx)
	if !ok {
		return "", &DecodeError{
			Err:     ErrIndexOutOfRange,
			Segment: tbl.Kind().String(),
			Value:   raw,
			Index:   idx,
			Bound:   tbl.Len(),
		}
	}
	return e.Label, nil
}

// parseDecimal parses a short run of ASCII digits.
func parseDecimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// EncodeInstanceID builds an instance id string. flagWidth is the category
// count of the tables the id will be decoded with.
func EncodeInstanceID(layout InstanceLayout, typeIdx, brandIdx, modelIdx int, categories []int, flagWidth int) (string, error) {
	buf := []byte(strings.Repeat("0", layout.MinWidth()))

	fields := []struct {
		name  string
		field Field
		value int
	}{
		{"type", layout.Type, typeIdx},
		{"brand", layout.Brand, brandIdx},
		{"model", layout.Model, modelIdx},
	}
	for _, f := range fields {
		digits := fmt.Sprintf("%0*d", f.field.Len, f.value)
		if f.value < 0 || len(digits) != f.field.Len {
			return "", &DecodeError{
				Err:     ErrIndexOutOfRange,
				Segment: f.name,
				Index:   f.value,
			}
		}
		copy(buf[f.field.Offset:], digits)
	}

	if layout.Width > 0 && layout.FlagsOffset+flagWidth != layout.Width {
		return "", &DecodeError{
			Err:     ErrFlagFieldLengthMismatch,
			Segment: "flags",
			Index:   flagWidth,
			Bound:   layout.Width - layout.FlagsOffset,
		}
	}

	flags, err := EncodeFlags(categories, flagWidth)
	if err != nil {
		return "", err
	}
	return string(buf) + flags, nil
}
