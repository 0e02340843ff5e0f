package beacon

import (
	"errors"
	"fmt"
)

// AD structure types used by identification beacons.
const (
	ADTypeFlags             byte = 0x01
	ADTypeComplete16BitUUID byte = 0x03
	ADTypeShortLocalName    byte = 0x08
	ADTypeCompleteLocalName byte = 0x09
	ADTypeServiceData16     byte = 0x16
)

// Parse errors.
var (
	ErrTruncatedStructure = errors.New("truncated AD structure")
	ErrNotEddystone       = errors.New("no Eddystone service data")
	ErrNoInstanceID       = errors.New("no Eddystone UID frame")
	ErrShortFrame         = errors.New("Eddystone frame too short")
	ErrUnknownURLScheme   = errors.New("unknown Eddystone URL scheme")
)

// Structure is one length-type-value AD structure.
type Structure struct {
	Type byte
	Data []byte
}

// ParseStructures splits an advertisement payload into AD structures. A zero
// length byte ends the payload; the rest is padding.
func ParseStructures(payload []byte) ([]Structure, error) {
	var out []Structure
	for i := 0; i < len(payload); {
		n := int(payload[i])
		if n == 0 {
			break
		}
		if i+1+n > len(payload) {
			return out, fmt.Errorf("%w: length %d at offset %d, %d bytes left",
				ErrTruncatedStructure, n, i, len(payload)-i-1)
		}
		out = append(out, Structure{
			Type: payload[i+1],
			Data: payload[i+2 : i+1+n],
		})
		i += 1 + n
	}
	return out, nil
}

// AppendStructure appends one AD structure to b.
func AppendStructure(b []byte, typ byte, data []byte) []byte {
	b = append(b, byte(len(data)+1), typ)
	return append(b, data...)
}

// LocalName returns the complete or shortened local name in the payload.
func LocalName(structures []Structure) string {
	short := ""
	for _, s := range structures {
		switch s.Type {
		case ADTypeCompleteLocalName:
			return string(s.Data)
		case ADTypeShortLocalName:
			short = string(s.Data)
		}
	}
	return short
}
