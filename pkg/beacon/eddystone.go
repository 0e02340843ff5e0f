package beacon

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// EddystoneUUID is the 16-bit service UUID Eddystone frames are sent under.
const EddystoneUUID uint16 = 0xFEAA

// FrameType is the first byte of an Eddystone frame.
type FrameType byte

// Eddystone frame types.
const (
	FrameUID FrameType = 0x00
	FrameURL FrameType = 0x10
	FrameTLM FrameType = 0x20
	FrameEID FrameType = 0x30
)

// String returns the frame type name.
func (f FrameType) String() string {
	switch f {
	case FrameUID:
		return "UID"
	case FrameURL:
		return "URL"
	case FrameTLM:
		return "TLM"
	case FrameEID:
		return "EID"
	default:
		return "UNKNOWN"
	}
}

// Frame sizes, counting from the frame type byte.
const (
	uidFrameLen    = 18 // type, tx power, 10-byte namespace, 6-byte instance
	urlFrameMinLen = 3  // type, tx power, scheme
)

// UID is an Eddystone UID frame.
type UID struct {
	TxPower   int8
	Namespace [10]byte
	Instance  [6]byte
}

// InstanceHex returns the instance id as 12 lower-case hex characters.
func (u UID) InstanceHex() string {
	return hex.EncodeToString(u.Instance[:])
}

// NamespaceHex returns the namespace as 20 lower-case hex characters.
func (u UID) NamespaceHex() string {
	return hex.EncodeToString(u.Namespace[:])
}

// URL is an Eddystone URL frame.
type URL struct {
	TxPower int8
	URL     string
}

// Frame is one parsed Eddystone frame. Exactly one of UID and URL is set for
// those frame types; other types carry only Type.
type Frame struct {
	Type FrameType
	UID  *UID
	URL  *URL
}

// ParseFrame parses Eddystone service data, starting at the frame type byte.
func ParseFrame(data []byte) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, ErrShortFrame
	}

	f := Frame{Type: FrameType(data[0])}
	switch f.Type {
	case FrameUID:
		if len(data) < uidFrameLen {
			return f, fmt.Errorf("%w: UID frame has %d bytes, want %d", ErrShortFrame, len(data), uidFrameLen)
		}
		uid := &UID{TxPower: int8(data[1])}
		copy(uid.Namespace[:], data[2:12])
		copy(uid.Instance[:], data[12:18])
		f.UID = uid

	case FrameURL:
		if len(data) < urlFrameMinLen {
			return f, fmt.Errorf("%w: URL frame has %d bytes", ErrShortFrame, len(data))
		}
		u, err := expandURL(data[2], data[3:])
		if err != nil {
			return f, err
		}
		f.URL = &URL{TxPower: int8(data[1]), URL: u}
	}
	return f, nil
}

// Frames returns every Eddystone frame in the structures.
func Frames(structures []Structure) ([]Frame, error) {
	var frames []Frame
	for _, s := range structures {
		if s.Type != ADTypeServiceData16 || len(s.Data) < 2 {
			continue
		}
		if binary.LittleEndian.Uint16(s.Data) != EddystoneUUID {
			continue
		}
		f, err := ParseFrame(s.Data[2:])
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return nil, ErrNotEddystone
	}
	return frames, nil
}

// InstanceID extracts the UID instance id from an advertisement payload as
// hex text.
func InstanceID(payload []byte) (string, error) {
	structures, err := ParseStructures(payload)
	if err != nil {
		return "", err
	}
	frames, err := Frames(structures)
	if err != nil {
		return "", err
	}
	for _, f := range frames {
		if f.UID != nil {
			return f.UID.InstanceHex(), nil
		}
	}
	return "", ErrNoInstanceID
}

// URL scheme prefixes, indexed by the scheme byte.
var urlSchemes = []string{
	"http://www.",
	"https://www.",
	"http://",
	"https://",
}

// URL expansion codes, indexed by code.
var urlExpansions = []string{
	".com/", ".org/", ".edu/", ".net/", ".info/", ".biz/", ".gov/",
	".com", ".org", ".edu", ".net", ".info", ".biz", ".gov",
}

func expandURL(scheme byte, encoded []byte) (string, error) {
	if int(scheme) >= len(urlSchemes) {
		return "", fmt.Errorf("%w: 0x%02x", ErrUnknownURLScheme, scheme)
	}

	var b strings.Builder
	b.WriteString(urlSchemes[scheme])
	for _, c := range encoded {
		if int(c) < len(urlExpansions) {
			b.WriteString(urlExpansions[c])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// UIDServiceData builds the service data bytes of a UID frame, including the
// leading service UUID.
func UIDServiceData(txPower int8, namespace [10]byte, instance [6]byte) []byte {
	b := make([]byte, 0, 2+uidFrameLen+2)
	b = binary.LittleEndian.AppendUint16(b, EddystoneUUID)
	b = append(b, byte(FrameUID), byte(txPower))
	b = append(b, namespace[:]...)
	b = append(b, instance[:]...)
	// Reserved.
	return append(b, 0, 0)
}

// UIDPayload builds a complete advertisement payload for a UID beacon with
// the given local name. An empty name is omitted.
func UIDPayload(name string, txPower int8, namespace [10]byte, instance [6]byte) []byte {
	var b []byte
	b = AppendStructure(b, ADTypeFlags, []byte{0x06})
	b = AppendStructure(b, ADTypeComplete16BitUUID, binary.LittleEndian.AppendUint16(nil, EddystoneUUID))
	b = AppendStructure(b, ADTypeServiceData16, UIDServiceData(txPower, namespace, instance))
	if name != "" {
		b = AppendStructure(b, ADTypeCompleteLocalName, []byte(name))
	}
	return b
}

// ParseInstance converts 12 hex characters (optionally "0x"-prefixed) to
// instance bytes.
func ParseInstance(s string) ([6]byte, error) {
	var inst [6]byte
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*len(inst) {
		return inst, fmt.Errorf("instance id %q: want %d hex characters", s, 2*len(inst))
	}
	if _, err := hex.Decode(inst[:], []byte(s)); err != nil {
		return inst, fmt.Errorf("instance id %q: %w", s, err)
	}
	return inst, nil
}
