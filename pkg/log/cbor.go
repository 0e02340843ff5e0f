package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// A session log file is a CBOR sequence (RFC 8742): one Event map per item,
// appended as it happens, with no header or framing. Timestamps are written
// as tag 0 RFC 3339 strings so nanoseconds survive and any CBOR tool can
// show them.
var (
	sessionEncMode cbor.EncMode
	sessionDecMode cbor.DecMode
)

// maxEventDepth bounds nesting when decoding. An Event nests at most four
// levels (event, payload, record, categories).
const maxEventDepth = 8

func init() {
	var err error

	sessionEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCoreDeterministic,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
		TimeTag:       cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		panic("log: session log encoder: " + err.Error())
	}

	// Keys from newer writers are skipped; duplicate keys are not.
	sessionDecMode, err = cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		TimeTag:         cbor.DecTagOptional,
		MaxNestedLevels: maxEventDepth,
	}.DecMode()
	if err != nil {
		panic("log: session log decoder: " + err.Error())
	}
}

func newEventEncoder(w io.Writer) *cbor.Encoder {
	return sessionEncMode.NewEncoder(w)
}

func newEventDecoder(r io.Reader) *cbor.Decoder {
	return sessionDecMode.NewDecoder(r)
}
