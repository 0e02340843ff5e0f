// Package tables holds the lookup tables that turn encoded device identifiers
// into display strings.
//
// A Tables value has four ordered tables: device types, brands, models and
// data categories. Each entry has a symbolic key (used by the marker label
// encoding, e.g. "CAMERA") and a display label (e.g. "Camera"). The position
// of an entry is its index on the BLE instance-id encoding, so the order of
// entries is part of the wire format and must not be changed for a released
// table.
//
// Tables are read-only after construction and safe for concurrent use. The
// decoders never load tables themselves; callers inject either the generated
// English table (Builtin) or one loaded from YAML (Load).
//
// # File Format
//
//	locale: en
//	types:
//	  - key: CAMERA
//	    label: Camera
//	categories:
//	  - key: AUDIO
//	    label: Audio
//	    description: Records sound from its surroundings.
package tables
