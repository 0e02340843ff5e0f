// Package ident decodes the compact device identifiers carried by PrivacyScan
// markers and beacons into a DeviceRecord.
//
// Two unrelated wire encodings produce the same record shape:
//
// # Label Encoding
//
// Printed markers are named after the device they describe:
//
//	[TYPE][BRAND][MODEL][CAT1,CAT2,...].<ext>
//
// TYPE, BRAND and each CAT are symbolic keys resolved through the lookup
// tables; MODEL is free text and is passed through unchanged. The category
// list may be empty. Example:
//
//	[CAMERA][NEST][Cam Indoor][AUDIO,VIDEO].png
//
// # Instance ID Encoding
//
// Beacons carry the identifier in the 6-byte instance id of an Eddystone UID
// frame, printed as 12 hex characters. Fields are positional decimal digits
// followed by one flag character per defined category:
//
//	TT B MM FFFFFFF
//	|  | |  +-- category flags, '1' = collected, left to right = index 0..n-1
//	|  | +----- model index
//	|  +------- brand index
//	+---------- type index
//
// The offsets are a versioned protocol constant (InstanceLayout). LayoutV1
// matches the identifiers deployed with the first beacon firmware.
//
// Decoders are pure functions. They never return a partial record: on error
// the record is nil and the error is a *DecodeError wrapping one of the
// package sentinels.
package ident
