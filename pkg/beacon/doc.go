// Package beacon handles the BLE channel: advertisement data parsing,
// Eddystone UID and URL frames, the advertiser name filter and the bounded
// scan window.
//
// Identification beacons advertise a name containing "IDENT" and an
// Eddystone UID frame whose 6-byte instance id carries the device record.
// The instance id's hex form is decoded by ident.DecodeInstanceID.
//
// A scan never runs unbounded. Window starts the radio, stops it when the
// scan period expires and reports the timeout; a new scan has to be started
// explicitly.
package beacon
