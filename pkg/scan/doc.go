// Package scan runs a scan session: it feeds the sensing channels into the
// identifier decoders and hands every identification to one presenter.
//
// A Session owns three channels, each optional:
//
//   - Marker frames, applied by the caller once per rendered frame through
//     ApplyFrame. Markers first seen PAUSED are decoded from their label.
//   - BLE advertisements from a beacon.Radio, scanned in bounded windows.
//     Only advertisers whose name contains "IDENT" are decoded.
//   - DNS-SD services from a discovery.Browser, decoded from their TXT label.
//
// Every identification, successful or not, becomes a present.Finding and a
// session log event. BLE addresses only reach the session log as keyed
// fingerprints, with a key that lives as long as the session.
//
// Lifecycle:
//
//	IDLE --Start--> RUNNING --Pause--> PAUSED --Resume--> RUNNING
//	                   |                  |
//	                   +------Close-------+------> CLOSED
//
// Pause stops the radio and the browse but keeps tracked markers. Close
// releases every marker anchor.
package scan
