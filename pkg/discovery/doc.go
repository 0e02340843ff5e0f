// Package discovery implements the DNS-SD (mDNS) identification channel.
//
// Networked smart-home devices that support identification advertise a
// _privacyscan._tcp service. The TXT record carries the device's marker
// label in the same encoding printed on its visual marker:
//
//	txtvers=1
//	ident=[CAMERA][NEST][Cam Indoor][AUDIO,VIDEO].png
//	name=Porch Camera            (optional)
//
// MDNSBrowser reports each instance once, aggregating addresses seen on
// several interfaces. An instance that disappears from every interface is
// reported again if it comes back. MDNSAdvertiser publishes the same record,
// which the ident-beacon tool uses to simulate devices.
package discovery
