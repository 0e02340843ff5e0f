package beacon

import "strings"

// NameMarker is the substring identification beacons carry in their name.
const NameMarker = "IDENT"

// MatchName reports whether an advertiser name marks an identification
// beacon. The match ignores case.
func MatchName(name string) bool {
	return MatchNameMarker(name, NameMarker)
}

// MatchNameMarker reports whether name contains marker, ignoring case.
// An empty name never matches.
func MatchNameMarker(name, marker string) bool {
	return name != "" && strings.Contains(strings.ToUpper(name), strings.ToUpper(marker))
}
