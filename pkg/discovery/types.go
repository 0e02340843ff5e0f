package discovery

import (
	"errors"
	"time"
)

// Service constants for mDNS.
const (
	// ServiceType is the DNS-SD service type for identification records.
	ServiceType = "_privacyscan._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is advertised when a device gives no port.
	DefaultPort = 80
)

// TXT record keys.
const (
	TXTKeyVersion = "txtvers" // TXT record format version
	TXTKeyIdent   = "ident"   // Marker label encoding (required)
	TXTKeyName    = "name"    // User-facing device name (optional)
)

// TXTVersion is the TXT record format version written by this package.
const TXTVersion = "1"

// Timing constants.
const (
	// BrowseTimeout is the default timeout for mDNS browsing.
	BrowseTimeout = 10 * time.Second

	// DefaultTTL is the default DNS record TTL for advertisements.
	DefaultTTL = 120 * time.Second
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// MaxTXTStringLen is the longest single "key=value" TXT string.
	MaxTXTStringLen = 255
)

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrUnsupportedVersion  = errors.New("unsupported TXT record version")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
)

// IdentInfo is what a device publishes.
type IdentInfo struct {
	// InstanceName is the DNS-SD instance name. Defaults to Name.
	InstanceName string

	// Label is the marker label encoding.
	Label string

	// Name is the optional user-facing device name.
	Name string

	// Port is the advertised port. Zero uses DefaultPort.
	Port uint16
}

// IdentService is a discovered identification service.
type IdentService struct {
	// InstanceName is the DNS-SD instance name.
	InstanceName string

	// Host is the target host name.
	Host string

	// Port is the advertised port.
	Port uint16

	// Addresses are the IPv4 and IPv6 addresses seen for the instance.
	Addresses []string

	// Label is the marker label encoding from the TXT record.
	Label string

	// Name is the optional device name from the TXT record.
	Name string
}

// DisplayName returns Name, or the instance name when no name was given.
func (s *IdentService) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.InstanceName
}
