package discovery

import (
	"context"
	"time"
)

// Advertiser provides mDNS service advertising capabilities.
type Advertiser interface {
	// Advertise starts advertising an identification service. An existing
	// advertisement with the same instance name is replaced.
	Advertise(ctx context.Context, info *IdentInfo) error

	// Update replaces the TXT records of a running advertisement.
	Update(instance string, info *IdentInfo) error

	// Stop stops one advertisement.
	Stop(instance string) error

	// StopAll stops all advertisements.
	StopAll()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       DefaultTTL,
	}
}

// instanceName returns the instance name to register info under.
func instanceName(info *IdentInfo) (string, error) {
	name := info.InstanceName
	if name == "" {
		name = info.Name
	}
	if err := ValidateInstanceName(name); err != nil {
		return "", err
	}
	return name, nil
}
