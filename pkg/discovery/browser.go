package discovery

import (
	"context"
	"strings"
	"time"
)

// Browser provides mDNS service browsing capabilities.
type Browser interface {
	// BrowseIdent searches for identification services. Each instance is
	// delivered once until it disappears. The channel is closed when the
	// context is cancelled.
	BrowseIdent(ctx context.Context) (<-chan *IdentService, error)

	// FindByInstance searches for one instance by name.
	FindByInstance(ctx context.Context, instance string) (*IdentService, error)

	// Stop stops all active browsing operations.
	Stop()
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the default timeout for FindByInstance.
	// Default: 10 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
		Interface:     "",
	}
}

// FilterFunc is a function that filters browse results.
type FilterFunc func(*IdentService) bool

// FilterByName returns a filter matching services whose display name
// contains substr.
func FilterByName(substr string) FilterFunc {
	return func(svc *IdentService) bool {
		return containsFold(svc.DisplayName(), substr)
	}
}

// FilterBrowseResults filters a channel of identification services.
func FilterBrowseResults(in <-chan *IdentService, filter FilterFunc) <-chan *IdentService {
	out := make(chan *IdentService)
	go func() {
		defer close(out)
		for svc := range in {
			if filter(svc) {
				out <- svc
			}
		}
	}()
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ServiceEntry is a raw mDNS service entry. It decouples TXT decoding from
// the zeroconf entry type.
type ServiceEntry struct {
	Instance string
	Service  string
	Domain   string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// ToIdentService converts a ServiceEntry to IdentService.
func (e *ServiceEntry) ToIdentService() (*IdentService, error) {
	txt := StringsToTXTRecords(e.Text)
	info, err := DecodeIdentTXT(txt)
	if err != nil {
		return nil, err
	}

	return &IdentService{
		InstanceName: e.Instance,
		Host:         e.Host,
		Port:         e.Port,
		Addresses:    e.Addrs,
		Label:        info.Label,
		Name:         info.Name,
	}, nil
}
