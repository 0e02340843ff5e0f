package ident

import (
	"fmt"
	"strings"
)

// DeviceRecord is a decoded device identification.
type DeviceRecord struct {
	// Type is the resolved device type label, e.g. "Camera".
	Type string `cbor:"1,keyasint" json:"type" yaml:"type"`

	// Brand is the resolved brand label.
	Brand string `cbor:"2,keyasint" json:"brand" yaml:"brand"`

	// Model is the model name.
	Model string `cbor:"3,keyasint" json:"model" yaml:"model"`

	// Categories lists the collected-data category labels.
	Categories []string `cbor:"4,keyasint,omitempty" json:"categories" yaml:"categories"`
}

// String returns a one-line summary.
func (r *DeviceRecord) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s %s [%s]", r.Type, r.Brand, r.Model, strings.Join(r.Categories, ", "))
}

// HasCategory reports whether label is among the record's categories.
func (r *DeviceRecord) HasCategory(label string) bool {
	for _, c := range r.Categories {
		if c == label {
			return true
		}
	}
	return false
}
