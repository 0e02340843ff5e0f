package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a table set.
type File struct {
	Locale     string  `yaml:"locale"`
	Types      []Entry `yaml:"types"`
	Brands     []Entry `yaml:"brands"`
	Models     []Entry `yaml:"models"`
	Categories []Entry `yaml:"categories"`
}

// Build validates the file contents and returns Tables.
func (f *File) Build() (*Tables, error) {
	return New(f.Locale, f.Types, f.Brands, f.Models, f.Categories)
}

// ParseFile parses a table file from YAML bytes without validating it.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tables YAML: %w", err)
	}
	return &f, nil
}

// Parse parses and validates tables from YAML bytes.
func Parse(data []byte) (*Tables, error) {
	f, err := ParseFile(data)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// Load reads and validates tables from a YAML file.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
