//go:build tools

package tools

// Tool dependencies, pinned in go.mod. Run mockery from the repository root
// to regenerate the mocks listed in .mockery.yaml.
import (
	_ "github.com/vektra/mockery/v2"
)
