// Package manager is the boundary to the external dependency manager. The
// scanner consumes it through the narrow Manager interface; the only real
// implementation shells out to uv.
package manager

import (
	"context"
	"errors"

	"github.com/ethanolivertroy/porter/internal/models"
)

// ErrUnavailable means the external tool failed its health probe. It is
// fatal to a batch: nothing proceeds without the tool.
var ErrUnavailable = errors.New("uv is not installed or not accessible")

// Manager abstracts the external dependency-adding tool
type Manager interface {
	// Healthy probes the tool's availability
	Healthy(ctx context.Context) error

	// ListDeclared returns the dependencies already declared for the file,
	// lower-cased (package registries treat names case-insensitively)
	ListDeclared(ctx context.Context, file string) (models.ImportSet, error)

	// Add registers the dependency set for the file in a single call
	Add(ctx context.Context, file string, deps []string) error

	// AddCommand renders the command Add would run, for dry-run reporting
	AddCommand(file string, deps []string) string
}
