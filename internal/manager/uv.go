package manager

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/ethanolivertroy/porter/internal/models"
)

// UV drives the uv package manager as a subprocess. Every call is wrapped
// in a fixed timeout so a wedged tool reads as failed, never hung.
type UV struct {
	Binary       string
	ProbeTimeout time.Duration
	AddTimeout   time.Duration
}

// NewUV creates a uv client with the given timeouts
func NewUV(probeTimeout, addTimeout time.Duration) *UV {
	return &UV{
		Binary:       "uv",
		ProbeTimeout: probeTimeout,
		AddTimeout:   addTimeout,
	}
}

// Healthy runs `uv --version` under the short probe timeout
func (u *UV) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, u.ProbeTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, u.Binary, "--version").Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ListDeclared reads the script's PEP 723 inline metadata block and returns
// the declared dependency names. A script without a block declares nothing.
// uv owns the block; porter only ever reads it.
func (u *UV) ListDeclared(_ context.Context, file string) (models.ImportSet, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read script %s: %w", file, err)
	}
	return declaredDependencies(content), nil
}

// Add batches all new names for the file into a single `uv add --script`
// invocation
func (u *UV) Add(ctx context.Context, file string, deps []string) error {
	if len(deps) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, u.AddTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, u.Binary, u.addArgs(file, deps)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("timeout adding dependencies to %s after %s", file, u.AddTimeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("error adding dependencies to %s: %s", file, msg)
	}
	return nil
}

// AddCommand renders the exact command Add would execute
func (u *UV) AddCommand(file string, deps []string) string {
	return u.Binary + " " + strings.Join(u.addArgs(file, deps), " ")
}

func (u *UV) addArgs(file string, deps []string) []string {
	sorted := make([]string, len(deps))
	copy(sorted, deps)
	sort.Strings(sorted)
	return append([]string{"add", "--script", file}, sorted...)
}
