package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/porter/internal/manager"
	"github.com/ethanolivertroy/porter/internal/models"
	"github.com/ethanolivertroy/porter/internal/scanner"
)

// fakeManager records calls instead of shelling out to uv
type fakeManager struct {
	unavailable bool
	declared    map[string][]string // file -> already-declared names
	addErr      error
	addCalls    map[string][]string // file -> deps passed to Add
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		declared: map[string][]string{},
		addCalls: map[string][]string{},
	}
}

func (m *fakeManager) Healthy(context.Context) error {
	if m.unavailable {
		return manager.ErrUnavailable
	}
	return nil
}

func (m *fakeManager) ListDeclared(_ context.Context, file string) (models.ImportSet, error) {
	return models.NewImportSet(m.declared[file]...), nil
}

func (m *fakeManager) Add(_ context.Context, file string, deps []string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.addCalls[file] = append([]string(nil), deps...)
	return nil
}

func (m *fakeManager) AddCommand(file string, deps []string) string {
	return "uv add --script " + file + " " + strings.Join(deps, " ")
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func config(paths ...string) *models.Config {
	cfg := models.DefaultConfig()
	cfg.Paths = paths
	cfg.UseGitignore = false
	return cfg
}

func TestScan_DirectoryBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := write(t, dir, "a.py", "import numpy\n")
	b := write(t, dir, "b.py", "import numpy\nimport pandas\n")

	mgr := newFakeManager()
	summary, err := scanner.New(config(dir), mgr).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, []string{"numpy"}, mgr.addCalls[a])
	assert.Equal(t, []string{"numpy", "pandas"}, mgr.addCalls[b])
	assert.Equal(t, 3, summary.DepsAdded)
}

func TestScan_ManagerUnavailableAbortsBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "a.py", "import numpy\n")

	mgr := newFakeManager()
	mgr.unavailable = true

	summary, err := scanner.New(config(dir), mgr).Scan(context.Background())

	assert.ErrorIs(t, err, manager.ErrUnavailable)
	assert.Nil(t, summary)
	assert.Empty(t, mgr.addCalls)
}

func TestScan_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "broken.py", "def invalid_syntax(\n")
	good := write(t, dir, "good.py", "import requests\n")

	mgr := newFakeManager()
	summary, err := scanner.New(config(dir), mgr).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, []string{"requests"}, mgr.addCalls[good])
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "broken.py")
	assert.False(t, summary.AllFailed())
}

func TestScan_EmptyFileIsWarningNotFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "empty.py", "")

	mgr := newFakeManager()
	summary, err := scanner.New(config(dir), mgr).Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.True(t, summary.Results[0].Success)
	assert.Contains(t, summary.Results[0].Warning, "empty")
	assert.Equal(t, 0, summary.Failed)
}

func TestScan_DryRunSkipsAdd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "a.py", "import requests\n")

	cfg := config(dir)
	cfg.DryRun = true

	mgr := newFakeManager()
	summary, err := scanner.New(cfg, mgr).Scan(context.Background())
	require.NoError(t, err)

	assert.Empty(t, mgr.addCalls)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, []string{"requests"}, summary.Results[0].Added)
	assert.Contains(t, summary.Results[0].Command, "uv add --script")
}

func TestScan_DeclaredDepsNotReAdded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := write(t, dir, "a.py", "import requests\nimport numpy\n")

	mgr := newFakeManager()
	mgr.declared[path] = []string{"requests"}

	summary, err := scanner.New(config(dir), mgr).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"numpy"}, mgr.addCalls[path])
	assert.Equal(t, 1, summary.DepsAdded)
}

func TestScan_LocalImportsReportedNotAdded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, "utils.py", "import os\n")
	write(t, dir, "app.py", "import utils\nfrom .helpers import x\nimport requests\n")

	mgr := newFakeManager()
	summary, err := scanner.New(config(dir), mgr).Scan(context.Background())
	require.NoError(t, err)

	var app models.ScanResult
	for _, r := range summary.Results {
		if filepath.Base(r.Path) == "app.py" {
			app = r
		}
	}
	assert.ElementsMatch(t, []string{".helpers", "utils"}, app.LocalWarnings())
	assert.Equal(t, []string{"requests"}, app.Added)
}

func TestScan_MaxFilesCeiling(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, n := range []string{"a.py", "b.py", "c.py", "d.py", "e.py"} {
		write(t, dir, n, "import requests\n")
	}

	cfg := config(dir)
	cfg.MaxFiles = 2

	summary, err := scanner.New(cfg, newFakeManager()).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
}

func TestScan_ProgressOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, n := range []string{"c.py", "a.py", "b.py"} {
		write(t, dir, n, "import os\n")
	}

	var seen []string
	s := scanner.New(config(dir), newFakeManager())
	s.OnProgress(func(_, _ int, path string) {
		seen = append(seen, filepath.Base(path))
	})

	_, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a.py", "b.py", "c.py"}, seen)
}
