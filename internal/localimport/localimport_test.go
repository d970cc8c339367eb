package localimport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/porter/internal/localimport"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0o644))
}

func TestIsLocal_RelativeMarker(t *testing.T) {
	t.Parallel()

	source := filepath.Join(t.TempDir(), "app.py")

	assert.True(t, localimport.IsLocal(".utils", source))
	assert.True(t, localimport.IsLocal("..", source))
	assert.True(t, localimport.IsLocal("..shared.db", source))
}

func TestIsLocal_SiblingModule(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "app.py")
	touch(t, source)
	touch(t, filepath.Join(dir, "utils.py"))

	assert.True(t, localimport.IsLocal("utils", source))
	assert.False(t, localimport.IsLocal("helpers", source))
}

func TestIsLocal_SiblingPackage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "app.py")
	touch(t, source)
	touch(t, filepath.Join(dir, "mypkg", "__init__.py"))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plaindir"), 0o755))

	assert.True(t, localimport.IsLocal("mypkg", source))
	// A directory without a package marker is just a folder.
	assert.False(t, localimport.IsLocal("plaindir", source))
	// The full dotted name still resolves via its first segment.
	assert.True(t, localimport.IsLocal("mypkg.submodule", source))
}

func TestIsLocal_NestedModulePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "app.py")
	touch(t, source)
	touch(t, filepath.Join(dir, "services", "db.py"))

	assert.True(t, localimport.IsLocal("services.db", source))
	assert.False(t, localimport.IsLocal("services.cache", source))
}

func TestIsLocal_ShadowedStdlibName(t *testing.T) {
	t.Parallel()

	// A sibling os.py shadows the standard library; the import resolves
	// to the sibling, so it is local.
	dir := t.TempDir()
	source := filepath.Join(dir, "app.py")
	touch(t, source)
	touch(t, filepath.Join(dir, "os.py"))

	assert.True(t, localimport.IsLocal("os", source))
}

func TestIsLocal_SymlinkEscapeRejected(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	touch(t, filepath.Join(outside, "evil.py"))

	dir := t.TempDir()
	source := filepath.Join(dir, "app.py")
	touch(t, source)

	if err := os.Symlink(filepath.Join(outside, "evil.py"), filepath.Join(dir, "evil.py")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	// The sibling exists but resolves outside the source directory, so it
	// must classify as a real dependency instead.
	assert.False(t, localimport.IsLocal("evil", source))
}

func TestIsLocal_CraftedNamesRejected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "app.py")
	touch(t, source)
	touch(t, filepath.Join(dir, "safe.py"))

	assert.False(t, localimport.IsLocal("", source))
	assert.False(t, localimport.IsLocal("a..b", source))
	assert.False(t, localimport.IsLocal("a/b", source))
	assert.False(t, localimport.IsLocal(`a\b`, source))
}
