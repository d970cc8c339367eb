package classify_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanolivertroy/porter/internal/classify"
	"github.com/ethanolivertroy/porter/internal/models"
)

func sourceFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.py")
	require.NoError(t, os.WriteFile(path, []byte("import os\n"), 0o644))
	return path
}

func TestClassify_Scenario(t *testing.T) {
	t.Parallel()

	// import os / import requests / from .utils import helper
	imports := models.NewImportSet("os", "requests", ".utils")

	got := classify.Classify(imports, sourceFile(t))

	assert.ElementsMatch(t, []string{"requests"}, got.ThirdParty.Sorted())
	assert.ElementsMatch(t, []string{".utils"}, got.Local.Sorted())
}

func TestClassify_PartitionIsDisjointAndTotal(t *testing.T) {
	t.Parallel()

	imports := models.NewImportSet(
		"os", "sys", "requests", "numpy.linalg", ".rel", "..parent",
	)
	source := sourceFile(t)

	got := classify.Classify(imports, source)

	for name := range got.ThirdParty {
		assert.False(t, got.Local.Contains(name), "%q in both buckets", name)
	}

	// Every raw name lands in exactly one of {local, third-party,
	// discarded-as-stdlib}: 2 stdlib discarded, 2 local, 2 third-party.
	assert.Len(t, got.Local, 2)
	assert.ElementsMatch(t, []string{"requests", "numpy"}, got.ThirdParty.Sorted())
}

func TestClassify_TopLevelSegmentOnly(t *testing.T) {
	t.Parallel()

	got := classify.Classify(models.NewImportSet("pandas.io.json"), sourceFile(t))

	// The package manager installs "pandas", not the submodule path.
	assert.ElementsMatch(t, []string{"pandas"}, got.ThirdParty.Sorted())
}

func TestClassify_DottedStdlibDiscarded(t *testing.T) {
	t.Parallel()

	got := classify.Classify(models.NewImportSet("os.path", "collections.abc"), sourceFile(t))

	assert.Empty(t, got.ThirdParty)
	assert.Empty(t, got.Local)
}

func TestClassify_LocalShadowsStdlib(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(source, []byte("import json\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "json.py"), []byte(""), 0o644))

	got := classify.Classify(models.NewImportSet("json"), source)

	assert.ElementsMatch(t, []string{"json"}, got.Local.Sorted())
	assert.Empty(t, got.ThirdParty)
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	imports := models.NewImportSet("requests", "flask", ".x", "os")
	source := sourceFile(t)

	first := classify.Classify(imports, source)
	second := classify.Classify(imports, source)

	assert.Equal(t, first.ThirdParty.Sorted(), second.ThirdParty.Sorted())
	assert.Equal(t, first.Local.Sorted(), second.Local.Sorted())
}
