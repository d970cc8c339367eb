// Package discovery enumerates the candidate Python files for a scan from
// explicit paths or directory trees, under include/exclude, depth, and
// file-count constraints.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"

	"github.com/ethanolivertroy/porter/internal/extractor"
)

// Options controls a directory walk. Explicit file arguments bypass the
// include/exclude filters entirely.
type Options struct {
	Recursive       bool
	MaxDepth        int // 0 means unlimited
	MaxFiles        int // 0 means unlimited
	IncludePatterns []string
	ExcludePatterns []string
	UseGitignore    bool
	MaxFileSize     int64 // oversized files are skipped with a warning
}

// skipDirs are directory names never worth descending into
var skipDirs = map[string]struct{}{
	".git": {}, ".hg": {}, ".svn": {}, ".idea": {}, ".vscode": {},
	".mypy_cache": {}, ".pytest_cache": {}, ".ruff_cache": {}, ".tox": {},
	"__pycache__": {}, "node_modules": {}, ".venv": {}, "venv": {},
	"site-packages": {}, ".eggs": {},
}

// Find resolves the given paths into a deterministic, ordered list of
// candidate files. Files are taken as-is; directories are walked. The
// returned warnings describe skipped entries (oversized files,
// permission-denied subtrees); they never abort the run.
func Find(paths []string, opts Options) (files, warnings []string, err error) {
	if len(opts.IncludePatterns) == 0 {
		opts.IncludePatterns = []string{"*.py"}
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = extractor.DefaultMaxFileSize
	}

	w := &walker{opts: opts}

	for _, path := range paths {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return nil, nil, fmt.Errorf("cannot access %s: %w", path, statErr)
		}

		if !info.IsDir() {
			// Explicit files are always candidates.
			w.files = append(w.files, path)
			continue
		}

		if opts.UseGitignore {
			w.ignore = loadGitignore(path)
			w.root = path
		}
		w.walk(path, 0)
		w.ignore = nil
	}

	return w.files, w.warnings, nil
}

type walker struct {
	opts     Options
	root     string
	ignore   gitignore.GitIgnore
	files    []string
	warnings []string
}

func (w *walker) full() bool {
	return w.opts.MaxFiles > 0 && len(w.files) >= w.opts.MaxFiles
}

// walk descends one directory level. os.ReadDir yields entries sorted by
// name, which keeps the scan order stable across runs.
func (w *walker) walk(dir string, depth int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission-denied subtrees are skipped, not fatal.
		w.warnings = append(w.warnings, fmt.Sprintf("skipping %s: %v", dir, err))
		return
	}

	for _, entry := range entries {
		if w.full() {
			return
		}

		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if !w.opts.Recursive {
				continue
			}
			if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
				continue
			}
			if _, skip := skipDirs[entry.Name()]; skip {
				continue
			}
			if w.ignored(path, true) {
				continue
			}
			w.walk(path, depth+1)
			continue
		}

		if !w.matches(entry.Name()) || w.ignored(path, false) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			w.warnings = append(w.warnings, fmt.Sprintf("skipping %s: %v", path, err))
			continue
		}
		if info.Size() > w.opts.MaxFileSize {
			w.warnings = append(w.warnings,
				fmt.Sprintf("skipping %s: too large (%d bytes, limit %d)", path, info.Size(), w.opts.MaxFileSize))
			continue
		}

		w.files = append(w.files, path)
	}
}

// matches applies exclude patterns first, then include patterns, against
// the basename. Matching is case-insensitive so upper.PY qualifies the
// same as lower.py.
func (w *walker) matches(name string) bool {
	lower := strings.ToLower(name)

	for _, pattern := range w.opts.ExcludePatterns {
		if ok, err := doublestar.Match(strings.ToLower(pattern), lower); err == nil && ok {
			return false
		}
	}
	for _, pattern := range w.opts.IncludePatterns {
		if ok, err := doublestar.Match(strings.ToLower(pattern), lower); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *walker) ignored(path string, isDir bool) bool {
	if w.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	match := w.ignore.Relative(filepath.ToSlash(rel), isDir)
	return match != nil && match.Ignore()
}

// loadGitignore reads the walk root's .gitignore, if any
func loadGitignore(root string) gitignore.GitIgnore {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, root, nil)
}
