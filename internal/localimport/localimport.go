// Package localimport decides whether an imported name resolves to a
// sibling file or package of the importing source file rather than an
// installed dependency.
package localimport

import (
	"os"
	"path/filepath"
	"strings"
)

// packageMarker signals that a directory is an importable Python package
const packageMarker = "__init__.py"

// IsLocal reports whether importName refers to something next to
// sourceFile. An import is local when it carries a relative-import marker,
// or when a sibling file, sibling package directory, or nested module path
// matching the name exists inside the source file's directory subtree.
//
// Candidate paths are resolved through symlinks and verified to still lie
// under the source directory before being trusted; a crafted name or a
// symlink pointing outside the tree therefore never classifies as local.
// Any resolution failure also answers "not local".
func IsLocal(importName, sourceFile string) bool {
	if importName == "" {
		return false
	}
	if strings.HasPrefix(importName, ".") {
		return true
	}

	segments := strings.Split(importName, ".")
	for _, seg := range segments {
		if seg == "" || seg == ".." || strings.ContainsAny(seg, `/\`) {
			return false
		}
	}

	dir := filepath.Dir(sourceFile)
	root, err := canonicalize(dir)
	if err != nil {
		return false
	}

	first := segments[0]
	candidates := []string{
		filepath.Join(dir, first+".py"),
		filepath.Join(dir, first, packageMarker),
	}
	if len(segments) > 1 {
		nested := filepath.Join(append([]string{dir}, segments...)...) + ".py"
		candidates = append(candidates, nested)
	}

	for _, candidate := range candidates {
		if existsWithin(root, candidate) {
			return true
		}
	}
	return false
}

// canonicalize resolves a path to its absolute, symlink-free form
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// existsWithin reports whether candidate is a regular file whose resolved
// location is still inside the root subtree
func existsWithin(root, candidate string) bool {
	resolved, err := canonicalize(candidate)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
