package models

import (
	"sort"
	"strings"
)

// ImportSet is a set of unique dotted import names extracted from one file.
// Names are stored exactly as they appeared in the source (e.g. "a.b.c",
// ".utils"); duplicates collapse on insert.
type ImportSet map[string]struct{}

// NewImportSet creates an ImportSet from the given names
func NewImportSet(names ...string) ImportSet {
	s := make(ImportSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts a name into the set
func (s ImportSet) Add(name string) {
	s[name] = struct{}{}
}

// Contains reports whether the set holds the given name
func (s ImportSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the set's names in lexical order
func (s ImportSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// TopLevel returns the first dot-separated segment of a dotted module name.
// That segment is the unit a package manager installs.
func TopLevel(name string) string {
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		return name[:idx]
	}
	return name
}

// ClassifiedImports partitions one file's ImportSet. ThirdParty holds
// top-level package names; Local holds full dotted names. The two sets are
// disjoint; names classified as standard library are discarded.
type ClassifiedImports struct {
	ThirdParty ImportSet
	Local      ImportSet
}

// NewClassifiedImports returns an empty partition
func NewClassifiedImports() ClassifiedImports {
	return ClassifiedImports{
		ThirdParty: NewImportSet(),
		Local:      NewImportSet(),
	}
}
