// Package classify partitions a file's raw import set into local imports,
// discarded standard-library imports, and third-party dependency candidates.
package classify

import (
	"github.com/ethanolivertroy/porter/internal/localimport"
	"github.com/ethanolivertroy/porter/internal/models"
	"github.com/ethanolivertroy/porter/internal/stdlib"
)

// Classify maps every name in the set to exactly one bucket. Local imports
// keep their full dotted name for reporting; third-party imports are
// reduced to their top-level segment, which is the unit a package manager
// installs; standard-library names are discarded. The local check runs
// first so a sibling module shadowing a stdlib name wins, matching Python's
// own resolution order. Same inputs always yield the same partition.
func Classify(imports models.ImportSet, sourceFile string) models.ClassifiedImports {
	out := models.NewClassifiedImports()

	for name := range imports {
		switch {
		case localimport.IsLocal(name, sourceFile):
			out.Local.Add(name)
		case stdlib.Contains(models.TopLevel(name)):
			// discarded
		default:
			out.ThirdParty.Add(models.TopLevel(name))
		}
	}
	return out
}
