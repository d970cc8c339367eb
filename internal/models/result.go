package models

import "time"

// ScanResult is the per-file outcome of one extraction + classification +
// registration pass. Never mutated after creation.
type ScanResult struct {
	Path    string            `json:"path"`
	Imports ClassifiedImports `json:"-"`
	Added   []string          `json:"added,omitempty"`
	Command string            `json:"command,omitempty"` // dry run: the add call that was skipped
	Success bool              `json:"success"`
	Warning string            `json:"warning,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// LocalWarnings returns the file's local imports, sorted, for reporting
func (r ScanResult) LocalWarnings() []string {
	if r.Imports.Local == nil {
		return nil
	}
	return r.Imports.Local.Sorted()
}

// Summary aggregates a whole batch run
type Summary struct {
	Processed int           `json:"processed"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	DepsAdded int           `json:"deps_added"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Results   []ScanResult  `json:"results"`
	Errors    []string      `json:"errors,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"` // discovery-level skips
}

// Record folds one ScanResult into the summary
func (s *Summary) Record(r ScanResult) {
	s.Processed++
	if r.Success {
		s.Succeeded++
		s.DepsAdded += len(r.Added)
	} else {
		s.Failed++
		if r.Error != "" {
			s.Errors = append(s.Errors, r.Path+": "+r.Error)
		}
	}
	s.Results = append(s.Results, r)
}

// AllFailed reports whether nothing was processed or every file failed.
// Drives the exit-code-2 outcome.
func (s *Summary) AllFailed() bool {
	return s.Processed == 0 || s.Failed == s.Processed
}
