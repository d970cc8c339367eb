package reporter

import (
	"encoding/json"

	"github.com/ethanolivertroy/porter/internal/models"
)

// JSONReporter outputs a machine-readable run report
type JSONReporter struct{}

// jsonReport is the top-level document
type jsonReport struct {
	Processed      int        `json:"processed"`
	Succeeded      int        `json:"succeeded"`
	Failed         int        `json:"failed"`
	DepsAdded      int        `json:"deps_added"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
	Files          []jsonFile `json:"files"`
	Warnings       []string   `json:"warnings,omitempty"`
}

type jsonFile struct {
	Path       string   `json:"path"`
	ThirdParty []string `json:"third_party,omitempty"`
	Local      []string `json:"local,omitempty"`
	Added      []string `json:"added,omitempty"`
	Command    string   `json:"command,omitempty"`
	Success    bool     `json:"success"`
	Warning    string   `json:"warning,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Report generates indented JSON for the given summary
func (r *JSONReporter) Report(s *models.Summary) ([]byte, error) {
	doc := jsonReport{
		Processed:      s.Processed,
		Succeeded:      s.Succeeded,
		Failed:         s.Failed,
		DepsAdded:      s.DepsAdded,
		ElapsedSeconds: s.Elapsed.Seconds(),
		Files:          make([]jsonFile, 0, len(s.Results)),
		Warnings:       s.Warnings,
	}

	for _, res := range s.Results {
		doc.Files = append(doc.Files, jsonFile{
			Path:       res.Path,
			ThirdParty: res.Imports.ThirdParty.Sorted(),
			Local:      res.Imports.Local.Sorted(),
			Added:      res.Added,
			Command:    res.Command,
			Success:    res.Success,
			Warning:    res.Warning,
			Error:      res.Error,
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}
