package reporter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ethanolivertroy/porter/internal/models"
)

// TerminalReporter renders a run summary in a human-readable terminal
// format: per-file outcomes first, then local-import warnings grouped by
// file, then the run totals. Warnings come after all per-file output so
// they are easy to scan in one place.
type TerminalReporter struct{}

// Report generates terminal output for the given summary
func (r *TerminalReporter) Report(s *models.Summary) ([]byte, error) {
	var sb strings.Builder

	for _, res := range s.Results {
		r.writeResult(&sb, res)
	}

	r.writeLocalWarnings(&sb, s)

	for _, warning := range s.Warnings {
		sb.WriteString(color.YellowString("[!] %s\n", warning))
	}

	r.writeSummaryTable(&sb, s)

	return []byte(sb.String()), nil
}

func (r *TerminalReporter) writeResult(sb *strings.Builder, res models.ScanResult) {
	switch {
	case res.Error != "":
		sb.WriteString(color.RedString("[x] %s\n", res.Error))
	case res.Command != "":
		sb.WriteString(fmt.Sprintf("DRY RUN: would execute: %s\n", res.Command))
	case len(res.Added) > 0:
		sb.WriteString(color.GreenString("[+] %s\n", res.Path))
		for _, dep := range res.Added {
			sb.WriteString(fmt.Sprintf(" | %s\n", dep))
		}
	case res.Warning != "":
		sb.WriteString(color.YellowString("[!] %s: %s\n", res.Path, res.Warning))
	}
}

// writeLocalWarnings lists local imports grouped by the file that made them
func (r *TerminalReporter) writeLocalWarnings(sb *strings.Builder, s *models.Summary) {
	wrote := false
	for _, res := range s.Results {
		locals := res.LocalWarnings()
		if len(locals) == 0 {
			continue
		}
		if !wrote {
			sb.WriteString(color.YellowString("\n[!] Local imports (not registered):\n"))
			wrote = true
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s\n", res.Path, strings.Join(locals, ", ")))
	}
}

func (r *TerminalReporter) writeSummaryTable(sb *strings.Builder, s *models.Summary) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("Processing Summary")
	tw.AppendRows([]table.Row{
		{"Files processed", s.Processed},
		{"Successful", s.Succeeded},
		{"Failed", s.Failed},
		{"Dependencies added", s.DepsAdded},
		{"Time taken", fmt.Sprintf("%.2fs", s.Elapsed.Seconds())},
	})

	sb.WriteString("\n")
	sb.WriteString(tw.Render())
	sb.WriteString("\n")
}
