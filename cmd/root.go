package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ethanolivertroy/porter/internal/manager"
	"github.com/ethanolivertroy/porter/internal/models"
	"github.com/ethanolivertroy/porter/internal/reporter"
	"github.com/ethanolivertroy/porter/internal/scanner"
)

const version = "0.1.0"

var (
	flagRecursive   bool
	flagMaxDepth    int
	flagMaxFiles    int
	flagInclude     []string
	flagExclude     []string
	flagNoGitignore bool
	flagDryRun      bool
	flagVerbose     bool
	flagFormat      string
	flagOutput      string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "porter [paths...]",
	Short: "Detect and register missing Python dependencies with uv",
	Long: `porter scans Python source files, extracts their imports from the syntax
tree, and classifies each one as standard-library, local, or third-party.
Third-party packages not yet declared for a script are registered with uv
in a single batched "uv add --script" call per file.

Standard-library imports are discarded; local imports (relative imports and
sibling modules/packages) are reported as warnings, never installed.

Examples:
  # Scan one script
  porter tool.py

  # Scan a directory tree, skipping tests
  porter --recursive --exclude 'test_*' ./src

  # Limit the walk
  porter --recursive --max-depth 2 --max-files 100 ./src

  # See what would be added without touching anything
  porter --dry-run --verbose ./src

  # Machine-readable report
  porter --format json --output report.json ./src

Exit codes: 0 all files succeeded, 1 mixed success and failure, 2 no files
processed or all failed (including uv being unavailable).`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runScan,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&flagRecursive, "recursive", "r", false, "Process directories recursively")
	rootCmd.Flags().IntVar(&flagMaxDepth, "max-depth", 0, "Maximum recursion depth (requires --recursive)")
	rootCmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "Maximum number of files to process (safety limit)")
	rootCmd.Flags().StringArrayVar(&flagInclude, "include", nil, "Include files matching glob (repeatable; default *.py)")
	rootCmd.Flags().StringArrayVar(&flagExclude, "exclude", nil, "Exclude files matching glob (repeatable)")
	rootCmd.Flags().BoolVar(&flagNoGitignore, "no-gitignore", false, "Do not honor .gitignore during directory walks")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report what would be added without calling uv")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Emit per-file progress and a final summary")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "terminal", "Output format: terminal, json")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
}

func runScan(cmd *cobra.Command, args []string) error {
	if flagMaxDepth > 0 && !flagRecursive {
		return fmt.Errorf("--max-depth can only be used with --recursive")
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	config := models.DefaultConfig()
	config.Paths = paths
	config.Recursive = flagRecursive
	config.MaxDepth = flagMaxDepth
	config.MaxFiles = flagMaxFiles
	if len(flagInclude) > 0 {
		config.IncludePatterns = flagInclude
	}
	config.ExcludePatterns = flagExclude
	config.UseGitignore = !flagNoGitignore
	config.DryRun = flagDryRun
	config.Verbose = flagVerbose
	config.OutputFormat = flagFormat
	config.OutputFile = flagOutput

	uv := manager.NewUV(config.ProbeTimeout, config.AddTimeout)
	s := scanner.New(config, uv)

	if config.Verbose {
		fmt.Fprintln(os.Stderr, color.CyanString("[+] porter %s scanning %d path(s)", version, len(paths)))
		s.OnProgress(func(index, total int, path string) {
			fmt.Fprintf(os.Stderr, "[%d/%d] Scanning %s\n", index, total, path)
		})
	}

	summary, err := s.Scan(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(2)
	}

	rep := reporter.Get(config.OutputFormat)
	output, err := rep.Report(summary)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if config.OutputFile != "" {
		if err := os.WriteFile(config.OutputFile, output, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", config.OutputFile)
	} else {
		fmt.Print(string(output))
	}

	switch {
	case summary.AllFailed():
		os.Exit(2)
	case summary.Failed > 0:
		os.Exit(1)
	}
	return nil
}
