package models

import "time"

// Config holds configuration for a scan run
type Config struct {
	// Paths to scan: individual files and/or directories
	Paths []string

	// Discovery settings (directories only)
	Recursive       bool
	MaxDepth        int // 0 means unlimited
	MaxFiles        int // 0 means unlimited
	IncludePatterns []string
	ExcludePatterns []string
	UseGitignore    bool

	// Output settings
	OutputFormat string // "terminal", "json"
	OutputFile   string // Optional output file path

	// Behavior settings
	DryRun  bool // Report what would be added without calling uv
	Verbose bool // Per-file progress plus the final summary

	// Subprocess settings
	ProbeTimeout time.Duration // uv health probe
	AddTimeout   time.Duration // uv add call
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Paths:           []string{"."},
		IncludePatterns: []string{"*.py"},
		UseGitignore:    true,
		OutputFormat:    "terminal",
		ProbeTimeout:    10 * time.Second,
		AddTimeout:      120 * time.Second,
	}
}
