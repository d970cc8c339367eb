// Package scanner drives extraction and classification over a file set and
// hands each file's third-party candidates to the dependency manager.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethanolivertroy/porter/internal/classify"
	"github.com/ethanolivertroy/porter/internal/discovery"
	"github.com/ethanolivertroy/porter/internal/extractor"
	"github.com/ethanolivertroy/porter/internal/manager"
	"github.com/ethanolivertroy/porter/internal/models"
)

// ProgressFunc receives per-file progress while a batch runs
type ProgressFunc func(index, total int, path string)

// Scanner orchestrates one batch run. Files are processed sequentially in
// the order discovery yields them; a failing file is recorded and the batch
// continues.
type Scanner struct {
	config    *models.Config
	extractor *extractor.Extractor
	manager   manager.Manager
	progress  ProgressFunc
}

// New creates a Scanner with the given configuration and manager
func New(config *models.Config, mgr manager.Manager) *Scanner {
	return &Scanner{
		config:    config,
		extractor: extractor.New(),
		manager:   mgr,
	}
}

// OnProgress registers a per-file progress callback
func (s *Scanner) OnProgress(fn ProgressFunc) {
	s.progress = fn
}

// Scan runs the full batch. An unavailable manager or an unresolvable input
// path aborts before any file is touched; everything after that is
// file-local.
func (s *Scanner) Scan(ctx context.Context) (*models.Summary, error) {
	start := time.Now()

	if err := s.manager.Healthy(ctx); err != nil {
		return nil, err
	}

	files, warnings, err := discovery.Find(s.config.Paths, discovery.Options{
		Recursive:       s.config.Recursive,
		MaxDepth:        s.config.MaxDepth,
		MaxFiles:        s.config.MaxFiles,
		IncludePatterns: s.config.IncludePatterns,
		ExcludePatterns: s.config.ExcludePatterns,
		UseGitignore:    s.config.UseGitignore,
	})
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}

	summary := &models.Summary{Warnings: warnings}
	for i, file := range files {
		if s.progress != nil {
			s.progress(i+1, len(files), file)
		}
		summary.Record(s.scanFile(ctx, file))
	}
	summary.Elapsed = time.Since(start)

	return summary, nil
}

// scanFile runs one file through extract -> classify -> register
func (s *Scanner) scanFile(ctx context.Context, path string) models.ScanResult {
	result := models.ScanResult{
		Path:    path,
		Imports: models.NewClassifiedImports(),
	}

	imports, err := s.extractor.Extract(path)
	if errors.Is(err, extractor.ErrEmptyFile) {
		result.Success = true
		result.Warning = err.Error()
		return result
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Imports = classify.Classify(imports, path)

	candidates := result.Imports.ThirdParty.Sorted()
	if len(candidates) == 0 {
		result.Success = true
		return result
	}

	declared, err := s.manager.ListDeclared(ctx, path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	var newDeps []string
	for _, dep := range candidates {
		if !declared.Contains(strings.ToLower(dep)) {
			newDeps = append(newDeps, dep)
		}
	}
	if len(newDeps) == 0 {
		result.Success = true
		return result
	}

	if s.config.DryRun {
		result.Success = true
		result.Added = newDeps
		result.Command = s.manager.AddCommand(path, newDeps)
		return result
	}

	if err := s.manager.Add(ctx, path, newDeps); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	result.Added = newDeps
	return result
}
