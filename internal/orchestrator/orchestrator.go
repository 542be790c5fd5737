// Package orchestrator coordinates the rename workflow for Retitle.
package orchestrator

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"retitle/internal/candidates"
	"retitle/internal/config"
	"retitle/internal/matcher"
	"retitle/internal/output"
	"retitle/internal/renamer"
	"retitle/internal/scanner"
	"retitle/internal/titles"
)

// RunOptions configures a single run.
type RunOptions struct {
	DryRun bool // Report planned renames without touching the filesystem
}

// Operation is one attempted rename.
type Operation struct {
	Title string // Reference title that matched
	From  string // Original filename
	To    string // New filename
	Err   error  // Set for collisions and failures
}

// RunResult contains the outcome of one pass over a directory.
type RunResult struct {
	Directory    string
	DryRun       bool
	Titles       int
	Candidates   int
	Renamed      []Operation
	Collisions   []Operation
	Errors       []Operation
	AlreadyNamed []string
	Unmatched    []string
	Malformed    []*candidates.EntryError
	Ignored      []string
}

// Created returns the filenames produced by the run.
func (r *RunResult) Created() []string {
	names := make([]string, len(r.Renamed))
	for i, op := range r.Renamed {
		names[i] = op.To
	}
	return names
}

// renameFunc performs or simulates a rename inside dir.
type renameFunc func(dir, from, to string) error

// Orchestrator applies the matcher across every title and candidate.
type Orchestrator struct {
	config  *config.Configuration
	out     *output.Output
	matcher *matcher.Matcher
}

// New creates an Orchestrator. A nil cfg selects the defaults and a nil out
// writes to the standard streams.
func New(cfg *config.Configuration, out *output.Output) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultConfiguration()
	}
	if out == nil {
		out = output.New(output.DefaultConfig())
	}
	return &Orchestrator{
		config:  cfg,
		out:     out,
		matcher: cfg.Matcher(),
	}
}

// Run loads the reference titles, indexes directory and renames every matched file.
// A missing reference file or directory aborts the run before anything is renamed.
func (o *Orchestrator) Run(referencePath, directory string, opts RunOptions) (*RunResult, error) {
	o.out.Info("Listing book titles from reference file '%s' in %s",
		filepath.Base(referencePath), describeDirectory(filepath.Dir(referencePath)))

	refs, err := titles.Load(referencePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load titles: %w", err)
	}
	o.listTitles(refs)

	idx, err := candidates.Build(directory, o.config.CandidateOptions(), refs)
	if err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", directory, err)
	}

	for _, entry := range idx.Malformed {
		o.out.Warn("Skipped '%s': %s", entry.Filename, entry.Reason)
	}
	for _, name := range idx.Ignored {
		o.out.Verbose("Ignored '%s'", name)
	}

	return o.Rename(refs, idx, opts), nil
}

// Rename runs the matching loop over already loaded titles and an index.
// Titles are visited in order; each unresolved candidate is offered to the
// title and, on a match, renamed to the title text with its extension kept.
// A resolved candidate is never offered again.
func (o *Orchestrator) Rename(refs []titles.Title, idx *candidates.Index, opts RunOptions) *RunResult {
	result := &RunResult{
		Directory:  idx.Directory,
		DryRun:     opts.DryRun,
		Titles:     len(refs),
		Candidates: len(idx.Candidates),
		Malformed:  idx.Malformed,
		Ignored:    idx.Ignored,
	}
	for _, c := range idx.Resolved() {
		result.AlreadyNamed = append(result.AlreadyNamed, c.Filename)
		o.out.Verbose("'%s' already carries its title", c.Filename)
	}

	var rename renameFunc = renamer.Rename
	if opts.DryRun {
		rename = newSimulator().Rename
	}
	onePerTitle := o.config.GetOnePerTitle()
	verbose := o.out.IsVerbose()

	o.out.StartProgress(len(refs))
	for i, title := range refs {
		o.out.UpdateProgress(i+1, "")

		for _, cand := range idx.Candidates {
			if cand.Resolved {
				continue
			}

			matched := o.matcher.Matches(title.Keywords, cand.Normalized)
			if verbose {
				o.out.Verbose("Checking keywords %q in %s", title.Keywords, cand.Normalized)
				if !matched {
					o.out.Verbose("--- Skipped. Resolved: %t", cand.Resolved)
				}
			}
			if !matched {
				continue
			}

			op := Operation{
				Title: title.Raw,
				From:  cand.Filename,
				To:    title.Raw + "." + cand.Extension,
			}
			if err := rename(idx.Directory, op.From, op.To); err != nil {
				op.Err = err
				if renamer.IsCollision(err) {
					result.Collisions = append(result.Collisions, op)
					o.out.Warn("Duplicated name found. '%s' exists. Target file for renaming is '%s'", op.To, op.From)
				} else {
					result.Errors = append(result.Errors, op)
					o.out.Error("Failed to rename '%s': %v", op.From, err)
				}
				continue
			}

			cand.Resolved = true
			result.Renamed = append(result.Renamed, op)
			if opts.DryRun {
				o.out.Success("Would rename '%s' to '%s'", op.From, op.To)
			} else {
				o.out.Success("Renamed file from '%s' to '%s'", op.From, op.To)
			}

			if onePerTitle {
				break
			}
		}
	}
	o.out.EndProgress()

	for _, c := range idx.Unresolved() {
		result.Unmatched = append(result.Unmatched, c.Filename)
	}
	return result
}

// RunWithSummary runs and prints the closing summary line.
func (o *Orchestrator) RunWithSummary(referencePath, directory string, opts RunOptions) (*RunResult, *RunSummary, error) {
	start := time.Now()
	result, err := o.Run(referencePath, directory, opts)
	if err != nil {
		return nil, nil, err
	}

	summary := GenerateSummary(result, time.Since(start))
	for _, name := range result.Unmatched {
		o.out.Verbose("No title matched '%s'", name)
	}
	o.out.Info("%s", summary.String())
	return result, summary, nil
}

// listTitles prints the titles in reference-file order followed by their count.
func (o *Orchestrator) listTitles(refs []titles.Title) {
	byLine := make([]titles.Title, len(refs))
	copy(byLine, refs)
	sort.Slice(byLine, func(i, j int) bool { return byLine[i].Line < byLine[j].Line })

	for i, t := range byLine {
		o.out.Verbose("%d. %s", i+1, t.Raw)
	}
	o.out.Info("Found %d title(s)", len(refs))
}

func describeDirectory(dir string) string {
	if dir == "." || dir == "" {
		return "current directory"
	}
	return fmt.Sprintf("directory '%s'", dir)
}

// IsPathNotFound reports whether err is the fatal missing reference file or
// missing directory condition.
func IsPathNotFound(err error) bool {
	var loadErr *titles.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Type == titles.PathNotFound
	}
	var scanErr *scanner.ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Type == scanner.DirectoryNotFound
	}
	return false
}

// simulator plans renames for a dry run.
// It tracks names that planned renames create and vacate so that collisions
// are predicted exactly as a real run would hit them.
type simulator struct {
	planned map[string]bool
	vacated map[string]bool
}

func newSimulator() *simulator {
	return &simulator{
		planned: make(map[string]bool),
		vacated: make(map[string]bool),
	}
}

func (s *simulator) Rename(dir, from, to string) error {
	dst := filepath.Join(dir, to)
	if s.planned[to] || (!s.vacated[to] && renamer.FileExists(dst)) {
		return &renamer.RenameError{Type: renamer.DestinationExists, Path: dst}
	}
	if !s.planned[from] && !renamer.FileExists(filepath.Join(dir, from)) {
		return &renamer.RenameError{Type: renamer.SourceNotFound, Path: filepath.Join(dir, from)}
	}
	delete(s.planned, from)
	s.vacated[from] = true
	s.planned[to] = true
	delete(s.vacated, to)
	return nil
}
