package orchestrator

import (
	"fmt"
	"strings"
	"time"
)

// RunSummary contains statistics from a run.
type RunSummary struct {
	Renamed      int
	AlreadyNamed int
	Collisions   int
	Errors       int
	Unmatched    int
	Malformed    int
	Candidates   int
	DryRun       bool
	Duration     time.Duration
}

// GenerateSummary creates a summary from a run result.
func GenerateSummary(result *RunResult, duration time.Duration) *RunSummary {
	if result == nil {
		return &RunSummary{Duration: duration}
	}

	return &RunSummary{
		Renamed:      len(result.Renamed),
		AlreadyNamed: len(result.AlreadyNamed),
		Collisions:   len(result.Collisions),
		Errors:       len(result.Errors),
		Unmatched:    len(result.Unmatched),
		Malformed:    len(result.Malformed),
		Candidates:   result.Candidates,
		DryRun:       result.DryRun,
		Duration:     duration,
	}
}

// HasErrors returns true if a rename failed for a reason other than a collision.
func (s *RunSummary) HasErrors() bool {
	return s.Errors > 0
}

// String returns the closing summary line.
func (s *RunSummary) String() string {
	verb := "Renamed"
	if s.DryRun {
		verb = "Would rename"
	}

	parts := []string{
		fmt.Sprintf("%d already named", s.AlreadyNamed),
		fmt.Sprintf("%d unmatched", s.Unmatched),
	}
	if s.Collisions > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicate(s)", s.Collisions))
	}
	if s.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", s.Errors))
	}
	if s.Malformed > 0 {
		parts = append(parts, fmt.Sprintf("%d malformed", s.Malformed))
	}

	return fmt.Sprintf("%s %d of %d file(s): %s (%s)",
		verb, s.Renamed, s.Candidates, strings.Join(parts, ", "), s.Duration.Round(time.Millisecond))
}
