package orchestrator

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// TestGenerateSummary_NilResult tests that GenerateSummary handles nil result gracefully.
func TestGenerateSummary_NilResult(t *testing.T) {
	duration := 5 * time.Second
	summary := GenerateSummary(nil, duration)

	if summary == nil {
		t.Fatal("Expected non-nil summary for nil result")
	}
	if summary.Renamed != 0 || summary.Collisions != 0 || summary.Errors != 0 {
		t.Errorf("Expected zero counts, got %+v", summary)
	}
	if summary.Duration != duration {
		t.Errorf("Expected Duration=%v, got %v", duration, summary.Duration)
	}
}

func TestGenerateSummary_Counts(t *testing.T) {
	result := &RunResult{
		Candidates:   6,
		Renamed:      []Operation{{From: "a.epub", To: "A.epub"}, {From: "b.pdf", To: "B.pdf"}},
		Collisions:   []Operation{{From: "c.pdf", To: "B.pdf"}},
		Errors:       []Operation{{From: "d.pdf", To: "D.pdf", Err: errors.New("boom")}},
		AlreadyNamed: []string{"E.epub"},
		Unmatched:    []string{"c.pdf", "d.pdf", "zzz.mobi"},
	}

	summary := GenerateSummary(result, 1500*time.Millisecond)

	if summary.Renamed != 2 {
		t.Errorf("Expected Renamed=2, got %d", summary.Renamed)
	}
	if summary.Collisions != 1 {
		t.Errorf("Expected Collisions=1, got %d", summary.Collisions)
	}
	if summary.Errors != 1 || !summary.HasErrors() {
		t.Errorf("Expected one error, got %d", summary.Errors)
	}
	if summary.AlreadyNamed != 1 || summary.Unmatched != 3 {
		t.Errorf("Unexpected AlreadyNamed/Unmatched: %d/%d", summary.AlreadyNamed, summary.Unmatched)
	}

	line := summary.String()
	for _, want := range []string{"Renamed 2 of 6 file(s)", "1 already named", "3 unmatched", "1 duplicate(s)", "1 error(s)", "1.5s"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected summary %q to contain %q", line, want)
		}
	}
}

func TestSummaryString_DryRun(t *testing.T) {
	summary := GenerateSummary(&RunResult{DryRun: true, Candidates: 1, Renamed: []Operation{{}}}, 0)

	line := summary.String()
	if !strings.HasPrefix(line, "Would rename 1 of 1 file(s)") {
		t.Errorf("Unexpected dry-run summary: %q", line)
	}
	if strings.Contains(line, "duplicate") || strings.Contains(line, "error") {
		t.Errorf("Zero counts should be omitted: %q", line)
	}
	if summary.HasErrors() {
		t.Error("Expected no errors")
	}
}
