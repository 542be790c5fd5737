package config

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"retitle/internal/watcher"
)

func hasIssue(issues []ConfigValidationError, field, fragment string) bool {
	for _, issue := range issues {
		if issue.Field == field && strings.Contains(issue.Message, fragment) {
			return true
		}
	}
	return false
}

func TestValidationReportsAllErrors(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every invalid entry is reported, not just the first", prop.ForAll(
		func(badExtensions, badWords int) bool {
			cfg := DefaultConfiguration()
			cfg.Extensions = []string{"epub"}
			cfg.OmittedWords = []string{"the"}
			for i := 0; i < badExtensions; i++ {
				cfg.Extensions = append(cfg.Extensions, "tar.gz")
			}
			for i := 0; i < badWords; i++ {
				cfg.OmittedWords = append(cfg.OmittedWords, "of the")
			}

			result := ValidateConfig(cfg)
			if len(result.Errors) != badExtensions+badWords {
				return false
			}
			return result.Valid == (badExtensions+badWords == 0)
		},
		gen.IntRange(0, 5),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}

func TestExtensionValidation(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		wantErr    string
		wantWarn   string
		field      string
	}{
		{name: "valid", extensions: []string{"epub", "pdf"}},
		{name: "empty", extensions: []string{"epub", ""}, wantErr: "cannot be empty", field: "extensions[1]"},
		{name: "only a dot", extensions: []string{"."}, wantErr: "cannot be empty", field: "extensions[0]"},
		{name: "inner dot", extensions: []string{"tar.gz"}, wantErr: "must not contain", field: "extensions[0]"},
		{name: "slash", extensions: []string{"a/b"}, wantErr: "must not contain", field: "extensions[0]"},
		{name: "space", extensions: []string{"e pub"}, wantErr: "must not contain", field: "extensions[0]"},
		{name: "leading dot", extensions: []string{".epub"}, wantWarn: "leading dot", field: "extensions[0]"},
		{name: "duplicate", extensions: []string{"epub", "EPUB"}, wantWarn: "duplicate", field: "extensions[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfiguration()
			cfg.Extensions = tt.extensions
			result := ValidateConfig(cfg)

			if tt.wantErr == "" && !result.Valid {
				t.Errorf("unexpected errors: %+v", result.Errors)
			}
			if tt.wantErr != "" && !hasIssue(result.Errors, tt.field, tt.wantErr) {
				t.Errorf("expected error %q on %s, got %+v", tt.wantErr, tt.field, result.Errors)
			}
			if tt.wantWarn != "" && !hasIssue(result.Warnings, tt.field, tt.wantWarn) {
				t.Errorf("expected warning %q on %s, got %+v", tt.wantWarn, tt.field, result.Warnings)
			}
			if tt.wantWarn == "" && tt.wantErr == "" && len(result.Warnings) != 0 {
				t.Errorf("unexpected warnings: %+v", result.Warnings)
			}
		})
	}
}

func TestOmittedWordValidation(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.OmittedWords = []string{"the", " ", "of the", "The"}

	result := ValidateConfig(cfg)
	if result.Valid {
		t.Fatal("expected validation errors")
	}
	if !hasIssue(result.Errors, "omittedWords[1]", "cannot be empty") {
		t.Errorf("missing empty-word error: %+v", result.Errors)
	}
	if !hasIssue(result.Errors, "omittedWords[2]", "single word") {
		t.Errorf("missing multi-word error: %+v", result.Errors)
	}
	if !hasIssue(result.Warnings, "omittedWords[3]", "lowercase") {
		t.Errorf("missing uppercase warning: %+v", result.Warnings)
	}
	if len(result.Errors) != 2 {
		t.Errorf("got %d errors, want 2", len(result.Errors))
	}
}

func TestSymlinkPolicyValidation(t *testing.T) {
	for _, policy := range []string{"", "follow", "skip", "error"} {
		cfg := DefaultConfiguration()
		cfg.SymlinkPolicy = policy
		if issues := ValidatePolicies(cfg); len(issues) != 0 {
			t.Errorf("policy %q: unexpected issues %+v", policy, issues)
		}
	}

	cfg := DefaultConfiguration()
	cfg.SymlinkPolicy = "sometimes"
	if !hasIssue(ValidatePolicies(cfg), "symlinkPolicy", "invalid symlink policy") {
		t.Error("expected invalid symlink policy error")
	}
}

func TestDebounceValidation(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Watch = &watcher.WatchConfig{DebounceMs: -1}

	if !hasIssue(ValidatePolicies(cfg), "watch.debounceMs", "non-negative") {
		t.Error("expected debounce error")
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	if !strings.Contains(err.Error(), "watch.debounceMs") {
		t.Errorf("error %q should name the field", err.Error())
	}
}
