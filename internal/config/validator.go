package config

import (
	"strconv"
	"strings"

	"retitle/internal/scanner"
)

// ValidationSeverity represents the severity of a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ConfigValidationError represents a single validation issue.
type ConfigValidationError struct {
	Field    string             // Config field with issue (e.g., "extensions[0]")
	Message  string             // Human-readable description
	Severity ValidationSeverity // "error" or "warning"
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ConfigValidationError
	Warnings []ConfigValidationError
	Valid    bool // True if no errors (warnings OK)
}

func (r *ValidationResult) add(issues []ConfigValidationError) {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			r.Errors = append(r.Errors, issue)
		} else {
			r.Warnings = append(r.Warnings, issue)
		}
	}
}

// ValidateConfig checks the configuration for errors and returns all findings.
func ValidateConfig(cfg *Configuration) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ConfigValidationError{},
		Warnings: []ConfigValidationError{},
	}

	result.add(ValidateExtensions(cfg))
	result.add(ValidateOmittedWords(cfg))
	result.add(ValidatePolicies(cfg))

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateExtensions checks that every extension is a plain, unique suffix.
func ValidateExtensions(cfg *Configuration) []ConfigValidationError {
	var issues []ConfigValidationError

	seen := make(map[string]int)
	for i, ext := range cfg.Extensions {
		field := formatField("extensions", i)
		trimmed := strings.TrimPrefix(ext, ".")

		if trimmed == "" {
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "extension cannot be empty",
				Severity: SeverityError,
			})
			continue
		}
		if strings.ContainsAny(trimmed, "./\\ ") {
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "extension must not contain dots, slashes or spaces: \"" + ext + "\"",
				Severity: SeverityError,
			})
			continue
		}
		if trimmed != ext {
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "leading dot is ignored: \"" + ext + "\"",
				Severity: SeverityWarning,
			})
		}

		lower := strings.ToLower(trimmed)
		if first, ok := seen[lower]; ok {
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "duplicate extension (case-insensitive): \"" + ext + "\" repeats index " + strconv.Itoa(first),
				Severity: SeverityWarning,
			})
			continue
		}
		seen[lower] = i
	}

	return issues
}

// ValidateOmittedWords checks that omitted words are single normalized keywords.
func ValidateOmittedWords(cfg *Configuration) []ConfigValidationError {
	var issues []ConfigValidationError

	for i, word := range cfg.OmittedWords {
		field := formatField("omittedWords", i)
		switch {
		case strings.TrimSpace(word) == "":
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "omitted word cannot be empty",
				Severity: SeverityError,
			})
		case strings.ContainsAny(word, " \t"):
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "omitted word must be a single word: \"" + word + "\"",
				Severity: SeverityError,
			})
		case strings.ToLower(word) != word:
			issues = append(issues, ConfigValidationError{
				Field:    field,
				Message:  "keywords are lowercase, \"" + word + "\" will never be omitted",
				Severity: SeverityWarning,
			})
		}
	}

	return issues
}

// ValidatePolicies checks that policy and watch values are valid.
func ValidatePolicies(cfg *Configuration) []ConfigValidationError {
	var issues []ConfigValidationError

	if cfg.SymlinkPolicy != "" {
		validPolicies := map[string]bool{
			scanner.SymlinkPolicyFollow: true,
			scanner.SymlinkPolicySkip:   true,
			scanner.SymlinkPolicyError:  true,
		}
		if !validPolicies[cfg.SymlinkPolicy] {
			issues = append(issues, ConfigValidationError{
				Field:    "symlinkPolicy",
				Message:  "invalid symlink policy: \"" + cfg.SymlinkPolicy + "\". Must be \"follow\", \"skip\", or \"error\"",
				Severity: SeverityError,
			})
		}
	}

	if cfg.Watch != nil && cfg.Watch.DebounceMs < 0 {
		issues = append(issues, ConfigValidationError{
			Field:    "watch.debounceMs",
			Message:  "debounceMs must be a non-negative integer",
			Severity: SeverityError,
		})
	}

	return issues
}

// formatField creates a field reference string for validation errors.
func formatField(name string, index int) string {
	return name + "[" + strconv.Itoa(index) + "]"
}
