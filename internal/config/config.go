// Package config handles configuration loading and validation for Retitle.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"retitle/internal/candidates"
	"retitle/internal/matcher"
	"retitle/internal/scanner"
	"retitle/internal/watcher"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidYAML     ConfigErrorType = "INVALID_YAML"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration loading.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidYAML:
		return fmt.Sprintf("invalid configuration file %s: %s", e.Path, e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Configuration holds all settings for Retitle.
// The file format is YAML; JSON files are accepted as well.
type Configuration struct {
	Extensions    []string             `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	OmittedWords  []string             `yaml:"omittedWords,omitempty" json:"omittedWords,omitempty"`
	OnePerTitle   *bool                `yaml:"onePerTitle,omitempty" json:"onePerTitle,omitempty"`
	SymlinkPolicy string               `yaml:"symlinkPolicy,omitempty" json:"symlinkPolicy,omitempty"`
	Watch         *watcher.WatchConfig `yaml:"watch,omitempty" json:"watch,omitempty"`
}

// DefaultConfiguration returns a configuration with every default applied.
func DefaultConfiguration() *Configuration {
	cfg := &Configuration{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with defaults.
// An explicitly empty omittedWords list is kept so that no word is omitted.
func (c *Configuration) ApplyDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), candidates.DefaultExtensions...)
	}
	if c.OmittedWords == nil {
		c.OmittedWords = append([]string(nil), matcher.DefaultOmittedWords...)
	}
	if c.OnePerTitle == nil {
		onePerTitle := true
		c.OnePerTitle = &onePerTitle
	}
	if c.SymlinkPolicy == "" {
		c.SymlinkPolicy = scanner.DefaultScanOptions().SymlinkPolicy
	}

	defaults := watcher.DefaultWatchConfig()
	if c.Watch == nil {
		c.Watch = defaults
		return
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = defaults.DebounceMs
	}
	if len(c.Watch.IgnorePatterns) == 0 {
		c.Watch.IgnorePatterns = defaults.IgnorePatterns
	}
}

// GetOnePerTitle reports whether a title stops after its first successful rename.
func (c *Configuration) GetOnePerTitle() bool {
	if c.OnePerTitle == nil {
		return true
	}
	return *c.OnePerTitle
}

// SetOnePerTitle overrides the onePerTitle setting.
func (c *Configuration) SetOnePerTitle(v bool) {
	c.OnePerTitle = &v
}

// GetSymlinkPolicy returns the configured symlink policy or the default.
func (c *Configuration) GetSymlinkPolicy() string {
	if c.SymlinkPolicy == "" {
		return scanner.DefaultScanOptions().SymlinkPolicy
	}
	return c.SymlinkPolicy
}

// CandidateOptions returns the indexing options described by the configuration.
func (c *Configuration) CandidateOptions() candidates.Options {
	return candidates.Options{
		Extensions:    c.Extensions,
		SymlinkPolicy: c.GetSymlinkPolicy(),
	}
}

// Matcher builds a matcher with the configured omitted words.
func (c *Configuration) Matcher() *matcher.Matcher {
	return matcher.New(c.OmittedWords)
}

// Validate checks the configuration and returns the first error found.
func (c *Configuration) Validate() error {
	result := ValidateConfig(c)
	if result.Valid {
		return nil
	}
	first := result.Errors[0]
	return &ConfigError{
		Type:    ValidationError,
		Message: first.Field + ": " + first.Message,
	}
}

// Load reads and parses a configuration file from the given path.
// Defaults are applied and the result is validated.
func Load(filePath string) (*Configuration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{
				Type: FileNotFound,
				Path: filePath,
			}
		}
		return nil, &ConfigError{
			Type:    FileNotFound,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &ConfigError{
			Type:    InvalidYAML,
			Path:    filePath,
			Message: err.Error(),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes configuration data and applies defaults.
// Unknown fields are rejected so that typos do not silently fall back to defaults.
func Parse(data []byte) (*Configuration, error) {
	var cfg Configuration
	if len(strings.TrimSpace(string(data))) > 0 {
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, err
		}
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads the configuration at filePath, or returns the defaults
// when filePath is empty.
func LoadOrDefault(filePath string) (*Configuration, error) {
	if filePath == "" {
		return DefaultConfiguration(), nil
	}
	return Load(filePath)
}
