package watcher

import (
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns returns the default patterns for temporary files to ignore.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.download",
		"*.crdownload", // Chrome partial downloads
		"*.partial",    // Generic partial file
		".~*",          // Hidden temp files (e.g., .~lock)
		".*",
	}
}

// FileFilter decides which new files in the watched directory are worth a pass.
type FileFilter struct {
	patterns   []string
	extensions map[string]bool
}

// NewFileFilter creates a new FileFilter.
// If patterns is empty, default patterns are used. If extensions is empty,
// every file that is not ignored is relevant.
func NewFileFilter(patterns []string, extensions []string) *FileFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	f := &FileFilter{
		patterns:   patterns,
		extensions: make(map[string]bool, len(extensions)),
	}
	for _, ext := range extensions {
		f.extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return f
}

// ShouldIgnore checks if a file path matches any of the ignore patterns.
// It matches against the filename (base name) only, using filepath.Match syntax.
func (f *FileFilter) ShouldIgnore(path string) bool {
	filename := filepath.Base(path)

	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return true
		}

		// ".tmp" style patterns match as a suffix
		if strings.HasPrefix(pattern, ".") && !strings.ContainsAny(pattern, "*?[") {
			if strings.HasSuffix(strings.ToLower(filename), strings.ToLower(pattern)) {
				return true
			}
		}
	}
	return false
}

// Relevant reports whether path is not ignored and carries a recognized extension.
func (f *FileFilter) Relevant(path string) bool {
	if f.ShouldIgnore(path) {
		return false
	}
	if len(f.extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return f.extensions[strings.ToLower(ext)]
}
