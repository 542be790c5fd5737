// Package candidates indexes the files of a target directory that may be renamed.
package candidates

import (
	"fmt"
	"strings"

	"retitle/internal/normalizer"
	"retitle/internal/scanner"
	"retitle/internal/titles"
)

// DefaultExtensions are the recognized e-book formats.
var DefaultExtensions = []string{"epub", "pdf", "mobi", "prc", "docx"}

// EntryErrorType represents the type of directory entry error.
type EntryErrorType string

const (
	// MalformedEntry indicates a filename without a usable name.extension structure.
	MalformedEntry EntryErrorType = "MALFORMED_ENTRY"
)

// EntryError describes a directory entry that was skipped.
type EntryError struct {
	Type     EntryErrorType
	Filename string
	Reason   string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Filename, e.Reason)
}

// Candidate is a file that may be renamed to a reference title.
type Candidate struct {
	Filename   string // Original filename including extension
	Name       string // Filename without the final extension
	Extension  string // Extension without the dot, original case
	Normalized string // Compacted name used for matching
	Resolved   bool   // True once the file carries its reference title
}

// Options configures indexing.
type Options struct {
	Extensions    []string // Recognized extensions, matched case-insensitively
	SymlinkPolicy string   // Passed through to the scanner
}

// DefaultOptions returns the default indexing options.
func DefaultOptions() Options {
	return Options{
		Extensions:    DefaultExtensions,
		SymlinkPolicy: scanner.DefaultScanOptions().SymlinkPolicy,
	}
}

// Index is the set of candidates found in one directory.
type Index struct {
	Directory  string
	Candidates []*Candidate  // In directory listing order
	Malformed  []*EntryError // Entries skipped because their name could not be split
	Ignored    []string      // Hidden entries and entries with an unrecognized extension
}

// SplitName splits filename on its final dot.
// It reports false when there is no dot, the name part is empty (".epub")
// or the extension is empty ("book.").
//
// Examples:
//   - "moby dick.epub" -> ("moby dick", "epub", true)
//   - "a.b.epub" -> ("a.b", "epub", true)
//   - "README" -> ("", "", false)
func SplitName(filename string) (name, ext string, ok bool) {
	i := strings.LastIndexByte(filename, '.')
	if i <= 0 || i == len(filename)-1 {
		return "", "", false
	}
	return filename[:i], filename[i+1:], true
}

// Build indexes the directory at dir.
// A missing directory is fatal and reported as a *scanner.ScanError; malformed
// entries are collected on the returned Index and skipped.
func Build(dir string, opts Options, refs []titles.Title) (*Index, error) {
	scanOpts := scanner.DefaultScanOptions()
	if opts.SymlinkPolicy != "" {
		scanOpts.SymlinkPolicy = opts.SymlinkPolicy
	}

	files, err := scanner.ScanWithOptions(dir, scanOpts)
	if err != nil {
		return nil, err
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	recognized := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		recognized[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	named := make(map[string]bool, len(refs))
	for _, t := range refs {
		named[t.Raw] = true
	}

	idx := &Index{Directory: dir}
	for _, file := range files {
		if strings.HasPrefix(file.Name, ".") {
			idx.Ignored = append(idx.Ignored, file.Name) // hidden
			continue
		}

		name, ext, ok := SplitName(file.Name)
		if !ok {
			idx.Malformed = append(idx.Malformed, &EntryError{
				Type:     MalformedEntry,
				Filename: file.Name,
				Reason:   "no name.extension structure",
			})
			continue
		}

		if !recognized[strings.ToLower(ext)] {
			idx.Ignored = append(idx.Ignored, file.Name)
			continue
		}

		idx.Candidates = append(idx.Candidates, &Candidate{
			Filename:   file.Name,
			Name:       name,
			Extension:  ext,
			Normalized: normalizer.Compact(name),
			Resolved:   named[name] || named[file.Name],
		})
	}

	return idx, nil
}

// Unresolved returns the candidates that have not been renamed yet.
func (idx *Index) Unresolved() []*Candidate {
	var out []*Candidate
	for _, c := range idx.Candidates {
		if !c.Resolved {
			out = append(out, c)
		}
	}
	return out
}

// Resolved returns the candidates that already carry a reference title.
func (idx *Index) Resolved() []*Candidate {
	var out []*Candidate
	for _, c := range idx.Candidates {
		if c.Resolved {
			out = append(out, c)
		}
	}
	return out
}
