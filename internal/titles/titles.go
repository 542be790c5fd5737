// Package titles loads the reference list of correct titles for Retitle.
package titles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"retitle/internal/normalizer"
)

// LoadErrorType represents the type of title loading error.
type LoadErrorType string

const (
	// PathNotFound indicates the reference file does not exist.
	PathNotFound LoadErrorType = "PATH_NOT_FOUND"
	// NotAFile indicates the reference path is a directory.
	NotAFile LoadErrorType = "NOT_A_FILE"
	// ReadFailed indicates the reference file could not be read.
	ReadFailed LoadErrorType = "READ_FAILED"
)

// LoadError represents an error that occurred while loading titles.
type LoadError struct {
	Type LoadErrorType
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Title is one entry of the reference list.
type Title struct {
	Raw        string   // Display text, also used as the new base filename
	Normalized string   // normalizer.Normalize(Raw)
	Keywords   []string // Normalized split on whitespace, order preserved
	Line       int      // 1-based line in the reference file
}

// Len returns the length of the title text in characters.
func (t Title) Len() int {
	return utf8.RuneCountInString(t.Raw)
}

// maxLineSize bounds a single reference line.
const maxLineSize = 64 * 1024

// filenameReplacer removes characters that cannot appear in a filename.
// Colons separate title and subtitle, so they become " -".
var filenameReplacer = strings.NewReplacer(
	":", " -",
	"/", "-",
	"\\", "-",
	"?", "",
	"*", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// Sanitize turns one reference line into a filename-safe title.
func Sanitize(line string) string {
	return strings.TrimSpace(filenameReplacer.Replace(line))
}

// Load reads titles from the reference file at path.
// The path is checked before any read; a missing file yields a LoadError of type PathNotFound.
func Load(path string) ([]Title, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Type: PathNotFound, Path: path, Err: err}
		}
		return nil, &LoadError{Type: ReadFailed, Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Type: NotAFile, Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Type: ReadFailed, Path: path, Err: err}
	}
	defer f.Close()

	titles, err := Parse(f)
	if err != nil {
		return nil, &LoadError{Type: ReadFailed, Path: path, Err: err}
	}
	return titles, nil
}

// Parse reads one title per line from r.
// Blank lines, lines with no keywords (separators such as "---") and
// repeated titles are skipped. A title without keywords would match any
// file. The result is ordered by
// descending title length; titles of equal length keep their input order so
// that a longer title is always tried before any shorter title it might contain.
func Parse(r io.Reader) ([]Title, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	var titles []Title
	seen := make(map[string]bool)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		raw := Sanitize(line)
		if raw == "" || seen[raw] {
			continue
		}
		keywords := normalizer.Keywords(raw)
		if len(keywords) == 0 {
			continue
		}
		seen[raw] = true

		titles = append(titles, Title{
			Raw:        raw,
			Normalized: normalizer.Normalize(raw),
			Keywords:   keywords,
			Line:       lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	Sort(titles)
	return titles, nil
}

// Sort orders titles by descending length, keeping input order among equal lengths.
func Sort(titles []Title) {
	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i].Len() > titles[j].Len()
	})
}
