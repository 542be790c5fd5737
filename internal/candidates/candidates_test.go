package candidates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retitle/internal/scanner"
	"retitle/internal/titles"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		filename string
		name     string
		ext      string
		ok       bool
	}{
		{"moby dick.epub", "moby dick", "epub", true},
		{"a.b.epub", "a.b", "epub", true},
		{"Report.PDF", "Report", "PDF", true},
		{"README", "", "", false},
		{".epub", "", "", false},
		{"book.", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, ext, ok := SplitName(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content"), 0644))
	}
}

func parseTitles(t *testing.T, text string) []titles.Title {
	t.Helper()
	refs, err := titles.Parse(strings.NewReader(text))
	require.NoError(t, err)
	return refs
}

func TestBuildFiltersAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"Moby_Dick (1851).epub",
		"notes.txt",
		"scan.PDF",
		"vol.2.mobi",
		"LICENSE",
		".DS_Store",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.epub"), 0755))

	idx, err := Build(dir, DefaultOptions(), nil)
	require.NoError(t, err)

	require.Len(t, idx.Candidates, 3)
	assert.Equal(t, "Moby_Dick (1851).epub", idx.Candidates[0].Filename)
	assert.Equal(t, "Moby_Dick (1851)", idx.Candidates[0].Name)
	assert.Equal(t, "mobydick1851", idx.Candidates[0].Normalized)

	assert.Equal(t, "scan", idx.Candidates[1].Name)
	assert.Equal(t, "PDF", idx.Candidates[1].Extension)

	assert.Equal(t, "vol.2", idx.Candidates[2].Name)
	assert.Equal(t, "vol2", idx.Candidates[2].Normalized)

	require.Len(t, idx.Malformed, 1)
	assert.Equal(t, "LICENSE", idx.Malformed[0].Filename)
	assert.Equal(t, MalformedEntry, idx.Malformed[0].Type)

	assert.ElementsMatch(t, []string{".DS_Store", "notes.txt"}, idx.Ignored)
	for _, c := range idx.Candidates {
		assert.False(t, c.Resolved)
	}
}

func TestBuildMarksAlreadyNamedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Dune - Messiah.epub", "dune.pdf")

	refs := parseTitles(t, "Dune: Messiah\nDune\n")
	idx, err := Build(dir, DefaultOptions(), refs)
	require.NoError(t, err)

	require.Len(t, idx.Candidates, 2)
	assert.True(t, idx.Candidates[0].Resolved, "exactly named file should start resolved")
	assert.False(t, idx.Candidates[1].Resolved)

	assert.Len(t, idx.Resolved(), 1)
	require.Len(t, idx.Unresolved(), 1)
	assert.Equal(t, "dune.pdf", idx.Unresolved()[0].Filename)
}

func TestBuildCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.epub", "b.djvu", "c.CBZ")

	idx, err := Build(dir, Options{Extensions: []string{"djvu", ".cbz"}}, nil)
	require.NoError(t, err)

	var names []string
	for _, c := range idx.Candidates {
		names = append(names, c.Filename)
	}
	assert.Equal(t, []string{"b.djvu", "c.CBZ"}, names)
	assert.Equal(t, []string{"a.epub"}, idx.Ignored)
}

func TestBuildMissingDirectory(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "missing"), DefaultOptions(), nil)
	require.Error(t, err)

	var scanErr *scanner.ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, scanner.DirectoryNotFound, scanErr.Type)
}
