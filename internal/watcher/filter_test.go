package watcher

import (
	"testing"
)

func TestFileFilter_ShouldIgnore(t *testing.T) {
	f := NewFileFilter(nil, nil)

	tests := []struct {
		path   string
		ignore bool
	}{
		{"/books/novel.epub", false},
		{"/books/novel.epub.part", true},
		{"/books/novel.pdf.crdownload", true},
		{"/books/upload.tmp", true},
		{"/books/novel.download", true},
		{"/books/.~lock.novel.docx#", true},
		{"/books/.DS_Store", true},
		{"/books/partial.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := f.ShouldIgnore(tt.path); got != tt.ignore {
				t.Errorf("ShouldIgnore(%q) = %v, want %v", tt.path, got, tt.ignore)
			}
		})
	}
}

func TestFileFilter_SuffixPatterns(t *testing.T) {
	f := NewFileFilter([]string{".BAK", "draft-*"}, nil)

	if !f.ShouldIgnore("/books/novel.epub.bak") {
		t.Error("expected case-insensitive suffix pattern to match")
	}
	if !f.ShouldIgnore("/books/draft-novel.epub") {
		t.Error("expected glob pattern to match")
	}
	if f.ShouldIgnore("/books/novel.epub") {
		t.Error("did not expect novel.epub to be ignored")
	}
}

func TestFileFilter_Relevant(t *testing.T) {
	f := NewFileFilter(nil, []string{"epub", ".PDF"})

	tests := []struct {
		path     string
		relevant bool
	}{
		{"/books/a.epub", true},
		{"/books/a.EPUB", true},
		{"/books/a.pdf", true},
		{"/books/a.mobi", false},
		{"/books/a.epub.part", false},
		{"/books/README", false},
	}

	for _, tt := range tests {
		if got := f.Relevant(tt.path); got != tt.relevant {
			t.Errorf("Relevant(%q) = %v, want %v", tt.path, got, tt.relevant)
		}
	}

	unfiltered := NewFileFilter(nil, nil)
	if !unfiltered.Relevant("/books/README") {
		t.Error("expected every non-ignored file to be relevant without extensions")
	}
}
