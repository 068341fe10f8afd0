package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidegen/internal/ocr"
)

type stubRecognizer struct {
	pages []string
	calls int
}

func (r *stubRecognizer) ExtractText(ctx context.Context, imagePath, language string) ocr.Result {
	i := r.calls
	r.calls++
	if i >= len(r.pages) {
		return ocr.Result{Text: ocr.FallbackText, Fallback: true}
	}
	return ocr.Result{Text: r.pages[i]}
}

func TestLoadTextReturnsExactBytes(t *testing.T) {
	content := "First line\n\n  indented, with trailing spaces  \nlast line without newline"
	path := filepath.Join(t.TempDir(), "notes.TXT")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	e := NewExtractor(&stubRecognizer{}, "eng")
	result, err := e.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if result.Text != content {
		t.Errorf("Load text = %q, want exact file contents %q", result.Text, content)
	}
	if result.UsedOCR {
		t.Error("Load reported UsedOCR for a plain text file")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	e := NewExtractor(&stubRecognizer{}, "eng")

	for _, name := range []string{"deck.docx", "image.png", "noextension"} {
		_, err := e.Load(context.Background(), name)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Load(%q) error = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestLoadMissingTextFile(t *testing.T) {
	e := NewExtractor(&stubRecognizer{}, "eng")

	_, err := e.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("Load error = %v, want ErrExtractionFailed", err)
	}
}

func TestJoinPagesMarkers(t *testing.T) {
	text, found := joinPages([]string{"alpha", "beta"})

	if !found {
		t.Fatal("joinPages reported no text for recognized pages")
	}
	want := "\n\n--- Page 1 ---\nalpha\n\n--- Page 2 ---\nbeta"
	if text != want {
		t.Errorf("joinPages = %q, want %q", text, want)
	}
}

func TestJoinPagesKeepsPageOrder(t *testing.T) {
	pages := make([]string, 12)
	for i := range pages {
		pages[i] = fmt.Sprintf("page %d content", i+1)
	}

	text, _ := joinPages(pages)

	last := -1
	for i := range pages {
		marker := fmt.Sprintf("--- Page %d ---", i+1)
		pos := strings.Index(text, marker)
		if pos < 0 {
			t.Fatalf("marker %q missing from joined text", marker)
		}
		if pos < last {
			t.Errorf("marker %q appears out of order", marker)
		}
		last = pos
	}
}

func TestJoinPagesFallbackOnlyNotFound(t *testing.T) {
	text, found := joinPages([]string{ocr.FallbackText, "   ", ""})

	if found {
		t.Error("joinPages counted fallback and blank pages as text")
	}
	if !strings.Contains(text, "--- Page 3 ---") {
		t.Error("joinPages dropped markers for empty pages")
	}
}

func TestJoinPagesMixedFallbackStillFound(t *testing.T) {
	_, found := joinPages([]string{ocr.FallbackText, "real text"})
	if !found {
		t.Error("joinPages ignored real text because another page fell back")
	}
}
