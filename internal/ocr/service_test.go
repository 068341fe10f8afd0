package ocr_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"slidegen/internal/ocr"
)

// scriptedEngine returns its canned results in order and records how often
// it was called.
type scriptedEngine struct {
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	text string
	err  error
}

func (e *scriptedEngine) Recognize(ctx context.Context, imagePath, language string) (string, error) {
	i := e.calls
	e.calls++
	if i >= len(e.results) {
		i = len(e.results) - 1
	}
	r := e.results[i]
	return r.text, r.err
}

func TestExtractTextRetriesUntilSuccess(t *testing.T) {
	engine := &scriptedEngine{results: []scriptedResult{
		{err: errors.New("transient failure")},
		{err: errors.New("transient failure")},
		{text: "recognized text"},
	}}
	client := ocr.NewClient(engine, 3, 0)

	result := client.ExtractText(context.Background(), "page.png", "eng")

	if result.Fallback {
		t.Fatalf("ExtractText reported fallback after a successful attempt")
	}
	if result.Text != "recognized text" {
		t.Errorf("ExtractText text = %q, want %q", result.Text, "recognized text")
	}
	if engine.calls != 3 {
		t.Errorf("engine called %d times, want 3", engine.calls)
	}
}

func TestExtractTextExhaustedRetriesFallsBack(t *testing.T) {
	engine := &scriptedEngine{results: []scriptedResult{
		{err: errors.New("permanent failure")},
	}}
	client := ocr.NewClient(engine, 3, 0)

	result := client.ExtractText(context.Background(), "page.png", "eng")

	if !result.Fallback {
		t.Fatalf("ExtractText did not report fallback after exhausting retries")
	}
	if result.Text != ocr.FallbackText {
		t.Errorf("ExtractText text = %q, want %q", result.Text, ocr.FallbackText)
	}
	if engine.calls != 3 {
		t.Errorf("engine called %d times, want 3", engine.calls)
	}
}

func TestExtractTextFirstAttemptSucceeds(t *testing.T) {
	engine := &scriptedEngine{results: []scriptedResult{
		{text: "immediate"},
	}}
	client := ocr.NewClient(engine, 3, time.Hour)

	// The delay only applies between attempts, so a long delay must not
	// slow down a first-attempt success.
	done := make(chan ocr.Result, 1)
	go func() {
		done <- client.ExtractText(context.Background(), "page.png", "eng")
	}()

	select {
	case result := <-done:
		if result.Text != "immediate" || result.Fallback {
			t.Errorf("ExtractText = %+v, want immediate success", result)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ExtractText blocked on the retry delay despite succeeding")
	}
}

func TestExtractTextCanceledContextFallsBack(t *testing.T) {
	engine := &scriptedEngine{results: []scriptedResult{
		{err: errors.New("failure")},
	}}
	client := ocr.NewClient(engine, 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := client.ExtractText(ctx, "page.png", "eng")

	if !result.Fallback {
		t.Fatalf("ExtractText did not fall back on canceled context")
	}
	if result.Text != ocr.FallbackText {
		t.Errorf("ExtractText text = %q, want %q", result.Text, ocr.FallbackText)
	}
	if engine.calls != 1 {
		t.Errorf("engine called %d times after cancellation, want 1", engine.calls)
	}
}

func TestExtractTextNonPositiveRetriesUsesDefault(t *testing.T) {
	engine := &scriptedEngine{results: []scriptedResult{
		{err: errors.New("failure")},
	}}
	client := ocr.NewClient(engine, 0, 0)

	client.ExtractText(context.Background(), "page.png", "eng")

	if engine.calls != ocr.DefaultMaxRetries {
		t.Errorf("engine called %d times, want %d", engine.calls, ocr.DefaultMaxRetries)
	}
}

func TestNewEngineUnknownProvider(t *testing.T) {
	_, err := ocr.NewEngine(context.Background(), ocr.EngineConfig{Provider: "tesseract"})
	if !errors.Is(err, ocr.ErrUnknownProvider) {
		t.Errorf("NewEngine error = %v, want ErrUnknownProvider", err)
	}
}

func TestNewEngineOCRSpaceRequiresKey(t *testing.T) {
	_, err := ocr.NewEngine(context.Background(), ocr.EngineConfig{Provider: "ocrspace"})
	if !errors.Is(err, ocr.ErrMissingAPIKey) {
		t.Errorf("NewEngine error = %v, want ErrMissingAPIKey", err)
	}
}
