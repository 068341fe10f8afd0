// Package extract turns an uploaded document into plain text.
//
// Plain-text files are read as-is. Paged PDF documents go through native
// text extraction first; when a document carries no extractable text (a
// scanned PDF), every page is rasterized and routed through the OCR client,
// with per-page markers preserved in the output so downstream consumers can
// still infer page structure.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"slidegen/internal/logger"
	"slidegen/internal/ocr"
	"slidegen/pkg/models"
)

// NoTextFound is the fixed sentinel returned when a scanned document went
// through the OCR pass and still produced no text. It distinguishes "we
// tried and found nothing" from "we never extracted".
const NoTextFound = "[no text found in scanned document]"

// TextRecognizer is the OCR dependency of the extractor. *ocr.Client
// satisfies it.
type TextRecognizer interface {
	ExtractText(ctx context.Context, imagePath, language string) ocr.Result
}

// Extractor loads document content with OCR fallback.
type Extractor struct {
	recognizer TextRecognizer
	language   string
	log        zerolog.Logger
}

// NewExtractor creates an Extractor. language is the OCR language hint
// ("eng", "ara", ...); empty means "eng".
func NewExtractor(recognizer TextRecognizer, language string) *Extractor {
	if language == "" {
		language = "eng"
	}
	return &Extractor{
		recognizer: recognizer,
		language:   language,
		log:        logger.WithComponent("extract"),
	}
}

// Load extracts the textual content of the document at path.
//
// Unsupported extensions fail with ErrUnsupportedFormat; any processing
// failure is wrapped into ErrExtractionFailed with the cause attached.
func (e *Extractor) Load(ctx context.Context, path string) (models.ExtractionResult, error) {
	const op = "Load"

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return e.loadText(path)
	case ".pdf":
		return e.loadPDF(ctx, path)
	default:
		return models.ExtractionResult{}, NewExtractionError(op, ErrUnsupportedFormat, fmt.Sprintf("file: %s", path))
	}
}

// loadText returns the exact file contents.
func (e *Extractor) loadText(path string) (models.ExtractionResult, error) {
	const op = "loadText"

	data, err := os.ReadFile(path)
	if err != nil {
		return models.ExtractionResult{}, NewExtractionError(op, ErrExtractionFailed, err.Error())
	}

	e.log.Debug().
		Str("file", path).
		Int("bytes", len(data)).
		Msg("Loaded plain text document")
	return models.ExtractionResult{Text: string(data)}, nil
}

// loadPDF tries native page text first and falls back to per-page OCR for
// scanned documents.
func (e *Extractor) loadPDF(ctx context.Context, path string) (models.ExtractionResult, error) {
	const op = "loadPDF"

	text, pageCount, err := nativePDFText(path)
	if err != nil {
		return models.ExtractionResult{}, NewExtractionError(op, ErrExtractionFailed, err.Error())
	}

	if strings.TrimSpace(text) != "" {
		e.log.Info().
			Str("file", path).
			Int("pages", pageCount).
			Int("text_length", len(text)).
			Msg("Native PDF extraction succeeded")
		return models.ExtractionResult{Text: text}, nil
	}

	e.log.Info().
		Str("file", path).
		Int("pages", pageCount).
		Msg("No native text found, falling back to OCR")

	pages, err := e.ocrPages(ctx, path)
	if err != nil {
		return models.ExtractionResult{}, WrapExtractionError(op, err, "page OCR failed")
	}

	ocrText, found := joinPages(pages)
	if !found {
		e.log.Warn().
			Str("file", path).
			Int("pages", len(pages)).
			Msg("OCR pass produced no text")
		return models.ExtractionResult{Text: NoTextFound, UsedOCR: true}, nil
	}

	return models.ExtractionResult{Text: ocrText, UsedOCR: true}, nil
}

// nativePDFText concatenates the extractable text of every page in page
// order and reports the page count.
func nativePDFText(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	var sb strings.Builder
	n := r.NumPage()
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		sb.WriteString(pageText)
	}
	return sb.String(), n, nil
}

// ocrPages rasterizes every page into a scoped temporary directory and runs
// each raster through the OCR client, in page order. The directory is
// removed on every exit path.
func (e *Extractor) ocrPages(ctx context.Context, path string) ([]string, error) {
	tmpDir, cleanup, err := rasterTempDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	images, err := RasterizePages(ctx, path, tmpDir)
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(images))
	for i, imagePath := range images {
		result := e.recognizer.ExtractText(ctx, imagePath, e.language)
		if result.Fallback {
			e.log.Warn().
				Str("file", path).
				Int("page", i+1).
				Msg("OCR fell back for page")
		}
		pages = append(pages, result.Text)
	}
	return pages, nil
}

// joinPages assembles per-page OCR output with page-boundary markers. The
// second return reports whether any page carried real recognized text (the
// OCR fallback sentinel does not count).
func joinPages(pages []string) (string, bool) {
	var sb strings.Builder
	found := false
	for i, pageText := range pages {
		fmt.Fprintf(&sb, "\n\n--- Page %d ---\n%s", i+1, pageText)
		trimmed := strings.TrimSpace(pageText)
		if trimmed != "" && trimmed != ocr.FallbackText {
			found = true
		}
	}
	return sb.String(), found
}
