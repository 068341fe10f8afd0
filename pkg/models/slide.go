// Package models defines the shared data types passed between the
// extraction, structuring, and rendering stages of the pipeline.
//
// All types are JSON-serializable so a caller can persist intermediate
// pipeline state (an extraction result or a structured slide list) and
// resume later without re-running the earlier stages.
package models

// Supported deck languages. The deck-level language only selects the base
// font family; text direction is decided per text block at render time.
const (
	LanguageArabic  = "arabic"
	LanguageEnglish = "english"
)

// ExtractionResult is the output of the text extractor for one document.
// It is immutable after creation and owned by the caller.
type ExtractionResult struct {
	// Text is the full extracted text content.
	Text string `json:"text"`

	// UsedOCR reports whether the text came from the OCR fallback path
	// rather than native extraction.
	UsedOCR bool `json:"used_ocr"`
}

// Slide is one validated entry of a structured deck.
//
// Title is non-empty after trimming and Bullets holds only non-empty
// trimmed strings. The bullet cap is applied at render time, not here.
type Slide struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// Theme holds the visual options applied by the deck renderer.
type Theme struct {
	// TitleColor and BulletColor are hex colors, with or without a
	// leading "#".
	TitleColor  string `json:"title_color"`
	BulletColor string `json:"bullet_color"`

	// Font sizes in points.
	TitleFontSize  int `json:"title_font_size"`
	BulletFontSize int `json:"bullet_font_size"`

	// FontOverrides maps a language name to a font family, overriding
	// the built-in defaults (arabic: Arial, english: Calibri).
	FontOverrides map[string]string `json:"font_overrides,omitempty"`
}

// DefaultTheme returns the theme used when the caller supplies none.
func DefaultTheme() Theme {
	return Theme{
		TitleColor:     "#2A5CAA",
		BulletColor:    "#2A5CAA",
		TitleFontSize:  32,
		BulletFontSize: 22,
	}
}

// DeckRequest bundles everything the deck renderer needs for one render
// call. It is constructed by the caller, consumed once, and never mutated
// mid-render.
type DeckRequest struct {
	Slides   []Slide `json:"slides"`
	Language string  `json:"language"`

	// Template is the name of a template asset in the template store.
	Template string `json:"template_reference"`

	Theme Theme `json:"theme"`

	// MaxBullets caps the bullets rendered per slide. Zero means the
	// default of 5.
	MaxBullets int `json:"max_bullets,omitempty"`
}
