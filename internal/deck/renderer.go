// Package deck renders a validated slide list into a presentation document
// based on a pre-existing visual template.
//
// The renderer works on an in-memory copy of the template package and hosts
// every generated slide on the template's blank layout, adding freeform
// title and content text boxes instead of inheriting placeholder text. Text
// direction is decided per text block from its script, so a deck can mix
// right-to-left and left-to-right content regardless of the deck-level
// language, which only selects the font family. Pre-existing placeholder
// slides in the template are reconciled away: the output contains exactly
// one slide per input slide, in input order.
package deck

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"slidegen/internal/logger"
	"slidegen/pkg/models"
)

// DefaultMaxBullets caps bullets per slide when the request sets no limit.
const DefaultMaxBullets = 5

// defaultFonts maps deck languages to their base font family.
var defaultFonts = map[string]string{
	models.LanguageArabic:  "Arial",
	models.LanguageEnglish: "Calibri",
}

// Renderer produces presentation documents from deck requests.
type Renderer struct {
	store *TemplateStore
	log   zerolog.Logger
}

// NewRenderer creates a Renderer over the given template store.
func NewRenderer(store *TemplateStore) *Renderer {
	return &Renderer{
		store: store,
		log:   logger.WithComponent("deck"),
	}
}

// renderContext is the resolved per-render theming.
type renderContext struct {
	titleColor  string
	bulletColor string
	titleSize   int
	bulletSize  int
	font        string
	maxBullets  int
}

// Render produces the finished presentation as a binary buffer.
//
// It fails with ErrInvalidSlides for an empty or malformed slide list, with
// ErrTemplateNotFound when the template reference does not resolve, and
// with ErrRenderFailed (cause attached) for any asset, theming, or
// serialization failure. No partial output is ever returned.
func (r *Renderer) Render(req models.DeckRequest) ([]byte, error) {
	const op = "Render"

	if err := validateSlides(req.Slides); err != nil {
		return nil, err
	}

	path, err := r.store.Resolve(req.Template)
	if err != nil {
		return nil, err
	}

	tpl, err := loadTemplate(path)
	if err != nil {
		return nil, err
	}

	rc, err := newRenderContext(req)
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("template", req.Template).
		Str("language", req.Language).
		Int("slides", len(req.Slides)).
		Msg("Rendering deck")

	slidesXML := make([]string, len(req.Slides))
	for i, slide := range req.Slides {
		slidesXML[i] = slideXML(slide, i, rc, tpl.slideWidth, tpl.slideHeight)
	}

	out, err := buildDeck(tpl, slidesXML)
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Int("slides", len(req.Slides)).
		Int("bytes", len(out)).
		Msg("Deck rendered")
	return out, nil
}

// validateSlides rejects caller errors before any asset is touched.
func validateSlides(slides []models.Slide) error {
	const op = "validateSlides"

	if len(slides) == 0 {
		return NewRenderError(op, ErrInvalidSlides, "slide list is empty")
	}
	for i, slide := range slides {
		if strings.TrimSpace(slide.Title) == "" {
			return NewRenderError(op, ErrInvalidSlides, fmt.Sprintf("slide %d has no title", i+1))
		}
		if len(slide.Bullets) == 0 {
			return NewRenderError(op, ErrInvalidSlides, fmt.Sprintf("slide %d has no bullets", i+1))
		}
	}
	return nil
}

// newRenderContext resolves theme colors, sizes, and the language font.
func newRenderContext(req models.DeckRequest) (renderContext, error) {
	const op = "newRenderContext"

	theme := req.Theme
	defaults := models.DefaultTheme()
	if theme.TitleColor == "" {
		theme.TitleColor = defaults.TitleColor
	}
	if theme.BulletColor == "" {
		theme.BulletColor = defaults.BulletColor
	}
	if theme.TitleFontSize <= 0 {
		theme.TitleFontSize = defaults.TitleFontSize
	}
	if theme.BulletFontSize <= 0 {
		theme.BulletFontSize = defaults.BulletFontSize
	}

	titleColor, err := parseColor(theme.TitleColor)
	if err != nil {
		return renderContext{}, NewRenderError(op, ErrRenderFailed, err.Error())
	}
	bulletColor, err := parseColor(theme.BulletColor)
	if err != nil {
		return renderContext{}, NewRenderError(op, ErrRenderFailed, err.Error())
	}

	maxBullets := req.MaxBullets
	if maxBullets <= 0 {
		maxBullets = DefaultMaxBullets
	}

	return renderContext{
		titleColor:  titleColor,
		bulletColor: bulletColor,
		titleSize:   theme.TitleFontSize,
		bulletSize:  theme.BulletFontSize,
		font:        fontFor(req.Language, theme.FontOverrides),
		maxBullets:  maxBullets,
	}, nil
}

var hexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// parseColor normalizes "#RRGGBB" or "RRGGBB" to uppercase hex.
func parseColor(color string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if !hexColorPattern.MatchString(trimmed) {
		return "", fmt.Errorf("invalid color %q: expected 6-digit hex", color)
	}
	return strings.ToUpper(trimmed), nil
}

// fontFor resolves the deck-level font family: theme overrides win, then
// the built-in language defaults, then the english default.
func fontFor(language string, overrides map[string]string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if font, ok := overrides[lang]; ok && font != "" {
		return font
	}
	if font, ok := defaultFonts[lang]; ok {
		return font
	}
	return defaultFonts[models.LanguageEnglish]
}
