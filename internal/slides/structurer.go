package slides

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"slidegen/internal/logger"
	"slidegen/pkg/models"
)

// DefaultMaxSlides bounds the slide count when the caller passes no limit.
const DefaultMaxSlides = 20

// Structurer asks a language model to restructure extracted text into a
// titled, bulleted slide list.
type Structurer struct {
	chat ChatService
	log  zerolog.Logger
}

// NewStructurer creates a Structurer on top of the given chat service.
func NewStructurer(chat ChatService) *Structurer {
	return &Structurer{
		chat: chat,
		log:  logger.WithComponent("slides"),
	}
}

// Structure sends the text to the model once and returns the validated
// slide list, truncated to maxSlides in model-given order.
//
// It never returns an error: a malformed or failed model response degrades
// to a single sentinel slide titled "Error" carrying a diagnostic bullet, so
// the deck pipeline always has something renderable.
func (s *Structurer) Structure(ctx context.Context, text, language string, maxSlides int) []models.Slide {
	if maxSlides < 1 {
		maxSlides = DefaultMaxSlides
	}

	prompt := buildPrompt(text, language)

	s.log.Info().
		Str("language", language).
		Int("max_slides", maxSlides).
		Int("text_length", len(text)).
		Msg("Requesting slide structure from language model")

	reply, err := s.chat.Complete(ctx, prompt)
	if err != nil {
		s.log.Error().Err(err).Msg("Language model request failed")
		return errorSlide(fmt.Sprintf("failed to generate slides: %v", err))
	}
	if strings.TrimSpace(reply) == "" {
		s.log.Error().Msg("Language model returned empty response")
		return errorSlide("language model returned empty response")
	}

	accepted, dropped, err := parseSlides(reply)
	if err != nil {
		s.log.Error().
			Err(err).
			Int("response_length", len(reply)).
			Msg("Failed to parse model response as JSON")
		return errorSlide(fmt.Sprintf("invalid JSON response: %v", err))
	}
	if dropped > 0 {
		s.log.Warn().
			Int("dropped", dropped).
			Int("accepted", len(accepted)).
			Msg("Dropped malformed candidate slides")
	}

	if len(accepted) > maxSlides {
		accepted = accepted[:maxSlides]
	}

	s.log.Info().
		Int("slides", len(accepted)).
		Msg("Slide structuring completed")
	return accepted
}

// buildPrompt embeds the target language, the required JSON shape, the
// formatting rules, and the source text into a single instruction prompt.
func buildPrompt(text, language string) string {
	return fmt.Sprintf(`You are an expert at creating structured PowerPoint presentations.

Given the following content in %s, generate a JSON object in the following format:
{
  "slides": [
    {
      "title": "Slide Title",
      "bullets": ["Bullet point 1", "Bullet point 2", "Bullet point 3"]
    }
  ]
}

Rules:
- Provide 3 to 5 bullet points per slide.
- Do not return anything outside the JSON object.
- Use easy language and summarize long parts into bullet points.

Content:
%s`, language, text)
}

// stripCodeFence removes a surrounding markdown code fence if present,
// language-tagged or bare.
func stripCodeFence(reply string) string {
	cleaned := strings.TrimSpace(reply)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}

// parseSlides sanitizes and strictly parses the model reply, then
// shape-validates every candidate. Candidates missing the title or bullets
// key, or whose bullets are not an array, are dropped and counted; a
// partially valid response is accepted for its valid members.
func parseSlides(reply string) ([]models.Slide, int, error) {
	var payload struct {
		Slides []json.RawMessage `json:"slides"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &payload); err != nil {
		return nil, 0, err
	}

	accepted := make([]models.Slide, 0, len(payload.Slides))
	dropped := 0
	for _, raw := range payload.Slides {
		slide, ok := validateCandidate(raw)
		if !ok {
			dropped++
			continue
		}
		accepted = append(accepted, slide)
	}
	return accepted, dropped, nil
}

// validateCandidate checks one raw slide element against the required
// shape: an object with both "title" and "bullets" keys, bullets a list.
// Titles and bullets are coerced to trimmed strings; empty bullets are
// dropped.
func validateCandidate(raw json.RawMessage) (models.Slide, bool) {
	var candidate map[string]json.RawMessage
	if err := json.Unmarshal(raw, &candidate); err != nil {
		return models.Slide{}, false
	}

	rawTitle, hasTitle := candidate["title"]
	rawBullets, hasBullets := candidate["bullets"]
	if !hasTitle || !hasBullets {
		return models.Slide{}, false
	}

	title, ok := coerceString(rawTitle)
	if !ok {
		return models.Slide{}, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawBullets, &items); err != nil {
		return models.Slide{}, false
	}

	bullets := make([]string, 0, len(items))
	for _, item := range items {
		bullet, ok := coerceString(item)
		if !ok {
			continue
		}
		if bullet != "" {
			bullets = append(bullets, bullet)
		}
	}

	return models.Slide{Title: strings.TrimSpace(title), Bullets: bullets}, true
}

// coerceString renders a scalar JSON value as a trimmed string. Objects and
// arrays do not coerce.
func coerceString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch v.(type) {
	case float64, bool:
		return strings.TrimSpace(fmt.Sprint(v)), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// errorSlide is the degradation sentinel for total structuring failure.
func errorSlide(diagnostic string) []models.Slide {
	return []models.Slide{{Title: "Error", Bullets: []string{diagnostic}}}
}
