package slides

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"slidegen/pkg/models"
)

type stubChat struct {
	reply string
	err   error

	prompt string
}

func (c *stubChat) Complete(ctx context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.reply, c.err
}

func TestStructureParsesFencedResponse(t *testing.T) {
	chat := &stubChat{reply: "```json\n" + `{
  "slides": [
    {"title": "Introduction", "bullets": ["Point one", "Point two"]},
    {"title": "Details", "bullets": ["More"]}
  ]
}` + "\n```"}

	s := NewStructurer(chat)
	got := s.Structure(context.Background(), "some document text", models.LanguageEnglish, 0)

	want := []models.Slide{
		{Title: "Introduction", Bullets: []string{"Point one", "Point two"}},
		{Title: "Details", Bullets: []string{"More"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Structure = %+v, want %+v", got, want)
	}
}

func TestStructureParsesUnfencedResponse(t *testing.T) {
	chat := &stubChat{reply: `{"slides": [{"title": "Plain", "bullets": ["a"]}]}`}

	s := NewStructurer(chat)
	got := s.Structure(context.Background(), "text", models.LanguageEnglish, 0)

	if len(got) != 1 || got[0].Title != "Plain" {
		t.Errorf("Structure = %+v, want single slide titled Plain", got)
	}
}

func TestStructureDropsMalformedCandidates(t *testing.T) {
	chat := &stubChat{reply: `{
  "slides": [
    {"title": "Valid", "bullets": ["keep", "   ", "also keep"]},
    {"title": "No bullets key"},
    {"bullets": ["no title key"]},
    {"title": "Bad bullets", "bullets": "not a list"},
    "not an object",
    {"title": "Numeric", "bullets": [1, 2.5, true]}
  ]
}`}

	s := NewStructurer(chat)
	got := s.Structure(context.Background(), "text", models.LanguageEnglish, 0)

	want := []models.Slide{
		{Title: "Valid", Bullets: []string{"keep", "also keep"}},
		{Title: "Numeric", Bullets: []string{"1", "2.5", "true"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Structure = %+v, want %+v", got, want)
	}
}

func TestStructureTruncatesToMaxSlides(t *testing.T) {
	chat := &stubChat{reply: `{"slides": [
    {"title": "One", "bullets": ["a"]},
    {"title": "Two", "bullets": ["b"]},
    {"title": "Three", "bullets": ["c"]},
    {"title": "Four", "bullets": ["d"]},
    {"title": "Five", "bullets": ["e"]}
  ]}`}

	s := NewStructurer(chat)
	got := s.Structure(context.Background(), "text", models.LanguageEnglish, 2)

	if len(got) != 2 {
		t.Fatalf("Structure returned %d slides, want 2", len(got))
	}
	if got[0].Title != "One" || got[1].Title != "Two" {
		t.Errorf("Structure kept %q, %q, want the first two in order", got[0].Title, got[1].Title)
	}
}

func TestStructureChatErrorReturnsErrorSlide(t *testing.T) {
	chat := &stubChat{err: errors.New("rate limited")}

	s := NewStructurer(chat)
	got := s.Structure(context.Background(), "text", models.LanguageEnglish, 0)

	if len(got) != 1 || got[0].Title != "Error" {
		t.Fatalf("Structure = %+v, want single Error slide", got)
	}
	if len(got[0].Bullets) != 1 {
		t.Fatalf("Error slide has %d bullets, want 1", len(got[0].Bullets))
	}
}

func TestStructureNonJSONReturnsErrorSlide(t *testing.T) {
	chat := &stubChat{reply: "Sorry, I cannot help with that."}

	s := NewStructurer(chat)
	got := s.Structure(context.Background(), "text", models.LanguageEnglish, 0)

	if len(got) != 1 || got[0].Title != "Error" {
		t.Errorf("Structure = %+v, want single Error slide", got)
	}
}

func TestStructureEmptyResponseReturnsErrorSlide(t *testing.T) {
	chat := &stubChat{reply: "   \n"}

	s := NewStructurer(chat)
	got := s.Structure(context.Background(), "text", models.LanguageEnglish, 0)

	if len(got) != 1 || got[0].Title != "Error" {
		t.Errorf("Structure = %+v, want single Error slide", got)
	}
}

func TestStructurePromptCarriesLanguageAndText(t *testing.T) {
	chat := &stubChat{reply: `{"slides": [{"title": "T", "bullets": ["b"]}]}`}

	s := NewStructurer(chat)
	s.Structure(context.Background(), "the source document", models.LanguageArabic, 0)

	for _, fragment := range []string{models.LanguageArabic, "the source document", `"slides"`} {
		if !strings.Contains(chat.prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{}\n```  ", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.reply); got != tt.want {
				t.Errorf("stripCodeFence = %q, want %q", got, tt.want)
			}
		})
	}
}
