package deck

import (
	"regexp"
	"unicode"
)

// textRun is one inline-formatted span of a paragraph.
type textRun struct {
	Text string
	Bold bool
}

var boldSpan = regexp.MustCompile(`\*\*(.*?)\*\*`)

// splitBoldRuns splits a text block into runs on double-asterisk markup.
// The delimited payload becomes a bold run; the delimiters themselves are
// dropped and all surrounding literal text is preserved, whitespace
// included.
func splitBoldRuns(text string) []textRun {
	var runs []textRun
	last := 0
	for _, loc := range boldSpan.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			runs = append(runs, textRun{Text: text[last:loc[0]]})
		}
		runs = append(runs, textRun{Text: text[loc[2]:loc[3]], Bold: true})
		last = loc[1]
	}
	if last < len(text) || len(runs) == 0 {
		runs = append(runs, textRun{Text: text[last:]})
	}
	return runs
}

// isRightToLeft reports whether the text block reads right to left, decided
// by whether it contains any character of an RTL script. Direction is a
// per-block property: a deck can mix Arabic and English paragraphs and each
// lays out by its own content, not the deck-level language setting.
func isRightToLeft(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Arabic, unicode.Hebrew) {
			return true
		}
	}
	return false
}
