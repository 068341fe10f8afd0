package deck

import (
	"reflect"
	"testing"
)

func TestSplitBoldRuns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []textRun
	}{
		{
			name: "no markup",
			text: "plain sentence",
			want: []textRun{{Text: "plain sentence"}},
		},
		{
			name: "leading bold",
			text: "**key** point",
			want: []textRun{{Text: "key", Bold: true}, {Text: " point"}},
		},
		{
			name: "embedded bold",
			text: "the **important** part",
			want: []textRun{{Text: "the "}, {Text: "important", Bold: true}, {Text: " part"}},
		},
		{
			name: "multiple spans",
			text: "**a** and **b**",
			want: []textRun{{Text: "a", Bold: true}, {Text: " and "}, {Text: "b", Bold: true}},
		},
		{
			name: "empty span",
			text: "before **** after",
			want: []textRun{{Text: "before "}, {Text: "", Bold: true}, {Text: " after"}},
		},
		{
			name: "unterminated markers stay literal",
			text: "a ** b",
			want: []textRun{{Text: "a ** b"}},
		},
		{
			name: "empty text",
			text: "",
			want: []textRun{{Text: ""}},
		},
		{
			name: "whitespace around span preserved",
			text: "  **x**  ",
			want: []textRun{{Text: "  "}, {Text: "x", Bold: true}, {Text: "  "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitBoldRuns(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitBoldRuns(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsRightToLeft(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Plain English", false},
		{"مقدمة", true},
		{"Mixed مقدمة text", true},
		{"שלום", true},
		{"12345 !?", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isRightToLeft(tt.text); got != tt.want {
			t.Errorf("isRightToLeft(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
