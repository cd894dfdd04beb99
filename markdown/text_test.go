package markdown

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	got := PlainText("# Title\n\nSome **bold**   text\nwith a [link](https://example.com).", 0)
	if strings.Contains(got, "**") || strings.Contains(got, "](") {
		t.Errorf("PlainText left markdown syntax behind: %q", got)
	}
	if strings.Contains(got, "  ") || strings.Contains(got, "\n") {
		t.Errorf("PlainText should collapse whitespace: %q", got)
	}
	if !strings.Contains(got, "bold text") {
		t.Errorf("PlainText lost words: %q", got)
	}
}

func TestPlainTextLimit(t *testing.T) {
	tests := []struct {
		input string
		limit int
		want  string
	}{
		{"hello world", 5, "hello"},
		{"hello world", 50, "hello world"},
		{"héllo wörld", 4, "héll"},
	}
	for _, tt := range tests {
		if got := PlainText(tt.input, tt.limit); got != tt.want {
			t.Errorf("PlainText(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
		}
	}
}
