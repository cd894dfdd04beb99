package markdown

import (
	"strings"

	stripmd "github.com/writeas/go-strip-markdown"
)

// PlainText strips Markdown syntax from md, collapses whitespace and cuts the
// result to at most limit runes. A limit of zero or less means no limit.
func PlainText(md string, limit int) string {
	text := strings.Join(strings.Fields(stripmd.Strip(md)), " ")
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
