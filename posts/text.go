package posts

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	// WordsPerMinute is the reading speed ReadingTime assumes.
	WordsPerMinute = 200
	// DefaultExcerptWords is the excerpt length used when none is given.
	DefaultExcerptWords = 50
	// ExcerptEllipsis marks a truncated excerpt.
	ExcerptEllipsis = "..."
	// DisplayDateLayout is how FormatDate renders dates.
	DisplayDateLayout = "January 2, 2006"
)

var whitespace = regexp.MustCompile(`[\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// words splits s on whitespace runs. Leading or trailing whitespace yields
// an empty first or last token and an empty string yields one empty token;
// ReadingTime and Excerpt both count those.
func words(s string) []string {
	return whitespace.Split(s, -1)
}

// ReadingTime estimates the minutes needed to read content, rounded up.
// The result is at least 1 and never decreases as words are added.
func ReadingTime(content string) int {
	n := len(words(content))
	return (n + WordsPerMinute - 1) / WordsPerMinute
}

// Excerpt returns the first limit words of content joined by single spaces,
// followed by ExcerptEllipsis when content has more words than that.
// A limit of zero or less means DefaultExcerptWords.
func Excerpt(content string, limit int) string {
	if limit <= 0 {
		limit = DefaultExcerptWords
	}
	all := words(content)
	if len(all) <= limit {
		return strings.Join(all, " ")
	}
	return strings.Join(all[:limit], " ") + ExcerptEllipsis
}

// ParseDate interprets a front matter date. It accepts the usual ISO 8601
// forms as well as looser human formats; values without a zone are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a front matter date as "January 2, 2006". Dates that
// cannot be parsed are returned as written.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DisplayDateLayout)
}

// compareNewestFirst orders posts by date, newest first. Posts with a
// missing or unparseable date sort after every dated post and keep their
// relative order.
func compareNewestFirst(a, b Post) int {
	ta, okA := ParseDate(a.Metadata.Date)
	tb, okB := ParseDate(b.Metadata.Date)
	switch {
	case okA && okB:
		return tb.Compare(ta)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
