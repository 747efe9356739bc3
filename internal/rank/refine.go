package rank

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	trailingPageRe = regexp.MustCompile(`\b\d+\s*$`)
)

// Ellipsis marks a truncated refined excerpt.
const Ellipsis = "..."

// Refine cleans section text for subsection analysis: collapse runs of
// whitespace, strip a trailing bare page number, and truncate to the
// character budget. Truncation prefers the last sentence boundary that
// fits and appends an ellipsis marker.
func Refine(text string, limit int) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = strings.TrimSpace(trailingPageRe.ReplaceAllString(text, ""))
	if text == "" {
		return ""
	}
	if limit <= 0 || len(text) <= limit {
		return text
	}

	budget := limit - len(Ellipsis)
	if budget < 1 {
		budget = 1
	}
	cut := text[:budget]

	// Prefer cutting at the end of a sentence, falling back to the last
	// word boundary.
	if idx := lastSentenceEnd(cut); idx > 0 {
		cut = cut[:idx+1]
	} else if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}

	return strings.TrimSpace(cut) + Ellipsis
}

// lastSentenceEnd returns the index of the last sentence terminator in s,
// or -1 when there is none.
func lastSentenceEnd(s string) int {
	last := -1
	for i, r := range s {
		if r == '.' || r == '!' || r == '?' {
			last = i
		}
	}
	return last
}
