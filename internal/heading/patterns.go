package heading

import (
	"regexp"
	"strings"

	"github.com/docsieve/docsieve/internal/types"
)

// Heading text patterns, checked in fixed priority order so a run matches
// at most one class and output stays deterministic.
var (
	// ALL CAPS runs of letters and spaces, e.g. "INTRODUCTION".
	allCapsRe = regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`)
	// Numbered headings: digits, a separator, then a capital, e.g. "1. Scope".
	numberedRe = regexp.MustCompile(`^\d+[.)]\s+[A-Z]`)
	// Title Case: every word capitalized, e.g. "Getting Started".
	titleCaseRe = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*$`)
)

// matchPattern returns the first pattern class the text matches, in
// priority order AllCaps, Numbered, TitleCase.
func matchPattern(text string) types.PatternClass {
	switch {
	case allCapsRe.MatchString(text):
		return types.PatternAllCaps
	case numberedRe.MatchString(text):
		return types.PatternNumbered
	case titleCaseRe.MatchString(text):
		return types.PatternTitleCase
	default:
		return types.PatternNone
	}
}

// noiseTokens are short boilerplate fragments that never classify as
// headings regardless of formatting.
var noiseTokens = map[string]struct{}{
	"page":      {},
	"continued": {},
	"...":       {},
}

// IsNoise reports whether a run's text is too short or too boilerplate to
// be worth classifying.
func IsNoise(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 {
		return true
	}
	_, ok := noiseTokens[strings.ToLower(trimmed)]
	return ok
}
