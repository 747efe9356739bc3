package persona

import "regexp"

// stopwords filtered out when deriving a keyword set from free text.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "he": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "what": {}, "said": {}, "each": {}, "which": {},
	"she": {}, "do": {}, "how": {}, "their": {}, "if": {}, "up": {},
	"out": {}, "many": {}, "then": {}, "them": {}, "these": {}, "so": {},
	"some": {}, "her": {}, "would": {}, "make": {}, "like": {}, "into": {},
	"him": {}, "time": {}, "two": {}, "more": {}, "go": {}, "no": {},
	"way": {}, "could": {}, "my": {}, "than": {}, "first": {}, "been": {},
	"call": {}, "who": {}, "now": {}, "find": {}, "long": {}, "down": {},
	"day": {}, "did": {}, "get": {}, "come": {}, "made": {}, "may": {},
	"part": {},
}

var wordRe = regexp.MustCompile(`\b[a-zA-Z]+\b`)

// Tokenize splits free text into lowercased significant words, dropping
// stopwords and duplicates. Used to derive the task keyword set from a
// job-to-be-done description.
func Tokenize(text string) []string {
	words := wordRe.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(words))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = toLowerASCII(w)
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
	}
	return tokens
}

// toLowerASCII lowercases without allocation-heavy locale handling; the
// word regexp only admits ASCII letters.
func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
