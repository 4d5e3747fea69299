package classifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize normalizes raw text into a deduplicated lowercase token list.
// Punctuation and symbols are treated as separators, and repeated words are
// collapsed so scoring sees a token set rather than a frequency vector.
// First-seen order is preserved to keep downstream output deterministic.
func Tokenize(text string) []string {
	normed := norm.NFKC.String(text)
	normed = strings.ToLower(normed)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return r
		}
		return ' '
	}, normed)

	fields := strings.Fields(normed)
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
