package codeaction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/amarbel-llc/spelld/internal/dictionary"
)

// Suggestions returns ranked replacement candidates for the exact misspelled
// word as it appears in the source: lowercase candidates are re-capitalized
// to match the original's case pattern, candidates that already carry
// specific case pass through unchanged, and the result is deduplicated
// preserving first-occurrence order. Pure function of (dict, word).
func Suggestions(dict dictionary.Dictionary, word string, limit int) []string {
	raw := dict.Suggest(word, limit)

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, candidate := range raw {
		if candidate == strings.ToLower(candidate) {
			candidate = matchCase(word, candidate)
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// matchCase transfers the case pattern of original onto candidate: an
// all-caps original upper-cases the whole candidate, a leading capital
// capitalizes the candidate's first rune, anything else leaves it alone.
func matchCase(original, candidate string) string {
	if original != strings.ToLower(original) && original == strings.ToUpper(original) {
		return strings.ToUpper(candidate)
	}

	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(candidate)
		if r == utf8.RuneError {
			return candidate
		}
		return string(unicode.ToUpper(r)) + candidate[size:]
	}
	return candidate
}
