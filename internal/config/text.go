package config

import "strings"

// In-document directives, recognized anywhere in a line (typically inside a
// comment): "spelld:words foo bar", "spelld:ignore foo", "spelld:disable",
// "spelld:enable".
const directivePrefix = "spelld:"

// ConstructForText derives the effective settings for one exact document
// text and language. The result is a fresh snapshot; the input settings are
// never mutated.
func ConstructForText(s Settings, text, languageID string) Settings {
	derived := s
	derived.Enabled = s.Enabled && s.LanguageIDEnabled(languageID)

	var words, ignore []string
	// Split rather than a bufio.Scanner: scanners cap the line length, and a
	// single minified line must not end directive collection early.
	for _, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, directivePrefix)
		if idx < 0 {
			continue
		}
		fields := strings.Fields(line[idx+len(directivePrefix):])
		if len(fields) == 0 {
			continue
		}
		directive, rest := fields[0], fields[1:]
		switch directive {
		case "words", "dictionary":
			words = append(words, rest...)
		case "ignore", "ignoreWords":
			ignore = append(ignore, rest...)
		case "disable":
			derived.Enabled = false
		case "enable":
			derived.Enabled = true
		}
	}

	derived.Words = unionStrings(s.Words, words)
	derived.IgnoreWords = unionStrings(s.IgnoreWords, ignore)
	return derived
}
