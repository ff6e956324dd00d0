package config

// Merge layers folder-level settings over base settings. Scalars from the
// overlay win when set; word, dictionary, and ignore lists are unioned so a
// folder config extends rather than truncates the user's lists.
func Merge(base, overlay Settings) Settings {
	merged := base

	if overlay.Language != "" {
		merged.Language = overlay.Language
	}
	merged.Enabled = base.Enabled && overlay.Enabled
	if overlay.NumSuggestions > 0 {
		merged.NumSuggestions = overlay.NumSuggestions
	}
	if len(overlay.AllowedSchemes) > 0 {
		merged.AllowedSchemes = overlay.AllowedSchemes
	}
	if len(overlay.EnabledLanguageIDs) > 0 {
		merged.EnabledLanguageIDs = overlay.EnabledLanguageIDs
	}

	merged.Words = unionStrings(base.Words, overlay.Words)
	merged.IgnoreWords = unionStrings(base.IgnoreWords, overlay.IgnoreWords)
	merged.IgnorePaths = unionStrings(base.IgnorePaths, overlay.IgnorePaths)
	merged.DictionaryFiles = unionStrings(base.DictionaryFiles, overlay.DictionaryFiles)

	return merged
}

// unionStrings appends entries of b not already present in a, preserving
// first-occurrence order.
func unionStrings(a, b []string) []string {
	if len(b) == 0 {
		return a
	}

	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, lists := range [][]string{a, b} {
		for _, s := range lists {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
