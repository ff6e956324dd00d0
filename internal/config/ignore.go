package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreMatcher matches document paths against the configured ignore globs.
type IgnoreMatcher struct {
	globs []glob.Glob
}

// CompileIgnoreGlobs compiles the ignore_paths patterns. Patterns use '/'
// separators and match path suffixes as well, so "vendor/**" ignores any
// vendor directory in the tree.
func CompileIgnoreGlobs(patterns []string) (*IgnoreMatcher, error) {
	m := &IgnoreMatcher{}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether path is ignored by any pattern.
func (m *IgnoreMatcher) Match(path string) bool {
	if m == nil || len(m.globs) == 0 {
		return false
	}
	slashed := filepath.ToSlash(path)
	for _, g := range m.globs {
		if g.Match(slashed) {
			return true
		}
		// Also try every suffix starting at a path separator so relative
		// patterns match absolute document paths.
		rest := slashed
		for {
			idx := strings.IndexByte(rest, '/')
			if idx < 0 {
				break
			}
			rest = rest[idx+1:]
			if g.Match(rest) {
				return true
			}
		}
	}
	return false
}
