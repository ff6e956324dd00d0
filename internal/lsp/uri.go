package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// DocumentURI is an LSP document URI, e.g. "file:///home/user/src/main.go".
type DocumentURI string

// Scheme returns the URI scheme, or "" if the URI has none.
func (u DocumentURI) Scheme() string {
	s := string(u)
	idx := strings.Index(s, "://")
	if idx < 0 {
		if idx = strings.Index(s, ":"); idx < 0 {
			return ""
		}
	}
	return s[:idx]
}

// Path returns the filesystem path for a file URI, or "" for non-file URIs.
func (u DocumentURI) Path() string {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	if parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if path == "" {
		path = parsed.Opaque
	}
	return filepath.FromSlash(path)
}

// URIFromPath converts an absolute filesystem path to a file URI.
func URIFromPath(path string) DocumentURI {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return DocumentURI("file://" + path)
}
