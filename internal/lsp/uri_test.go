package lsp

import "testing"

func TestDocumentURIScheme(t *testing.T) {
	tests := []struct {
		uri  DocumentURI
		want string
	}{
		{"file:///home/user/readme.md", "file"},
		{"untitled:Untitled-1", "untitled"},
		{"vscode-vfs://github/org/repo", "vscode-vfs"},
		{"no-scheme-at-all", ""},
	}

	for _, tt := range tests {
		if got := tt.uri.Scheme(); got != tt.want {
			t.Errorf("Scheme(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestDocumentURIPath(t *testing.T) {
	tests := []struct {
		name string
		uri  DocumentURI
		want string
	}{
		{"plain file uri", "file:///home/user/readme.md", "/home/user/readme.md"},
		{"escaped space", "file:///home/user/my%20notes.md", "/home/user/my notes.md"},
		{"non-file uri", "untitled:Untitled-1", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.uri.Path(); got != tt.want {
				t.Errorf("Path(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestURIFromPathRoundTrip(t *testing.T) {
	uri := URIFromPath("/home/user/readme.md")
	if uri != "file:///home/user/readme.md" {
		t.Errorf("URIFromPath = %q", uri)
	}
	if got := uri.Path(); got != "/home/user/readme.md" {
		t.Errorf("round trip = %q", got)
	}
}
