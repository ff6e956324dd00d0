package codeaction

import (
	"context"
	"errors"
	"testing"

	"github.com/amarbel-llc/spelld/internal/config"
	"github.com/amarbel-llc/spelld/internal/dictionary"
	"github.com/amarbel-llc/spelld/internal/document"
	"github.com/amarbel-llc/spelld/internal/lsp"
)

type staticFolders []lsp.WorkspaceFolder

func (f staticFolders) Folders() []lsp.WorkspaceFolder { return f }

func oneFolder() staticFolders {
	return staticFolders{{URI: "file:///ws", Name: "ws"}}
}

func newTestHandler(t *testing.T, base config.Settings, load LoadFunc, folders FolderProvider) (*Handler, *document.Store) {
	t.Helper()
	docs := document.NewStore()
	mgr := config.NewManager(base, folders.Folders)
	return NewHandler(docs, NewSettingsCache(mgr, load), folders), docs
}

func codeActionParams(uri lsp.DocumentURI, diags []lsp.Diagnostic) *lsp.CodeActionParams {
	return &lsp.CodeActionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Range:        rng(0, 3),
		Context:      lsp.CodeActionContext{Diagnostics: diags},
	}
}

func TestHandleCodeActionEndToEnd(t *testing.T) {
	base := config.Default()
	base.Words = []string{"the", "ten", "quick", "brown", "fox"}

	load := func(ctx context.Context, s config.Settings) (dictionary.Dictionary, error) {
		return dictionary.Load(ctx, s)
	}
	h, docs := newTestHandler(t, base, load, oneFolder())
	docs.Open("file:///ws/readme.md", "markdown", 1, "Teh quik brown fox\n")

	params := codeActionParams("file:///ws/readme.md", []lsp.Diagnostic{spelldDiag(rng(0, 3))})
	actions, err := h.HandleCodeAction(context.Background(), params)
	if err != nil {
		t.Fatalf("HandleCodeAction: %v", err)
	}

	// "ten" is edit distance 1 from "teh", "the" is 2, so "Ten" ranks first.
	want := []string{"Ten", "The", `Add "Teh" to user dictionary`, `Add "Teh" to folder dictionary`}
	got := titles(actions)
	if len(got) != len(want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("titles = %v, want %v", got, want)
		}
	}
}

func TestHandleCodeActionFastRejects(t *testing.T) {
	diag := spelldDiag(rng(0, 3))

	tests := []struct {
		name  string
		open  bool
		diags []lsp.Diagnostic
	}{
		{"unknown document", false, []lsp.Diagnostic{diag}},
		{"no diagnostics in request", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &countingLoad{dict: &fakeDict{}}
			h, docs := newTestHandler(t, config.Default(), loader.load, oneFolder())
			if tt.open {
				docs.Open("file:///ws/readme.md", "markdown", 1, "Teh quik\n")
			}

			actions, err := h.HandleCodeAction(context.Background(), codeActionParams("file:///ws/readme.md", tt.diags))
			if err != nil {
				t.Fatalf("HandleCodeAction: %v", err)
			}
			if len(actions) != 0 {
				t.Errorf("got %d actions, want 0", len(actions))
			}
			if got := loader.loads.Load(); got != 0 {
				t.Errorf("fast reject still constructed the dictionary %d times", got)
			}
		})
	}
}

func TestHandleCodeActionPolicyGates(t *testing.T) {
	tests := []struct {
		name  string
		base  func() config.Settings
		uri   lsp.DocumentURI
		text  string
		only  []lsp.CodeActionKind
		empty bool
	}{
		{
			name:  "disallowed scheme",
			base:  config.Default,
			uri:   "untrusted-vfs://host/readme.md",
			text:  "Teh quik\n",
			empty: true,
		},
		{
			name: "ignored path",
			base: func() config.Settings {
				s := config.Default()
				s.IgnorePaths = []string{"vendor/**"}
				return s
			},
			uri:   "file:///ws/vendor/readme.md",
			text:  "Teh quik\n",
			empty: true,
		},
		{
			name:  "in-text disable directive",
			base:  config.Default,
			uri:   "file:///ws/readme.md",
			text:  "Teh quik\n<!-- spelld:disable -->\n",
			empty: true,
		},
		{
			name: "language not enabled",
			base: func() config.Settings {
				s := config.Default()
				s.EnabledLanguageIDs = []string{"go"}
				return s
			},
			uri:   "file:///ws/readme.md",
			text:  "Teh quik\n",
			empty: true,
		},
		{
			name:  "only filter excludes quick fixes",
			base:  config.Default,
			uri:   "file:///ws/readme.md",
			text:  "Teh quik\n",
			only:  []lsp.CodeActionKind{"refactor"},
			empty: true,
		},
		{
			name:  "only filter admits quick fixes",
			base:  config.Default,
			uri:   "file:///ws/readme.md",
			text:  "Teh quik\n",
			only:  []lsp.CodeActionKind{lsp.CodeActionKindQuickFix},
			empty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &countingLoad{dict: &fakeDict{suggestions: []string{"the"}}}
			h, docs := newTestHandler(t, tt.base(), loader.load, oneFolder())
			docs.Open(tt.uri, "markdown", 1, tt.text)

			params := codeActionParams(tt.uri, []lsp.Diagnostic{spelldDiag(rng(0, 3))})
			params.Context.Only = tt.only

			actions, err := h.HandleCodeAction(context.Background(), params)
			if err != nil {
				t.Fatalf("HandleCodeAction: %v", err)
			}
			if tt.empty && len(actions) != 0 {
				t.Errorf("got %d actions, want 0", len(actions))
			}
			if !tt.empty && len(actions) == 0 {
				t.Error("got no actions, want some")
			}
		})
	}
}

func TestHandleCodeActionResolutionFailurePropagates(t *testing.T) {
	wantErr := errors.New("no such dictionary file")
	loader := &countingLoad{err: wantErr}
	h, docs := newTestHandler(t, config.Default(), loader.load, oneFolder())
	docs.Open("file:///ws/readme.md", "markdown", 1, "Teh quik\n")

	params := codeActionParams("file:///ws/readme.md", []lsp.Diagnostic{spelldDiag(rng(0, 3))})
	if _, err := h.HandleCodeAction(context.Background(), params); !errors.Is(err, wantErr) {
		t.Fatalf("HandleCodeAction error = %v, want %v", err, wantErr)
	}
}
