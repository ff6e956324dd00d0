package codeaction

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amarbel-llc/spelld/internal/document"
	"github.com/amarbel-llc/spelld/internal/lsp"
)

// FolderProvider reports the current workspace folders. Read fresh on every
// request; this engine never caches topology.
type FolderProvider interface {
	Folders() []lsp.WorkspaceFolder
}

// Handler orchestrates one codeAction request: settings resolution, policy
// gates, suggestion generation, and action synthesis, strictly in that
// order.
type Handler struct {
	docs    *document.Store
	cache   *SettingsCache
	folders FolderProvider
}

func NewHandler(docs *document.Store, cache *SettingsCache, folders FolderProvider) *Handler {
	return &Handler{docs: docs, cache: cache, folders: folders}
}

// Cache exposes the settings cache for lifecycle hooks (didClose eviction)
// and status reporting.
func (h *Handler) Cache() *SettingsCache {
	return h.cache
}

// HandleCodeAction resolves fix actions for the request. Unknown documents,
// empty diagnostic contexts, disallowed schemes, ignored paths, and
// non-quick-fix `only` filters all yield an empty list, never an error; only
// a failed settings/dictionary resolution propagates.
func (h *Handler) HandleCodeAction(ctx context.Context, params *lsp.CodeActionParams) ([]lsp.CodeAction, error) {
	empty := []lsp.CodeAction{}

	doc, ok := h.docs.Get(params.TextDocument.URI)
	if !ok {
		return empty, nil
	}
	if len(params.Context.Diagnostics) == 0 {
		return empty, nil
	}
	if !onlyAdmitsQuickFix(params.Context.Only) {
		slog.Debug("codeAction filtered by context.only", "only", params.Context.Only)
		return empty, nil
	}

	resolved, err := h.cache.Resolve(ctx, doc)
	if err != nil {
		return nil, err
	}

	settings := resolved.Settings
	if !settings.Enabled || !settings.SchemeAllowed(doc.URI.Scheme()) {
		return empty, nil
	}
	if resolved.Ignore.Match(doc.URI.Path()) {
		return empty, nil
	}

	folderCount := len(h.folders.Folders())

	suggest := func(word string) []string {
		return Suggestions(resolved.Dict, word, settings.NumSuggestions)
	}
	return Synthesize(doc, params, suggest, folderCount), nil
}

// onlyAdmitsQuickFix honors the client's requested action kinds: an empty
// filter admits everything, otherwise some entry must be a hierarchical
// prefix of "quickfix".
func onlyAdmitsQuickFix(only []lsp.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, kind := range only {
		if kind == lsp.CodeActionKindEmpty {
			return true
		}
		k := string(kind)
		if k == string(lsp.CodeActionKindQuickFix) ||
			strings.HasPrefix(string(lsp.CodeActionKindQuickFix), k+".") {
			return true
		}
	}
	return false
}
