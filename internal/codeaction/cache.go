// Package codeaction implements the spell-check decision layer: resolving
// version-consistent settings and dictionaries per document, generating
// case-corrected suggestions, and synthesizing quick-fix actions.
package codeaction

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amarbel-llc/spelld/internal/config"
	"github.com/amarbel-llc/spelld/internal/dictionary"
	"github.com/amarbel-llc/spelld/internal/document"
	"github.com/amarbel-llc/spelld/internal/lsp"
)

// DocSettings is an immutable resolved pair of effective settings and the
// dictionary built from them, valid for one exact document version under one
// settings generation. Ignore carries the compiled ignore_paths matcher; it
// is nil when no patterns are configured or none compiled.
type DocSettings struct {
	Settings config.Settings
	Dict     dictionary.Dictionary
	Ignore   *config.IgnoreMatcher
}

// LoadFunc builds a dictionary from resolved settings. Injected so tests can
// observe and gate dictionary construction.
type LoadFunc func(ctx context.Context, s config.Settings) (dictionary.Dictionary, error)

// resolution is one in-flight or settled settings/dictionary computation.
// done is closed exactly once, after which pair and err are immutable.
type resolution struct {
	docVersion      int
	settingsVersion int64
	done            chan struct{}
	pair            *DocSettings
	err             error
}

func (r *resolution) wait(ctx context.Context) (*DocSettings, error) {
	select {
	case <-r.done:
		return r.pair, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SettingsCache caches the resolved settings/dictionary pair per document.
// The cache stores the in-flight computation itself, keyed by an exact
// (docVersion, settingsVersion) match, so concurrent requests for the same
// pair collapse onto one computation. Entries for a stale pair are
// overwritten, never edited; a settled entry (including a failed one) stays
// until a new version or generation arrives.
type SettingsCache struct {
	settings *config.Manager
	load     LoadFunc

	mu      sync.Mutex
	entries map[lsp.DocumentURI]*resolution
}

func NewSettingsCache(settings *config.Manager, load LoadFunc) *SettingsCache {
	return &SettingsCache{
		settings: settings,
		load:     load,
		entries:  make(map[lsp.DocumentURI]*resolution),
	}
}

// Resolve returns the settings/dictionary pair for the document's current
// identity, reusing a matching cached or in-flight resolution when the
// document version and settings generation both match exactly.
func (c *SettingsCache) Resolve(ctx context.Context, doc *document.Document) (*DocSettings, error) {
	gen := c.settings.Version()

	c.mu.Lock()
	if cur, ok := c.entries[doc.URI]; ok && cur.docVersion == doc.Version && cur.settingsVersion == gen {
		c.mu.Unlock()
		return cur.wait(ctx)
	}

	r := &resolution{
		docVersion:      doc.Version,
		settingsVersion: gen,
		done:            make(chan struct{}),
	}
	c.entries[doc.URI] = r
	c.mu.Unlock()

	// The computation is shared by every request that observes this entry,
	// so it must not die with the first caller's context.
	go c.run(context.WithoutCancel(ctx), r, doc)

	return r.wait(ctx)
}

func (c *SettingsCache) run(ctx context.Context, r *resolution, doc *document.Document) {
	defer close(r.done)

	base := c.settings.ForDocument(doc.URI)
	derived := config.ConstructForText(base, doc.Text, doc.LanguageID)

	matcher, err := config.CompileIgnoreGlobs(derived.IgnorePaths)
	if err != nil {
		slog.Warn("ignore_paths disabled, pattern does not compile", "err", err)
		matcher = nil
	}

	dict, err := c.load(ctx, derived)
	if err != nil {
		r.err = err
		return
	}
	r.pair = &DocSettings{Settings: derived, Dict: dict, Ignore: matcher}
}

// Evict drops the cache entry for a closed document. In-flight resolutions
// complete and are discarded.
func (c *SettingsCache) Evict(uri lsp.DocumentURI) {
	c.mu.Lock()
	delete(c.entries, uri)
	c.mu.Unlock()
}

// Len reports how many documents currently have a cached resolution.
func (c *SettingsCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
