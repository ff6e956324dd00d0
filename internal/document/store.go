package document

import (
	"errors"
	"fmt"
	"sync"

	"github.com/amarbel-llc/spelld/internal/lsp"
)

var (
	ErrDocumentNotOpen = errors.New("document not open")
	ErrStaleVersion    = errors.New("stale document version")
)

// Document is an immutable snapshot of one open document at one version.
// Edits never mutate a Document; the store replaces it with a new snapshot.
type Document struct {
	URI        lsp.DocumentURI
	LanguageID string
	Version    int
	Text       string
}

// Store tracks the current snapshot of every open document.
type Store struct {
	mu   sync.RWMutex
	docs map[lsp.DocumentURI]*Document
}

func NewStore() *Store {
	return &Store{docs: make(map[lsp.DocumentURI]*Document)}
}

// Open records a freshly opened document.
func (s *Store) Open(uri lsp.DocumentURI, languageID string, version int, text string) *Document {
	doc := &Document{URI: uri, LanguageID: languageID, Version: version, Text: text}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc
}

// Apply applies content changes at a new version and replaces the snapshot.
// Versions must be strictly increasing; an older or equal version is stale.
func (s *Store) Apply(uri lsp.DocumentURI, version int, changes []lsp.TextDocumentContentChangeEvent) (*Document, error) {
	s.mu.RLock()
	cur, ok := s.docs[uri]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDocumentNotOpen
	}
	if version <= cur.Version {
		return nil, ErrStaleVersion
	}

	text := cur.Text
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		next := Document{Text: text}
		start := next.OffsetAt(change.Range.Start)
		end := next.OffsetAt(change.Range.End)
		if end < start {
			return nil, fmt.Errorf("change range end before start in %s", uri)
		}
		text = text[:start] + change.Text + text[end:]
	}

	doc := &Document{URI: uri, LanguageID: cur.LanguageID, Version: version, Text: text}
	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()
	return doc, nil
}

// Close forgets a document.
func (s *Store) Close(uri lsp.DocumentURI) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Get returns the current snapshot for uri.
func (s *Store) Get(uri lsp.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Len reports how many documents are open.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
