package config

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/amarbel-llc/spelld/internal/lsp"
)

// Manager owns the current base settings and the settings generation token.
// The token changes whenever configuration changes for any reason, it is the
// sole authority for "have the settings changed" independent of document
// edits.
type Manager struct {
	mu      sync.RWMutex
	base    Settings
	folders func() []lsp.WorkspaceFolder
	version atomic.Int64
}

// NewManager wraps base settings. folders supplies the current workspace
// folders for folder-level config lookup; it may be nil.
func NewManager(base Settings, folders func() []lsp.WorkspaceFolder) *Manager {
	return &Manager{base: base, folders: folders}
}

// Version returns the current settings generation token.
func (m *Manager) Version() int64 {
	return m.version.Load()
}

// Bump advances the generation token, invalidating every cached resolution.
func (m *Manager) Bump() {
	m.version.Add(1)
}

// Base returns the current base settings snapshot.
func (m *Manager) Base() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.base
}

// SetBase replaces the base settings and bumps the generation token.
func (m *Manager) SetBase(s Settings) {
	m.mu.Lock()
	m.base = s
	m.mu.Unlock()
	m.Bump()
}

// ForDocument resolves the merged settings for a document: user settings
// layered with the config of the workspace folder containing it, if any.
func (m *Manager) ForDocument(uri lsp.DocumentURI) Settings {
	base := m.Base()

	if m.folders == nil {
		return base
	}
	path := uri.Path()
	if path == "" {
		return base
	}

	folder, ok := FolderContaining(path, m.folders())
	if !ok {
		return base
	}
	cfgPath := FolderConfigPath(folder.URI.Path())
	if cfgPath == "" {
		return base
	}

	overlay, err := loadFolder(cfgPath)
	if err != nil {
		slog.Warn("ignoring unreadable folder config", "path", cfgPath, "err", err)
		return base
	}
	return Merge(base, overlay)
}
