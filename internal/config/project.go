package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amarbel-llc/spelld/internal/lsp"
)

const folderConfigName = ".spelld.toml"

// FolderConfigPath returns the folder config location if one exists.
func FolderConfigPath(folderRoot string) string {
	path := filepath.Join(folderRoot, folderConfigName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// loadFolder reads a folder-level config file. Absent fields keep their
// zero value except Enabled, which defaults to true so a folder config
// that never mentions it does not disable checking.
func loadFolder(path string) (Settings, error) {
	overlay := Settings{Enabled: true}

	data, err := os.ReadFile(path)
	if err != nil {
		return overlay, fmt.Errorf("reading folder config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return overlay, fmt.Errorf("parsing folder config %s: %w", path, err)
	}
	return overlay, nil
}

// FolderContaining returns the workspace folder whose root contains path,
// preferring the deepest match in nested multi-root setups.
func FolderContaining(path string, folders []lsp.WorkspaceFolder) (lsp.WorkspaceFolder, bool) {
	var best lsp.WorkspaceFolder
	bestLen := -1
	for _, folder := range folders {
		root := folder.URI.Path()
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			if len(root) > bestLen {
				best = folder
				bestLen = len(root)
			}
		}
	}
	return best, bestLen >= 0
}
