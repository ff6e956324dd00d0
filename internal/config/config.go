package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// Settings is the effective spell-check configuration for a document.
// A Settings value is treated as an immutable snapshot once handed out;
// derivations (folder merge, in-text directives) always produce a copy.
type Settings struct {
	Language           string   `toml:"language"`
	Enabled            bool     `toml:"enabled"`
	AllowedSchemes     []string `toml:"allowed_schemes"`
	EnabledLanguageIDs []string `toml:"enabled_language_ids"`
	Words              []string `toml:"words"`
	IgnoreWords        []string `toml:"ignore_words"`
	IgnorePaths        []string `toml:"ignore_paths"`
	DictionaryFiles    []string `toml:"dictionary_files"`
	NumSuggestions     int      `toml:"num_suggestions"`
}

// Default returns the baseline settings applied underneath any user config.
func Default() Settings {
	return Settings{
		Language:       "en",
		Enabled:        true,
		AllowedSchemes: []string{"file", "untitled"},
		NumSuggestions: 8,
	}
}

// SchemeAllowed reports whether a document URI scheme is spell-checkable.
func (s Settings) SchemeAllowed(scheme string) bool {
	return slices.Contains(s.AllowedSchemes, scheme)
}

// LanguageIDEnabled reports whether a document language is spell-checkable.
// An empty enabled list means all languages are checked.
func (s Settings) LanguageIDEnabled(languageID string) bool {
	if len(s.EnabledLanguageIDs) == 0 {
		return true
	}
	return slices.Contains(s.EnabledLanguageIDs, languageID)
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spelld")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "spelld")
	}
	return filepath.Join(home, ".config", "spelld")
}

func runtimeDir() string {
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return xdg
	}
	return os.TempDir()
}

// UserConfigPath returns the location of the user-level config file.
func UserConfigPath() string {
	return filepath.Join(configDir(), "spelld.toml")
}

// SocketPath returns the control socket location.
func SocketPath() string {
	return filepath.Join(runtimeDir(), "spelld.sock")
}

// LoadUser reads the user config, layered over defaults. A missing file is
// not an error; the defaults are returned unchanged.
func LoadUser(path string) (Settings, error) {
	if path == "" {
		path = UserConfigPath()
	}

	base := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &base); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	return base, nil
}
