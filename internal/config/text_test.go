package config

import (
	"slices"
	"strings"
	"testing"
)

func TestConstructForText(t *testing.T) {
	base := Default()
	base.Words = []string{"alpha"}

	tests := []struct {
		name        string
		text        string
		languageID  string
		wantEnabled bool
		wantWords   []string
		wantIgnore  []string
	}{
		{
			name:        "plain text changes nothing",
			text:        "hello world\n",
			languageID:  "plaintext",
			wantEnabled: true,
			wantWords:   []string{"alpha"},
		},
		{
			name:        "words directive extends the word list",
			text:        "# spelld:words frobnicate grobnicate\nbody\n",
			languageID:  "plaintext",
			wantEnabled: true,
			wantWords:   []string{"alpha", "frobnicate", "grobnicate"},
		},
		{
			name:        "ignore directive collects ignore words",
			text:        "// spelld:ignore xzzy\n",
			languageID:  "plaintext",
			wantEnabled: true,
			wantWords:   []string{"alpha"},
			wantIgnore:  []string{"xzzy"},
		},
		{
			name:        "disable directive turns checking off",
			text:        "<!-- spelld:disable -->\n",
			languageID:  "plaintext",
			wantEnabled: false,
			wantWords:   []string{"alpha"},
		},
		{
			name:        "enable directive overrides an earlier disable",
			text:        "spelld:disable\nspelld:enable\n",
			languageID:  "plaintext",
			wantEnabled: true,
			wantWords:   []string{"alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConstructForText(base, tt.text, tt.languageID)
			if got.Enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, want %v", got.Enabled, tt.wantEnabled)
			}
			if !slices.Equal(got.Words, tt.wantWords) {
				t.Errorf("words = %v, want %v", got.Words, tt.wantWords)
			}
			if len(tt.wantIgnore) > 0 && !slices.Equal(got.IgnoreWords, tt.wantIgnore) {
				t.Errorf("ignore words = %v, want %v", got.IgnoreWords, tt.wantIgnore)
			}
		})
	}
}

func TestConstructForTextSurvivesLongLines(t *testing.T) {
	base := Default()
	longLine := strings.Repeat("x", 128*1024)
	text := longLine + "\n# spelld:words frobnicate\n"

	got := ConstructForText(base, text, "plaintext")
	if !slices.Contains(got.Words, "frobnicate") {
		t.Error("directive after an over-long line was dropped")
	}
}

func TestConstructForTextLanguageGate(t *testing.T) {
	base := Default()
	base.EnabledLanguageIDs = []string{"markdown"}

	if got := ConstructForText(base, "text\n", "markdown"); !got.Enabled {
		t.Error("markdown should stay enabled")
	}
	if got := ConstructForText(base, "text\n", "go"); got.Enabled {
		t.Error("go should be disabled by the language list")
	}
}

func TestConstructForTextDoesNotMutateInput(t *testing.T) {
	base := Default()
	base.Words = []string{"alpha"}

	_ = ConstructForText(base, "spelld:words beta\n", "plaintext")

	if !slices.Equal(base.Words, []string{"alpha"}) {
		t.Errorf("input settings mutated: %v", base.Words)
	}
}
