package codeaction

import (
	"slices"
	"testing"
)

func TestSuggestionsCaseAndDedup(t *testing.T) {
	tests := []struct {
		name string
		word string
		raw  []string
		want []string
	}{
		{
			name: "lowercase candidates follow a capitalized word",
			word: "Teh",
			raw:  []string{"the", "ten"},
			want: []string{"The", "Ten"},
		},
		{
			name: "lowercase candidates follow an all-caps word",
			word: "TEH",
			raw:  []string{"the"},
			want: []string{"THE"},
		},
		{
			name: "lowercase word leaves candidates lowercase",
			word: "teh",
			raw:  []string{"the"},
			want: []string{"the"},
		},
		{
			name: "candidates with specific case pass through unchanged",
			word: "mcdonald",
			raw:  []string{"McDonald"},
			want: []string{"McDonald"},
		},
		{
			name: "dedup keeps first occurrence order",
			word: "Teh",
			raw:  []string{"the", "The", "ten", "the"},
			want: []string{"The", "Ten"},
		},
		{
			name: "no candidates",
			word: "Teh",
			raw:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := &fakeDict{suggestions: tt.raw}
			got := Suggestions(dict, tt.word, 10)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Suggestions(%q, %v) = %v, want %v", tt.word, tt.raw, got, tt.want)
			}
		})
	}
}

func TestMatchCase(t *testing.T) {
	tests := []struct {
		original  string
		candidate string
		want      string
	}{
		{"Teh", "the", "The"},
		{"TEH", "the", "THE"},
		{"teh", "the", "the"},
		{"Überzug", "uberzug", "Uberzug"},
		{"x", "example", "example"},
	}

	for _, tt := range tests {
		if got := matchCase(tt.original, tt.candidate); got != tt.want {
			t.Errorf("matchCase(%q, %q) = %q, want %q", tt.original, tt.candidate, got, tt.want)
		}
	}
}
