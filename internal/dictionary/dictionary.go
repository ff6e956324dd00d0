// Package dictionary builds spelling dictionaries from settings and word
// list files, and produces ranked replacement candidates for a word.
package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/amarbel-llc/spelld/internal/config"
)

// Dictionary answers membership and suggestion queries for a fixed word set.
type Dictionary interface {
	Has(word string) bool
	Suggest(word string, limit int) []string
}

// maxEditDistance bounds how different a candidate may be from the
// misspelled word before it stops being a plausible correction.
const maxEditDistance = 2

// SpellingDictionary is an immutable in-memory dictionary. Words keep their
// stored case; membership is case-insensitive.
type SpellingDictionary struct {
	words   []string
	index   map[string]struct{}
	ignored map[string]struct{}
}

// Load builds a dictionary from the settings word lists plus every
// configured dictionary file. This is the expensive step that settings
// resolution caching exists to collapse.
func Load(ctx context.Context, s config.Settings) (*SpellingDictionary, error) {
	d := &SpellingDictionary{
		index:   make(map[string]struct{}),
		ignored: make(map[string]struct{}, len(s.IgnoreWords)),
	}
	for _, w := range s.IgnoreWords {
		d.ignored[strings.ToLower(w)] = struct{}{}
	}

	d.add(s.Words)
	for _, path := range s.DictionaryFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		words, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading dictionary: %w", err)
		}
		d.add(words)
	}
	return d, nil
}

// fileCache holds parsed word list files keyed by path, so startup warmup
// and per-request resolution share one parse per file. An entry is reused
// while the file's mtime and size are unchanged; a file that has since
// become unreadable serves the last parsed words rather than failing a
// request it once satisfied.
var fileCache = struct {
	mu      sync.Mutex
	entries map[string]fileCacheEntry
}{entries: make(map[string]fileCacheEntry)}

type fileCacheEntry struct {
	modTime time.Time
	size    int64
	words   []string
}

// LoadFile reads a word list file: one word per line, blank lines and
// "#" comments skipped. Parsed files are cached by path until they change
// on disk.
func LoadFile(path string) ([]string, error) {
	info, statErr := os.Stat(path)

	fileCache.mu.Lock()
	cached, ok := fileCache.entries[path]
	fileCache.mu.Unlock()
	if ok && (statErr != nil ||
		(info.ModTime().Equal(cached.modTime) && info.Size() == cached.size)) {
		return cached.words, nil
	}
	if statErr != nil {
		return nil, statErr
	}

	words, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	fileCache.mu.Lock()
	fileCache.entries[path] = fileCacheEntry{
		modTime: info.ModTime(),
		size:    info.Size(),
		words:   words,
	}
	fileCache.mu.Unlock()
	return words, nil
}

func parseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return words, nil
}

func (d *SpellingDictionary) add(words []string) {
	for _, w := range words {
		key := strings.ToLower(w)
		if _, ok := d.index[key]; ok {
			continue
		}
		d.index[key] = struct{}{}
		d.words = append(d.words, w)
	}
}

// Len reports how many distinct words the dictionary holds.
func (d *SpellingDictionary) Len() int {
	return len(d.words)
}

// Has reports case-insensitive membership, unless the word is ignored.
func (d *SpellingDictionary) Has(word string) bool {
	key := strings.ToLower(word)
	if _, ok := d.ignored[key]; ok {
		return false
	}
	_, ok := d.index[key]
	return ok
}

// Suggest returns up to limit replacement candidates for word, closest
// first. Ties keep dictionary insertion order, so ranking is deterministic.
func (d *SpellingDictionary) Suggest(word string, limit int) []string {
	if limit <= 0 || word == "" {
		return nil
	}
	lower := strings.ToLower(word)

	type scored struct {
		word string
		dist int
	}
	var candidates []scored
	for _, w := range d.words {
		key := strings.ToLower(w)
		if key == lower {
			continue
		}
		if _, ok := d.ignored[key]; ok {
			continue
		}
		dist := levenshtein.ComputeDistance(lower, key)
		if dist > maxEditDistance {
			continue
		}
		candidates = append(candidates, scored{word: w, dist: dist})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out
}
