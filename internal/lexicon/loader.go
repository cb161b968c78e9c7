// Package lexicon provides a loader for the word lists used by the text analyzers.
// Lists are stored as JSON files and embedded at compile time.
package lexicon

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed *.json
var lexiconFiles embed.FS

// Lexicon file names.
const (
	StopwordsFile = "stopwords.json"
	TaggerFile    = "tagger.json"
)

// cache stores parsed lexicon files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string][]string)
	cacheMu sync.RWMutex
)

// Get retrieves a word list by filename and key.
func Get(filename, key string) ([]string, error) {
	lists, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	words, exists := lists[key]
	if !exists {
		return nil, fmt.Errorf("lexicon key %q not found in %s", key, filename)
	}

	return words, nil
}

// Set returns the word list as a lookup set.
func Set(filename, key string) (map[string]bool, error) {
	words, err := Get(filename, key)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set, nil
}

// MustSet is Set that panics on error.
func MustSet(filename, key string) map[string]bool {
	set, err := Set(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load lexicon: %v", err))
	}
	return set
}

func loadFile(filename string) (map[string][]string, error) {
	cacheMu.RLock()
	if lists, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return lists, nil
	}
	cacheMu.RUnlock()

	data, err := lexiconFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", filename, err)
	}

	var lists map[string][]string
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = lists
	cacheMu.Unlock()

	return lists, nil
}
