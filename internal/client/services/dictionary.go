// Package services contains the feature services behind the shell's views:
// the gesture dictionary, the community feed, the AI chat transcript, the
// simulated sign recognizer and signer, and video call rooms.
//
// State is held in memory for the lifetime of the process and is safe for
// concurrent use.
package services

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/common"
)

// FilterAll matches every category or difficulty.
const FilterAll = "All"

var (
	DictionaryCategories   = []string{FilterAll, "Greetings", "Courtesy", "Emotions", "Relationships", "Numbers", "Colors"}
	DictionaryDifficulties = []string{FilterAll, string(models.DifficultyBeginner), string(models.DifficultyIntermediate), string(models.DifficultyAdvanced)}
)

// DictionaryFilter narrows a dictionary search. Empty Category and
// Difficulty behave like FilterAll.
type DictionaryFilter struct {
	Query         string
	Category      string
	Difficulty    string
	FavoritesOnly bool
}

// Dictionary is the searchable list of known signs.
type Dictionary interface {
	Search(f DictionaryFilter) []models.GestureEntry
	ToggleFavorite(id string) (models.GestureEntry, error)
	Lookup(word string) (models.GestureEntry, bool)
}

type dictionary struct {
	mu      sync.RWMutex
	entries []models.GestureEntry
}

func seedEntries() []models.GestureEntry {
	return []models.GestureEntry{
		{ID: "1", Word: "Hello", Description: "A greeting gesture made by waving the hand", Category: "Greetings", Difficulty: models.DifficultyBeginner, Favorite: true},
		{ID: "2", Word: "Thank you", Description: "Express gratitude by touching lips then moving hand forward", Category: "Courtesy", Difficulty: models.DifficultyBeginner},
		{ID: "3", Word: "Love", Description: "Cross both hands over heart", Category: "Emotions", Difficulty: models.DifficultyIntermediate, Favorite: true},
		{ID: "4", Word: "Family", Description: "Two F handshapes forming a circle", Category: "Relationships", Difficulty: models.DifficultyIntermediate},
	}
}

// NewDictionary returns a dictionary seeded with the built-in signs.
func NewDictionary() Dictionary {
	return NewDictionaryWith(seedEntries())
}

// NewDictionaryWith returns a dictionary holding a copy of entries.
func NewDictionaryWith(entries []models.GestureEntry) Dictionary {
	return &dictionary{entries: slices.Clone(entries)}
}

func matchesFilter(value, filter string) bool {
	return filter == "" || filter == FilterAll || value == filter
}

// Search returns the entries matching f in their stored order. The query is
// matched case-insensitively against the word and the description.
func (d *dictionary) Search(f DictionaryFilter) []models.GestureEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.GestureEntry, 0, len(d.entries))
	for _, e := range d.entries {
		if q != "" && !strings.Contains(strings.ToLower(e.Word), q) && !strings.Contains(strings.ToLower(e.Description), q) {
			continue
		}
		if !matchesFilter(e.Category, f.Category) || !matchesFilter(string(e.Difficulty), f.Difficulty) {
			continue
		}
		if f.FavoritesOnly && !e.Favorite {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (d *dictionary) ToggleFavorite(id string) (models.GestureEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.entries {
		if d.entries[i].ID == id {
			d.entries[i].Favorite = !d.entries[i].Favorite
			return d.entries[i], nil
		}
	}
	return models.GestureEntry{}, fmt.Errorf("dictionary entry %q: %w", id, common.ErrorNotFound)
}

// Lookup finds the entry whose word equals word, ignoring case.
func (d *dictionary) Lookup(word string) (models.GestureEntry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	word = strings.TrimSpace(word)
	for _, e := range d.entries {
		if strings.EqualFold(e.Word, word) {
			return e, true
		}
	}
	return models.GestureEntry{}, false
}
