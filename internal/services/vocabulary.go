package services

import (
	"strings"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

// VocabularyStore is the deduplicated word list. It is immutable once built.
type VocabularyStore struct {
	entries []models.Entry
	index   map[string]int
}

// LoadVocabulary dedups raw entries by identity key. Entries with a blank
// word are skipped. When a key repeats, the later record replaces the earlier
// one but keeps the earlier one's position.
func LoadVocabulary(raw []models.RawEntry) *VocabularyStore {
	s := &VocabularyStore{index: make(map[string]int, len(raw))}

	for _, r := range raw {
		key := models.Key(r.Word)
		if key == "" {
			continue
		}

		e := models.Entry{
			Key:         key,
			Word:        strings.TrimSpace(r.Word),
			Phonetic:    r.Phonetic,
			POS:         r.POS,
			Meaning:     r.Meaning,
			Sentence:    r.Sentence,
			Translation: r.Translation,
		}

		if i, ok := s.index[key]; ok {
			s.entries[i] = e
			continue
		}
		s.index[key] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	return s
}

// Entries returns the word list. Callers must not modify it.
func (s *VocabularyStore) Entries() []models.Entry {
	return s.entries
}

// Lookup finds the entry for a word, in any case
func (s *VocabularyStore) Lookup(word string) (models.Entry, bool) {
	i, ok := s.index[models.Key(word)]
	if !ok {
		return models.Entry{}, false
	}
	return s.entries[i], true
}

// Len returns the number of distinct words
func (s *VocabularyStore) Len() int {
	return len(s.entries)
}
