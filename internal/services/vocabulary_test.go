package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

func TestLoadVocabulary_LastRecordWins(t *testing.T) {
	store := LoadVocabulary([]models.RawEntry{
		{Word: "Run", Meaning: "A"},
		{Word: "walk", Meaning: "to go on foot"},
		{Word: " run ", Meaning: "B"},
	})

	require.Equal(t, 2, store.Len())

	e, ok := store.Lookup("RUN")
	require.True(t, ok)
	assert.Equal(t, "B", e.Meaning)
	assert.Equal(t, "run", e.Key)

	// The replaced entry keeps the first occurrence's position
	assert.Equal(t, "run", store.Entries()[0].Key)
	assert.Equal(t, "walk", store.Entries()[1].Key)
}

func TestLoadVocabulary_SkipsBlankWords(t *testing.T) {
	store := LoadVocabulary([]models.RawEntry{
		{Word: "", Meaning: "nothing"},
		{Word: "   ", Meaning: "spaces"},
		{Word: "ephemeral", Meaning: "short-lived"},
	})

	assert.Equal(t, 1, store.Len())
	_, ok := store.Lookup("")
	assert.False(t, ok)
}

func TestLoadVocabulary_OneEntryPerKey(t *testing.T) {
	raw := []models.RawEntry{
		{Word: "a", Meaning: "1"}, {Word: "B", Meaning: "2"}, {Word: "A", Meaning: "3"},
		{Word: "b", Meaning: "4"}, {Word: "c", Meaning: "5"}, {Word: "a ", Meaning: "6"},
	}
	store := LoadVocabulary(raw)

	seen := map[string]bool{}
	for _, e := range store.Entries() {
		assert.False(t, seen[e.Key], "duplicate key %q", e.Key)
		seen[e.Key] = true
	}
	assert.Len(t, seen, 3)

	want := map[string]string{"a": "6", "b": "4", "c": "5"}
	for key, meaning := range want {
		e, ok := store.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, meaning, e.Meaning, "key %s", key)
	}
}

func TestLoadVocabulary_Empty(t *testing.T) {
	store := LoadVocabulary(nil)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Entries())
}
