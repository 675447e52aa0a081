package models

import (
	"strings"
)

// RawEntry is a vocabulary record as supplied by a source (JSON file, CSV
// upload). Any field may be blank.
type RawEntry struct {
	Word        string `json:"word"`
	Phonetic    string `json:"phonetic,omitempty"`
	POS         string `json:"pos,omitempty"`
	Meaning     string `json:"meaning"`
	Sentence    string `json:"sentence,omitempty"`
	Translation string `json:"translation,omitempty"`
}

// Entry is a deduplicated vocabulary word. Entries are immutable after load.
type Entry struct {
	Key         string `json:"key"`
	Word        string `json:"word"`
	Phonetic    string `json:"phonetic,omitempty"`
	POS         string `json:"pos,omitempty"`
	Meaning     string `json:"meaning"`
	Sentence    string `json:"sentence,omitempty"`
	Translation string `json:"translation,omitempty"`
}

// Key returns the identity key of a word: lowercased and trimmed.
func Key(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// EntryView is an entry as listed in the word table
type EntryView struct {
	Entry
	Mastered bool `json:"mastered"`
}

// WordPage is one page of the filtered word table
type WordPage struct {
	Words      []EntryView `json:"words"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Filter     FilterState `json:"filter"`
}

// Stats summarises progress over the whole vocabulary
type Stats struct {
	Total    int `json:"total"`
	Mastered int `json:"mastered"`
	Left     int `json:"left"`
}

// ImportResult contains the results of a CSV import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// DictionaryEntry represents a response from the dictionary API
type DictionaryEntry struct {
	Word      string     `json:"word"`
	Phonetic  string     `json:"phonetic,omitempty"`
	Phonetics []Phonetic `json:"phonetics,omitempty"`
	Meanings  []Meaning  `json:"meanings"`
	SourceURL string     `json:"sourceUrl,omitempty"`
}

// Phonetic represents pronunciation information
type Phonetic struct {
	Text  string `json:"text,omitempty"`
	Audio string `json:"audio,omitempty"`
}

// Meaning represents a word meaning with definitions
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition represents a single definition
type Definition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
}

// DictionaryResponse is the definition we return to clients
type DictionaryResponse struct {
	Word       string    `json:"word"`
	Phonetic   string    `json:"phonetic,omitempty"`
	AudioURL   string    `json:"audio_url,omitempty"`
	Meanings   []Meaning `json:"meanings"`
	SourceURLs []string  `json:"source_urls,omitempty"`
}
