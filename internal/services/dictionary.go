package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

const (
	dictionaryAPIBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout       = 10 * time.Second
)

// DictionaryService looks up definitions and pronunciation audio for words
type DictionaryService struct {
	client  *http.Client
	baseURL string
}

// NewDictionaryService creates a dictionary client. An empty baseURL uses the
// public dictionary API; a zero timeout uses ten seconds.
func NewDictionaryService(baseURL string, timeout time.Duration) *DictionaryService {
	if baseURL == "" {
		baseURL = dictionaryAPIBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DictionaryService{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// NewDictionaryServiceWithClient creates a dictionary service with a custom HTTP client
func NewDictionaryServiceWithClient(client *http.Client, baseURL string) *DictionaryService {
	return &DictionaryService{
		client:  client,
		baseURL: baseURL,
	}
}

// ErrDefinitionNotFound is returned when the dictionary has no entry for a word
var ErrDefinitionNotFound = errors.New("word not found in dictionary")

// Lookup fetches the definition of a word from the dictionary API
func (s *DictionaryService) Lookup(ctx context.Context, word string) (*models.DictionaryResponse, error) {
	u := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch definition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrDefinitionNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary API returned status %d", resp.StatusCode)
	}

	var entries []models.DictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrDefinitionNotFound
	}

	return transformResponse(entries), nil
}

// transformResponse merges the API's entries into one response: the first
// entry's meanings, its first audio clip and every distinct source URL.
func transformResponse(entries []models.DictionaryEntry) *models.DictionaryResponse {
	entry := entries[0]

	response := &models.DictionaryResponse{
		Word:     entry.Word,
		Phonetic: entry.Phonetic,
		Meanings: entry.Meanings,
	}

	for _, phonetic := range entry.Phonetics {
		if response.Phonetic == "" && phonetic.Text != "" {
			response.Phonetic = phonetic.Text
		}
		if phonetic.Audio != "" {
			response.AudioURL = phonetic.Audio
			break
		}
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if e.SourceURL != "" && !seen[e.SourceURL] {
			response.SourceURLs = append(response.SourceURLs, e.SourceURL)
			seen[e.SourceURL] = true
		}
	}

	return response
}
