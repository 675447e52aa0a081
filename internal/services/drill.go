package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/lehmann314159/vocabdrill/internal/models"
	"github.com/lehmann314159/vocabdrill/internal/repository"
)

var (
	// ErrUnknownWord is returned for words missing from the vocabulary
	ErrUnknownWord = errors.New("word is not in the vocabulary")
	// ErrEmptyWord is returned when a word normalizes to nothing
	ErrEmptyWord = errors.New("word is required")
	// ErrDictionaryDisabled is returned by Definition without a dictionary
	ErrDictionaryDisabled = errors.New("dictionary lookups are disabled")
	// ErrInvalidImport wraps problems with an uploaded file's contents
	ErrInvalidImport = errors.New("invalid import file")
)

// WordSpeaker reads words aloud, optionally in a given accent
type WordSpeaker interface {
	Speaker
	SpeakAccent(text, accent string)
}

// Drill is one learner's session: the vocabulary, the word table state,
// mastery and the wheel.
type Drill struct {
	mu      sync.RWMutex
	repo    repository.EntryRepository
	vocab   *VocabularyStore
	filter  models.FilterState
	mastery *MasteryTracker
	wheel   *WheelGame
	speaker WordSpeaker
	dict    *DictionaryService
	notices *Notices
	log     *slog.Logger
}

// DrillDeps are the collaborators of a Drill. Dictionary may be nil.
type DrillDeps struct {
	Entries    repository.EntryRepository
	Mastery    *MasteryTracker
	Speaker    WordSpeaker
	Dictionary *DictionaryService
	Notices    *Notices
	Wheel      WheelConfig
	WheelOpts  []WheelOption
}

// NewDrill creates a session and loads the stored vocabulary
func NewDrill(ctx context.Context, deps DrillDeps, log *slog.Logger) (*Drill, error) {
	d := &Drill{
		repo:    deps.Entries,
		vocab:   LoadVocabulary(nil),
		filter:  models.NewFilterState(),
		mastery: deps.Mastery,
		speaker: deps.Speaker,
		dict:    deps.Dictionary,
		notices: deps.Notices,
		log:     log.With("component", "drill"),
	}
	d.wheel = NewWheelGame(deps.Wheel, d, deps.Speaker, log, deps.WheelOpts...)

	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload rebuilds the vocabulary from the stored raw entries
func (d *Drill) Reload(ctx context.Context) error {
	raw, err := d.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}
	vocab := LoadVocabulary(raw)

	d.mu.Lock()
	d.vocab = vocab
	d.filter = d.filter.Clamp(len(ApplyFilter(vocab.Entries(), d.filter, d.mastery)))
	d.mu.Unlock()

	d.log.Info("vocabulary loaded", "raw", len(raw), "words", vocab.Len())
	return nil
}

// Seed stores entries when the repository is empty. It returns how many were
// stored.
func (d *Drill) Seed(ctx context.Context, entries []models.RawEntry) (int, error) {
	count, err := d.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	n, err := d.repo.Append(ctx, entries)
	if err != nil {
		return 0, err
	}
	return n, d.Reload(ctx)
}

// ImportCSV appends the CSV's entries to the vocabulary
func (d *Drill) ImportCSV(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	entries, result, err := ParseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if _, err := d.repo.Append(ctx, entries); err != nil {
		return nil, fmt.Errorf("store imported words: %w", err)
	}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// ExportCSV writes the deduplicated vocabulary as CSV
func (d *Drill) ExportCSV(w io.Writer) error {
	return WriteCSV(w, d.vocabulary().Entries())
}

// Browse applies a table update and returns the resulting page
func (d *Drill) Browse(u FilterUpdate) models.WordPage {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries := d.vocab.Entries()
	count := func(s models.FilterState) int {
		return len(ApplyFilter(entries, s, d.mastery))
	}
	d.filter = u.apply(d.filter, count)

	filtered := ApplyFilter(entries, d.filter, d.mastery)
	page := Page(filtered, d.filter.Page, d.filter.PageSize)

	views := make([]models.EntryView, len(page))
	for i, e := range page {
		views[i] = models.EntryView{Entry: e, Mastered: d.mastery.IsMastered(e.Key)}
	}

	return models.WordPage{
		Words:      views,
		Total:      len(filtered),
		Page:       d.filter.Page,
		PageSize:   d.filter.PageSize,
		TotalPages: models.PageCount(len(filtered), d.filter.PageSize),
		Filter:     d.filter,
	}
}

// ToggleMastery flips a word's mastered flag and keeps the table page valid
func (d *Drill) ToggleMastery(ctx context.Context, word string) (bool, error) {
	mastered, ok := d.mastery.Toggle(ctx, word)
	if !ok {
		return false, ErrEmptyWord
	}

	d.mu.Lock()
	n := len(ApplyFilter(d.vocab.Entries(), d.filter, d.mastery))
	d.filter = d.filter.Clamp(n)
	d.mu.Unlock()

	return mastered, nil
}

// Stats counts total, mastered and remaining words
func (d *Drill) Stats() models.Stats {
	total := d.vocabulary().Len()
	mastered := d.mastery.Count()
	return models.Stats{Total: total, Mastered: mastered, Left: max(0, total-mastered)}
}

// Unmastered returns the words the wheel may draw
func (d *Drill) Unmastered() []models.Entry {
	entries := d.vocabulary().Entries()
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if !d.mastery.IsMastered(e.Key) {
			out = append(out, e)
		}
	}
	return out
}

// SpeakWord reads a vocabulary word, or its example sentence
func (d *Drill) SpeakWord(word string, part models.CardPart, accent string) error {
	e, ok := d.vocabulary().Lookup(word)
	if !ok {
		return ErrUnknownWord
	}
	text := e.Word
	if part == models.PartSentence {
		text = e.Sentence
	}
	d.speaker.SpeakAccent(text, accent)
	return nil
}

// Definition looks a vocabulary word up in the dictionary
func (d *Drill) Definition(ctx context.Context, word string) (*models.DictionaryResponse, error) {
	e, ok := d.vocabulary().Lookup(word)
	if !ok {
		return nil, ErrUnknownWord
	}
	if d.dict == nil {
		return nil, ErrDictionaryDisabled
	}
	return d.dict.Lookup(ctx, e.Word)
}

// Wheel returns the session's wheel
func (d *Drill) Wheel() *WheelGame {
	return d.wheel
}

// OpenWheel opens the wheel and tells the learner when nothing is left to drill
func (d *Drill) OpenWheel(compact bool) error {
	return d.noticeWheel(d.wheel.Open(compact))
}

// RefreshWheel draws a new round and tells the learner when nothing is left to drill
func (d *Drill) RefreshWheel(compact bool) error {
	return d.noticeWheel(d.wheel.Refresh(compact))
}

// SpinWheel spins and tells the learner when the round is used up
func (d *Drill) SpinWheel() (models.SpinResult, error) {
	res, err := d.wheel.Spin()
	return res, d.noticeWheel(err)
}

func (d *Drill) noticeWheel(err error) error {
	switch {
	case errors.Is(err, ErrEmptyPool):
		d.notices.Post("The vocabulary is empty or every word is mastered")
	case errors.Is(err, ErrRoundComplete):
		d.notices.Post("Every word in this round is done; draw a new batch")
	}
	return err
}

// Notices returns the session's notice queue
func (d *Drill) Notices() *Notices {
	return d.notices
}

func (d *Drill) vocabulary() *VocabularyStore {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.vocab
}
