package services

import (
	"strings"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

// MasterySet answers whether an identity key is mastered
type MasterySet interface {
	IsMastered(key string) bool
}

// ApplyFilter keeps the entries that pass the search and hide-mastered
// predicates, preserving order. The search term is a case-insensitive
// substring of the word, meaning or sentence.
func ApplyFilter(entries []models.Entry, state models.FilterState, mastery MasterySet) []models.Entry {
	search := strings.ToLower(strings.TrimSpace(state.Search))

	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if state.HideMastered && mastery != nil && mastery.IsMastered(e.Key) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Word), search) &&
			!strings.Contains(strings.ToLower(e.Meaning), search) &&
			!strings.Contains(strings.ToLower(e.Sentence), search) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// Page returns the slice [(page-1)*size, page*size) of filtered, clamped to
// its bounds.
func Page(filtered []models.Entry, page, size int) []models.Entry {
	if len(filtered) == 0 || size <= 0 {
		return []models.Entry{}
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(filtered) {
		return []models.Entry{}
	}
	end := min(start+size, len(filtered))
	return filtered[start:end]
}

// FilterUpdate carries the table controls a client changed. Nil fields are
// untouched; Move steps the page by -1 or +1.
type FilterUpdate struct {
	Search       *string
	HideMastered *bool
	PageSize     *int
	Page         *int
	Move         int
}

// apply runs the state transitions in the order the table does. Any change
// to search, hide-mastered or page size goes back to page 1.
func (u FilterUpdate) apply(s models.FilterState, count func(models.FilterState) int) models.FilterState {
	if u.Search != nil && *u.Search != s.Search {
		s = s.WithSearch(*u.Search)
	}
	if u.HideMastered != nil && *u.HideMastered != s.HideMastered {
		s = s.WithHideMastered(*u.HideMastered)
	}
	if u.PageSize != nil && *u.PageSize != s.PageSize {
		s = s.WithPageSize(*u.PageSize)
	}

	n := count(s)
	switch {
	case u.Page != nil:
		s = s.WithPage(*u.Page, n)
	case u.Move > 0:
		s = s.NextPage(n)
	case u.Move < 0:
		s = s.PrevPage(n)
	}
	return s.Clamp(n)
}
