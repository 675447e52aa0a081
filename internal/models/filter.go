package models

// DefaultPageSize is used when a page size is missing or not positive
const DefaultPageSize = 20

// FilterState is the word table's search and paging state. Values are
// immutable: every transition returns a new state.
type FilterState struct {
	Search       string `json:"search"`
	HideMastered bool   `json:"hide_mastered"`
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
}

// NewFilterState returns the state of a freshly opened table
func NewFilterState() FilterState {
	return FilterState{Page: 1, PageSize: DefaultPageSize}
}

// PageCount returns max(1, ceil(n/size)).
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// WithSearch changes the search term and goes back to the first page.
func (s FilterState) WithSearch(term string) FilterState {
	s.Search = term
	s.Page = 1
	return s
}

// WithHideMastered changes the hide flag and goes back to the first page.
func (s FilterState) WithHideMastered(hide bool) FilterState {
	s.HideMastered = hide
	s.Page = 1
	return s
}

// WithPageSize changes the page size and goes back to the first page.
func (s FilterState) WithPageSize(size int) FilterState {
	if size <= 0 {
		size = DefaultPageSize
	}
	s.PageSize = size
	s.Page = 1
	return s
}

// WithPage moves to page, clamped against n filtered entries.
func (s FilterState) WithPage(page, n int) FilterState {
	s.Page = page
	return s.Clamp(n)
}

// NextPage moves forward one page, clamped against n filtered entries.
func (s FilterState) NextPage(n int) FilterState {
	return s.WithPage(s.Page+1, n)
}

// PrevPage moves back one page, clamped against n filtered entries.
func (s FilterState) PrevPage(n int) FilterState {
	return s.WithPage(s.Page-1, n)
}

// Clamp keeps Page within [1, PageCount(n, PageSize)] and repairs a
// non-positive page size.
func (s FilterState) Clamp(n int) FilterState {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	maxPage := PageCount(n, s.PageSize)
	if s.Page > maxPage {
		s.Page = maxPage
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}
