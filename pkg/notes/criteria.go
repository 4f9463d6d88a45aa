package notes

import (
	"fmt"
	"strings"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultSortBy   = "updatedAt"
)

// SearchCriteria carries the optional filters of a note search. Zero values
// mean "no filter"; paging and sorting fall back to defaults when unset.
type SearchCriteria struct {
	Title      string
	Tag        string
	Visibility string
	SortBy     string
	SortDir    string
	Page       int
	Size       int
}

// normalize clamps paging and fills sort defaults. Page numbers below zero
// become zero; size is clamped to [1, 100] with 10 as the unset default.
func (c SearchCriteria) normalize() SearchCriteria {
	if c.Page < 0 {
		c.Page = 0
	}
	if c.Size == 0 {
		c.Size = defaultPageSize
	}
	if c.Size < 1 {
		c.Size = 1
	}
	if c.Size > maxPageSize {
		c.Size = maxPageSize
	}
	if c.SortBy == "" {
		c.SortBy = defaultSortBy
	}
	return c
}

// descending reports the sort direction; anything other than "asc" sorts
// newest first.
func (c SearchCriteria) descending() bool {
	return !strings.EqualFold(c.SortDir, "asc")
}

// buildQuery translates the criteria into a storage query. The caller adds
// the scope (owner or note-ID set) before running it.
func (c SearchCriteria) buildQuery() (store.NoteQuery, error) {
	c = c.normalize()
	q := store.NoteQuery{
		Title:      c.Title,
		Tag:        c.Tag,
		Page:       c.Page,
		Size:       c.Size,
		SortField:  c.SortBy,
		Descending: c.descending(),
	}
	if c.Visibility != "" {
		vis := models.Visibility(strings.ToUpper(c.Visibility))
		if !vis.Valid() {
			return store.NoteQuery{}, fmt.Errorf("%w: invalid visibility %q", ErrBadRequest, c.Visibility)
		}
		q.Visibility = &vis
	}
	return q, nil
}
