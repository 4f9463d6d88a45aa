package store

import "notesuite/pkg/models"

// NoteQuery describes one paginated note search. Exactly one scope field is
// set by the service layer: OwnerID for the owned scope, NoteIDs for the
// shared scope. The optional filters combine with logical AND.
type NoteQuery struct {
	// OwnerID restricts results to notes owned by this user.
	OwnerID *models.UserID
	// NoteIDs restricts results to notes with these IDs.
	NoteIDs []models.NoteID

	// Title filters by case-insensitive substring match on the title.
	Title string
	// Visibility filters by exact visibility value.
	Visibility *models.Visibility
	// Tag filters to notes carrying a tag with this label,
	// case-insensitively.
	Tag string

	// Page is the zero-based page index; Size the page size. Both are
	// resolved (defaulted and clamped) by the caller before the query is
	// built.
	Page int
	Size int

	// SortField is the request-level sort field name (e.g. "updatedAt");
	// unknown names are passed through to the database unmapped.
	SortField string
	// Descending selects descending order.
	Descending bool
}

// NotePage is one page of search results with the metadata callers need to
// paginate.
type NotePage struct {
	Content       []*models.Note `json:"content"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
}

// EmptyNotePage returns a page with no content for the given paging values,
// used when the shared scope resolves to zero note IDs and the store is not
// consulted.
func EmptyNotePage(page, size int) *NotePage {
	return &NotePage{
		Content:       []*models.Note{},
		TotalElements: 0,
		TotalPages:    0,
		Page:          page,
		Size:          size,
	}
}
