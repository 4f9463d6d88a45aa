package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

func baseQuery(owner models.UserID) store.NoteQuery {
	return store.NoteQuery{
		OwnerID:   &owner,
		Page:      0,
		Size:      10,
		SortField: "updatedAt",
	}
}

func TestSearchNotesFiltersByOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	bob := createTestUser(t, s, "bob@example.com")
	createTestNote(t, s, alice, "Alice note")
	createTestNote(t, s, bob, "Bob note")

	page, err := s.SearchNotes(ctx, baseQuery(alice.ID))
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Alice note", page.Content[0].Title)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestSearchNotesTitleIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	createTestNote(t, s, alice, "Meeting Notes")
	createTestNote(t, s, alice, "Groceries")

	q := baseQuery(alice.ID)
	q.Title = "MEETING"
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Meeting Notes", page.Content[0].Title)
}

func TestSearchNotesByVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	createTestNote(t, s, alice, "Hidden")
	public := createTestNote(t, s, alice, "Open")
	public.Visibility = models.VisibilityPublic
	require.NoError(t, s.UpdateNote(ctx, public))

	q := baseQuery(alice.ID)
	vis := models.VisibilityPublic
	q.Visibility = &vis
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Open", page.Content[0].Title)
}

func TestSearchNotesByTagCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	tagged := createTestNote(t, s, alice, "Tagged")
	createTestNote(t, s, alice, "Plain")
	tagTestNote(t, s, tagged, "Work")

	q := baseQuery(alice.ID)
	q.Tag = "wOrK"
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Tagged", page.Content[0].Title)
}

func TestSearchNotesDuplicateTagYieldsOneRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	note := createTestNote(t, s, alice, "Twice tagged")

	tag := &models.Tag{Label: "dup"}
	require.NoError(t, s.CreateTag(ctx, tag))
	require.NoError(t, s.CreateNoteTag(ctx, &models.NoteTag{NoteID: note.ID, TagID: tag.ID}))
	require.NoError(t, s.CreateNoteTag(ctx, &models.NoteTag{NoteID: note.ID, TagID: tag.ID}))

	q := baseQuery(alice.ID)
	q.Tag = "dup"
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestSearchNotesIDSubset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	a := createTestNote(t, s, alice, "A")
	createTestNote(t, s, alice, "B")

	q := store.NoteQuery{
		NoteIDs:   []models.NoteID{a.ID},
		Page:      0,
		Size:      10,
		SortField: "updatedAt",
	}
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, a.ID, page.Content[0].ID)
}

func TestSearchNotesPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		createTestNote(t, s, alice, title)
	}

	q := baseQuery(alice.ID)
	q.Size = 2
	q.SortField = "title"

	first, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(5), first.TotalElements)
	assert.Equal(t, 3, first.TotalPages)
	require.Len(t, first.Content, 2)
	assert.Equal(t, "a", first.Content[0].Title)

	q.Page = 2
	last, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	require.Len(t, last.Content, 1)
	assert.Equal(t, "e", last.Content[0].Title)
}

func TestSearchNotesSortDescending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	createTestNote(t, s, alice, "alpha")
	createTestNote(t, s, alice, "zulu")

	q := baseQuery(alice.ID)
	q.SortField = "title"
	q.Descending = true
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "zulu", page.Content[0].Title)
}

func TestSearchNotesUnknownSortFieldFallsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	createTestNote(t, s, alice, "only")

	q := baseQuery(alice.ID)
	q.SortField = "nope; DROP TABLE notes"
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
}

func TestSearchNotesEmptyIDSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice@example.com")
	createTestNote(t, s, alice, "invisible")

	q := store.NoteQuery{
		NoteIDs:   []models.NoteID{},
		Page:      0,
		Size:      10,
		SortField: "updatedAt",
	}
	page, err := s.SearchNotes(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Zero(t, page.TotalElements)
}
