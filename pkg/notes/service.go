// Package notes implements the note domain: lifecycle, tagging, sharing,
// public links, and the visibility rules tying them together.
//
// A note's visibility is derived state. It starts PRIVATE, becomes SHARED
// when the first share appears, and PUBLIC while any public link exists.
// Removing shares and links walks the ladder back down. Operations that touch
// exposure therefore always update visibility in the same transaction as the
// share or link write.
//
// Callers are identified by email; the HTTP layer resolves the session first
// and the service resolves the email to a user row.
package notes

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

const (
	minTitleLen   = 3
	maxTitleLen   = 255
	maxContentLen = 50000
)

// Service implements the note operations on top of a Store.
type Service struct {
	store store.Store
	log   zerolog.Logger
}

// NewService returns a Service backed by st.
func NewService(st store.Store, log zerolog.Logger) *Service {
	return &Service{store: st, log: log}
}

// CreateNoteRequest carries the fields of a new note.
type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteRequest carries a partial update. Nil fields stay untouched; a
// non-nil Tags replaces the full tag set, and a non-nil Visibility overrides
// the derived state directly.
type UpdateNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	Visibility *string   `json:"visibility"`
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < minTitleLen || n > maxTitleLen {
		return fmt.Errorf("%w: title must be between %d and %d characters", ErrBadRequest, minTitleLen, maxTitleLen)
	}
	return nil
}

func validateContent(content string) error {
	if utf8.RuneCountInString(content) > maxContentLen {
		return fmt.Errorf("%w: content exceeds %d characters", ErrBadRequest, maxContentLen)
	}
	return nil
}

func (s *Service) requireUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	return user, nil
}

func (s *Service) requireNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up note: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	return note, nil
}

// requireOwnedNote loads the note and checks the caller owns it.
func (s *Service) requireOwnedNote(ctx context.Context, id models.NoteID, owner *models.User) (*models.Note, error) {
	note, err := s.requireNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != owner.ID {
		return nil, fmt.Errorf("%w: not the owner of note %s", ErrUnauthorized, id)
	}
	return note, nil
}

// CreateNote creates a note owned by the caller. New notes are always
// PRIVATE regardless of any requested state; tags are resolved against the
// registry as part of the same transaction.
func (s *Service) CreateNote(ctx context.Context, callerEmail string, req CreateNoteRequest) (*models.Note, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}
	owner, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		OwnerID:    owner.ID,
		Title:      req.Title,
		ContentMD:  req.Content,
		Visibility: models.VisibilityPrivate,
	}
	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.CreateNote(ctx, note); err != nil {
			return err
		}
		return attachTags(ctx, tx, note.ID, req.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.log.Info().
		Str("op", "create_note").
		Str("note_id", note.ID.String()).
		Str("owner", callerEmail).
		Msg("note created")
	return s.requireNote(ctx, note.ID)
}

// GetNote returns a note the caller can read: their own, or one shared with
// them. Public visibility alone does not grant API access; public notes are
// read through their link tokens.
func (s *Service) GetNote(ctx context.Context, callerEmail string, id models.NoteID) (*models.Note, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	note, err := s.requireNote(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := s.canRead(ctx, note, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no access to note %s", ErrUnauthorized, id)
	}
	return note, nil
}

// UpdateNote applies a partial update to a note the caller owns.
func (s *Service) UpdateNote(ctx context.Context, callerEmail string, id models.NoteID, req UpdateNoteRequest) (*models.Note, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	note, err := s.requireOwnedNote(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		note.Title = *req.Title
	}
	if req.Content != nil {
		if err := validateContent(*req.Content); err != nil {
			return nil, err
		}
		note.ContentMD = *req.Content
	}
	if req.Visibility != nil {
		vis := models.Visibility(*req.Visibility)
		if !vis.Valid() {
			return nil, fmt.Errorf("%w: invalid visibility %q", ErrBadRequest, *req.Visibility)
		}
		note.Visibility = vis
	}

	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.UpdateNote(ctx, note); err != nil {
			return err
		}
		if req.Tags == nil {
			return nil
		}
		if err := tx.DeleteNoteTagsForNote(ctx, note.ID); err != nil {
			return err
		}
		return attachTags(ctx, tx, note.ID, *req.Tags)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.log.Info().
		Str("op", "update_note").
		Str("note_id", id.String()).
		Str("user", callerEmail).
		Msg("note updated")
	return s.requireNote(ctx, id)
}

// DeleteNote removes a note the caller owns, along with its tag
// associations, shares, and public links.
func (s *Service) DeleteNote(ctx context.Context, callerEmail string, id models.NoteID) error {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return err
	}
	if _, err := s.requireOwnedNote(ctx, id, caller); err != nil {
		return err
	}
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	s.log.Info().
		Str("op", "delete_note").
		Str("note_id", id.String()).
		Str("user", callerEmail).
		Msg("note deleted")
	return nil
}

// SearchNotes pages through the caller's own notes, filtered by the
// criteria.
func (s *Service) SearchNotes(ctx context.Context, callerEmail string, criteria SearchCriteria) (*store.NotePage, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	q, err := criteria.buildQuery()
	if err != nil {
		return nil, err
	}
	q.OwnerID = &caller.ID
	page, err := s.store.SearchNotes(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return page, nil
}

// SharedNotes pages through notes other users have shared with the caller.
// The criteria apply within that set; with no shares the page is empty
// without touching the notes table.
func (s *Service) SharedNotes(ctx context.Context, callerEmail string, criteria SearchCriteria) (*store.NotePage, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	shares, err := s.store.ListSharesForUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	q, err := criteria.buildQuery()
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return store.EmptyNotePage(q.Page, q.Size), nil
	}
	ids := make([]models.NoteID, 0, len(shares))
	for _, share := range shares {
		ids = append(ids, share.NoteID)
	}
	q.NoteIDs = ids
	page, err := s.store.SearchNotes(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search shared notes: %w", err)
	}
	return page, nil
}
