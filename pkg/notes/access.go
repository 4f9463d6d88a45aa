package notes

import (
	"context"
	"fmt"

	"notesuite/pkg/models"
)

// canRead reports whether user may read note through the API: they own it or
// it was shared with them. PUBLIC visibility is deliberately not consulted;
// public reads go through link tokens only.
func (s *Service) canRead(ctx context.Context, note *models.Note, user *models.User) (bool, error) {
	if note.OwnerID == user.ID {
		return true, nil
	}
	shared, err := s.store.ShareExists(ctx, note.ID, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check share: %w", err)
	}
	return shared, nil
}

// HasAccess reports whether the caller may read the note. Unlike GetNote it
// answers false instead of failing when access is missing; the note itself
// must still exist.
func (s *Service) HasAccess(ctx context.Context, callerEmail string, id models.NoteID) (bool, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return false, err
	}
	note, err := s.requireNote(ctx, id)
	if err != nil {
		return false, err
	}
	return s.canRead(ctx, note, caller)
}
