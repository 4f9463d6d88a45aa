package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

// CreatePublicLink mints an unguessable token for a note the caller owns and
// forces the note PUBLIC. A nil expiresAt means the link never expires.
func (s *Service) CreatePublicLink(ctx context.Context, callerEmail string, noteID models.NoteID, expiresAt *time.Time) (*models.PublicLink, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	note, err := s.requireOwnedNote(ctx, noteID, caller)
	if err != nil {
		return nil, err
	}

	link := &models.PublicLink{
		NoteID:    noteID,
		Token:     uuid.NewString(),
		ExpiresAt: expiresAt,
	}
	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.CreatePublicLink(ctx, link); err != nil {
			return err
		}
		if note.Visibility == models.VisibilityPublic {
			return nil
		}
		note.Visibility = models.VisibilityPublic
		return tx.UpdateNote(ctx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create public link: %w", err)
	}

	s.log.Info().
		Str("op", "create_public_link").
		Str("note_id", noteID.String()).
		Str("link_id", link.ID.String()).
		Str("user", callerEmail).
		Msg("public link created")
	return link, nil
}

// ListPublicLinks returns the public links of a note the caller owns.
func (s *Service) ListPublicLinks(ctx context.Context, callerEmail string, noteID models.NoteID) ([]*models.PublicLink, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedNote(ctx, noteID, caller); err != nil {
		return nil, err
	}
	links, err := s.store.ListPublicLinksForNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list public links: %w", err)
	}
	return links, nil
}

// ResolvePublicToken returns the note behind a link token without any
// session. Unknown tokens are not found; expired tokens and tokens whose
// note is no longer PUBLIC are unauthorized, so a revoked note never leaks
// through a stale link.
func (s *Service) ResolvePublicToken(ctx context.Context, token string) (*models.Note, error) {
	link, err := s.store.GetPublicLinkByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up public link: %w", err)
	}
	if link == nil {
		return nil, fmt.Errorf("%w: unknown token", ErrNotFound)
	}
	if link.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: link expired", ErrUnauthorized)
	}
	note, err := s.requireNote(ctx, link.NoteID)
	if err != nil {
		return nil, err
	}
	if note.Visibility != models.VisibilityPublic {
		return nil, fmt.Errorf("%w: note is not public", ErrUnauthorized)
	}
	return note, nil
}

// DeletePublicLink revokes a link on a note the caller owns and recomputes
// the note's visibility from what remains.
func (s *Service) DeletePublicLink(ctx context.Context, callerEmail string, linkID models.PublicLinkID) error {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return err
	}
	link, err := s.store.GetPublicLink(ctx, linkID)
	if err != nil {
		return fmt.Errorf("failed to look up public link: %w", err)
	}
	if link == nil {
		return fmt.Errorf("%w: public link %s", ErrNotFound, linkID)
	}
	note, err := s.requireOwnedNote(ctx, link.NoteID, caller)
	if err != nil {
		return err
	}

	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.DeletePublicLink(ctx, linkID); err != nil {
			return err
		}
		return refreshVisibility(ctx, tx, note)
	})
	if err != nil {
		return fmt.Errorf("failed to delete public link: %w", err)
	}

	s.log.Info().
		Str("op", "delete_public_link").
		Str("note_id", note.ID.String()).
		Str("link_id", linkID.String()).
		Str("user", callerEmail).
		Msg("public link deleted")
	return nil
}
