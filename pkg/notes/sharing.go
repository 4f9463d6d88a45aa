package notes

import (
	"context"
	"fmt"
	"time"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

// ShareNote grants the target user read access to a note the caller owns.
// Sharing promotes a PRIVATE note to SHARED; a PUBLIC note stays PUBLIC.
func (s *Service) ShareNote(ctx context.Context, callerEmail string, noteID models.NoteID, targetEmail string) (*models.Share, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	note, err := s.requireOwnedNote(ctx, noteID, caller)
	if err != nil {
		return nil, err
	}

	target, err := s.store.GetUserByEmail(ctx, targetEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, targetEmail)
	}
	if target.ID == caller.ID {
		return nil, fmt.Errorf("%w: cannot share a note with its owner", ErrBadRequest)
	}

	exists, err := s.store.ShareExists(ctx, noteID, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check share: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: note already shared with %s", ErrBadRequest, targetEmail)
	}

	share := &models.Share{
		NoteID:           noteID,
		SharedWithUserID: target.ID,
		Permission:       models.PermissionRead,
	}
	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.CreateShare(ctx, share); err != nil {
			return err
		}
		if note.Visibility != models.VisibilityPrivate {
			return nil
		}
		note.Visibility = models.VisibilityShared
		return tx.UpdateNote(ctx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to share note: %w", err)
	}

	s.log.Info().
		Str("op", "share_note").
		Str("note_id", noteID.String()).
		Str("owner", callerEmail).
		Str("shared_with", targetEmail).
		Msg("note shared")
	share.SharedWithUser = target
	return share, nil
}

// ListShares returns the shares of a note the caller owns.
func (s *Service) ListShares(ctx context.Context, callerEmail string, noteID models.NoteID) ([]*models.Share, error) {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwnedNote(ctx, noteID, caller); err != nil {
		return nil, err
	}
	shares, err := s.store.ListSharesForNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return shares, nil
}

// RemoveShare revokes a share on a note the caller owns, then recomputes the
// note's visibility from the remaining shares and links.
func (s *Service) RemoveShare(ctx context.Context, callerEmail string, shareID models.ShareID) error {
	caller, err := s.requireUser(ctx, callerEmail)
	if err != nil {
		return err
	}
	share, err := s.store.GetShare(ctx, shareID)
	if err != nil {
		return fmt.Errorf("failed to look up share: %w", err)
	}
	if share == nil {
		return fmt.Errorf("%w: share %s", ErrNotFound, shareID)
	}
	note, err := s.requireOwnedNote(ctx, share.NoteID, caller)
	if err != nil {
		return err
	}

	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.DeleteShare(ctx, shareID); err != nil {
			return err
		}
		return refreshVisibility(ctx, tx, note)
	})
	if err != nil {
		return fmt.Errorf("failed to remove share: %w", err)
	}

	s.log.Info().
		Str("op", "remove_share").
		Str("note_id", note.ID.String()).
		Str("share_id", shareID.String()).
		Str("user", callerEmail).
		Msg("share removed")
	return nil
}

// refreshVisibility recomputes and persists the note's visibility from its
// current share and link counts. Expired links do not hold a note PUBLIC;
// their tokens are already rejected at resolution.
func refreshVisibility(ctx context.Context, tx store.Store, note *models.Note) error {
	shareCount, err := tx.CountSharesForNote(ctx, note.ID)
	if err != nil {
		return err
	}
	linkCount, err := tx.CountActivePublicLinksForNote(ctx, note.ID, time.Now())
	if err != nil {
		return err
	}
	vis := RecomputeVisibility(shareCount, linkCount)
	if vis == note.Visibility {
		return nil
	}
	note.Visibility = vis
	return tx.UpdateNote(ctx, note)
}
