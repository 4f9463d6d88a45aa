// Package store defines the persistence abstraction for the notesuite
// application.
//
// The [Store] interface follows the repository pattern: one set of methods per
// entity, with lookups by ID and by unique key (email, tag label, link token),
// plus the paginated note search driven by [NoteQuery]. Get methods return nil
// without error for missing records; callers translate nil into their own
// not-found handling. List methods return empty slices, never nil.
//
// Multi-write operations that must land atomically, such as a share removal
// together with the note's visibility recomputation, or a note deletion
// together with its cascade, run inside [Store.Transact], which hands the
// callback a Store
// scoped to one transaction. Implementations roll back when the callback
// returns an error.
package store

import (
	"context"
	"time"

	"notesuite/pkg/models"
)

// Store is the complete persistence interface consumed by the service layer.
type Store interface {
	// Users

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Notes

	CreateNote(ctx context.Context, note *models.Note) error
	// GetNote returns the note with its tag associations (and their tags)
	// preloaded, or nil if absent.
	GetNote(ctx context.Context, id models.NoteID) (*models.Note, error)
	UpdateNote(ctx context.Context, note *models.Note) error
	// DeleteNote removes the note and cascades removal of its tag
	// associations, shares, and public links in one transaction.
	DeleteNote(ctx context.Context, id models.NoteID) error
	// SearchNotes runs the composed filter query and returns one page of
	// notes with tag associations preloaded, plus page metadata.
	SearchNotes(ctx context.Context, q NoteQuery) (*NotePage, error)

	// Tags

	GetTagByLabel(ctx context.Context, label string) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error
	CreateNoteTag(ctx context.Context, noteTag *models.NoteTag) error
	DeleteNoteTagsForNote(ctx context.Context, noteID models.NoteID) error

	// Shares

	CreateShare(ctx context.Context, share *models.Share) error
	GetShare(ctx context.Context, id models.ShareID) (*models.Share, error)
	DeleteShare(ctx context.Context, id models.ShareID) error
	ListSharesForNote(ctx context.Context, noteID models.NoteID) ([]*models.Share, error)
	ListSharesForUser(ctx context.Context, userID models.UserID) ([]*models.Share, error)
	// ShareExists reports whether an active share exists for the
	// (note, grantee) pair.
	ShareExists(ctx context.Context, noteID models.NoteID, userID models.UserID) (bool, error)
	CountSharesForNote(ctx context.Context, noteID models.NoteID) (int64, error)

	// Public links

	CreatePublicLink(ctx context.Context, link *models.PublicLink) error
	GetPublicLink(ctx context.Context, id models.PublicLinkID) (*models.PublicLink, error)
	GetPublicLinkByToken(ctx context.Context, token string) (*models.PublicLink, error)
	DeletePublicLink(ctx context.Context, id models.PublicLinkID) error
	ListPublicLinksForNote(ctx context.Context, noteID models.NoteID) ([]*models.PublicLink, error)
	// CountActivePublicLinksForNote counts links whose expiry is unset or
	// after now.
	CountActivePublicLinksForNote(ctx context.Context, noteID models.NoteID, now time.Time) (int64, error)

	// Transact runs fn inside one transaction, rolling back if fn returns an
	// error. The Store passed to fn is only valid for the duration of fn.
	Transact(ctx context.Context, fn func(Store) error) error

	// Migrate initializes or updates the database schema. Idempotent.
	Migrate(ctx context.Context) error

	// Close releases the underlying database resources.
	Close() error
}
