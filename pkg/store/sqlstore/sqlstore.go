// Package sqlstore implements [store.Store] on GORM.
//
// One implementation serves two dialects: PostgreSQL for deployments and
// SQLite for local runs and tests. All query text sticks to portable SQL so
// the dialects behave identically; anything dialect-specific (column quoting,
// LIKE case folding) goes through GORM clauses or explicit LOWER() calls.
//
// Individual operations rely on GORM's per-statement transactions. Multi-write
// units of work come in through Transact, which scopes a Store to one
// gorm transaction and rolls back when the callback fails.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

// SQLStore implements store.Store using GORM.
type SQLStore struct {
	db *gorm.DB
}

var _ store.Store = (*SQLStore)(nil)

// NewPostgres opens a PostgreSQL-backed store.
func NewPostgres(dsn string) (*SQLStore, error) {
	return open(postgres.Open(dsn))
}

// NewSQLite opens a SQLite-backed store. Use ":memory:" for an ephemeral
// database.
func NewSQLite(path string) (*SQLStore, error) {
	s, err := open(sqlite.Open(path))
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time, and every pooled connection to
	// ":memory:" would otherwise see its own empty database.
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return s, nil
}

func open(dialector gorm.Dialector) (*SQLStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) getDB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the schema for all entities. Safe to run
// repeatedly; AutoMigrate only adds missing schema elements.
func (s *SQLStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Tag{},
		&models.NoteTag{},
		&models.Share{},
		&models.PublicLink{},
	)
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transact runs fn against a Store bound to one transaction.
func (s *SQLStore) Transact(ctx context.Context, fn func(store.Store) error) error {
	return s.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLStore{db: tx})
	})
}

// User operations

func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.getDB().WithContext(ctx).Create(user).Error
}

func (s *SQLStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := s.getDB().WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.getDB().WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Note operations

func (s *SQLStore) CreateNote(ctx context.Context, note *models.Note) error {
	return s.getDB().WithContext(ctx).Create(note).Error
}

func (s *SQLStore) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	var note models.Note
	err := s.getDB().WithContext(ctx).Preload("NoteTags.Tag").First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (s *SQLStore) UpdateNote(ctx context.Context, note *models.Note) error {
	return s.getDB().WithContext(ctx).Omit("NoteTags").Save(note).Error
}

// DeleteNote removes the note and walks its dependents (tag associations,
// shares, public links) in the same transaction.
func (s *SQLStore) DeleteNote(ctx context.Context, id models.NoteID) error {
	return s.getDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.NoteTag{}, "note_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Share{}, "note_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.PublicLink{}, "note_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, "id = ?", id).Error
	})
}

// Tag operations

func (s *SQLStore) GetTagByLabel(ctx context.Context, label string) (*models.Tag, error) {
	var tag models.Tag
	err := s.getDB().WithContext(ctx).Where("label = ?", label).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (s *SQLStore) CreateTag(ctx context.Context, tag *models.Tag) error {
	return s.getDB().WithContext(ctx).Create(tag).Error
}

func (s *SQLStore) CreateNoteTag(ctx context.Context, noteTag *models.NoteTag) error {
	return s.getDB().WithContext(ctx).Create(noteTag).Error
}

func (s *SQLStore) DeleteNoteTagsForNote(ctx context.Context, noteID models.NoteID) error {
	return s.getDB().WithContext(ctx).Delete(&models.NoteTag{}, "note_id = ?", noteID).Error
}

// Share operations

func (s *SQLStore) CreateShare(ctx context.Context, share *models.Share) error {
	return s.getDB().WithContext(ctx).Create(share).Error
}

func (s *SQLStore) GetShare(ctx context.Context, id models.ShareID) (*models.Share, error) {
	var share models.Share
	err := s.getDB().WithContext(ctx).First(&share, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &share, nil
}

func (s *SQLStore) DeleteShare(ctx context.Context, id models.ShareID) error {
	return s.getDB().WithContext(ctx).Delete(&models.Share{}, "id = ?", id).Error
}

func (s *SQLStore) ListSharesForNote(ctx context.Context, noteID models.NoteID) ([]*models.Share, error) {
	shares := []*models.Share{}
	err := s.getDB().WithContext(ctx).
		Preload("SharedWithUser").
		Where("note_id = ?", noteID).
		Order("created_at").
		Find(&shares).Error
	return shares, err
}

func (s *SQLStore) ListSharesForUser(ctx context.Context, userID models.UserID) ([]*models.Share, error) {
	shares := []*models.Share{}
	err := s.getDB().WithContext(ctx).
		Where("shared_with_user_id = ?", userID).
		Find(&shares).Error
	return shares, err
}

func (s *SQLStore) ShareExists(ctx context.Context, noteID models.NoteID, userID models.UserID) (bool, error) {
	var count int64
	err := s.getDB().WithContext(ctx).Model(&models.Share{}).
		Where("note_id = ? AND shared_with_user_id = ?", noteID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *SQLStore) CountSharesForNote(ctx context.Context, noteID models.NoteID) (int64, error) {
	var count int64
	err := s.getDB().WithContext(ctx).Model(&models.Share{}).
		Where("note_id = ?", noteID).
		Count(&count).Error
	return count, err
}

// Public link operations

func (s *SQLStore) CreatePublicLink(ctx context.Context, link *models.PublicLink) error {
	return s.getDB().WithContext(ctx).Create(link).Error
}

func (s *SQLStore) GetPublicLink(ctx context.Context, id models.PublicLinkID) (*models.PublicLink, error) {
	var link models.PublicLink
	err := s.getDB().WithContext(ctx).First(&link, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (s *SQLStore) GetPublicLinkByToken(ctx context.Context, token string) (*models.PublicLink, error) {
	var link models.PublicLink
	err := s.getDB().WithContext(ctx).Where("token = ?", token).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (s *SQLStore) DeletePublicLink(ctx context.Context, id models.PublicLinkID) error {
	return s.getDB().WithContext(ctx).Delete(&models.PublicLink{}, "id = ?", id).Error
}

func (s *SQLStore) ListPublicLinksForNote(ctx context.Context, noteID models.NoteID) ([]*models.PublicLink, error) {
	links := []*models.PublicLink{}
	err := s.getDB().WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at").
		Find(&links).Error
	return links, err
}

func (s *SQLStore) CountActivePublicLinksForNote(ctx context.Context, noteID models.NoteID, now time.Time) (int64, error) {
	var count int64
	err := s.getDB().WithContext(ctx).Model(&models.PublicLink{}).
		Where("note_id = ? AND (expires_at IS NULL OR expires_at > ?)", noteID, now).
		Count(&count).Error
	return count, err
}
