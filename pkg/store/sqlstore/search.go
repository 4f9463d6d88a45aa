package sqlstore

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

// sortColumns maps API sort field names to note columns. Unknown fields fall
// back to updated_at rather than erroring so a stale client keeps working.
var sortColumns = map[string]string{
	"updatedAt":  "updated_at",
	"createdAt":  "created_at",
	"title":      "title",
	"visibility": "visibility",
	"id":         "id",
}

// SearchNotes runs a paginated note query. Filters compose as GORM scopes so
// the same predicate set drives both the count and the page fetch.
func (s *SQLStore) SearchNotes(ctx context.Context, q store.NoteQuery) (*store.NotePage, error) {
	scopes := buildScopes(q)

	var total int64
	err := s.getDB().WithContext(ctx).
		Model(&models.Note{}).
		Scopes(scopes...).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	notes := []*models.Note{}
	err = s.getDB().WithContext(ctx).
		Model(&models.Note{}).
		Scopes(scopes...).
		Order(orderClause(q)).
		Offset(q.Page * q.Size).
		Limit(q.Size).
		Preload("NoteTags.Tag").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return &store.NotePage{
		Content:       notes,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          q.Page,
		Size:          q.Size,
	}, nil
}

func buildScopes(q store.NoteQuery) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	if q.OwnerID != nil {
		scopes = append(scopes, ownedBy(*q.OwnerID))
	}
	if q.NoteIDs != nil {
		scopes = append(scopes, idIn(q.NoteIDs))
	}
	if q.Title != "" {
		scopes = append(scopes, titleContains(q.Title))
	}
	if q.Visibility != nil {
		scopes = append(scopes, hasVisibility(*q.Visibility))
	}
	if q.Tag != "" {
		scopes = append(scopes, hasTag(q.Tag))
	}
	return scopes
}

func ownedBy(ownerID models.UserID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.owner_id = ?", ownerID)
	}
}

func idIn(ids []models.NoteID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.id IN ?", ids)
	}
}

func titleContains(fragment string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(fragment) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(notes.title) LIKE ?", pattern)
	}
}

func hasVisibility(v models.Visibility) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("notes.visibility = ?", v)
	}
}

// hasTag filters through an IN subquery rather than a join so a note carrying
// the same tag twice still appears once and counts stay exact.
func hasTag(label string) func(*gorm.DB) *gorm.DB {
	lower := strings.ToLower(label)
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table("note_tags").
			Select("note_tags.note_id").
			Joins("JOIN tags ON tags.id = note_tags.tag_id").
			Where("LOWER(tags.label) = ?", lower)
		return db.Where("notes.id IN (?)", sub)
	}
}

func orderClause(q store.NoteQuery) clause.OrderByColumn {
	column, ok := sortColumns[q.SortField]
	if !ok {
		column = "updated_at"
	}
	return clause.OrderByColumn{
		Column: clause.Column{Table: "notes", Name: column},
		Desc:   q.Descending,
	}
}
