// Package models defines the persisted entities of the note-taking service.
//
// A Note is owned by exactly one User and carries a denormalized visibility
// classification derived from its sharing relationships: it is PUBLIC while at
// least one public link exists, SHARED while at least one share (and no public
// link) exists, and PRIVATE otherwise. The visibility column exists for fast
// filtering; the service layer recomputes it after every share or public-link
// mutation so it never goes stale.
//
// Tags form a global vocabulary keyed by label. Notes reference tags through
// NoteTag association rows, which are owned by the note and removed with it.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Visibility classifies who may read a note.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityShared  Visibility = "SHARED"
	VisibilityPublic  Visibility = "PUBLIC"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityShared, VisibilityPublic:
		return true
	}
	return false
}

// Permission is the access level granted by a share. Sharing currently grants
// read access only.
type Permission string

const (
	PermissionRead Permission = "READ"
)

// User is an account that owns notes and may be the grantee of shares on
// notes it does not own.
type User struct {
	ID           UserID    `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}

// Note is the core content unit. ContentMD holds markdown source.
type Note struct {
	ID         NoteID     `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID    UserID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner      *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title      string     `gorm:"not null" json:"title"`
	ContentMD  string     `gorm:"type:text" json:"content_md"`
	Visibility Visibility `gorm:"not null" json:"visibility"`
	NoteTags   []NoteTag  `gorm:"foreignKey:NoteID" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID.IsZero() {
		n.ID = NewNoteID()
	}
	if n.Visibility == "" {
		n.Visibility = VisibilityPrivate
	}
	return nil
}

// TagLabels returns the labels of the note's loaded tag associations, in
// association order. Requires NoteTags.Tag to have been preloaded.
func (n *Note) TagLabels() []string {
	labels := make([]string, 0, len(n.NoteTags))
	for _, nt := range n.NoteTags {
		if nt.Tag != nil {
			labels = append(labels, nt.Tag.Label)
		}
	}
	return labels
}

// Tag is a label in the global tag vocabulary. Labels are unique and
// case-sensitive; tags are never deleted when notes stop using them.
type Tag struct {
	ID        TagID     `gorm:"type:uuid;primary_key" json:"id"`
	Label     string    `gorm:"unique;not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewTagID()
	}
	return nil
}

// NoteTag links one note to one tag. Rows are owned by the note: they are
// removed when the note is deleted or when its tag list is replaced.
type NoteTag struct {
	ID        NoteTagID `gorm:"type:uuid;primary_key" json:"id"`
	NoteID    NoteID    `gorm:"type:uuid;not null;index" json:"note_id"`
	TagID     TagID     `gorm:"type:uuid;not null" json:"tag_id"`
	Tag       *Tag      `gorm:"foreignKey:TagID" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (nt *NoteTag) BeforeCreate(tx *gorm.DB) error {
	if nt.ID.IsZero() {
		nt.ID = NewNoteTagID()
	}
	return nil
}

// Share grants one user read access to one note. At most one share exists per
// (note, grantee) pair.
type Share struct {
	ID               ShareID    `gorm:"type:uuid;primary_key" json:"id"`
	NoteID           NoteID     `gorm:"type:uuid;not null;index" json:"note_id"`
	SharedWithUserID UserID     `gorm:"type:uuid;not null;index" json:"shared_with_user_id"`
	SharedWithUser   *User      `gorm:"foreignKey:SharedWithUserID" json:"shared_with_user,omitempty"`
	Permission       Permission `gorm:"not null" json:"permission"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (s *Share) BeforeCreate(tx *gorm.DB) error {
	if s.ID.IsZero() {
		s.ID = NewShareID()
	}
	if s.Permission == "" {
		s.Permission = PermissionRead
	}
	return nil
}

// PublicLink is an anonymous-access capability for one note. The token is
// opaque and globally unique; expiry is optional and checked lazily when the
// token is resolved, never swept.
type PublicLink struct {
	ID        PublicLinkID `gorm:"type:uuid;primary_key" json:"id"`
	NoteID    NoteID       `gorm:"type:uuid;not null;index" json:"note_id"`
	Token     string       `gorm:"unique;not null" json:"token"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (p *PublicLink) BeforeCreate(tx *gorm.DB) error {
	if p.ID.IsZero() {
		p.ID = NewPublicLinkID()
	}
	return nil
}

// Expired reports whether the link's expiry, if set, is at or before now.
func (p *PublicLink) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}
