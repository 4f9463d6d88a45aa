package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UserID is a typed ID for users
type UserID struct {
	uuid uuid.UUID
}

func NewUserID() UserID {
	return UserID{uuid: uuid.New()}
}

func NewUserIDFromUUID(id uuid.UUID) UserID {
	return UserID{uuid: id}
}

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user ID: %w", err)
	}
	return UserID{uuid: id}, nil
}

func (u UserID) UUID() uuid.UUID { return u.uuid }
func (u UserID) String() string  { return u.uuid.String() }
func (u UserID) IsZero() bool    { return u.uuid == uuid.Nil }

func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.uuid.String())
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	u.uuid = id
	return nil
}

func (u UserID) Value() (driver.Value, error) {
	if u.IsZero() {
		return nil, nil
	}
	return u.uuid.String(), nil
}

func (u *UserID) Scan(value any) error {
	return scanUUID(value, &u.uuid)
}

func (UserID) GormDataType() string { return "uuid" }

// NoteID is a typed ID for notes
type NoteID struct {
	uuid uuid.UUID
}

func NewNoteID() NoteID {
	return NoteID{uuid: uuid.New()}
}

func NewNoteIDFromUUID(id uuid.UUID) NoteID {
	return NoteID{uuid: id}
}

func ParseNoteID(s string) (NoteID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NoteID{}, fmt.Errorf("invalid note ID: %w", err)
	}
	return NoteID{uuid: id}, nil
}

func (n NoteID) UUID() uuid.UUID { return n.uuid }
func (n NoteID) String() string  { return n.uuid.String() }
func (n NoteID) IsZero() bool    { return n.uuid == uuid.Nil }

func (n NoteID) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.uuid.String())
}

func (n *NoteID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	n.uuid = id
	return nil
}

func (n NoteID) Value() (driver.Value, error) {
	if n.IsZero() {
		return nil, nil
	}
	return n.uuid.String(), nil
}

func (n *NoteID) Scan(value any) error {
	return scanUUID(value, &n.uuid)
}

func (NoteID) GormDataType() string { return "uuid" }

// TagID is a typed ID for tags
type TagID struct {
	uuid uuid.UUID
}

func NewTagID() TagID {
	return TagID{uuid: uuid.New()}
}

func ParseTagID(s string) (TagID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TagID{}, fmt.Errorf("invalid tag ID: %w", err)
	}
	return TagID{uuid: id}, nil
}

func (t TagID) UUID() uuid.UUID { return t.uuid }
func (t TagID) String() string  { return t.uuid.String() }
func (t TagID) IsZero() bool    { return t.uuid == uuid.Nil }

func (t TagID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.uuid.String())
}

func (t *TagID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	t.uuid = id
	return nil
}

func (t TagID) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.uuid.String(), nil
}

func (t *TagID) Scan(value any) error {
	return scanUUID(value, &t.uuid)
}

func (TagID) GormDataType() string { return "uuid" }

// NoteTagID is a typed ID for note-tag associations
type NoteTagID struct {
	uuid uuid.UUID
}

func NewNoteTagID() NoteTagID {
	return NoteTagID{uuid: uuid.New()}
}

func (n NoteTagID) UUID() uuid.UUID { return n.uuid }
func (n NoteTagID) String() string  { return n.uuid.String() }
func (n NoteTagID) IsZero() bool    { return n.uuid == uuid.Nil }

func (n NoteTagID) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.uuid.String())
}

func (n *NoteTagID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	n.uuid = id
	return nil
}

func (n NoteTagID) Value() (driver.Value, error) {
	if n.IsZero() {
		return nil, nil
	}
	return n.uuid.String(), nil
}

func (n *NoteTagID) Scan(value any) error {
	return scanUUID(value, &n.uuid)
}

func (NoteTagID) GormDataType() string { return "uuid" }

// ShareID is a typed ID for shares
type ShareID struct {
	uuid uuid.UUID
}

func NewShareID() ShareID {
	return ShareID{uuid: uuid.New()}
}

func ParseShareID(s string) (ShareID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ShareID{}, fmt.Errorf("invalid share ID: %w", err)
	}
	return ShareID{uuid: id}, nil
}

func (s ShareID) UUID() uuid.UUID { return s.uuid }
func (s ShareID) String() string  { return s.uuid.String() }
func (s ShareID) IsZero() bool    { return s.uuid == uuid.Nil }

func (s ShareID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.uuid.String())
}

func (s *ShareID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return err
	}
	s.uuid = id
	return nil
}

func (s ShareID) Value() (driver.Value, error) {
	if s.IsZero() {
		return nil, nil
	}
	return s.uuid.String(), nil
}

func (s *ShareID) Scan(value any) error {
	return scanUUID(value, &s.uuid)
}

func (ShareID) GormDataType() string { return "uuid" }

// PublicLinkID is a typed ID for public links
type PublicLinkID struct {
	uuid uuid.UUID
}

func NewPublicLinkID() PublicLinkID {
	return PublicLinkID{uuid: uuid.New()}
}

func ParsePublicLinkID(s string) (PublicLinkID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PublicLinkID{}, fmt.Errorf("invalid public link ID: %w", err)
	}
	return PublicLinkID{uuid: id}, nil
}

func (p PublicLinkID) UUID() uuid.UUID { return p.uuid }
func (p PublicLinkID) String() string  { return p.uuid.String() }
func (p PublicLinkID) IsZero() bool    { return p.uuid == uuid.Nil }

func (p PublicLinkID) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.uuid.String())
}

func (p *PublicLinkID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	p.uuid = id
	return nil
}

func (p PublicLinkID) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	return p.uuid.String(), nil
}

func (p *PublicLinkID) Scan(value any) error {
	return scanUUID(value, &p.uuid)
}

func (PublicLinkID) GormDataType() string { return "uuid" }

// scanUUID is a helper for implementing sql.Scanner for the typed IDs.
func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into UUID", value)
	}
	return nil
}
