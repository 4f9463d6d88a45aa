package notesuite

import (
	"time"

	"notesuite/pkg/models"
	"notesuite/pkg/store"
)

// Response DTOs. Notes go out with their tag labels flattened so clients
// never see the registry join rows.

type noteResponse struct {
	ID         models.NoteID     `json:"id"`
	OwnerID    models.UserID     `json:"ownerId"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Tags       []string          `json:"tags"`
	Visibility models.Visibility `json:"visibility"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func toNoteResponse(note *models.Note) noteResponse {
	return noteResponse{
		ID:         note.ID,
		OwnerID:    note.OwnerID,
		Title:      note.Title,
		Content:    note.ContentMD,
		Tags:       note.TagLabels(),
		Visibility: note.Visibility,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

type notePageResponse struct {
	Content       []noteResponse `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
}

func toNotePageResponse(page *store.NotePage) notePageResponse {
	content := make([]noteResponse, 0, len(page.Content))
	for _, note := range page.Content {
		content = append(content, toNoteResponse(note))
	}
	return notePageResponse{
		Content:       content,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Page:          page.Page,
		Size:          page.Size,
	}
}

type shareResponse struct {
	ID              models.ShareID    `json:"id"`
	NoteID          models.NoteID     `json:"noteId"`
	SharedWithEmail string            `json:"sharedWithEmail"`
	Permission      models.Permission `json:"permission"`
	CreatedAt       time.Time         `json:"createdAt"`
}

func toShareResponse(share *models.Share) shareResponse {
	resp := shareResponse{
		ID:         share.ID,
		NoteID:     share.NoteID,
		Permission: share.Permission,
		CreatedAt:  share.CreatedAt,
	}
	if share.SharedWithUser != nil {
		resp.SharedWithEmail = share.SharedWithUser.Email
	}
	return resp
}

type publicLinkResponse struct {
	ID        models.PublicLinkID `json:"id"`
	NoteID    models.NoteID       `json:"noteId"`
	Token     string              `json:"token"`
	URL       string              `json:"url"`
	ExpiresAt *time.Time          `json:"expiresAt,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

func toPublicLinkResponse(link *models.PublicLink) publicLinkResponse {
	return publicLinkResponse{
		ID:        link.ID,
		NoteID:    link.NoteID,
		Token:     link.Token,
		URL:       "/p/" + link.Token,
		ExpiresAt: link.ExpiresAt,
		CreatedAt: link.CreatedAt,
	}
}

type shareNoteRequest struct {
	Email string `json:"email"`
}

type createPublicLinkRequest struct {
	ExpiresAt *time.Time `json:"expiresAt"`
}

type publicNoteResponse struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updatedAt"`
}
