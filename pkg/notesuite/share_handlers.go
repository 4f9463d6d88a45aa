package notesuite

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"

	"notesuite/pkg/models"
)

// mdRenderer renders markdown note bodies to HTML for the public view.
var mdRenderer = goldmark.New()

func (a *App) handleShareNote(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}
	var req shareNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	share, err := a.notes.ShareNote(r.Context(), email, id, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toShareResponse(share))
}

func (a *App) handleListShares(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	shares, err := a.notes.ListShares(r.Context(), email, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	resp := make([]shareResponse, 0, len(shares))
	for _, share := range shares {
		resp = append(resp, toShareResponse(share))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (a *App) handleRemoveShare(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := models.ParseShareID(mux.Vars(r)["shareId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid share ID")
		return
	}

	if err := a.notes.RemoveShare(r.Context(), email, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleCreatePublicLink(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}
	var req createPublicLinkRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	link, err := a.notes.CreatePublicLink(r.Context(), email, id, req.ExpiresAt)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toPublicLinkResponse(link))
}

func (a *App) handleListPublicLinks(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	links, err := a.notes.ListPublicLinks(r.Context(), email, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	resp := make([]publicLinkResponse, 0, len(links))
	for _, link := range links {
		resp = append(resp, toPublicLinkResponse(link))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (a *App) handleDeletePublicLink(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := models.ParsePublicLinkID(mux.Vars(r)["linkId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid public link ID")
		return
	}

	if err := a.notes.DeletePublicLink(r.Context(), email, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// handlePublicNote serves a note through its link token. No session is
// required; the service enforces token validity and note visibility.
func (a *App) handlePublicNote(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	note, err := a.notes.ResolvePublicToken(r.Context(), token)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var html bytes.Buffer
	if err := mdRenderer.Convert([]byte(note.ContentMD), &html); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, publicNoteResponse{
		Title:     note.Title,
		Content:   note.ContentMD,
		HTML:      html.String(),
		Tags:      note.TagLabels(),
		UpdatedAt: note.UpdatedAt,
	})
}
