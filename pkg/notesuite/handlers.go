package notesuite

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"notesuite/pkg/models"
	"notesuite/pkg/notes"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes an error response as {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinels onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notes.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, notes.ErrUnauthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, notes.ErrBadRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// requireSession resolves the caller's email or writes a 401. The bool
// reports whether the handler may proceed.
func (a *App) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := a.currentUserEmail(r)
	if email == "" {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return email, true
}

func noteIDFromRequest(r *http.Request) (models.NoteID, error) {
	return models.ParseNoteID(mux.Vars(r)["noteId"])
}

// firstParam returns the first non-empty value among the named query
// parameters.
func firstParam(q url.Values, names ...string) string {
	for _, name := range names {
		if v := q.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// parseCriteria reads search filters from the query string. Missing paging
// values stay zero; the service applies defaults.
func parseCriteria(r *http.Request) notes.SearchCriteria {
	q := r.URL.Query()
	criteria := notes.SearchCriteria{
		Title:      firstParam(q, "query", "title"),
		Tag:        q.Get("tag"),
		Visibility: q.Get("visibility"),
		SortBy:     q.Get("sortBy"),
		SortDir:    firstParam(q, "sortDir", "sortDirection"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		criteria.Page = page
	}
	if size, err := strconv.Atoi(q.Get("size")); err == nil {
		criteria.Size = size
	}
	return criteria
}

func (a *App) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	var req notes.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	note, err := a.notes.CreateNote(r.Context(), email, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (a *App) handleGetNote(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	note, err := a.notes.GetNote(r.Context(), email, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toNoteResponse(note))
}

func (a *App) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}
	var req notes.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	note, err := a.notes.UpdateNote(r.Context(), email, id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toNoteResponse(note))
}

func (a *App) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	if err := a.notes.DeleteNote(r.Context(), email, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (a *App) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}

	page, err := a.notes.SearchNotes(r.Context(), email, parseCriteria(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toNotePageResponse(page))
}

func (a *App) handleSharedNotes(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}

	page, err := a.notes.SharedNotes(r.Context(), email, parseCriteria(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toNotePageResponse(page))
}

func (a *App) handleNoteAccess(w http.ResponseWriter, r *http.Request) {
	email, ok := a.requireSession(w, r)
	if !ok {
		return
	}
	id, err := noteIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	hasAccess, err := a.notes.HasAccess(r.Context(), email, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"hasAccess": hasAccess})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}
