package notesuite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *mux.Router) {
	t.Helper()
	app, err := New(&Config{
		DatabaseDriver:  "sqlite",
		DatabaseDSN:     ":memory:",
		ServerPort:      "0",
		SessionTTLHours: 1,
	})
	require.NoError(t, err)
	require.NoError(t, app.Migrate(context.Background(), &MigrateCommand{}))
	t.Cleanup(func() { _ = app.Close() })
	return app, app.router()
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func registerTestUser(t *testing.T, router *mux.Router, email string) string {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authResponse](t, rec).Token
}

func createTestNote(t *testing.T, router *mux.Router, token, title string, tags []string) noteResponse {
	t.Helper()
	rec := doJSON(t, router, "POST", "/api/v1/notes", token, map[string]any{
		"title":   title,
		"content": "# " + title,
		"tags":    tags,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[noteResponse](t, rec)
}

func TestAuthFlow(t *testing.T) {
	_, router := newTestApp(t)

	token := registerTestUser(t, router, "alice@example.com")

	rec := doJSON(t, router, "GET", "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate registration is rejected.
	rec = doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password is rejected, right one gets a fresh token.
	rec = doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Refresh rotates the token and invalidates the old one.
	rec = doJSON(t, router, "POST", "/api/v1/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := decode[authResponse](t, rec).Token

	rec = doJSON(t, router, "GET", "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, router, "GET", "/api/v1/auth/me", fresh, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotesRequireSession(t *testing.T) {
	_, router := newTestApp(t)

	rec := doJSON(t, router, "GET", "/api/v1/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, "POST", "/api/v1/notes", "bogus-token", map[string]string{"title": "Nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNoteCRUD(t *testing.T) {
	_, router := newTestApp(t)
	token := registerTestUser(t, router, "alice@example.com")

	note := createTestNote(t, router, token, "First note", []string{"work"})
	assert.Equal(t, "PRIVATE", string(note.Visibility))
	assert.Equal(t, []string{"work"}, note.Tags)

	rec := doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "PUT", "/api/v1/notes/"+note.ID.String(), token, map[string]any{
		"title": "Renamed note",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[noteResponse](t, rec)
	assert.Equal(t, "Renamed note", updated.Title)
	assert.Equal(t, []string{"work"}, updated.Tags)

	rec = doJSON(t, router, "DELETE", "/api/v1/notes/"+note.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoteValidationErrors(t *testing.T) {
	_, router := newTestApp(t)
	token := registerTestUser(t, router, "alice@example.com")

	rec := doJSON(t, router, "POST", "/api/v1/notes", token, map[string]string{"title": "ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "GET", "/api/v1/notes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareEndpoints(t *testing.T) {
	_, router := newTestApp(t)
	alice := registerTestUser(t, router, "alice@example.com")
	bob := registerTestUser(t, router, "bob@example.com")

	note := createTestNote(t, router, alice, "Shared doc", nil)

	// Bob cannot see it until shared.
	rec := doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String(), bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, "POST", "/api/v1/notes/"+note.ID.String()+"/share/user", alice,
		map[string]string{"email": "bob@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	share := decode[shareResponse](t, rec)
	assert.Equal(t, "bob@example.com", share.SharedWithEmail)

	// Visibility climbed to SHARED and bob can read.
	rec = doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String(), bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SHARED", string(decode[noteResponse](t, rec).Visibility))

	rec = doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String()+"/access", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[map[string]bool](t, rec)["hasAccess"])

	// Duplicate share and self share are rejected.
	rec = doJSON(t, router, "POST", "/api/v1/notes/"+note.ID.String()+"/share/user", alice,
		map[string]string{"email": "bob@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doJSON(t, router, "POST", "/api/v1/notes/"+note.ID.String()+"/share/user", alice,
		map[string]string{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Shared listing shows up for bob.
	rec = doJSON(t, router, "GET", "/api/v1/notes/shared", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[notePageResponse](t, rec)
	require.Len(t, page.Content, 1)
	assert.Equal(t, note.ID, page.Content[0].ID)

	// Revoking the only share takes the note back to PRIVATE.
	rec = doJSON(t, router, "DELETE", "/api/v1/shares/"+share.ID.String(), alice, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String(), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PRIVATE", string(decode[noteResponse](t, rec).Visibility))
}

func TestPublicLinkEndpoints(t *testing.T) {
	_, router := newTestApp(t)
	alice := registerTestUser(t, router, "alice@example.com")

	note := createTestNote(t, router, alice, "Public doc", []string{"blog"})

	rec := doJSON(t, router, "POST", "/api/v1/notes/"+note.ID.String()+"/share/public", alice, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	link := decode[publicLinkResponse](t, rec)
	require.NotEmpty(t, link.Token)
	assert.Equal(t, "/p/"+link.Token, link.URL)

	// The note is PUBLIC now and readable without any session.
	rec = doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String(), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PUBLIC", string(decode[noteResponse](t, rec).Visibility))

	rec = doJSON(t, router, "GET", "/p/"+link.Token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	public := decode[publicNoteResponse](t, rec)
	assert.Equal(t, "Public doc", public.Title)
	assert.Contains(t, public.HTML, "<h1")

	rec = doJSON(t, router, "GET", "/p/unknown-token", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String()+"/public-links", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	links := decode[[]publicLinkResponse](t, rec)
	assert.Len(t, links, 1)

	// Revoking the link kills the token and reverts visibility.
	rec = doJSON(t, router, "DELETE", "/api/v1/public-links/"+link.ID.String(), alice, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, "GET", "/p/"+link.Token, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, "GET", "/api/v1/notes/"+note.ID.String(), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PRIVATE", string(decode[noteResponse](t, rec).Visibility))
}

func TestSearchEndpoint(t *testing.T) {
	_, router := newTestApp(t)
	alice := registerTestUser(t, router, "alice@example.com")

	for i := 0; i < 3; i++ {
		createTestNote(t, router, alice, fmt.Sprintf("Meeting %d", i), []string{"work"})
	}
	createTestNote(t, router, alice, "Groceries", nil)

	rec := doJSON(t, router, "GET", "/api/v1/notes?title=meeting&tag=work&size=2&sortBy=title&sortDir=asc", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[notePageResponse](t, rec)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Meeting 0", page.Content[0].Title)

	rec = doJSON(t, router, "GET", "/api/v1/notes?visibility=glowing", alice, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	_, router := newTestApp(t)

	rec := doJSON(t, router, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])
}
