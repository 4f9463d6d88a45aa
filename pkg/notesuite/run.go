package notesuite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// router builds the full route table. Kept separate from Run so tests can
// drive the handlers through httptest without binding a port.
//
// Authentication:
//
//	POST /api/v1/auth/register        - Register and sign in
//	POST /api/v1/auth/login           - Sign in
//	POST /api/v1/auth/refresh         - Rotate the session token
//	GET  /api/v1/auth/me              - Current user
//
// Notes:
//
//	POST   /api/v1/notes              - Create note
//	GET    /api/v1/notes              - Search own notes
//	GET    /api/v1/notes/shared       - Search notes shared with the caller
//	GET    /api/v1/notes/{noteId}     - Get note
//	PUT    /api/v1/notes/{noteId}     - Update note
//	DELETE /api/v1/notes/{noteId}     - Delete note
//	GET    /api/v1/notes/{noteId}/access - Check read access
//
// Sharing:
//
//	POST   /api/v1/notes/{noteId}/share/user   - Share with a user
//	GET    /api/v1/notes/{noteId}/shares       - List shares
//	DELETE /api/v1/shares/{shareId}            - Revoke a share
//
// Public links:
//
//	POST   /api/v1/notes/{noteId}/share/public - Create public link
//	GET    /api/v1/notes/{noteId}/public-links - List public links
//	DELETE /api/v1/public-links/{linkId}       - Revoke a public link
//	GET    /p/{token}                          - Read a note through its link
func (a *App) router() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	api.HandleFunc("/auth/register", a.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", a.handleLogin).Methods("POST")
	api.HandleFunc("/auth/refresh", a.handleRefreshToken).Methods("POST")
	api.HandleFunc("/auth/me", a.handleGetCurrentUser).Methods("GET")

	api.HandleFunc("/notes", a.handleCreateNote).Methods("POST")
	api.HandleFunc("/notes", a.handleSearchNotes).Methods("GET")
	api.HandleFunc("/notes/shared", a.handleSharedNotes).Methods("GET")
	api.HandleFunc("/notes/{noteId}", a.handleGetNote).Methods("GET")
	api.HandleFunc("/notes/{noteId}", a.handleUpdateNote).Methods("PUT")
	api.HandleFunc("/notes/{noteId}", a.handleDeleteNote).Methods("DELETE")
	api.HandleFunc("/notes/{noteId}/access", a.handleNoteAccess).Methods("GET")

	api.HandleFunc("/notes/{noteId}/share/user", a.handleShareNote).Methods("POST")
	api.HandleFunc("/notes/{noteId}/shares", a.handleListShares).Methods("GET")
	api.HandleFunc("/shares/{shareId}", a.handleRemoveShare).Methods("DELETE")

	api.HandleFunc("/notes/{noteId}/share/public", a.handleCreatePublicLink).Methods("POST")
	api.HandleFunc("/notes/{noteId}/public-links", a.handleListPublicLinks).Methods("GET")
	api.HandleFunc("/public-links/{linkId}", a.handleDeletePublicLink).Methods("DELETE")

	// Anonymous read through a link token.
	router.HandleFunc("/p/{token}", a.handlePublicNote).Methods("GET")

	router.HandleFunc("/health", a.handleHealth).Methods("GET")

	return router
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails. On shutdown, active requests get five seconds to finish.
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	server := &http.Server{
		Addr:    addr,
		Handler: a.router(),
	}

	a.log.Info().Str("addr", addr).Msg("starting server")

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
