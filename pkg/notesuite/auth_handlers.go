package notesuite

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"notesuite/pkg/models"
)

// sessionStore is a simple in-memory bearer-token store. Sessions map a
// token to the email it authenticates and expire after their TTL. A
// multi-instance deployment would move this to a shared store such as Redis.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session
}

type session struct {
	email     string
	expiresAt time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]session)}
}

func (s *sessionStore) put(token, email string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session{email: email, expiresAt: time.Now().Add(ttl)}
}

// lookup returns the email behind a token, dropping the session when it has
// expired.
func (s *sessionStore) lookup(token string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", false
	}
	return sess.email, true
}

func (s *sessionStore) drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// generateToken returns a 64-character hex token with 256 bits of entropy.
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// getTokenFromHeader extracts the bearer token from the Authorization header.
func getTokenFromHeader(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	const bearerPrefix = "Bearer "
	if len(auth) > len(bearerPrefix) && auth[:len(bearerPrefix)] == bearerPrefix {
		return auth[len(bearerPrefix):]
	}
	return auth
}

// currentUserEmail resolves the request's session. The empty string means no
// valid session.
func (a *App) currentUserEmail(r *http.Request) string {
	token := getTokenFromHeader(r)
	if token == "" {
		return ""
	}
	email, ok := a.sessions.lookup(token)
	if !ok {
		return ""
	}
	return email
}

func (a *App) sessionTTL() time.Duration {
	hours := a.config.SessionTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// handleRegister creates a user account and signs it in immediately.
func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Email == "" || len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
		return
	}

	ctx := r.Context()
	existing, err := a.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing != nil {
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	user := &models.User{Email: req.Email, PasswordHash: string(hash)}
	if err := a.store.CreateUser(ctx, user); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := generateToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.sessions.put(token, user.Email, a.sessionTTL())

	a.log.Info().Str("op", "register").Str("user", user.Email).Msg("user registered")
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// handleLogin authenticates with email and password.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := generateToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.sessions.put(token, user.Email, a.sessionTTL())

	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// handleRefreshToken rotates a valid session token.
func (a *App) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	oldToken := getTokenFromHeader(r)
	if oldToken == "" {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	email, ok := a.sessions.lookup(oldToken)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		a.sessions.drop(oldToken)
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	newToken, err := generateToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.sessions.drop(oldToken)
	a.sessions.put(newToken, email, a.sessionTTL())

	respondJSON(w, http.StatusOK, authResponse{Token: newToken, User: user})
}

// handleGetCurrentUser returns the user behind the session token.
func (a *App) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	email := a.currentUserEmail(r)
	if email == "" {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := a.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
