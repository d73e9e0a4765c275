package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/abrezinsky/eventdash/internal/models"
)

const (
	CookieName    = "eventdash_session"
	SessionExpiry = 24 * time.Hour
)

// Event-themed words for password generation
var passwordWords = []string{
	"palco", "agenda", "cracha", "evento", "plateia",
	"convite", "ingresso", "painel", "credencial", "sessao",
	"workshop", "meetup", "summit", "keynote", "hackathon",
	"auditorio", "pauta", "mesa", "tribuna",
}

type contextKey struct{}

type session struct {
	user   models.User
	expiry time.Time
}

// Auth handles operator authentication for the dashboard
type Auth struct {
	user     models.User
	password string
	sessions map[string]session
	mu       sync.RWMutex
	now      func() time.Time
}

// New creates a new Auth instance for a single operator account
func New(user models.User, password string) *Auth {
	return &Auth{
		user:     user,
		password: password,
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

// GeneratePassword creates a random 3-word password
func GeneratePassword() string {
	words := make([]string, 3)
	for i := range words {
		idx := randomInt(len(passwordWords))
		words[i] = passwordWords[idx]
	}
	return strings.Join(words, "-")
}

// Login checks the credentials and returns a session token if they match.
// The email comparison ignores case.
func (a *Auth) Login(email, password string) (string, models.User, bool) {
	emailOK := strings.EqualFold(strings.TrimSpace(email), a.user.Email)
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !emailOK || !passwordOK {
		return "", models.User{}, false
	}

	token := generateToken()
	a.mu.Lock()
	a.sessions[token] = session{user: a.user, expiry: a.now().Add(SessionExpiry)}
	a.mu.Unlock()

	return token, a.user, true
}

// Logout invalidates a session token
func (a *Auth) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// ValidateSession returns the user of a live session token
func (a *Auth) ValidateSession(token string) (models.User, bool) {
	a.mu.RLock()
	s, exists := a.sessions[token]
	a.mu.RUnlock()

	if !exists {
		return models.User{}, false
	}

	if a.now().After(s.expiry) {
		a.mu.Lock()
		delete(a.sessions, token)
		a.mu.Unlock()
		return models.User{}, false
	}

	return s.user, true
}

// TokenFromRequest returns the bearer token, falling back to the session cookie
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetSessionFromRequest extracts and validates the session from a request
func (a *Auth) GetSessionFromRequest(r *http.Request) (models.User, bool) {
	token := TokenFromRequest(r)
	if token == "" {
		return models.User{}, false
	}
	return a.ValidateSession(token)
}

// RequireAuthAPI middleware for API endpoints (returns 401). The
// authenticated user is available to handlers through UserFromContext.
func (a *Auth) RequireAuthAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := a.GetSessionFromRequest(r); ok {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, user)))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Não autenticado"}`))
	})
}

// UserFromContext returns the user stored by RequireAuthAPI
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(contextKey{}).(models.User)
	return user, ok
}

// SetSessionCookie sets the session cookie on the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionExpiry.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateToken creates a random session token
func generateToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// randomInt returns a random int in [0, max)
func randomInt(max int) int {
	bytes := make([]byte, 1)
	rand.Read(bytes)
	return int(bytes[0]) % max
}
