package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const developerContextKey contextKey = "developer"

// SessionTTL is how long a developer session lasts. Activity never extends it.
const SessionTTL = 6 * time.Hour

// SecureCookies marks the session cookie Secure. Set in production.
var SecureCookies bool

// Session represents a logged-in developer.
type Session struct {
	DeveloperID string
	Email       string
	CreatedAt   time.Time
}

// ExpiresAt is the fixed end of the session window.
func (s Session) ExpiresAt() time.Time {
	return s.CreatedAt.Add(SessionTTL)
}

// SessionStore is an in-memory session store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
	onExpire func(Session)
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// SetClock replaces the store's time source. Intended for tests.
func (ss *SessionStore) SetClock(now func() time.Time) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.now = now
}

// OnExpire registers fn to run once for every session dropped because its
// window ended. fn runs without the store lock held.
func (ss *SessionStore) OnExpire(fn func(Session)) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.onExpire = fn
}

// Create stores a new session and returns the token.
// PRE: developerID and email are non-empty
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(developerID, email string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = Session{
		DeveloperID: developerID,
		Email:       email,
		CreatedAt:   ss.now(),
	}
	return token, nil
}

// Get retrieves a session by token.
// PRE: token is non-empty
// POST: Returns the session if it exists and is inside its window; expired
// sessions are removed
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.Lock()
	session, ok := ss.sessions[token]
	if !ok {
		ss.mu.Unlock()
		return Session{}, false
	}
	if !ss.now().Before(session.ExpiresAt()) {
		delete(ss.sessions, token)
		hook := ss.onExpire
		ss.mu.Unlock()
		if hook != nil {
			hook(session)
		}
		return Session{}, false
	}
	ss.mu.Unlock()
	return session, true
}

// Sweep drops every session whose window has ended and runs the expiry
// hook for each.
// POST: Len counts only live sessions
func (ss *SessionStore) Sweep() {
	ss.mu.Lock()
	now := ss.now()
	var expired []Session
	for token, session := range ss.sessions {
		if !now.Before(session.ExpiresAt()) {
			delete(ss.sessions, token)
			expired = append(expired, session)
		}
	}
	hook := ss.onExpire
	ss.mu.Unlock()
	if hook == nil {
		return
	}
	for _, session := range expired {
		hook(session)
	}
}

// Delete removes a session by token.
// PRE: token is non-empty
// POST: Session with given token is removed
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// Len returns the number of stored sessions, expired ones included.
func (ss *SessionStore) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

// SessionCookieName is the developer session cookie.
const SessionCookieName = "treetroopers_dev"

// Auth returns middleware that extracts the session from the cookie and sets it in context.
// Every request first sweeps expired sessions.
// It does NOT block anonymous requests; use RequireDeveloper for that.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessions.Sweep()
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if session, ok := sessions.Get(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), developerContextKey, session)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireDeveloper blocks requests without a developer session with a JSON 401.
func RequireDeveloper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "developer login required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(developerContextKey).(Session)
	return session, ok
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, developerContextKey, sess)
}

// SetSessionCookie sets the session cookie on the response. The cookie
// expires with the session; it is never refreshed.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
