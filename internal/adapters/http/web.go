package web

import (
	"context"
	"crypto/rand"
	"log"
	"log/slog"
	"net/http"
	"time"

	"treetroopers/internal/adapters/email"
	"treetroopers/internal/adapters/http/middleware"
	"treetroopers/internal/adapters/http/perf"
	accountStore "treetroopers/internal/adapters/storage/account"
	calendarStore "treetroopers/internal/adapters/storage/calendar"
	"treetroopers/internal/application/editsession"
)

// Stores holds the storage and application dependencies of the handlers.
type Stores struct {
	Session        *editsession.Session
	EventStore     calendarStore.Store
	DeveloperStore accountStore.Store
	EmailSender    email.Sender // optional
	AnnounceTo     string       // optional
	Location       *time.Location
}

// Options configures NewMux.
type Options struct {
	StaticDir      string
	CSRFKey        []byte // 32 bytes; a random key is generated when empty
	Production     bool
	TrustedOrigins []string
	SlowRequest    time.Duration
	Collector      *perf.Collector // optional
}

// loadCSRFKey returns key, or a random per-process key in development.
// Config validation guarantees production always supplies one.
func loadCSRFKey(key []byte) []byte {
	if len(key) == 32 {
		return key
	}
	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	slog.Warn("csrf_event", "event", "random_key", "detail", "upload tokens won't survive restart; set CLUB_CSRF_KEY")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 20

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// timeNow is a variable for testability.
var timeNow = time.Now

// siteLocation is the zone event dates are read in.
func siteLocation() *time.Location {
	if stores != nil && stores.Location != nil {
		return stores.Location
	}
	return time.Local
}

// abandonExpiredEdit discards an open edit once no developer session is
// left to save it.
func abandonExpiredEdit(sess middleware.Session) {
	slog.Info("auth_event", "event", "session_expired", "email", sess.Email)
	if sessions.Len() == 0 {
		stores.Session.Logout()
	}
}

// NewMux wires HTTP handlers for the site. ctx bounds background work such
// as the rate limiter sweep.
func NewMux(ctx context.Context, s *Stores, opts Options) http.Handler {
	stores = s
	perfCollector = opts.Collector
	sessions = middleware.NewSessionStore()
	sessions.SetClock(func() time.Time { return timeNow() })
	sessions.OnExpire(abandonExpiredEdit)
	middleware.SecureCookies = opts.Production

	mux := http.NewServeMux()
	registerRoutes(mux, opts.StaticDir)

	limiter := middleware.NewRateLimiter(ctx, RateLimitPerSecond, time.Second)

	// Outermost first: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(middleware.CSRFOptions{
			Key:            loadCSRFKey(opts.CSRFKey),
			Secure:         opts.Production,
			TrustedOrigins: opts.TrustedOrigins,
		}),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(opts.Collector, opts.SlowRequest),
	)
}
