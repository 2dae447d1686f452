package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"treetroopers/internal/adapters/http/middleware"
	"treetroopers/internal/application/orchestrators"
	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(
	template.New("").Funcs(templateFuncs(nil)).ParseFS(templateFS, "templates/*.html"),
)

// templateFuncs binds the request-scoped helpers; r is nil at parse time.
func templateFuncs(r *http.Request) template.FuncMap {
	return template.FuncMap{
		"csrfToken": func() string {
			if r == nil {
				return ""
			}
			return csrf.Token(r)
		},
		"renderMarkdown": renderMarkdown,
		"imageURL":       imageURL,
		"pair":           func(a, b any) []any { return []any{a, b} },
	}
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
// An empty body leaves v untouched.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isDeveloper(r *http.Request) bool {
	_, ok := middleware.GetSessionFromContext(r.Context())
	return ok
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	t, err := pageTemplates.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := t.Funcs(templateFuncs(r)).ExecuteTemplate(&buf, templateName, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// siteState returns what the requester may see: the live edit state for a
// developer, the committed state for everyone else.
func siteState(r *http.Request) (c content.SiteContent, t theme.Theme, editing bool) {
	if isDeveloper(r) {
		v := stores.Session.View()
		return v.Content, v.Theme, v.Editing
	}
	c, t = stores.Session.Committed()
	return c, t, false
}

// handleHome renders the site page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	c, t, editing := siteState(r)
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())
	data := buildPage(c, t, pageState{
		Developer: loggedIn,
		DevEmail:  sess.Email,
		Editing:   editing,
		PanelOpen: loggedIn && stores.Session.View().PanelOpen,
		Now:       timeNow().In(siteLocation()),
	})
	renderTemplate(w, r, "page.html", data)
}

type contentResponse struct {
	Content content.SiteContent `json:"content"`
	Theme   theme.Theme         `json:"theme"`
	Editing bool                `json:"editing"`
}

// handleGetContent handles GET /api/content
func handleGetContent(w http.ResponseWriter, r *http.Request) {
	c, t, editing := siteState(r)
	writeJSON(w, http.StatusOK, contentResponse{Content: c, Theme: t, Editing: editing})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleDevLogin handles POST /dev/login
func handleDevLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := strictDecode(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form submission")
			return
		}
		req.Email, req.Password = r.FormValue("email"), r.FormValue("password")
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		DeveloperStore: stores.DeveloperStore,
		Now:            timeNow,
	})
	switch {
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeError(w, http.StatusLocked, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, orchestrators.ErrInvalidCredentials.Error())
		return
	}

	token, err := sessions.Create(result.DeveloperID, result.Email)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"email":     result.Email,
		"expiresAt": timeNow().Add(middleware.SessionTTL).UTC().Format(time.RFC3339),
	})
}

// handleDevLogout handles POST /dev/logout. A developer's open edit session
// is abandoned without saving.
func handleDevLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
			sessions.Delete(cookie.Value)
		}
		stores.Session.Logout()
		slog.Info("auth_event", "event", "logout", "email", sess.Email)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"loggedIn": false})
}

// handlePerf handles GET /dev/perf?window=15m
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeError(w, http.StatusNotFound, "perf collection is disabled")
		return
	}
	window := 15 * time.Minute
	if v := r.URL.Query().Get("window"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			writeError(w, http.StatusBadRequest, "window must be a positive duration")
			return
		}
		window = d
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-window), 10))
}
