package web

import (
	"net/http"

	"treetroopers/internal/adapters/http/middleware"
)

func registerRoutes(mux *http.ServeMux, staticDir string) {
	files := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", files))
	mux.Handle("GET /assets/", files)

	// Public
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /api/events", handleListEvents)
	mux.HandleFunc("POST /api/events", handleCreateEvent)
	mux.HandleFunc("GET /api/content", handleGetContent)
	mux.HandleFunc("GET /api/countdown", handleCountdown)
	mux.HandleFunc("GET /api/countdown/stream", handleCountdownStream)
	mux.HandleFunc("GET /gallery/{index}", handleLightbox)
	mux.HandleFunc("POST /dev/login", handleDevLogin)
	mux.HandleFunc("POST /dev/logout", handleDevLogout)

	// Developer
	dev := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireDeveloper(h))
	}
	dev("GET /dev/perf", handlePerf)

	dev("POST /api/edit/start", handleEditStart)
	dev("POST /api/edit/save", handleEditSave)
	dev("POST /api/edit/cancel", handleEditCancel)
	dev("POST /api/edit/items/{collection}", handleAddItem)
	dev("DELETE /api/edit/items/{collection}/{index}", handleDeleteItem)
	dev("PUT /api/edit/theme", handleSetTheme)
	dev("POST /api/edit/logo", handleSetLogo)
	dev("POST /api/edit/officers/{index}/photo", handleSetOfficerPhoto)
	dev("POST /api/edit/gallery", handleAddPhoto)
	dev("POST /api/edit/before-after", handleSetBeforeAfter)

	dev("GET /api/edit/events/panel", handlePanelRows)
	dev("POST /api/edit/events/panel/open", handlePanelOpen)
	dev("POST /api/edit/events/panel/close", handlePanelClose)
	dev("POST /api/edit/events/panel/add", handlePanelAdd)
	dev("POST /api/edit/events/panel/sort", handlePanelSort)
	dev("POST /api/edit/events/panel/apply", handlePanelApply)
	dev("POST /api/edit/events/panel/move", handlePanelMove)
	dev("DELETE /api/edit/events/panel/{index}", handlePanelDelete)
}
