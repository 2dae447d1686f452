package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"treetroopers/internal/application/orchestrators"
	"treetroopers/internal/application/projections"
	"treetroopers/internal/domain/calendar"
	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/eventlist"
	"treetroopers/internal/domain/widget"
)

// countdownInterval is the stream tick period. Tests shorten it.
var countdownInterval = orchestrators.CountdownInterval

// streamRetry is the reconnect delay advertised to stream clients.
const streamRetry = 3 * time.Second

// handleListEvents handles GET /api/events. Failures carry the error text.
func handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := projections.QueryListEvents(r.Context(), projections.ListEventsDeps{
		EventStore: stores.EventStore,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

type createEventRequest struct {
	Title       string `json:"title"`
	EventDate   string `json:"event_date"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// handleCreateEvent handles POST /api/events. Unknown body fields are
// ignored; a body that is not JSON is a server error carrying the parse error.
func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	ev, err := orchestrators.ExecuteCreateEvent(r.Context(), orchestrators.CreateEventInput{
		Title:       req.Title,
		EventDate:   req.EventDate,
		Location:    req.Location,
		Description: req.Description,
	}, orchestrators.CreateEventDeps{
		EventStore: stores.EventStore,
		Sender:     stores.EmailSender,
		AnnounceTo: stores.AnnounceTo,
		Location:   siteLocation(),
	})
	switch {
	case errors.Is(err, calendar.ErrMissingTitleOrDate):
		writeError(w, http.StatusBadRequest, "Missing title or event_date")
		return
	case errors.Is(err, calendar.ErrTitleTooLong),
		errors.Is(err, calendar.ErrLocationTooLong),
		errors.Is(err, calendar.ErrDescriptionTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": ev})
}

// visibleEvents returns the events list the requester may see.
func visibleEvents(r *http.Request) []content.Event {
	if isDeveloper(r) {
		return stores.Session.Events()
	}
	c, _ := stores.Session.Committed()
	return c.Events
}

// handleCountdown handles GET /api/countdown: the event cards in stored
// order plus the current countdown frame.
func handleCountdown(w http.ResponseWriter, r *http.Request) {
	section := projections.QueryGetEventsSection(projections.GetEventsSectionQuery{
		Events: visibleEvents(r),
		Now:    timeNow().In(siteLocation()),
	})
	writeJSON(w, http.StatusOK, section)
}

// handleCountdownStream handles GET /api/countdown/stream as server-sent
// events, one frame per tick until the client goes away. Each connection
// owns its ticker; a reconnect starts a fresh one.
func handleCountdownStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "retry: %d\n\n", streamRetry.Milliseconds())
	flusher.Flush()

	events := func() []content.Event { return visibleEvents(r) }

	cd := &orchestrators.Countdown{Interval: countdownInterval, Now: timeNow}
	cd.Start(r.Context(), events, siteLocation(), func(tick eventlist.Tick) {
		frame := countdownFrame(tick)
		data, err := json.Marshal(frame)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "event: tick\ndata: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()
	})
	<-r.Context().Done()
	cd.Stop()
}

// countdownFrameJSON adds the padded display strings to a tick.
type countdownFrameJSON struct {
	eventlist.Tick
	Days    string `json:"daysText"`
	Hours   string `json:"hoursText"`
	Minutes string `json:"minutesText"`
	Seconds string `json:"secondsText"`
}

func countdownFrame(tick eventlist.Tick) countdownFrameJSON {
	h, m, s := tick.Remaining.Padded()
	return countdownFrameJSON{
		Tick:    tick,
		Days:    strconv.Itoa(tick.Remaining.Days),
		Hours:   h,
		Minutes: m,
		Seconds: s,
	}
}

type lightboxView struct {
	Index int    `json:"index"`
	Count int    `json:"count"`
	Src   string `json:"src"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Prev  int    `json:"prev"`
	Next  int    `json:"next"`
}

// handleLightbox handles GET /gallery/{index}?step=-1|1. The index is
// clamped into the gallery; a step wraps around both ends. The lightbox is
// disabled while the developer is editing.
func handleLightbox(w http.ResponseWriter, r *http.Request) {
	c, _, editing := siteState(r)
	if editing {
		writeError(w, http.StatusConflict, "lightbox is disabled while editing")
		return
	}
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	n := len(c.Gallery)
	idx, ok := widget.LightboxOpen(i, n)
	if !ok {
		writeError(w, http.StatusNotFound, "gallery is empty")
		return
	}
	if v := r.URL.Query().Get("step"); v != "" {
		dir, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "step must be an integer")
			return
		}
		idx, _ = widget.LightboxStep(idx, dir, n)
	}

	prev, _ := widget.LightboxStep(idx, -1, n)
	next, _ := widget.LightboxStep(idx, 1, n)
	photo := c.Gallery[idx]
	view := lightboxView{
		Index: idx,
		Count: n,
		Src:   photo.Src,
		Title: photo.Title,
		Tag:   photo.Tag,
		Prev:  prev,
		Next:  next,
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "lightbox.html", view)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, view)
}
