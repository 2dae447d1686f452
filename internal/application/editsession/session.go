// Package editsession owns the live site content and theme and the
// developer's edit cycle over them: start, save, cancel and logout, plus the
// per-item edits and events panel operations allowed while editing.
package editsession

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/eventlist"
	"treetroopers/internal/domain/theme"
)

var (
	ErrAlreadyEditing = errors.New("an edit session is already open")
	ErrNotEditing     = errors.New("no edit session is open")
	ErrPanelClosed    = errors.New("events panel is not open")
)

// Persister stores committed content and theme.
type Persister interface {
	SaveContent(ctx context.Context, c content.SiteContent) error
	SaveTheme(ctx context.Context, t theme.Theme) error
}

// snapshot is the baseline captured by StartEdit.
type snapshot struct {
	content content.SiteContent
	theme   theme.Theme
}

// Session is the single page-wide content/theme owner.
// All methods are safe for concurrent use.
// INVARIANT: snap != nil exactly when editing is true
type Session struct {
	mu        sync.Mutex
	content   content.SiteContent
	theme     theme.Theme
	editing   bool
	panelOpen bool
	snap      *snapshot
	store     Persister
	version   uint64
}

// New creates a Session in viewing mode over the loaded content and theme.
// PRE: store is non-nil
// POST: Returns a session owning its own copy of c
func New(c content.SiteContent, t theme.Theme, store Persister) *Session {
	return &Session{content: c.Clone(), theme: t, store: store}
}

// View is an immutable copy of the session state for rendering.
type View struct {
	Content   content.SiteContent
	Theme     theme.Theme
	Editing   bool
	PanelOpen bool
	Version   uint64 // bumps on every committed mutation
}

// View returns a deep copy of the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Content:   s.content.Clone(),
		Theme:     s.theme,
		Editing:   s.editing,
		PanelOpen: s.panelOpen,
		Version:   s.version,
	}
}

// Committed returns the last committed content and theme. While an edit
// session is open the unsaved changes are hidden.
func (s *Session) Committed() (content.SiteContent, theme.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		return s.snap.content.Clone(), s.snap.theme
	}
	return s.content.Clone(), s.theme
}

// Events returns a copy of the live events list.
func (s *Session) Events() []content.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]content.Event(nil), s.content.Events...)
}

// StartEdit captures the baseline and enters editing mode.
// PRE: not editing
// POST: editing; the snapshot shares no storage with the live content
func (s *Session) StartEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		return ErrAlreadyEditing
	}
	s.snap = &snapshot{content: s.content.Clone(), theme: s.theme}
	s.editing = true
	s.changed()
	slog.Info("edit_event", "event", "edit_started")
	return nil
}

// SaveEdits folds the harvested on-page values into the live content,
// migrates it and persists content and theme.
// PRE: editing
// POST: on success, viewing mode with the snapshot discarded; on a persist
// failure the session stays in editing mode with the harvest applied
func (s *Session) SaveEdits(ctx context.Context, h Harvest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return ErrNotEditing
	}

	h.applyTo(&s.content)
	content.Migrate(&s.content)
	s.changed()

	if err := s.store.SaveContent(ctx, s.content); err != nil {
		return err
	}
	if err := s.store.SaveTheme(ctx, s.theme); err != nil {
		return err
	}
	s.stopEditing()
	slog.Info("edit_event", "event", "edit_saved")
	return nil
}

// CancelEdits restores content and theme from the snapshot. Editing mode and
// the snapshot remain, so the developer continues from the restored baseline.
// PRE: editing
// POST: content and theme equal the snapshot; repeated cancels restore the same baseline
func (s *Session) CancelEdits() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return ErrNotEditing
	}
	s.content = s.snap.content.Clone()
	s.theme = s.snap.theme
	s.changed()
	slog.Info("edit_event", "event", "edit_cancelled")
	return nil
}

// Logout leaves editing mode without persisting; unsaved changes are discarded.
// PRE: none
// POST: viewing mode; content equals the last committed state
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		s.content = s.snap.content.Clone()
		s.theme = s.snap.theme
		s.stopEditing()
		slog.Info("edit_event", "event", "edit_abandoned")
	}
}

// The item and image edits below take h, the text typed on the page since
// the last request. When non-nil it is folded into the live content before
// the change, matched by the indexes the page was rendered with.

// AddItem appends a default item to a collection.
func (s *Session) AddItem(h *Harvest, col content.Collection) error {
	return s.edit(h, func(c *content.SiteContent) error { return c.AddDefault(col) })
}

// DeleteItem removes exactly one item at index i.
func (s *Session) DeleteItem(h *Harvest, col content.Collection, i int) error {
	return s.edit(h, func(c *content.SiteContent) error { return c.DeleteAt(col, i) })
}

// AddPhoto appends a gallery photo with the given image source.
func (s *Session) AddPhoto(h *Harvest, src string) error {
	return s.edit(h, func(c *content.SiteContent) error {
		c.AddPhoto(src)
		return nil
	})
}

// SetLogo replaces the logo image.
func (s *Session) SetLogo(h *Harvest, src string) error {
	return s.edit(h, func(c *content.SiteContent) error {
		c.LogoDataURL = src
		return nil
	})
}

// SetOfficerPhoto replaces the photo of officer i.
func (s *Session) SetOfficerPhoto(h *Harvest, i int, src string) error {
	return s.edit(h, func(c *content.SiteContent) error {
		if i < 0 || i >= len(c.Officers) {
			return content.ErrIndexOutOfRange
		}
		c.Officers[i].Photo = src
		return nil
	})
}

// SetBeforeAfterImage replaces one before/after image. Any choice containing
// "after" (case-insensitive) targets the after image; everything else the
// before image. It returns the side that was replaced.
func (s *Session) SetBeforeAfterImage(h *Harvest, choice, src string) (string, error) {
	side := "before"
	if strings.Contains(strings.ToLower(choice), "after") {
		side = "after"
	}
	err := s.edit(h, func(c *content.SiteContent) error {
		if side == "after" {
			c.BeforeAfter.AfterSrc = src
		} else {
			c.BeforeAfter.BeforeSrc = src
		}
		return nil
	})
	return side, err
}

// SetTheme applies theme overrides; blank values keep the current color.
// The theme is persisted on SaveEdits.
func (s *Session) SetTheme(h *Harvest, p1, p2, p3 string) (theme.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return theme.Theme{}, ErrNotEditing
	}
	if h != nil {
		h.applyTo(&s.content)
	}
	t := strings.TrimSpace
	s.theme = s.theme.WithOverrides(t(p1), t(p2), t(p3))
	s.changed()
	return s.theme, nil
}

// OpenPanel opens the events management panel and returns its rows.
func (s *Session) OpenPanel() ([]eventlist.PanelRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return nil, ErrNotEditing
	}
	s.panelOpen = true
	return eventlist.Rows(s.content.Events), nil
}

// ClosePanel closes the events panel without applying pending row edits.
// Typed page text in h is kept when editing.
func (s *Session) ClosePanel(h *Harvest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panelOpen = false
	if s.editing && h != nil {
		h.applyTo(&s.content)
		s.changed()
	}
}

// PanelRows returns the current panel rows.
func (s *Session) PanelRows() ([]eventlist.PanelRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.panelReady(); err != nil {
		return nil, err
	}
	return eventlist.Rows(s.content.Events), nil
}

// PanelAdd appends a default event.
func (s *Session) PanelAdd() ([]eventlist.PanelRow, error) {
	return s.panelEdit(nil, func(c *content.SiteContent) {
		c.Events = append(c.Events, content.NewEvent())
	})
}

// PanelMove applies pending rows (when given) and then moves event from to to.
// Out-of-range destinations leave the order unchanged.
func (s *Session) PanelMove(pending []eventlist.PanelRow, from, to int) ([]eventlist.PanelRow, error) {
	return s.panelEdit(pending, func(c *content.SiteContent) {
		c.Events = eventlist.Move(c.Events, from, to)
	})
}

// PanelDelete applies pending rows (when given) and then deletes event i.
// An out-of-range index is ignored.
func (s *Session) PanelDelete(pending []eventlist.PanelRow, i int) ([]eventlist.PanelRow, error) {
	return s.panelEdit(pending, func(c *content.SiteContent) {
		if i >= 0 && i < len(c.Events) {
			c.Events = append(c.Events[:i:i], c.Events[i+1:]...)
		}
	})
}

// PanelSort orders the events by ascending date, unparseable dates first.
func (s *Session) PanelSort(loc *time.Location) ([]eventlist.PanelRow, error) {
	return s.panelEdit(nil, func(c *content.SiteContent) {
		c.Events = eventlist.SortByDate(c.Events, loc)
	})
}

// PanelApply replaces the events with the panel rows, filling blanks with
// defaults. Typed page text in h is folded in first, so the rows win over
// any events typed on the cards.
func (s *Session) PanelApply(h *Harvest, rows []eventlist.PanelRow) ([]eventlist.PanelRow, error) {
	return s.panelEdit(nil, func(c *content.SiteContent) {
		if h != nil {
			h.applyTo(c)
		}
		c.Events = eventlist.Apply(rows)
	})
}

func (s *Session) panelEdit(pending []eventlist.PanelRow, fn func(c *content.SiteContent)) ([]eventlist.PanelRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.panelReady(); err != nil {
		return nil, err
	}
	if pending != nil {
		s.content.Events = eventlist.Apply(pending)
	}
	fn(&s.content)
	s.changed()
	return eventlist.Rows(s.content.Events), nil
}

func (s *Session) panelReady() error {
	if !s.editing {
		return ErrNotEditing
	}
	if !s.panelOpen {
		return ErrPanelClosed
	}
	return nil
}

// edit folds h into a copy of the live content, runs fn on it and keeps the
// result only when fn succeeds.
// PRE: editing
func (s *Session) edit(h *Harvest, fn func(c *content.SiteContent) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return ErrNotEditing
	}
	next := s.content.Clone()
	if h != nil {
		h.applyTo(&next)
	}
	if err := fn(&next); err != nil {
		return err
	}
	s.content = next
	s.changed()
	return nil
}

func (s *Session) stopEditing() {
	s.editing = false
	s.panelOpen = false
	s.snap = nil
	s.changed()
}

func (s *Session) changed() { s.version++ }
