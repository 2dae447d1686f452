package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"treetroopers/internal/adapters/storage/kv"
	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/theme"
)

// Persisted key names for the two site records.
const (
	ContentKey = "siteContent"
	ThemeKey   = "siteTheme"
)

// KVStore defines the store interface needed by the content orchestrators.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ContentDeps holds dependencies for the content and theme orchestrators.
type ContentDeps struct {
	Store KVStore
}

// ExecuteLoadContent returns the site content: persisted values merged over
// the defaults, then migrated. When a record existed it is written back in
// migrated form.
// PRE: deps.Store is non-nil
// POST: Never fails; any read or parse failure yields migrated defaults
func ExecuteLoadContent(ctx context.Context, deps ContentDeps) content.SiteContent {
	raw, err := deps.Store.Get(ctx, ContentKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			slog.Warn("content_event", "event", "content_load_failed", "error", err)
		}
		return *content.Migrate(ptr(content.Defaults()))
	}

	merged, err := mergeOver(content.Defaults(), raw)
	if err != nil {
		slog.Warn("content_event", "event", "content_parse_failed", "error", err)
		return *content.Migrate(ptr(content.Defaults()))
	}
	content.Migrate(&merged)

	if err := writeJSON(ctx, deps.Store, ContentKey, merged); err != nil {
		slog.Warn("content_event", "event", "content_writeback_failed", "error", err)
	}
	return merged
}

// ExecuteSaveContent migrates and persists c, overwriting the previous record.
// PRE: deps.Store is non-nil
// POST: the stored record equals Migrate(c); c itself is not modified
func ExecuteSaveContent(ctx context.Context, c content.SiteContent, deps ContentDeps) error {
	migrated := c.Clone()
	content.Migrate(&migrated)
	if err := writeJSON(ctx, deps.Store, ContentKey, migrated); err != nil {
		return fmt.Errorf("save content: %w", err)
	}
	slog.Info("content_event", "event", "content_saved")
	return nil
}

// ExecuteLoadTheme returns the persisted theme merged over the default theme.
// PRE: deps.Store is non-nil
// POST: Never fails; any read or parse failure yields the default theme
func ExecuteLoadTheme(ctx context.Context, deps ContentDeps) theme.Theme {
	raw, err := deps.Store.Get(ctx, ThemeKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			slog.Warn("content_event", "event", "theme_load_failed", "error", err)
		}
		return theme.Default()
	}
	t, err := mergeOver(theme.Default(), raw)
	if err != nil {
		slog.Warn("content_event", "event", "theme_parse_failed", "error", err)
		return theme.Default()
	}
	return t
}

// ExecuteSaveTheme persists t, overwriting the previous record.
func ExecuteSaveTheme(ctx context.Context, t theme.Theme, deps ContentDeps) error {
	if err := writeJSON(ctx, deps.Store, ThemeKey, t); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	slog.Info("content_event", "event", "theme_saved", "p1", t.P1, "p2", t.P2, "p3", t.P3)
	return nil
}

// ExecuteResetSite deletes both persisted records so the next load starts
// from defaults.
func ExecuteResetSite(ctx context.Context, deps ContentDeps) error {
	for _, key := range []string{ContentKey, ThemeKey} {
		if err := deps.Store.Delete(ctx, key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	slog.Info("content_event", "event", "site_reset")
	return nil
}

// mergeOver overlays the top-level keys of the JSON object raw onto defaults.
// Keys present in raw replace the default value whole; nested objects and
// lists are not merged element by element.
func mergeOver[T any](defaults T, raw string) (T, error) {
	var zero T
	base, err := json.Marshal(defaults)
	if err != nil {
		return zero, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return zero, err
	}
	var saved map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return zero, err
	}
	for k, v := range saved {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, err
	}
	return out, nil
}

func writeJSON(ctx context.Context, store KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(data))
}

func ptr[T any](v T) *T { return &v }

// ContentPersister adapts the save orchestrators to the edit session's
// persistence interface.
type ContentPersister struct {
	Deps ContentDeps
}

// SaveContent persists c via ExecuteSaveContent.
func (p ContentPersister) SaveContent(ctx context.Context, c content.SiteContent) error {
	return ExecuteSaveContent(ctx, c, p.Deps)
}

// SaveTheme persists t via ExecuteSaveTheme.
func (p ContentPersister) SaveTheme(ctx context.Context, t theme.Theme) error {
	return ExecuteSaveTheme(ctx, t, p.Deps)
}
