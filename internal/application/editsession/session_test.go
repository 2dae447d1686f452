package editsession

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/eventlist"
	"treetroopers/internal/domain/theme"
)

type memPersister struct {
	content    *content.SiteContent
	theme      *theme.Theme
	contentErr error
}

func (m *memPersister) SaveContent(_ context.Context, c content.SiteContent) error {
	if m.contentErr != nil {
		return m.contentErr
	}
	cp := c.Clone()
	m.content = &cp
	return nil
}

func (m *memPersister) SaveTheme(_ context.Context, t theme.Theme) error {
	m.theme = &t
	return nil
}

func newSession(t *testing.T) (*Session, *memPersister) {
	t.Helper()
	store := &memPersister{}
	c := content.Defaults()
	content.Migrate(&c)
	return New(c, theme.Default(), store), store
}

func TestStartEdit_NoNesting(t *testing.T) {
	s, _ := newSession(t)
	if err := s.StartEdit(); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	if err := s.StartEdit(); !errors.Is(err, ErrAlreadyEditing) {
		t.Errorf("second StartEdit = %v, want ErrAlreadyEditing", err)
	}
	if !s.View().Editing {
		t.Error("expected editing")
	}
}

func TestEditsRequireSession(t *testing.T) {
	s, _ := newSession(t)
	checks := map[string]error{
		"add":    s.AddItem(nil, content.CollectionActivities),
		"delete": s.DeleteItem(nil, content.CollectionActivities, 0),
		"photo":  s.AddPhoto(nil, "data:image/png;base64,AA=="),
		"logo":   s.SetLogo(nil, "data:image/png;base64,AA=="),
		"save":   s.SaveEdits(context.Background(), Harvest{}),
		"cancel": s.CancelEdits(),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNotEditing) {
			t.Errorf("%s: err = %v, want ErrNotEditing", name, err)
		}
	}
	if _, err := s.SetTheme(nil, "#000000", "", ""); !errors.Is(err, ErrNotEditing) {
		t.Errorf("theme: err = %v", err)
	}
	if _, err := s.OpenPanel(); !errors.Is(err, ErrNotEditing) {
		t.Errorf("panel: err = %v", err)
	}
}

func TestCancelRestoresExactly(t *testing.T) {
	s, store := newSession(t)
	before := s.View()

	s.StartEdit()
	s.AddItem(nil, content.CollectionActivities)
	s.DeleteItem(nil, content.CollectionOfficers, 0)
	s.AddPhoto(nil, "data:image/png;base64,AA==")
	s.SetLogo(nil, "data:image/png;base64,BB==")
	s.SetOfficerPhoto(nil, 0, "data:image/png;base64,CC==")
	s.SetBeforeAfterImage(nil, "After please", "data:image/png;base64,DD==")
	s.SetTheme(nil, "#000000", "#111111", "")

	if err := s.CancelEdits(); err != nil {
		t.Fatalf("CancelEdits: %v", err)
	}
	after := s.View()
	if !reflect.DeepEqual(after.Content, before.Content) {
		t.Error("content not restored to the pre-edit state")
	}
	if after.Theme != before.Theme {
		t.Errorf("theme = %+v, want %+v", after.Theme, before.Theme)
	}
	if !after.Editing {
		t.Error("cancel should keep editing mode")
	}
	if store.content != nil {
		t.Error("cancel must not persist")
	}

	// A second round of edits then cancel still restores the same baseline.
	s.DeleteItem(nil, content.CollectionActivities, 0)
	s.CancelEdits()
	if !reflect.DeepEqual(s.View().Content, before.Content) {
		t.Error("second cancel did not restore the baseline")
	}
}

func TestSaveEdits_HarvestMigratePersist(t *testing.T) {
	s, store := newSession(t)
	s.StartEdit()
	s.AddItem(nil, content.CollectionEvents)
	s.SetTheme(nil, "", "#123456", "")

	title := "  Cleanup Results  "
	h := Harvest{
		Texts:            map[string]string{content.KeyHeroTitle: "  New Hero  ", "notAField": "x"},
		BeforeAfterTitle: &title,
		Activities:       []content.Activity{{Icon: "🌱", Title: " Planting ", Desc: "d", Tag: "t"}},
		Officers:         []content.Officer{{Name: "", Role: "Treasurer", Photo: "ignored.jpg"}},
		Gallery:          []content.Photo{{Src: "ignored", Title: "Shore", Tag: "Beach"}},
		Events:           make([]content.Event, 20),
	}
	originalPhoto := s.View().Content.Officers[0].Photo
	originalSrc := s.View().Content.Gallery[0].Src

	if err := s.SaveEdits(context.Background(), h); err != nil {
		t.Fatalf("SaveEdits: %v", err)
	}
	v := s.View()
	if v.Editing {
		t.Error("save should leave editing mode")
	}
	if v.Content.HeroTitle != "New Hero" || v.Content.BeforeAfter.Title != "Cleanup Results" {
		t.Errorf("texts not harvested: %q / %q", v.Content.HeroTitle, v.Content.BeforeAfter.Title)
	}
	if v.Content.Activities[0].Title != "Planting" {
		t.Errorf("activity = %+v", v.Content.Activities[0])
	}
	// Blank harvested name means placeholder data; migration restores the defaults.
	if !reflect.DeepEqual(v.Content.Officers, content.DefaultOfficers()) {
		t.Errorf("officers = %+v", v.Content.Officers)
	}
	if v.Content.Officers[0].Photo != originalPhoto {
		t.Error("officer photo should not be harvested")
	}
	if v.Content.Gallery[0].Src != originalSrc || v.Content.Gallery[0].Title != "Shore" {
		t.Errorf("gallery[0] = %+v", v.Content.Gallery[0])
	}
	if len(v.Content.Events) != len(content.Defaults().Events)+1 {
		t.Errorf("extra harvested events must be ignored, got %d", len(v.Content.Events))
	}

	if store.content == nil || !reflect.DeepEqual(*store.content, v.Content) {
		t.Error("persisted content differs from live content")
	}
	if store.theme == nil || store.theme.P2 != "#123456" {
		t.Errorf("persisted theme = %+v", store.theme)
	}

	// The snapshot is gone: a fresh cycle starts from the saved state.
	s.StartEdit()
	s.DeleteItem(nil, content.CollectionActivities, 0)
	s.CancelEdits()
	if !reflect.DeepEqual(s.View().Content, v.Content) {
		t.Error("new baseline should be the saved content")
	}
}

func TestSaveEdits_PersistFailureKeepsEditing(t *testing.T) {
	s, store := newSession(t)
	store.contentErr = errors.New("disk full")
	s.StartEdit()
	if err := s.SaveEdits(context.Background(), Harvest{}); err == nil {
		t.Fatal("expected error")
	}
	if !s.View().Editing {
		t.Error("failed save should stay in editing mode")
	}
}

func TestLogout_DiscardsUnsaved(t *testing.T) {
	s, store := newSession(t)
	before := s.View().Content
	s.StartEdit()
	s.AddItem(nil, content.CollectionMembers)
	s.OpenPanel()

	s.Logout()
	v := s.View()
	if v.Editing || v.PanelOpen {
		t.Error("logout should leave editing mode and close the panel")
	}
	if !reflect.DeepEqual(v.Content, before) {
		t.Error("logout should discard unsaved edits")
	}
	if store.content != nil {
		t.Error("logout must not persist")
	}
	s.Logout()
}

func TestDeleteItem_ByIndex(t *testing.T) {
	s, _ := newSession(t)
	s.StartEdit()
	acts := s.View().Content.Activities
	if err := s.DeleteItem(nil, content.CollectionActivities, 1); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	got := s.View().Content.Activities
	want := append([]content.Activity{acts[0]}, acts[2:]...)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("activities = %+v, want %+v", got, want)
	}
	if err := s.DeleteItem(nil, content.CollectionActivities, 99); !errors.Is(err, content.ErrIndexOutOfRange) {
		t.Errorf("out of range err = %v", err)
	}
}

func TestSetBeforeAfterImage_Choice(t *testing.T) {
	s, _ := newSession(t)
	s.StartEdit()
	tests := []struct{ choice, want string }{
		{"after", "after"},
		{"AFTER", "after"},
		{"the after one", "after"},
		{"before", "before"},
		{"anything", "before"},
	}
	for _, tt := range tests {
		side, err := s.SetBeforeAfterImage(nil, tt.choice, "data:"+tt.choice)
		if err != nil || side != tt.want {
			t.Errorf("choice %q: side=%q err=%v", tt.choice, side, err)
		}
	}
	ba := s.View().Content.BeforeAfter
	if ba.AfterSrc != "data:the after one" || ba.BeforeSrc != "data:anything" {
		t.Errorf("before/after = %+v", ba)
	}
}

func TestSetTheme_EmptyKeepsPrevious(t *testing.T) {
	s, _ := newSession(t)
	s.StartEdit()
	got, err := s.SetTheme(nil, "#000000", "", "  ")
	if err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	def := theme.Default()
	if got.P1 != "#000000" || got.P2 != def.P2 || got.P3 != def.P3 {
		t.Errorf("theme = %+v", got)
	}
}

func TestPanel(t *testing.T) {
	s, _ := newSession(t)
	s.StartEdit()
	if _, err := s.PanelAdd(); !errors.Is(err, ErrPanelClosed) {
		t.Fatalf("closed panel err = %v", err)
	}

	rows, err := s.OpenPanel()
	if err != nil {
		t.Fatalf("OpenPanel: %v", err)
	}
	n := len(rows)

	rows, _ = s.PanelAdd()
	if len(rows) != n+1 || rows[n].Title != content.DefaultEventTitle {
		t.Fatalf("after add = %+v", rows)
	}

	// Pending edits are applied before the move.
	rows[0].Title = "Edited"
	rows, _ = s.PanelMove(rows, 0, 1)
	if rows[1].Title != "Edited" {
		t.Errorf("after move = %+v", rows)
	}
	unchanged, _ := s.PanelMove(nil, 0, -1)
	if !reflect.DeepEqual(unchanged, rows) {
		t.Error("out-of-range move should be a no-op")
	}

	rows, _ = s.PanelDelete(nil, len(rows)-1)
	if len(rows) != n {
		t.Errorf("after delete len = %d, want %d", len(rows), n)
	}

	rows, _ = s.PanelApply(nil, []eventlist.PanelRow{{Icon: "", Title: "", Date: ""}, {Icon: "🌳", Title: "Plant", Date: "2026-01-02"}})
	if len(rows) != 2 || rows[0].Title != content.DefaultEventTitle || rows[0].Date != content.DefaultEventDate {
		t.Errorf("after apply = %+v", rows)
	}

	rows, _ = s.PanelSort(time.UTC)
	if rows[0].Date != "2026-01-02" {
		t.Errorf("after sort = %+v", rows)
	}
	if got := s.Events(); len(got) != 2 || got[0].Title != "Plant" {
		t.Errorf("live events = %+v", got)
	}

	s.ClosePanel(nil)
	if _, err := s.PanelRows(); !errors.Is(err, ErrPanelClosed) {
		t.Errorf("rows after close err = %v", err)
	}
}

func TestView_IsACopy(t *testing.T) {
	s, _ := newSession(t)
	v := s.View()
	v.Content.Activities[0].Title = "mutated"
	if s.View().Content.Activities[0].Title == "mutated" {
		t.Error("View shares storage with the session")
	}
}

func TestCommitted_HidesUnsavedEdits(t *testing.T) {
	s, _ := newSession(t)
	before, _ := s.Committed()

	if err := s.StartEdit(); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteItem(nil, content.CollectionActivities, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetTheme(nil, "#000000", "", ""); err != nil {
		t.Fatal(err)
	}

	got, th := s.Committed()
	if !reflect.DeepEqual(got, before) {
		t.Error("Committed exposed an unsaved delete")
	}
	if th != theme.Default() {
		t.Errorf("Committed theme = %+v, want default", th)
	}

	if err := s.SaveEdits(context.Background(), Harvest{}); err != nil {
		t.Fatal(err)
	}
	got, th = s.Committed()
	if len(got.Activities) != len(before.Activities)-1 || th.P1 != "#000000" {
		t.Errorf("Committed after save = %d activities, theme %+v", len(got.Activities), th)
	}
}

func TestEdits_KeepTypedText(t *testing.T) {
	s, _ := newSession(t)
	s.StartEdit()

	typed := &Harvest{
		Texts:      map[string]string{content.KeyHeroTitle: "Typed Hero"},
		Activities: []content.Activity{{Icon: "🌊", Title: "Typed Activity"}},
	}
	if err := s.AddItem(typed, content.CollectionActivities); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	v := s.View()
	if got, _ := v.Content.Text(content.KeyHeroTitle); got != "Typed Hero" {
		t.Errorf("hero title = %q, want the typed text", got)
	}
	if v.Content.Activities[0].Title != "Typed Activity" {
		t.Errorf("activity 0 = %+v", v.Content.Activities[0])
	}
	if last := v.Content.Activities[len(v.Content.Activities)-1]; last != content.NewActivity() {
		t.Errorf("appended activity = %+v", last)
	}

	themed := &Harvest{Texts: map[string]string{content.KeyHeroTitle: "Themed Hero"}}
	if _, err := s.SetTheme(themed, "#000000", "", ""); err != nil {
		t.Fatal(err)
	}
	themedView := s.View()
	if got, _ := themedView.Content.Text(content.KeyHeroTitle); got != "Themed Hero" {
		t.Errorf("hero title after theme = %q", got)
	}
}

func TestEdits_FailedChangeDropsTypedText(t *testing.T) {
	s, _ := newSession(t)
	s.StartEdit()
	before := s.View()

	typed := &Harvest{Texts: map[string]string{content.KeyHeroTitle: "Typed Hero"}}
	if err := s.DeleteItem(typed, content.CollectionActivities, 99); !errors.Is(err, content.ErrIndexOutOfRange) {
		t.Fatalf("DeleteItem = %v", err)
	}
	after := s.View()
	if !reflect.DeepEqual(after.Content, before.Content) || after.Version != before.Version {
		t.Error("a failed edit must leave the session untouched")
	}
}

func TestClosePanel_KeepsTypedText(t *testing.T) {
	s, _ := newSession(t)
	s.StartEdit()
	s.OpenPanel()

	s.ClosePanel(&Harvest{Texts: map[string]string{content.KeyHeroTitle: "Typed Hero"}})
	v := s.View()
	if v.PanelOpen {
		t.Error("panel should be closed")
	}
	if got, _ := v.Content.Text(content.KeyHeroTitle); got != "Typed Hero" {
		t.Errorf("hero title = %q", got)
	}
}
