package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmerten/studiplan/internal/core/catalog"
	"github.com/lmerten/studiplan/internal/core/config"
	"github.com/lmerten/studiplan/internal/core/plan"
	"github.com/lmerten/studiplan/internal/core/session"
	"github.com/lmerten/studiplan/internal/core/state"
)

const testCatalog = `[
	{"title": "Numerik", "credits": 6, "module_code": "MA-101", "group": "1.", "semester": "SoSe"},
	{"title": "Regelungstechnik", "credits": 6, "module_code": "MA-301", "group": "3.", "semester": "WiSe"}
]`

func newTestModel(t *testing.T) (Model, state.Store) {
	t.Helper()

	cat, err := catalog.Parse(strings.NewReader(testCatalog))
	if err != nil {
		t.Fatalf("Failed to parse catalog: %v", err)
	}

	store, err := state.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	planner := plan.New(plan.DefaultSlots)
	sess := session.New(cat, planner, state.DefaultSlot)
	return New(sess, store, config.Default()), store
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAssignKey(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyMsg("1"))
	m = updated.(Model)

	course := m.sess.Catalog.ByKey("MA-101")
	if course.Slot != 0 {
		t.Errorf("Expected course in slot 0, got %d", course.Slot)
	}
	if !m.dirty {
		t.Error("Expected model to be marked dirty after placement")
	}
	if !strings.Contains(m.status, "SoSe 2025") {
		t.Errorf("Expected status to name the semester, got %q", m.status)
	}
}

func TestAssignKeyIncompatible(t *testing.T) {
	m, _ := newTestModel(t)

	// MA-101 is summer-only; slot 1 is winter
	updated, _ := m.Update(keyMsg("2"))
	m = updated.(Model)

	course := m.sess.Catalog.ByKey("MA-101")
	if course.Assigned() {
		t.Errorf("Expected course to stay unplaced, got slot %d", course.Slot)
	}
	if m.status == "" {
		t.Error("Expected an error status for the incompatible placement")
	}
}

func TestUnassignKey(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyMsg("1"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("u"))
	m = updated.(Model)

	if m.sess.Catalog.ByKey("MA-101").Assigned() {
		t.Error("Expected course to be unplaced after u")
	}
}

func TestFavoriteKey(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyMsg("f"))
	m = updated.(Model)

	if !m.sess.Catalog.ByKey("MA-101").Favorite {
		t.Error("Expected selected course to be favorited")
	}
}

func TestSaveKey(t *testing.T) {
	m, store := newTestModel(t)

	updated, _ := m.Update(keyMsg("1"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("s"))
	m = updated.(Model)

	if m.dirty {
		t.Error("Expected dirty flag cleared after save")
	}

	st, err := store.Read(state.DefaultSlot)
	if err != nil {
		t.Fatalf("Failed to read saved slot: %v", err)
	}
	if got := st.SemesterAssignments["0"]; len(got) != 1 || got[0] != "MA-101" {
		t.Errorf("Expected MA-101 in slot 0, got %v", got)
	}
}

func TestProgressToggle(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyMsg("p"))
	m = updated.(Model)
	if m.mode != progressView {
		t.Errorf("Expected progress view, got mode %d", m.mode)
	}

	view := m.View()
	if !strings.Contains(view, "Kernbereich") {
		t.Errorf("Expected progress view to list the Kernbereich, got:\n%s", view)
	}

	updated, _ = m.Update(keyMsg("p"))
	m = updated.(Model)
	if m.mode != planView {
		t.Errorf("Expected plan view after toggling back, got mode %d", m.mode)
	}
}

func TestWindowSizePersistsToSession(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if m.sess.Window.Width != 120 || m.sess.Window.Height != 40 {
		t.Errorf("Expected window size recorded in session, got %+v", m.sess.Window)
	}
}

func TestSlotsPaneTruncatesOnRunes(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(`[
		{"title": "Einführung in die Qualitätssicherung und Zuverlässigkeit", "credits": 6, "module_code": "MA-777", "group": "4."}
	]`))
	if err != nil {
		t.Fatalf("Failed to parse catalog: %v", err)
	}

	store, err := state.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	sess := session.New(cat, plan.New(plan.DefaultSlots), state.DefaultSlot)
	if err := sess.Assign(cat.ByKey("MA-777"), 0); err != nil {
		t.Fatal(err)
	}
	m := New(sess, store, config.Default())

	// Narrow enough that the umlaut title must be cut
	pane := m.slotsPane(24)
	if !utf8.ValidString(pane) {
		t.Errorf("truncated pane is not valid UTF-8:\n%q", pane)
	}
	if strings.ContainsRune(pane, utf8.RuneError) {
		t.Errorf("truncation produced a mangled rune:\n%q", pane)
	}
	if !strings.Contains(pane, "...") {
		t.Errorf("expected the long title to be truncated:\n%s", pane)
	}
}

func TestPlanViewShowsSlots(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "SoSe 2025") || !strings.Contains(view, "WiSe 2025/2026") {
		t.Errorf("Expected semester labels in plan view, got:\n%s", view)
	}
}
