package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lmerten/studiplan/internal/core/catalog"
	"github.com/lmerten/studiplan/internal/core/plan"
	"github.com/lmerten/studiplan/internal/core/session"
	"github.com/lmerten/studiplan/internal/core/state"
)

const testCatalog = `[
	{"title": "Optimierung", "credits": 12, "module_code": "MA-305", "group": "2.1"},
	{"title": "Numerik", "credits": 6, "module_code": "MA-201", "group": "1.2"}
]`

func newTestEnv(t *testing.T) *planEnv {
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

	sess := session.New(cat, plan.New(plan.DefaultSlots), state.DefaultSlot)
	if err := sess.Load(store, state.DefaultSlot); err != nil {
		t.Fatalf("Failed to load slot: %v", err)
	}
	return &planEnv{sess: sess, store: store}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return tc.Text
}

func TestHandlersPickUpExternalSlotEdits(t *testing.T) {
	env := newTestEnv(t)

	// Another process (CLI, TUI) writes a placement into the slot
	st := state.NewSessionState()
	st.SemesterAssignments["0"] = []string{"MA-305"}
	if err := env.store.Write(state.DefaultSlot, st); err != nil {
		t.Fatal(err)
	}

	res, err := env.handleGetProgress(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetProgress() error = %v", err)
	}
	out := resultText(t, res)
	if !strings.Contains(out, `"total_lp": 12`) {
		t.Errorf("progress should reflect the externally written placement:\n%s", out)
	}

	res, err = env.handleListCourses(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleListCourses() error = %v", err)
	}
	out = resultText(t, res)
	if !strings.Contains(out, "SoSe 2025") {
		t.Errorf("listing should show the externally written placement:\n%s", out)
	}
}

func TestAssignHandlerWritesBack(t *testing.T) {
	env := newTestEnv(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"course":         "MA-201",
		"semester_index": float64(1),
	}

	res, err := env.handleAssignCourse(context.Background(), req)
	if err != nil {
		t.Fatalf("handleAssignCourse() error = %v", err)
	}
	out := resultText(t, res)
	if !strings.Contains(out, "WiSe 2025/2026") {
		t.Errorf("unexpected result: %s", out)
	}

	st, err := env.store.Read(state.DefaultSlot)
	if err != nil {
		t.Fatalf("Failed to read slot after assign: %v", err)
	}
	if got := st.SemesterAssignments["1"]; len(got) != 1 || got[0] != "MA-201" {
		t.Errorf("placement not persisted, got %v", st.SemesterAssignments)
	}
}
