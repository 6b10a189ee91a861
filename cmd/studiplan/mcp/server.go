package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lmerten/studiplan/internal/core/catalog"
	"github.com/lmerten/studiplan/internal/core/config"
	"github.com/lmerten/studiplan/internal/core/models"
	"github.com/lmerten/studiplan/internal/core/plan"
	"github.com/lmerten/studiplan/internal/core/session"
	"github.com/lmerten/studiplan/internal/core/state"
	"github.com/lmerten/studiplan/internal/core/view"
)

// CourseInfo represents one course in tool results
type CourseInfo struct {
	Title        string `json:"title"`
	ModuleCode   string `json:"module_code,omitempty"`
	Credits      int    `json:"credits"`
	Group        string `json:"group,omitempty"`
	Availability string `json:"availability,omitempty"`
	Favorite     bool   `json:"favorite,omitempty"`
	Semester     string `json:"semester,omitempty"` // label of the assigned slot
}

// BucketInfo represents one requirement category in the progress result
type BucketInfo struct {
	Name      string `json:"name"`
	Current   int    `json:"current"`
	Required  int    `json:"required"`
	Satisfied bool   `json:"satisfied"`
}

// planEnv bundles the session and store the tool handlers operate on
type planEnv struct {
	sess  *session.Session
	store state.Store
}

// reload re-reads the save slot so edits made outside the server (CLI, TUI)
// are visible to every tool call.
func (e *planEnv) reload() error {
	return e.sess.Load(e.store, e.sess.SlotName)
}

// StartServer starts the MCP server over stdio
func StartServer(cfg *config.Config, slotName string) error {
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Printf("No catalog loaded: %v", err)
		cat = catalog.Empty()
	}

	var store state.Store
	switch cfg.Store {
	case config.StoreSQLite:
		store, err = state.NewSQLiteStore(cfg.SlotDBPath())
	default:
		store, err = state.NewFileStore(cfg.SavesDir())
	}
	if err != nil {
		return fmt.Errorf("failed to open save-slot store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("Error closing store: %v", closeErr)
		}
	}()

	planner := plan.New(cfg.Semesters,
		plan.WithBaseYear(cfg.BaseYear),
		plan.WithMaxCredits(cfg.MaxCredits))
	sess := session.New(cat, planner, slotName,
		session.WithCreditTarget(cfg.CreditTarget))
	if err := sess.Load(store, slotName); err != nil {
		return err
	}

	env := &planEnv{sess: sess, store: store}

	s := server.NewMCPServer(
		"studiplan",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_courses",
		mcp.WithDescription("List catalog courses with their credits, requirement group and current placement. Filters combine (AND)."),
		mcp.WithString("search",
			mcp.Description("Case-insensitive search across title, description, module code and group")),
		mcp.WithString("group",
			mcp.Description("Filter by exact requirement group, e.g. '2.1'")),
		mcp.WithString("semester",
			mcp.Description("Filter by offering semester: 'SoSe' or 'WiSe'")),
		mcp.WithBoolean("favorites_only",
			mcp.Description("Only list favorited courses")),
	)
	s.AddTool(listTool, env.handleListCourses)

	assignTool := mcp.NewTool("assign_course",
		mcp.WithDescription("Place a course into a semester slot (0-based index). Moves the course if it is already placed. Rejects placements violating the summer/winter offering of the course."),
		mcp.WithString("course",
			mcp.Required(),
			mcp.Description("Module code, or title for courses without one")),
		mcp.WithNumber("semester_index",
			mcp.Required(),
			mcp.Description("Slot index, 0-based; even = summer, odd = winter")),
	)
	s.AddTool(assignTool, env.handleAssignCourse)

	unassignTool := mcp.NewTool("unassign_course",
		mcp.WithDescription("Remove a course from its semester slot. No-op if unplaced."),
		mcp.WithString("course",
			mcp.Required(),
			mcp.Description("Module code, or title for courses without one")),
	)
	s.AddTool(unassignTool, env.handleUnassignCourse)

	progressTool := mcp.NewTool("get_progress",
		mcp.WithDescription("Get per-semester credit totals and graduation requirement progress for the current plan"),
	)
	s.AddTool(progressTool, env.handleGetProgress)

	slotsTool := mcp.NewTool("list_slots",
		mcp.WithDescription("List the named save slots holding alternative plans"),
	)
	s.AddTool(slotsTool, env.handleListSlots)

	return server.ServeStdio(s)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (e *planEnv) handleListCourses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := e.reload(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filter := view.Filter{
		Search:        request.GetString("search", ""),
		Group:         request.GetString("group", ""),
		Semester:      models.ParseAvailability(request.GetString("semester", "")),
		FavoritesOnly: request.GetBool("favorites_only", false),
	}

	var infos []CourseInfo
	for _, c := range filter.Apply(e.sess.Catalog.Courses) {
		info := CourseInfo{
			Title:        c.Title,
			ModuleCode:   c.ModuleCode,
			Credits:      c.Credits,
			Group:        c.Group,
			Availability: c.Availability.String(),
			Favorite:     c.Favorite,
		}
		if c.Assigned() {
			info.Semester = e.sess.Planner.Label(c.Slot)
		}
		infos = append(infos, info)
	}

	return jsonResult(infos)
}

func (e *planEnv) handleAssignCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := e.reload(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := request.GetString("course", "")
	course := e.sess.Catalog.ByKey(key)
	if course == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no course with key %q", key)), nil
	}

	idx := request.GetInt("semester_index", -1)
	if err := e.sess.Assign(course, idx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := e.sess.Save(e.store); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("placement done but save failed: %v", err)), nil
	}

	msg := fmt.Sprintf("Placed %s into %s (%d/%d LP)", course.Title, e.sess.Planner.Label(idx),
		e.sess.Planner.TotalCredits(idx), e.sess.Planner.MaxCredits())
	if e.sess.Planner.OverLimit(idx) {
		msg += " - over the credit threshold"
	}
	return mcp.NewToolResultText(msg), nil
}

func (e *planEnv) handleUnassignCourse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := e.reload(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := request.GetString("course", "")
	course := e.sess.Catalog.ByKey(key)
	if course == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no course with key %q", key)), nil
	}

	if !course.Assigned() {
		return mcp.NewToolResultText(fmt.Sprintf("%s is not placed in any semester", course.Title)), nil
	}

	label := e.sess.Planner.Label(course.Slot)
	e.sess.Unassign(course)
	if err := e.sess.Save(e.store); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("removal done but save failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Removed %s from %s", course.Title, label)), nil
}

func (e *planEnv) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := e.reload(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := e.sess.Report()

	semesters := make(map[string]interface{})
	for idx := 0; idx < e.sess.Planner.NumSlots(); idx++ {
		var titles []string
		for _, c := range e.sess.Planner.Courses(idx) {
			titles = append(titles, fmt.Sprintf("%s (%d LP)", c.Title, c.Credits))
		}
		semesters[e.sess.Planner.Label(idx)] = map[string]interface{}{
			"total_lp":   e.sess.Planner.TotalCredits(idx),
			"max_lp":     e.sess.Planner.MaxCredits(),
			"over_limit": e.sess.Planner.OverLimit(idx),
			"courses":    titles,
		}
	}

	buckets := []BucketInfo{{
		Name:      r.Kernbereich.Name,
		Current:   r.Kernbereich.Current,
		Required:  r.Kernbereich.Required,
		Satisfied: r.Kernbereich.Satisfied(),
	}}
	for _, b := range r.Buckets {
		name := b.Name
		if b.Kern {
			name = "Kernbereich / " + name
		}
		buckets = append(buckets, BucketInfo{
			Name:      name,
			Current:   b.Current,
			Required:  b.Required,
			Satisfied: b.Satisfied(),
		})
	}

	return jsonResult(map[string]interface{}{
		"save_slot": e.sess.SlotName,
		"semesters": semesters,
		"buckets":   buckets,
		"total_lp":  r.Total,
		"target_lp": r.Target,
		"satisfied": r.Satisfied(),
	})
}

func (e *planEnv) handleListSlots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := e.store.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list save slots: %v", err)), nil
	}

	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}
