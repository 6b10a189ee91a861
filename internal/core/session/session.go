package session

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/lmerten/studiplan/internal/core/catalog"
	"github.com/lmerten/studiplan/internal/core/models"
	"github.com/lmerten/studiplan/internal/core/plan"
	"github.com/lmerten/studiplan/internal/core/requirements"
	"github.com/lmerten/studiplan/internal/core/state"
	"github.com/lmerten/studiplan/internal/core/view"
)

// Session is the explicit aggregate for one save slot: the catalog, the
// planner, the view state and the current progress report. All mutations go
// through it so the report is recomputed before control returns to the
// caller; there is no window in which placements and report disagree.
type Session struct {
	Catalog        *catalog.Catalog
	Planner        *plan.Planner
	Filter         view.Filter
	ExpandedGroups map[string]bool
	Window         state.Window
	SlotName       string

	creditTarget int
	report       requirements.Report
}

// Option configures a Session
type Option func(*Session)

// WithCreditTarget sets the total credit target the progress report is
// computed against. Non-positive values keep the default.
func WithCreditTarget(lp int) Option {
	return func(s *Session) {
		if lp > 0 {
			s.creditTarget = lp
		}
	}
}

// New creates a session over the given catalog and planner, bound to a
// save slot name.
func New(cat *catalog.Catalog, planner *plan.Planner, slotName string, opts ...Option) *Session {
	s := &Session{
		Catalog:        cat,
		Planner:        planner,
		ExpandedGroups: make(map[string]bool),
		SlotName:       slotName,
		creditTarget:   requirements.TotalTarget,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recompute()
	return s
}

// recompute refreshes the requirement report from current placements
func (s *Session) recompute() {
	s.report = requirements.ProgressTarget(s.Planner.Assigned(), s.creditTarget)
}

// Report returns the progress report matching the current placements
func (s *Session) Report() requirements.Report {
	return s.report
}

// Assign places a course into a slot and recomputes progress
func (s *Session) Assign(course *models.Course, idx int) error {
	if err := s.Planner.Assign(course, idx); err != nil {
		return err
	}
	s.recompute()
	return nil
}

// Unassign removes a course from its slot and recomputes progress
func (s *Session) Unassign(course *models.Course) {
	s.Planner.Unassign(course)
	s.recompute()
}

// MoveAway drops a course outside every slot: removal, not an error
func (s *Session) MoveAway(course *models.Course) {
	s.Planner.MoveAway(course)
	s.recompute()
}

// ToggleFavorite flips a course's favorite flag
func (s *Session) ToggleFavorite(course *models.Course) bool {
	return view.ToggleFavorite(course)
}

// Clear empties the plan and resets favorites and view state, used before
// loading another save slot into this session.
func (s *Session) Clear() {
	s.Planner.Clear()
	for _, c := range s.Catalog.Courses {
		c.Favorite = false
	}
	s.ExpandedGroups = make(map[string]bool)
	s.recompute()
}

// Snapshot serializes the session into the persisted wire shape
func (s *Session) Snapshot() state.SessionState {
	st := state.NewSessionState()

	for idx := 0; idx < s.Planner.NumSlots(); idx++ {
		keys := []string{}
		for _, c := range s.Planner.Courses(idx) {
			keys = append(keys, c.Key())
		}
		st.SemesterAssignments[strconv.Itoa(idx)] = keys
	}

	for group, expanded := range s.ExpandedGroups {
		st.ExpandedGroups[group] = expanded
	}

	for _, c := range s.Catalog.Courses {
		if c.Favorite {
			st.Favorites = append(st.Favorites, c.Key())
		}
	}

	st.Window = s.Window
	return st
}

// Restore applies a persisted state to the session. Identifiers that no
// longer resolve against the catalog and placements that violate the
// semester rule are logged and skipped; restoration never fails.
func (s *Session) Restore(st state.SessionState) {
	s.Clear()

	for _, key := range st.Favorites {
		course := s.Catalog.ByKey(key)
		if course == nil {
			log.Printf("Skipping unknown favorite %q", key)
			continue
		}
		course.Favorite = true
	}

	for group, expanded := range st.ExpandedGroups {
		s.ExpandedGroups[group] = expanded
	}

	for idxStr, keys := range st.SemesterAssignments {
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= s.Planner.NumSlots() {
			log.Printf("Skipping assignments for invalid slot %q", idxStr)
			continue
		}
		for _, key := range keys {
			course := s.Catalog.ByKey(key)
			if course == nil {
				log.Printf("Skipping unknown course %q in slot %d", key, idx)
				continue
			}
			if err := s.Planner.Assign(course, idx); err != nil {
				log.Printf("Skipping %q in slot %d: %v", key, idx, err)
			}
		}
	}

	if st.Window.Width > 0 && st.Window.Height > 0 {
		s.Window = st.Window
	}

	s.recompute()
}

// Load reads a save slot from the store into the session. A missing slot
// is not an error: the session starts empty and the slot is created on the
// next save.
func (s *Session) Load(store state.Store, slotName string) error {
	st, err := store.Read(slotName)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			s.Clear()
			s.SlotName = slotName
			return nil
		}
		return fmt.Errorf("failed to load save slot %s: %w", slotName, err)
	}

	s.Restore(st)
	s.SlotName = slotName
	return nil
}

// Save writes the session's snapshot to its save slot
func (s *Session) Save(store state.Store) error {
	if err := store.Write(s.SlotName, s.Snapshot()); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", s.SlotName, err)
	}
	return nil
}
