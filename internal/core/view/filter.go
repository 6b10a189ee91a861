package view

import (
	"sort"
	"strings"

	"github.com/lmerten/studiplan/internal/core/models"
)

// UncategorizedGroup is the display bucket for courses without a group
const UncategorizedGroup = "Uncategorized"

// Filter is the catalog view configuration. Zero values mean "inactive";
// all active criteria must match (conjunction).
type Filter struct {
	Search        string              // case-insensitive substring
	Group         string              // exact group match
	Semester      models.Availability // offering filter, Unrestricted = off
	FavoritesOnly bool
}

// ToggleFavorite flips a course's favorite flag and returns the new value.
// Toggling twice restores the original state; placement is unaffected.
func ToggleFavorite(c *models.Course) bool {
	c.Favorite = !c.Favorite
	return c.Favorite
}

// Matches reports whether a single course passes every active criterion
func (f Filter) Matches(c *models.Course) bool {
	if f.Group != "" && c.Group != f.Group {
		return false
	}
	if f.Semester != models.Unrestricted && !c.Availability.OfferedIn(f.Semester) {
		return false
	}
	if f.FavoritesOnly && !c.Favorite {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Title), needle) &&
			!strings.Contains(strings.ToLower(c.Description), needle) &&
			!strings.Contains(strings.ToLower(c.ModuleCode), needle) &&
			!strings.Contains(strings.ToLower(c.Group), needle) {
			return false
		}
	}
	return true
}

// Apply returns the courses passing the filter, preserving catalog order
func (f Filter) Apply(courses []*models.Course) []*models.Course {
	var out []*models.Course
	for _, c := range courses {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// Group is one display cluster of the filtered catalog
type Group struct {
	Name    string
	Courses []*models.Course
}

// GroupCourses clusters courses by their group field for display. Courses
// without a group land in the Uncategorized cluster; clusters are sorted by
// name for a stable order, courses keep catalog order within each cluster.
func GroupCourses(courses []*models.Course) []Group {
	byName := make(map[string][]*models.Course)
	for _, c := range courses {
		name := c.Group
		if name == "" {
			name = UncategorizedGroup
		}
		byName[name] = append(byName[name], c)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Name: name, Courses: byName[name]})
	}
	return groups
}

// GroupNames returns the distinct group names present in the catalog,
// sorted, for populating filter choices.
func GroupNames(courses []*models.Course) []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range courses {
		if c.Group != "" && !seen[c.Group] {
			seen[c.Group] = true
			names = append(names, c.Group)
		}
	}
	sort.Strings(names)
	return names
}
