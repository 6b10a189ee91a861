package models

import "errors"

// NoSlot marks a course that is not assigned to any semester slot.
const NoSlot = -1

// Availability describes in which semester type a course is offered
type Availability int

const (
	// Unrestricted means the catalog carries no offering information;
	// the course may be planned into any slot.
	Unrestricted Availability = iota
	Summer
	Winter
	Both
)

// ParseAvailability maps the catalog's semester strings ("SoSe", "WiSe",
// "SoSe/WiSe", "WiSe/SoSe") to an Availability. Unknown or empty values
// mean Unrestricted.
func ParseAvailability(s string) Availability {
	switch s {
	case "SoSe":
		return Summer
	case "WiSe":
		return Winter
	case "SoSe/WiSe", "WiSe/SoSe":
		return Both
	default:
		return Unrestricted
	}
}

// String returns the catalog representation of the availability
func (a Availability) String() string {
	switch a {
	case Summer:
		return "SoSe"
	case Winter:
		return "WiSe"
	case Both:
		return "SoSe/WiSe"
	default:
		return ""
	}
}

// FitsSummer reports whether the course may be placed into a summer slot
func (a Availability) FitsSummer() bool {
	return a != Winter
}

// FitsWinter reports whether the course may be placed into a winter slot
func (a Availability) FitsWinter() bool {
	return a != Summer
}

// OfferedIn reports whether the course is explicitly offered in the given
// semester type. Unlike the placement check, Unrestricted courses do not
// match here: an offering filter for "SoSe" only shows courses the catalog
// actually lists for summer.
func (a Availability) OfferedIn(filter Availability) bool {
	switch filter {
	case Summer:
		return a == Summer || a == Both
	case Winter:
		return a == Winter || a == Both
	default:
		return true
	}
}

// Course represents one catalog entry. Courses are owned by the catalog and
// referenced, never copied, by the planner.
type Course struct {
	Title        string
	Credits      int // LP
	Description  string
	ModuleCode   string
	Group        string // requirement group code, e.g. "2.3"; empty = uncategorized
	Availability Availability
	ExamType     string
	Grading      string
	Favorite     bool
	Slot         int // index of the assigned semester slot, NoSlot if unplaced
}

// Key returns the identifier used to persist references to this course:
// the module code, falling back to the title for courses without one.
// Two courses sharing a title and lacking codes are ambiguous on restore;
// the first catalog match wins.
func (c *Course) Key() string {
	if c.ModuleCode != "" {
		return c.ModuleCode
	}
	return c.Title
}

// Assigned reports whether the course currently occupies a semester slot
func (c *Course) Assigned() bool {
	return c.Slot != NoSlot
}

// Validate checks if the course has required fields
func (c *Course) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if c.Credits < 0 {
		return errors.New("credits must not be negative")
	}
	return nil
}
