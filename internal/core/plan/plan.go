package plan

import (
	"errors"
	"fmt"

	"github.com/lmerten/studiplan/internal/core/models"
)

// ErrIncompatibleSemester is returned when a course restricted to one
// semester type is assigned to a slot of the other type. The placement
// state is unchanged when this is returned.
var ErrIncompatibleSemester = errors.New("course is not offered in this semester")

// ErrSlotIndex is returned for slot indexes outside the planner's range
var ErrSlotIndex = errors.New("no such semester slot")

const (
	DefaultSlots      = 6
	DefaultBaseYear   = 2025
	DefaultMaxCredits = 30
)

// Slot is one planning period. It holds non-owning references to courses in
// insertion order; the courses themselves belong to the catalog.
type Slot struct {
	Courses []*models.Course
}

// Planner maintains the fixed sequence of semester slots and the
// many-to-one mapping of courses onto them. Even slot indexes are summer
// semesters, odd indexes winter, starting from the configured base year.
type Planner struct {
	slots      []Slot
	baseYear   int
	maxCredits int
}

// Option configures a Planner
type Option func(*Planner)

// WithBaseYear sets the year of the first (summer) slot
func WithBaseYear(year int) Option {
	return func(p *Planner) { p.baseYear = year }
}

// WithMaxCredits sets the per-slot credit warning threshold
func WithMaxCredits(lp int) Option {
	return func(p *Planner) { p.maxCredits = lp }
}

// New creates a planner with the given number of semester slots
func New(numSlots int, opts ...Option) *Planner {
	if numSlots <= 0 {
		numSlots = DefaultSlots
	}
	p := &Planner{
		slots:      make([]Slot, numSlots),
		baseYear:   DefaultBaseYear,
		maxCredits: DefaultMaxCredits,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NumSlots returns the number of semester slots
func (p *Planner) NumSlots() int {
	return len(p.slots)
}

// MaxCredits returns the per-slot credit warning threshold
func (p *Planner) MaxCredits() int {
	return p.maxCredits
}

// IsSummer reports whether the slot at idx is a summer semester. Slot type
// derives from the index parity, never from the label text.
func (p *Planner) IsSummer(idx int) bool {
	return idx%2 == 0
}

// Year returns the calendar year a slot starts in
func (p *Planner) Year(idx int) int {
	return p.baseYear + idx/2
}

// Label returns the display name of a slot, e.g. "SoSe 2025" or
// "WiSe 2025/2026".
func (p *Planner) Label(idx int) string {
	year := p.baseYear + idx/2
	if p.IsSummer(idx) {
		return fmt.Sprintf("SoSe %d", year)
	}
	return fmt.Sprintf("WiSe %d/%d", year, year+1)
}

// Courses returns the courses assigned to a slot in display order
func (p *Planner) Courses(idx int) []*models.Course {
	if idx < 0 || idx >= len(p.slots) {
		return nil
	}
	return p.slots[idx].Courses
}

// compatible checks the placement rule: unrestricted and both-semester
// courses fit everywhere, restricted courses only match their slot type.
func (p *Planner) compatible(course *models.Course, idx int) bool {
	if p.IsSummer(idx) {
		return course.Availability.FitsSummer()
	}
	return course.Availability.FitsWinter()
}

// Assign places a course into the slot at idx. A course already placed
// elsewhere is moved: removed from its old slot and appended to the new one
// in one step. Exceeding the slot's credit threshold is allowed; it only
// shows up in totals. Returns ErrIncompatibleSemester without touching any
// state when the semester types do not match.
func (p *Planner) Assign(course *models.Course, idx int) error {
	if idx < 0 || idx >= len(p.slots) {
		return fmt.Errorf("%w: %d", ErrSlotIndex, idx)
	}
	if !p.compatible(course, idx) {
		return fmt.Errorf("%w: %s is only offered in %s", ErrIncompatibleSemester, course.Title, course.Availability)
	}

	if course.Assigned() {
		p.remove(course)
	}

	p.slots[idx].Courses = append(p.slots[idx].Courses, course)
	course.Slot = idx
	return nil
}

// Unassign removes a course from its slot. Unplaced courses are a no-op.
func (p *Planner) Unassign(course *models.Course) {
	if !course.Assigned() {
		return
	}
	p.remove(course)
}

// MoveAway handles a course dragged outside every valid target: it is
// removed from its slot and not re-inserted anywhere.
func (p *Planner) MoveAway(course *models.Course) {
	p.Unassign(course)
}

func (p *Planner) remove(course *models.Course) {
	idx := course.Slot
	if idx < 0 || idx >= len(p.slots) {
		course.Slot = models.NoSlot
		return
	}
	courses := p.slots[idx].Courses
	for i, c := range courses {
		if c == course {
			p.slots[idx].Courses = append(courses[:i], courses[i+1:]...)
			break
		}
	}
	course.Slot = models.NoSlot
}

// TotalCredits sums the credits of all courses in a slot
func (p *Planner) TotalCredits(idx int) int {
	total := 0
	for _, c := range p.Courses(idx) {
		total += c.Credits
	}
	return total
}

// OverLimit reports whether a slot's total exceeds the credit threshold.
// This is a warning state, not an error: placement still succeeds.
func (p *Planner) OverLimit(idx int) bool {
	return p.TotalCredits(idx) > p.maxCredits
}

// Assigned returns all placed courses in slot order
func (p *Planner) Assigned() []*models.Course {
	var out []*models.Course
	for i := range p.slots {
		out = append(out, p.slots[i].Courses...)
	}
	return out
}

// Clear empties every slot, used when switching save slots. The courses
// survive in the catalog with their back-references reset.
func (p *Planner) Clear() {
	for i := range p.slots {
		for _, c := range p.slots[i].Courses {
			c.Slot = models.NoSlot
		}
		p.slots[i].Courses = nil
	}
}
