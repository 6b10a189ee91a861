package plan

import (
	"errors"
	"testing"

	"github.com/lmerten/studiplan/internal/core/models"
)

func course(title string, credits int, avail models.Availability) *models.Course {
	return &models.Course{Title: title, Credits: credits, Availability: avail, Slot: models.NoSlot}
}

func TestLabels(t *testing.T) {
	p := New(6, WithBaseYear(2025))

	cases := []struct {
		idx  int
		want string
	}{
		{0, "SoSe 2025"},
		{1, "WiSe 2025/2026"},
		{2, "SoSe 2026"},
		{3, "WiSe 2026/2027"},
		{4, "SoSe 2027"},
		{5, "WiSe 2027/2028"},
	}
	for _, c := range cases {
		if got := p.Label(c.idx); got != c.want {
			t.Errorf("Label(%d) = %q, want %q", c.idx, got, c.want)
		}
	}
}

func TestAssign(t *testing.T) {
	p := New(6)
	c := course("Optimierung", 6, models.Summer)

	if err := p.Assign(c, 0); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if c.Slot != 0 {
		t.Errorf("back-reference = %d, want 0", c.Slot)
	}
	if got := p.TotalCredits(0); got != 6 {
		t.Errorf("TotalCredits(0) = %d, want 6", got)
	}
}

func TestAssignIncompatible(t *testing.T) {
	p := New(6)
	summer := course("Optimierung", 6, models.Summer)
	winter := course("Numerik", 6, models.Winter)

	// Summer course into winter slot and vice versa
	if err := p.Assign(summer, 1); !errors.Is(err, ErrIncompatibleSemester) {
		t.Errorf("expected ErrIncompatibleSemester, got %v", err)
	}
	if err := p.Assign(winter, 0); !errors.Is(err, ErrIncompatibleSemester) {
		t.Errorf("expected ErrIncompatibleSemester, got %v", err)
	}
	if summer.Assigned() || winter.Assigned() {
		t.Error("rejected assignment must not change placement state")
	}
}

func TestAssignIncompatibleKeepsPriorPlacement(t *testing.T) {
	p := New(6)
	c := course("Optimierung", 6, models.Summer)

	if err := p.Assign(c, 2); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if err := p.Assign(c, 3); !errors.Is(err, ErrIncompatibleSemester) {
		t.Fatalf("expected ErrIncompatibleSemester, got %v", err)
	}
	if c.Slot != 2 {
		t.Errorf("course should stay in slot 2, got %d", c.Slot)
	}
	if len(p.Courses(2)) != 1 || len(p.Courses(3)) != 0 {
		t.Error("prior placement must be untouched after rejection")
	}
}

func TestMoveSemantics(t *testing.T) {
	p := New(6)
	c := course("Projektarbeit", 9, models.Both)

	if err := p.Assign(c, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.Assign(c, 1); err != nil {
		t.Fatal(err)
	}

	if got := p.TotalCredits(0); got != 0 {
		t.Errorf("old slot total = %d, want 0", got)
	}
	if got := p.TotalCredits(1); got != 9 {
		t.Errorf("new slot total = %d, want 9", got)
	}
	if c.Slot != 1 {
		t.Errorf("back-reference = %d, want 1", c.Slot)
	}
}

func TestSingleSlotInvariant(t *testing.T) {
	p := New(6)
	courses := []*models.Course{
		course("A", 6, models.Unrestricted),
		course("B", 6, models.Both),
		course("C", 12, models.Summer),
	}

	// Shuffle courses through a few slots
	steps := []struct {
		c   int
		idx int
	}{
		{0, 0}, {1, 0}, {2, 0}, {0, 1}, {2, 4}, {1, 1}, {0, 2},
	}
	for _, s := range steps {
		if err := p.Assign(courses[s.c], s.idx); err != nil {
			t.Fatalf("Assign(%d, %d) error = %v", s.c, s.idx, err)
		}
	}
	p.Unassign(courses[1])

	for _, c := range courses {
		appearances := 0
		for idx := 0; idx < p.NumSlots(); idx++ {
			for _, placed := range p.Courses(idx) {
				if placed == c {
					appearances++
					if c.Slot != idx {
						t.Errorf("%s back-reference %d does not name slot %d", c.Title, c.Slot, idx)
					}
				}
			}
		}
		if appearances > 1 {
			t.Errorf("%s appears in %d slots", c.Title, appearances)
		}
		if appearances == 0 && c.Assigned() {
			t.Errorf("%s has back-reference %d but is in no slot", c.Title, c.Slot)
		}
	}
}

func TestUnassignNoop(t *testing.T) {
	p := New(6)
	c := course("A", 6, models.Unrestricted)

	// Must not panic or change anything
	p.Unassign(c)
	p.MoveAway(c)
	if c.Assigned() {
		t.Error("course should stay unassigned")
	}
}

func TestOverLimit(t *testing.T) {
	p := New(6, WithMaxCredits(30))
	a := course("A", 18, models.Unrestricted)
	b := course("B", 15, models.Unrestricted)

	if err := p.Assign(a, 0); err != nil {
		t.Fatal(err)
	}
	if p.OverLimit(0) {
		t.Error("18 LP should not exceed 30")
	}

	// Over-limit placements are allowed, only flagged
	if err := p.Assign(b, 0); err != nil {
		t.Fatalf("over-limit assignment should succeed, got %v", err)
	}
	if !p.OverLimit(0) {
		t.Error("33 LP should be flagged over-limit")
	}
	if got := p.TotalCredits(0); got != 33 {
		t.Errorf("TotalCredits = %d, want 33", got)
	}
}

func TestClear(t *testing.T) {
	p := New(6)
	a := course("A", 6, models.Unrestricted)
	b := course("B", 6, models.Both)
	if err := p.Assign(a, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.Assign(b, 3); err != nil {
		t.Fatal(err)
	}

	p.Clear()

	if a.Assigned() || b.Assigned() {
		t.Error("Clear must reset back-references")
	}
	if len(p.Assigned()) != 0 {
		t.Error("Clear must empty every slot")
	}
}

func TestAssignBadIndex(t *testing.T) {
	p := New(6)
	c := course("A", 6, models.Unrestricted)
	if err := p.Assign(c, 6); !errors.Is(err, ErrSlotIndex) {
		t.Errorf("expected ErrSlotIndex, got %v", err)
	}
	if err := p.Assign(c, -1); !errors.Is(err, ErrSlotIndex) {
		t.Errorf("expected ErrSlotIndex, got %v", err)
	}
}
