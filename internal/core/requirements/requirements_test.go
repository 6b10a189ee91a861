package requirements

import (
	"testing"

	"github.com/lmerten/studiplan/internal/core/models"
)

func placed(group string, credits int) *models.Course {
	return &models.Course{Title: group, Group: group, Credits: credits, Slot: 0}
}

func bucket(t *testing.T, r Report, id BucketID) Bucket {
	t.Helper()
	for _, b := range r.Buckets {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("bucket %d not in report", id)
	return Bucket{}
}

func TestBucketFor(t *testing.T) {
	cases := []struct {
		group string
		want  BucketID
		ok    bool
	}{
		{"1.", KernInformatikMathematik, true},
		{"1.3", KernInformatikMathematik, true},
		{"2.3", KernSimulationOptimierung, true},
		{"3.1", KernMessenSteuernRegeln, true},
		{"4.", Profilbereich, true},
		{"6.", Projekt, true},
		{"7.2", Freiwahlbereich, true},
		{"8.", Fachpraktikum, true},
		{"9.", Masterarbeit, true},
		{" 2.1 ", KernSimulationOptimierung, true}, // whitespace trimmed
		{"5.", 0, false},                           // never mapped
		{"", 0, false},
		{"X.", 0, false},
	}

	for _, c := range cases {
		id, ok := BucketFor(c.group)
		if ok != c.ok {
			t.Errorf("BucketFor(%q) ok = %v, want %v", c.group, ok, c.ok)
			continue
		}
		if ok && id != c.want {
			t.Errorf("BucketFor(%q) = %v, want %v", c.group, id, c.want)
		}
	}
}

func TestProgressAggregation(t *testing.T) {
	courses := []*models.Course{
		placed("1.", 6),
		placed("1.2", 12),
		placed("2.3", 6),
		placed("4.1", 9),
	}

	r := Progress(courses)

	if got := bucket(t, r, KernInformatikMathematik).Current; got != 18 {
		t.Errorf("Informatik und Mathematik = %d, want 18", got)
	}
	if got := bucket(t, r, KernSimulationOptimierung).Current; got != 6 {
		t.Errorf("Simulation und Optimierung = %d, want 6", got)
	}
	if got := bucket(t, r, Profilbereich).Current; got != 9 {
		t.Errorf("Profilbereich = %d, want 9", got)
	}
	if r.Kernbereich.Current != 24 {
		t.Errorf("Kernbereich aggregate = %d, want 24", r.Kernbereich.Current)
	}
	if r.Total != 33 {
		t.Errorf("Total = %d, want 33", r.Total)
	}
}

func TestProgressUnmappedExcluded(t *testing.T) {
	courses := []*models.Course{
		placed("5.1", 6), // "5." is never mapped
		placed("", 9),
		placed("2.1", 6),
	}

	r := Progress(courses)

	if r.Total != 6 {
		t.Errorf("Total = %d, want 6 (unmapped courses excluded)", r.Total)
	}
	sum := 0
	for _, b := range r.Buckets {
		sum += b.Current
	}
	if sum != r.Total {
		t.Errorf("bucket sum %d != total %d", sum, r.Total)
	}
}

func TestProgressSatisfied(t *testing.T) {
	r := Progress([]*models.Course{placed("3.1", 12)})
	b := bucket(t, r, KernMessenSteuernRegeln)
	if !b.Satisfied() {
		t.Errorf("12/12 LP should satisfy the bucket")
	}
	if r.Satisfied() {
		t.Error("12/120 LP must not satisfy the overall target")
	}

	// Over-fulfilled buckets stay satisfied and keep their raw totals
	r = Progress([]*models.Course{placed("6.", 18)})
	b = bucket(t, r, Projekt)
	if !b.Satisfied() || b.Current != 18 {
		t.Errorf("over-fulfilled bucket: got %d/%d", b.Current, b.Required)
	}
}

func TestProgressTarget(t *testing.T) {
	courses := []*models.Course{placed("2.1", 60), placed("9.", 30)}

	r := ProgressTarget(courses, 90)
	if r.Target != 90 {
		t.Errorf("Target = %d, want 90", r.Target)
	}
	if !r.Satisfied() {
		t.Errorf("90/90 LP should satisfy the custom target")
	}

	// Non-positive targets fall back to the default
	r = ProgressTarget(courses, 0)
	if r.Target != TotalTarget {
		t.Errorf("Target = %d, want default %d", r.Target, TotalTarget)
	}
}

func TestProgressEmpty(t *testing.T) {
	r := Progress(nil)
	if r.Total != 0 || r.Kernbereich.Current != 0 {
		t.Error("empty placement should yield a zero report")
	}
	if len(r.Buckets) != 8 {
		t.Errorf("report should list all 8 buckets, got %d", len(r.Buckets))
	}
	if r.Target != TotalTarget {
		t.Errorf("Target = %d, want %d", r.Target, TotalTarget)
	}
}
