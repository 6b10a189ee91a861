package requirements

import (
	"strings"

	"github.com/lmerten/studiplan/internal/core/models"
)

// TotalTarget is the number of credits required for graduation
const TotalTarget = 120

// BucketID identifies one graduation requirement category
type BucketID int

const (
	KernInformatikMathematik BucketID = iota
	KernSimulationOptimierung
	KernMessenSteuernRegeln
	Profilbereich
	Projekt
	Freiwahlbereich
	Fachpraktikum
	Masterarbeit
)

// bucketDef is one row of the requirement table
type bucketDef struct {
	id       BucketID
	name     string
	prefix   string // group prefix that maps into this bucket
	required int
	kern     bool // part of the Kernbereich aggregate
}

// The mapping from group prefixes to buckets is an explicit table so the
// unmapped case ("5.", empty groups, unknown codes) is a visible branch.
var table = []bucketDef{
	{KernInformatikMathematik, "Informatik und Mathematik", "1.", 18, true},
	{KernSimulationOptimierung, "Simulation und Optimierung", "2.", 18, true},
	{KernMessenSteuernRegeln, "Messen, Steuern, Regeln", "3.", 12, true},
	{Profilbereich, "Profilbereich", "4.", 18, false},
	{Projekt, "Projekt", "6.", 6, false},
	{Freiwahlbereich, "Freiwahlbereich", "7.", 18, false},
	{Fachpraktikum, "Fachpraktikum", "8.", 6, false},
	{Masterarbeit, "Masterarbeit", "9.", 24, false},
}

// KernbereichRequired is the aggregate target of the three Kernbereich
// sub-buckets; it is derived, never tracked independently.
const KernbereichRequired = 48

// BucketFor returns the bucket a group code maps into. The second return
// is false for groups outside the table; those courses count toward
// nothing.
func BucketFor(group string) (BucketID, bool) {
	group = strings.TrimSpace(group)
	for _, def := range table {
		if strings.HasPrefix(group, def.prefix) {
			return def.id, true
		}
	}
	return 0, false
}

// Bucket is one category in a progress report
type Bucket struct {
	ID       BucketID
	Name     string
	Current  int
	Required int
	Kern     bool
}

// Satisfied reports whether the bucket's target is reached
func (b Bucket) Satisfied() bool {
	return b.Current >= b.Required
}

// Report is a full snapshot of graduation progress, recomputed from scratch
// on every placement change. Unmapped courses are placed but contribute to
// no bucket and not to the total.
type Report struct {
	Buckets     []Bucket // in table order
	Kernbereich Bucket   // aggregate of the three Kern sub-buckets
	Total       int      // sum over all mapped credits
	Target      int
}

// Satisfied reports whether the overall credit target is reached
func (r Report) Satisfied() bool {
	return r.Total >= r.Target
}

// Progress computes the report for the given placed courses against the
// default credit target. It is a pure function of the placements:
// deterministic and independent of call order.
func Progress(placed []*models.Course) Report {
	return ProgressTarget(placed, TotalTarget)
}

// ProgressTarget is Progress with a configurable total credit target, for
// degree programs that deviate from the 120 LP default. Non-positive
// targets fall back to the default.
func ProgressTarget(placed []*models.Course, target int) Report {
	if target <= 0 {
		target = TotalTarget
	}

	current := make(map[BucketID]int)
	for _, c := range placed {
		if id, ok := BucketFor(c.Group); ok {
			current[id] += c.Credits
		}
	}

	r := Report{Target: target}
	kern := 0
	for _, def := range table {
		b := Bucket{
			ID:       def.id,
			Name:     def.name,
			Current:  current[def.id],
			Required: def.required,
			Kern:     def.kern,
		}
		r.Buckets = append(r.Buckets, b)
		r.Total += b.Current
		if def.kern {
			kern += b.Current
		}
	}
	r.Kernbereich = Bucket{Name: "Kernbereich", Current: kern, Required: KernbereichRequired, Kern: true}

	return r
}
