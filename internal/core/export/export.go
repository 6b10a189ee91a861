package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/cbroglie/mustache"

	"github.com/lmerten/studiplan/internal/core/session"
)

// Report renders the session's plan and graduation progress through a
// mustache template and writes it to w.
func Report(s *session.Session, template string, w io.Writer) error {
	out, err := mustache.Render(template, reportContext(s))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// RenderReport is Report into a string, for clipboard export
func RenderReport(s *session.Session, template string) (string, error) {
	out, err := mustache.Render(template, reportContext(s))
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

func reportContext(s *session.Session) map[string]interface{} {
	r := s.Report()

	var semesters []map[string]interface{}
	for idx := 0; idx < s.Planner.NumSlots(); idx++ {
		var courses []map[string]interface{}
		for _, c := range s.Planner.Courses(idx) {
			courses = append(courses, map[string]interface{}{
				"title":   c.Title,
				"code":    c.ModuleCode,
				"credits": c.Credits,
				"group":   c.Group,
			})
		}
		semesters = append(semesters, map[string]interface{}{
			"label":   s.Planner.Label(idx),
			"total":   s.Planner.TotalCredits(idx),
			"max":     s.Planner.MaxCredits(),
			"over":    s.Planner.OverLimit(idx),
			"courses": courses,
		})
	}

	var buckets []map[string]interface{}
	for _, b := range r.Buckets {
		buckets = append(buckets, map[string]interface{}{
			"name":      b.Name,
			"current":   b.Current,
			"required":  b.Required,
			"satisfied": b.Satisfied(),
			"kern":      b.Kern,
		})
	}

	return map[string]interface{}{
		"slot":          s.SlotName,
		"semesters":     semesters,
		"buckets":       buckets,
		"kern_current":  r.Kernbereich.Current,
		"kern_required": r.Kernbereich.Required,
		"total":         r.Total,
		"target":        r.Target,
		"satisfied":     r.Satisfied(),
	}
}

// semesterSpan returns the calendar range of a slot: summer semesters run
// April through September, winter semesters October through March.
func semesterSpan(s *session.Session, idx int) (time.Time, time.Time) {
	year := s.Planner.Year(idx)
	if s.Planner.IsSummer(idx) {
		return time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.September, 30, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.October, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
}

// ICS writes the plan as an iCalendar file: one all-day event per placed
// course spanning its semester, so the plan overlays a regular calendar.
func ICS(s *session.Session, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//studiplan//plan export//DE")

	now := time.Now()
	for idx := 0; idx < s.Planner.NumSlots(); idx++ {
		start, end := semesterSpan(s, idx)
		label := s.Planner.Label(idx)

		for i, c := range s.Planner.Courses(idx) {
			event := cal.AddEvent(fmt.Sprintf("%d-%d-%s@studiplan", idx, i, c.Key()))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetModifiedAt(now)
			event.SetAllDayStartAt(start)
			event.SetAllDayEndAt(end)
			event.SetSummary(fmt.Sprintf("%s (%d LP)", c.Title, c.Credits))

			description := fmt.Sprintf("Semester: %s\nGroup: %s\nExam: %s", label, c.Group, c.ExamType)
			event.SetDescription(description)
			if c.ModuleCode != "" {
				event.SetLocation(c.ModuleCode)
			}
		}
	}

	return cal.SerializeTo(w)
}
