package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/lmerten/studiplan/internal/core/models"
)

// rawRecord represents one course entry in the catalog JSON file
type rawRecord struct {
	Title       string `json:"title,omitempty"`
	Credits     int    `json:"credits,omitempty" validate:"gte=0"`
	Description string `json:"description,omitempty"`
	ModuleCode  string `json:"module_code,omitempty"`
	Group       string `json:"group,omitempty"`
	Semester    string `json:"semester,omitempty"`
	ExamType    string `json:"exam_type,omitempty"`
	Grading     string `json:"grading,omitempty"`
}

// Catalog holds the universe of known courses. Membership is immutable for
// the lifetime of a session; only Favorite and Slot mutate on the courses.
type Catalog struct {
	Courses []*models.Course

	byKey map[string]*models.Course
}

var validate = validator.New()

// Parse reads a JSON array of course records. Records without a title are
// placeholders and skipped silently; records failing validation (negative
// credits) are skipped with a log line. All other fields default to their
// zero values.
func Parse(r io.Reader) (*Catalog, error) {
	var records []rawRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	cat := &Catalog{byKey: make(map[string]*models.Course)}
	for _, rec := range records {
		if rec.Title == "" {
			continue
		}
		if err := validate.Struct(rec); err != nil {
			log.Printf("Skipping invalid catalog record %q: %v", rec.Title, err)
			continue
		}

		course := &models.Course{
			Title:        rec.Title,
			Credits:      rec.Credits,
			Description:  rec.Description,
			ModuleCode:   rec.ModuleCode,
			Group:        rec.Group,
			Availability: models.ParseAvailability(rec.Semester),
			ExamType:     rec.ExamType,
			Grading:      rec.Grading,
			Slot:         models.NoSlot,
		}
		cat.Courses = append(cat.Courses, course)

		// No de-duplication: the first course with a given key wins lookups.
		if _, ok := cat.byKey[course.Key()]; !ok {
			cat.byKey[course.Key()] = course
		}
	}

	return cat, nil
}

// LoadFile loads the catalog from a JSON file. On any failure an empty
// catalog is returned alongside the error so the application can continue
// with nothing to plan rather than refuse to start.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Empty(), fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	cat, err := Parse(f)
	if err != nil {
		return Empty(), err
	}
	return cat, nil
}

// Empty returns a catalog with no courses
func Empty() *Catalog {
	return &Catalog{byKey: make(map[string]*models.Course)}
}

// ByKey looks up a course by its persisted identifier (module code or title
// fallback). Returns nil if no course matches.
func (c *Catalog) ByKey(key string) *models.Course {
	return c.byKey[key]
}

// Len returns the number of courses in the catalog
func (c *Catalog) Len() int {
	return len(c.Courses)
}
