package cli

import (
	"fmt"
	"os"

	"github.com/lmerten/studiplan/internal/core/catalog"
	"github.com/lmerten/studiplan/internal/core/config"
	"github.com/lmerten/studiplan/internal/core/models"
	"github.com/lmerten/studiplan/internal/core/plan"
	"github.com/lmerten/studiplan/internal/core/session"
	"github.com/lmerten/studiplan/internal/core/state"
)

// openSession loads the catalog, opens the store and restores the selected
// save slot. A failing catalog is reported and the session continues empty;
// nothing here is fatal to the command.
func openSession() (*session.Session, state.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no catalog loaded: %v\n", err)
		cat = catalog.Empty()
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open save-slot store: %w", err)
	}

	planner := plan.New(cfg.Semesters,
		plan.WithBaseYear(cfg.BaseYear),
		plan.WithMaxCredits(cfg.MaxCredits))
	sess := session.New(cat, planner, slotName,
		session.WithCreditTarget(cfg.CreditTarget))

	if err := sess.Load(store, slotName); err != nil {
		_ = store.Close()
		return nil, nil, nil, err
	}

	return sess, store, cfg, nil
}

// findCourse resolves a course key for a command argument
func findCourse(sess *session.Session, key string) (*models.Course, error) {
	c := sess.Catalog.ByKey(key)
	if c == nil {
		return nil, fmt.Errorf("no course with module code or title %q", key)
	}
	return c, nil
}
