package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmerten/studiplan/internal/core/config"
	"github.com/lmerten/studiplan/internal/core/state"
)

var (
	slotName    string
	dataDir     string
	catalogPath string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "studiplan",
	Short: "Semester planner for course placement and credit tracking",
	Long: `studiplan - plan courses into semesters and track graduation progress

Assign catalog courses to semester slots, watch per-semester credit totals
against the 30 LP threshold, and follow your progress toward the graduation
requirement categories. Plans live in named save slots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&slotName, "slot", state.DefaultSlot, "Save slot to operate on")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.config/studiplan)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog file (default courses.json in the data directory)")
}

// loadConfig merges the TOML config with command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	return cfg, nil
}

// openStore picks the save-slot backend configured in config.toml
func openStore(cfg *config.Config) (state.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return state.NewSQLiteStore(cfg.SlotDBPath())
	default:
		return state.NewFileStore(cfg.SavesDir())
	}
}
