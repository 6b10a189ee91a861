package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lmerten/studiplan/internal/core/plan"
	"github.com/lmerten/studiplan/internal/core/requirements"
)

// DefaultReportTemplate renders the graduation progress report. Users can
// replace it by dropping a mustache template into
// ~/.config/studiplan/report_template.txt.
const DefaultReportTemplate = `Studienplan {{slot}}
{{#semesters}}
{{label}} ({{total}}/{{max}} LP){{#over}} !{{/over}}
{{#courses}}  - {{title}} ({{credits}} LP)
{{/courses}}
{{/semesters}}
Kernbereich: {{kern_current}}/{{kern_required}} LP
{{#buckets}}{{#kern}}  {{/kern}}{{name}}: {{current}}/{{required}} LP{{#satisfied}} ok{{/satisfied}}
{{/buckets}}
Gesamt: {{total}}/{{target}} LP`

// Save-slot backends
const (
	StoreFiles  = "files"
	StoreSQLite = "sqlite"
)

type Config struct {
	BaseYear       int
	Semesters      int
	MaxCredits     int
	CreditTarget   int
	Store          string // "files" or "sqlite"
	CatalogPath    string
	DataDir        string
	ReportTemplate string
}

type tomlConfig struct {
	BaseYear     int    `toml:"base_year"`
	Semesters    int    `toml:"semesters"`
	MaxCredits   int    `toml:"max_credits"`
	CreditTarget int    `toml:"credit_target"`
	Store        string `toml:"store"`
	CatalogPath  string `toml:"catalog"`
}

// Default returns the built-in configuration, without touching the
// filesystem.
func Default() *Config {
	return &Config{
		BaseYear:       plan.DefaultBaseYear,
		Semesters:      plan.DefaultSlots,
		MaxCredits:     plan.DefaultMaxCredits,
		CreditTarget:   requirements.TotalTarget,
		Store:          StoreFiles,
		ReportTemplate: DefaultReportTemplate,
	}
}

// Load reads config from ~/.config/studiplan/
func Load() (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "studiplan")
	cfg.DataDir = configDir
	cfg.CatalogPath = filepath.Join(configDir, "courses.json")

	tomlPath := filepath.Join(configDir, "config.toml")
	templatePath := filepath.Join(configDir, "report_template.txt")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.BaseYear > 0 {
				cfg.BaseYear = tc.BaseYear
			}
			if tc.Semesters > 0 {
				cfg.Semesters = tc.Semesters
			}
			if tc.MaxCredits > 0 {
				cfg.MaxCredits = tc.MaxCredits
			}
			if tc.CreditTarget > 0 {
				cfg.CreditTarget = tc.CreditTarget
			}
			if tc.Store != "" {
				cfg.Store = tc.Store
			}
			if tc.CatalogPath != "" {
				cfg.CatalogPath = tc.CatalogPath
			}
		}
	}

	// If a custom report template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.ReportTemplate = string(data)
	}

	return cfg, nil
}

// SavesDir is where the file-backed store keeps its slot files
func (c *Config) SavesDir() string {
	return filepath.Join(c.DataDir, "saves")
}

// SlotDBPath is where the SQLite-backed store keeps its database
func (c *Config) SlotDBPath() string {
	return filepath.Join(c.DataDir, "slots.db")
}
