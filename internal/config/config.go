// Package config provides configuration loading and validation for the
// optimization engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Config holds the engine tuning knobs. All fields are optional in the JSON
// file; missing values fall back to defaults.
type Config struct {
	// GlobalKeywordLimit is the hard ceiling on insertions per run.
	GlobalKeywordLimit int `json:"global_keyword_limit,omitempty"`
	// DensityLimit is the keyword occurrence/word-count ceiling per paragraph.
	DensityLimit float64 `json:"density_limit,omitempty"`
	// MinJobDescriptionLength rejects job descriptions shorter than this.
	MinJobDescriptionLength int `json:"min_job_description_length,omitempty"`
	// MaxMissingKeywords truncates the gap analyzer's keyword queue.
	MaxMissingKeywords int `json:"max_missing_keywords,omitempty"`
	// SectionBudgets overrides per-section insertion ceilings, keyed by
	// section name (skills, experience, projects, summary, other).
	SectionBudgets map[string]int `json:"section_budgets,omitempty"`
	// PredictTimeoutSeconds bounds one prediction-service call.
	PredictTimeoutSeconds int `json:"predict_timeout_seconds,omitempty"`
	// GeminiModel selects the prediction model.
	GeminiModel string `json:"gemini_model,omitempty"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		GlobalKeywordLimit:      15,
		DensityLimit:            0.03,
		MinJobDescriptionLength: 50,
		MaxMissingKeywords:      20,
		PredictTimeoutSeconds:   10,
		SectionBudgets: map[string]int{
			"skills":     8,
			"experience": 5,
			"projects":   4,
			"summary":    3,
			"other":      2,
		},
	}
}

// LoadConfig loads configuration from a JSON file and merges it over the
// defaults. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	merged := cfg.MergeWithDefaults(*DefaultConfig())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.GlobalKeywordLimit < 0 {
		return fmt.Errorf("config error: 'global_keyword_limit' must be non-negative")
	}
	if c.DensityLimit <= 0 || c.DensityLimit >= 1 {
		return fmt.Errorf("config error: 'density_limit' must be between 0 and 1")
	}
	if c.MinJobDescriptionLength < 0 {
		return fmt.Errorf("config error: 'min_job_description_length' must be non-negative")
	}
	for name, budget := range c.SectionBudgets {
		if budget < 0 {
			return fmt.Errorf("config error: section budget for %q must be non-negative", name)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GlobalKeywordLimit == 0 {
		result.GlobalKeywordLimit = defaults.GlobalKeywordLimit
	}
	if result.DensityLimit == 0 {
		result.DensityLimit = defaults.DensityLimit
	}
	if result.MinJobDescriptionLength == 0 {
		result.MinJobDescriptionLength = defaults.MinJobDescriptionLength
	}
	if result.MaxMissingKeywords == 0 {
		result.MaxMissingKeywords = defaults.MaxMissingKeywords
	}
	if result.PredictTimeoutSeconds == 0 {
		result.PredictTimeoutSeconds = defaults.PredictTimeoutSeconds
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}

	if result.SectionBudgets == nil {
		result.SectionBudgets = defaults.SectionBudgets
	} else {
		for name, budget := range defaults.SectionBudgets {
			if _, ok := result.SectionBudgets[name]; !ok {
				result.SectionBudgets[name] = budget
			}
		}
	}

	return result
}

// Budgets converts the JSON section budget map to the typed form the
// rebuilder consumes.
func (c *Config) Budgets() map[types.SectionType]int {
	budgets := make(map[types.SectionType]int, len(c.SectionBudgets))
	for name, budget := range c.SectionBudgets {
		budgets[types.SectionType(name)] = budget
	}
	return budgets
}
