package rfqspec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/glasslab/rfqspec/llm"
)

// Config holds all configuration for an analysis run.
type Config struct {
	// InputFolder is the directory scanned for vendor documents.
	InputFolder string `json:"input_folder" yaml:"input_folder"`

	// TemplatePath is the Excel spec template the results are mapped onto.
	TemplatePath string `json:"template_path" yaml:"template_path"`

	// OutputFolder receives the annotated result workbook.
	OutputFolder string `json:"output_folder" yaml:"output_folder"`

	// OutputFilename overrides the timestamped default result name.
	OutputFilename string `json:"output_filename" yaml:"output_filename"`

	// Oracle configures the LLM endpoint used for relevance judgment,
	// translation and spec extraction.
	Oracle llm.Config `json:"oracle" yaml:"oracle"`

	// RelevanceKeywords prefilter documents before the oracle is asked.
	// Empty means every document passes the keyword stage.
	RelevanceKeywords []string `json:"relevance_keywords" yaml:"relevance_keywords"`

	// CachePath is the SQLite file backing the translation cache.
	// If empty, defaults to <OutputFolder>/translations.db.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// DisableCache turns off the persistent translation cache. The
	// in-memory tier is always active.
	DisableCache bool `json:"disable_cache" yaml:"disable_cache"`

	// MatchPartialFactor discounts partial spec-name matches.
	MatchPartialFactor float64 `json:"match_partial_factor" yaml:"match_partial_factor"`

	// MatchThreshold is the minimum confidence for a mapping to be kept.
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultConfig returns a Config with sensible defaults. The oracle
// defaults to Gemini through its OpenAI-compatible endpoint; the API key
// still has to come from config, flags or the environment.
func DefaultConfig() Config {
	return Config{
		InputFolder:  "input",
		TemplatePath: filepath.Join("template", "spec_template.xlsx"),
		OutputFolder: "output",
		Oracle: llm.Config{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		RelevanceKeywords: []string{
			"display", "lcd", "oled", "tft", "panel",
			"cover glass", "touch", "spec", "specification",
		},
		MatchPartialFactor: 0.9,
		MatchThreshold:     0.3,
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks that the run can start at all. Missing inputs are
// fatal before any document is touched.
func (c *Config) Validate() error {
	if _, err := os.Stat(c.InputFolder); err != nil {
		return fmt.Errorf("%w: %s", ErrInputFolderNotFound, c.InputFolder)
	}
	if _, err := os.Stat(c.TemplatePath); err != nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, c.TemplatePath)
	}
	if c.MatchPartialFactor <= 0 || c.MatchPartialFactor > 1 {
		return fmt.Errorf("%w: match_partial_factor must be in (0, 1]", ErrInvalidConfig)
	}
	if c.MatchThreshold < 0 || c.MatchThreshold >= 1 {
		return fmt.Errorf("%w: match_threshold must be in [0, 1)", ErrInvalidConfig)
	}
	return nil
}

// resolveCachePath computes the translation cache location.
func (c *Config) resolveCachePath() string {
	if c.CachePath != "" {
		return c.CachePath
	}
	return filepath.Join(c.OutputFolder, "translations.db")
}
