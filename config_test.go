package rfqspec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
input_folder: /data/rfq
oracle:
  provider: ollama
  model: llama3.1:8b
match_threshold: 0.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.InputFolder != "/data/rfq" {
		t.Errorf("InputFolder = %q", cfg.InputFolder)
	}
	if cfg.Oracle.Provider != "ollama" {
		t.Errorf("Oracle.Provider = %q", cfg.Oracle.Provider)
	}
	if cfg.MatchThreshold != 0.5 {
		t.Errorf("MatchThreshold = %v", cfg.MatchThreshold)
	}
	// Untouched fields keep their defaults.
	if cfg.MatchPartialFactor != 0.9 {
		t.Errorf("MatchPartialFactor = %v, want default 0.9", cfg.MatchPartialFactor)
	}
	if cfg.OutputFolder != "output" {
		t.Errorf("OutputFolder = %q, want default", cfg.OutputFolder)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.xlsx")
	if err := os.WriteFile(templatePath, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	valid := DefaultConfig()
	valid.InputFolder = dir
	valid.TemplatePath = templatePath

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing input folder",
			mutate:  func(c *Config) { c.InputFolder = filepath.Join(dir, "absent") },
			wantErr: ErrInputFolderNotFound,
		},
		{
			name:    "missing template",
			mutate:  func(c *Config) { c.TemplatePath = filepath.Join(dir, "absent.xlsx") },
			wantErr: ErrTemplateNotFound,
		},
		{
			name:    "partial factor out of range",
			mutate:  func(c *Config) { c.MatchPartialFactor = 1.5 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "threshold out of range",
			mutate:  func(c *Config) { c.MatchThreshold = 1.0 },
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveCachePath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.resolveCachePath(); got != filepath.Join("output", "translations.db") {
		t.Errorf("default cache path = %q", got)
	}

	cfg.CachePath = "/tmp/cache.db"
	if got := cfg.resolveCachePath(); got != "/tmp/cache.db" {
		t.Errorf("explicit cache path = %q", got)
	}
}
