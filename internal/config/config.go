// Package config resolves where the snapshot and audit files live. Values
// come from an optional ~/.casetrail/config.yaml, overridden per-key by
// CASETRAIL_* environment variables, with home-directory defaults last.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir is the name of the directory casetrail keeps its files in.
const Dir = ".casetrail"

// Config carries every path and knob the binary needs.
type Config struct {
	PlanPath     string `yaml:"plan_path"`
	OutreachPath string `yaml:"outreach_path"`
	AuditPath    string `yaml:"audit_path"`
	TickSchedule string `yaml:"tick_schedule"`
	NoColor      bool   `yaml:"no_color"`
}

// Default returns the configuration rooted in the user's home directory.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	base := filepath.Join(home, Dir)
	return Config{
		PlanPath:     filepath.Join(base, "plan.json"),
		OutreachPath: filepath.Join(base, "outreach.json"),
		AuditPath:    filepath.Join(base, "audit.log"),
		TickSchedule: "@hourly",
	}, nil
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (missing file is fine), then environment overrides.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, Dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No config file; defaults and env apply.
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CASETRAIL_PLAN"); v != "" {
		cfg.PlanPath = v
	}
	if v := os.Getenv("CASETRAIL_OUTREACH"); v != "" {
		cfg.OutreachPath = v
	}
	if v := os.Getenv("CASETRAIL_AUDIT"); v != "" {
		cfg.AuditPath = v
	}
	if v := os.Getenv("CASETRAIL_TICK"); v != "" {
		cfg.TickSchedule = v
	}
	if os.Getenv("CASETRAIL_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
}
