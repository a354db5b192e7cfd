package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_RootsPathsInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, Dir, "plan.json"), cfg.PlanPath)
	assert.Equal(t, filepath.Join(home, Dir, "outreach.json"), cfg.OutreachPath)
	assert.Equal(t, filepath.Join(home, Dir, "audit.log"), cfg.AuditPath)
	assert.Equal(t, "@hourly", cfg.TickSchedule)
	assert.False(t, cfg.NoColor)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, Dir, "plan.json"), cfg.PlanPath)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"plan_path: /data/plan.json\ntick_schedule: \"*/30 * * * *\"\nno_color: true\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/plan.json", cfg.PlanPath)
	assert.Equal(t, "*/30 * * * *", cfg.TickSchedule)
	assert.True(t, cfg.NoColor)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, filepath.Join(home, Dir, "outreach.json"), cfg.OutreachPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plan_path: /data/plan.json\n"), 0o644))

	t.Setenv("CASETRAIL_PLAN", "/env/plan.json")
	t.Setenv("CASETRAIL_TICK", "@daily")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/plan.json", cfg.PlanPath)
	assert.Equal(t, "@daily", cfg.TickSchedule)
}

func TestLoad_NoColorEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.NoColor)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plan_path: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
