package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"ASANA_TOKEN", "TEMPLATE_PROJECT_GID", "ESTIMATED_COST_FIELD",
		"ACTUAL_COST_FIELD", "PUBLIC_BASE_URL", "PORT", "LISTEN_ADDR", "RECONCILE_CONCURRENCY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Budget", cfg.EstimatedCostField)
	assert.Equal(t, "Actual Cost", cfg.ActualCostField)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 4, cfg.ReconcileConcurrency)
	assert.Empty(t, cfg.AsanaToken)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("token and project", func(t *testing.T) {
		t.Setenv("ASANA_TOKEN", "tok")
		t.Setenv("TEMPLATE_PROJECT_GID", "1234")

		cfg := &Config{}
		cfg.applyDefaults()
		cfg.applyEnvOverrides()

		assert.Equal(t, "tok", cfg.AsanaToken)
		assert.Equal(t, "1234", cfg.TemplateProjectGID)
	})

	t.Run("PORT sets listen address", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("LISTEN_ADDR", "")

		cfg := &Config{}
		cfg.applyDefaults()
		cfg.applyEnvOverrides()

		assert.Equal(t, ":9000", cfg.ListenAddr)
	})

	t.Run("LISTEN_ADDR wins over PORT", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("LISTEN_ADDR", "127.0.0.1:9100")

		cfg := &Config{}
		cfg.applyDefaults()
		cfg.applyEnvOverrides()

		assert.Equal(t, "127.0.0.1:9100", cfg.ListenAddr)
	})

	t.Run("invalid concurrency is ignored", func(t *testing.T) {
		t.Setenv("RECONCILE_CONCURRENCY", "zero")

		cfg := &Config{}
		cfg.applyDefaults()
		cfg.applyEnvOverrides()

		assert.Equal(t, 4, cfg.ReconcileConcurrency)
	})

	t.Run("field names", func(t *testing.T) {
		t.Setenv("ESTIMATED_COST_FIELD", "Estimate")
		t.Setenv("ACTUAL_COST_FIELD", "Spent")

		cfg := &Config{}
		cfg.applyDefaults()
		cfg.applyEnvOverrides()

		assert.Equal(t, "Estimate", cfg.EstimatedCostField)
		assert.Equal(t, "Spent", cfg.ActualCostField)
	})
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ASANA_TOKEN", "")
	t.Setenv("TEMPLATE_PROJECT_GID", "")

	dir := filepath.Join(home, ".config", xdgAppName)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile),
		[]byte(`{"asana_token":"file-tok","template_project_gid":"42","listen_addr":":7000"}`), 0600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-tok", cfg.AsanaToken)
	assert.Equal(t, "42", cfg.TemplateProjectGID)
	assert.Equal(t, ":7000", cfg.ListenAddr)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	require.Error(t, cfg.Validate())

	cfg.AsanaToken = "tok"
	require.Error(t, cfg.Validate())

	cfg.TemplateProjectGID = "1234"
	require.NoError(t, cfg.Validate())
}
