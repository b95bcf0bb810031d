package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CIM_MAPPING_CONFIG", "CIM_MAPPING_DSN", "CIM_MAPPING_TABLE", "CIM_MAPPING_OUT", "CIM_MAPPING_METRICS_FILE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cim-mapping.yaml")
	content := `
database:
  dsn: postgres://user@localhost/cim
  table: model_triples
output:
  scl_path: out/model.scd
  inventory_xlsx: out/inventory.xlsx
scl:
  version: "2007"
  revision: "B"
  release: "5"
  tool_id: grid-tool
log_queries: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CIM_MAPPING_CONFIG", path)
	t.Setenv("CIM_MAPPING_TABLE", "override_triples")
	t.Setenv("CIM_MAPPING_METRICS_FILE", "out/cim.prom")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://user@localhost/cim", cfg.Database.DSN)
	assert.Equal(t, "override_triples", cfg.Database.Table)
	assert.Equal(t, "out/model.scd", cfg.Output.SCLPath)
	assert.Equal(t, "out/inventory.xlsx", cfg.Output.InventoryXLSX)
	assert.Equal(t, "out/cim.prom", cfg.Output.MetricsTextfile)
	assert.Equal(t, "5", cfg.SCL.Release)
	assert.Equal(t, "grid-tool", cfg.SCL.ToolID)
	assert.True(t, cfg.LogQuery)
}

func TestLoadValidation(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  table: \"\"\n"), 0o600))

	_, err := Load(path)
	assert.EqualError(t, err, "config: database table required")
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
