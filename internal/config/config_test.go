package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".data", cfg.Data.Dir)
	assert.Equal(t, "bridges.geojson", cfg.Data.Files.Bridges)
	assert.Equal(t, "inspections.json", cfg.Data.Files.Inspections)
	assert.Equal(t, "sufficiency.json", cfg.Data.Files.Sufficiency)
	assert.Equal(t, "projects.json", cfg.Data.Files.Projects)
	assert.Equal(t, 3.0, cfg.Marker.MinRadius)
	assert.Equal(t, 10.0, cfg.Marker.MaxRadius)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdir(t)

	yaml := `
data:
  dir: /srv/bridges
  files:
    bridges: inventory.geojson
marker:
  max_radius: 14
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bridgemap.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/bridges", cfg.Data.Dir)
	assert.Equal(t, "inventory.geojson", cfg.Data.Files.Bridges)
	assert.Equal(t, 14.0, cfg.Marker.MaxRadius)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, "inspections.json", cfg.Data.Files.Inspections)
	assert.Equal(t, 3.0, cfg.Marker.MinRadius)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bridgemap.yaml"), []byte("log:\n  level: debug\n"), 0644))
	t.Setenv("BRIDGEMAP_LOG_LEVEL", "warn")
	t.Setenv("BRIDGEMAP_DATA_DIR", "/env/data")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/env/data", cfg.Data.Dir)
}

func TestLoadRejectsInvertedRadius(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bridgemap.yaml"), []byte("marker:\n  min_radius: 12\n  max_radius: 4\n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "loud"}))
}
