package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gruppe-adler/heightmap-pyramid/internal/resample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 512, cfg.TileSize)
	assert.Equal(t, 4, cfg.LODLevels)
	assert.Equal(t, resample.Lanczos3, cfg.Filter)
	assert.True(t, cfg.Legacy)
	assert.Equal(t, -10994.0, cfg.Elevation.MarianaDepth)
	assert.Equal(t, 8849.0, cfg.Elevation.EverestHeight)
}

func TestValidate(t *testing.T) {
	tables := []struct {
		name   string
		modify func(*Config)
	}{
		{"tile size too small", func(c *Config) { c.TileSize = 16 }},
		{"tile size too large", func(c *Config) { c.TileSize = 70000 }},
		{"negative levels", func(c *Config) { c.LODLevels = -1 }},
		{"too many levels", func(c *Config) { c.LODLevels = 58 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"unknown filter", func(c *Config) { c.Filter = "box" }},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			cfg := DefaultConfig()
			table.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateLevelBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LODLevels = MaxLODLevels
	assert.NoError(t, cfg.Validate())

	cfg.LODLevels = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartial(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pyramid.yaml")
	require.NoError(t, os.WriteFile(p, []byte("tile_size: 256\nfilter: nearest\nelevation:\n  everest_height: 9000\n"), 0644))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.TileSize)
	assert.Equal(t, resample.Nearest, cfg.Filter)
	assert.Equal(t, 4, cfg.LODLevels)
	assert.Equal(t, 9000.0, cfg.Elevation.EverestHeight)
	assert.Equal(t, -10994.0, cfg.Elevation.MarianaDepth)
}

func TestLoadConfigInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pyramid.yaml")
	require.NoError(t, os.WriteFile(p, []byte("tile_size: [1"), 0644))

	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestSaveConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "pyramid.yaml")
	require.NoError(t, CreateDefaultConfigFile(p))

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
