// Package config provides configuration loading and management for
// heightmap-pyramid. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gruppe-adler/heightmap-pyramid/internal/grid"
	"github.com/gruppe-adler/heightmap-pyramid/internal/resample"
	"github.com/gruppe-adler/heightmap-pyramid/internal/tile"
	"gopkg.in/yaml.v3"
)

// MaxLODLevels bounds lod_levels. Far below it every level is already a
// single pixel.
const MaxLODLevels = 31

// Config represents the application configuration loaded from YAML
type Config struct {
	// TileSize is the nominal edge of level 0 tiles in pixels
	TileSize int `yaml:"tile_size"`

	// LODLevels is the number of levels including level 0, 0 picks enough
	// levels for the coarsest one to fit into a single tile
	LODLevels int `yaml:"lod_levels"`

	// Filter names the resampling kernel used for levels above 0
	Filter resample.Filter `yaml:"filter"`

	// Workers bounds the number of tiles encoded and written concurrently
	Workers int `yaml:"workers"`

	// Legacy enables the flat level 0 copy and the version 1 document
	Legacy bool `yaml:"legacy"`

	// Elevation describes how normalized values map to metres
	Elevation struct {
		MarianaDepth  float64 `yaml:"mariana_depth"`
		EverestHeight float64 `yaml:"everest_height"`
	} `yaml:"elevation"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{
		TileSize:  512,
		LODLevels: 4,
		Filter:    resample.Lanczos3,
		Workers:   runtime.NumCPU(),
		Legacy:    true,
	}

	cfg.Elevation.MarianaDepth = -10994.0
	cfg.Elevation.EverestHeight = 8849.0

	return cfg
}

// Validate reports the first setting that cannot produce a pyramid.
func (cfg *Config) Validate() error {
	switch {
	case cfg.TileSize < grid.MinEdge || cfg.TileSize > tile.MaxEdge:
		return fmt.Errorf("tile_size must be between %d and %d, got %d", grid.MinEdge, tile.MaxEdge, cfg.TileSize)
	case cfg.LODLevels < 0 || cfg.LODLevels > MaxLODLevels:
		return fmt.Errorf("lod_levels must be between 0 and %d, got %d", MaxLODLevels, cfg.LODLevels)
	case cfg.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	case !cfg.Filter.Valid():
		return fmt.Errorf("filter must be one of %v, got %q", resample.Filters(), cfg.Filter)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
