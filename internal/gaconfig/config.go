// ABOUTME: Configuration management for genetic algorithm run parameters
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

// Package gaconfig loads and persists the tunable parameters of a solve
// run (population size, elite size, generation budget, tile geometry)
// and exposes a mutex-guarded handle so a running TUI can retune the
// elite size mid-solve.
package gaconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// GAConfig holds all tunable genetic-algorithm run parameters.
type GAConfig struct {
	PopulationSize int `toml:"population_size"`
	EliteSize      int `toml:"elite_size"`
	Generations    int `toml:"generations"`
	Seed           int64 `toml:"seed"`

	TileSide int `toml:"tile_side"` // pixel edge length of each split tile

	InputImage  string `toml:"input_image"`
	OutputImage string `toml:"output_image"`
}

// GetConfigPath returns the default config file path: the current
// directory first, falling back to ~/.config/jigsaw-ga/config.toml.
func GetConfigPath() string {
	if _, err := os.Stat("./jigsaw-ga.toml"); err == nil {
		return "./jigsaw-ga.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./jigsaw-ga.toml"
	}

	return filepath.Join(home, ".config", "jigsaw-ga", "config.toml")
}

// LoadConfig loads configuration from a TOML file. If the file does not
// exist, it returns DefaultConfig with a nil error.
func LoadConfig(path string) (GAConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("gaconfig: read config file: %w", err)
	}

	var cfg GAConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("gaconfig: parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes configuration to a TOML file, creating its parent
// directory if necessary.
func SaveConfig(path string, cfg GAConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("gaconfig: create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gaconfig: create config file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "gaconfig: close config file: %v\n", cerr)
		}
	}()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("gaconfig: write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default GA run configuration.
func DefaultConfig() GAConfig {
	return GAConfig{
		PopulationSize: 200,
		EliteSize:      10,
		Generations:    500,
		Seed:           0,
		TileSide:       64,
		InputImage:     "input.png",
		OutputImage:    "output.png",
	}
}

// SharedConfig is a mutex-guarded GAConfig so a live TUI can retune the
// elite size while a solve is in flight. Solve reads it once at the
// start of each generation.
type SharedConfig struct {
	mu  sync.RWMutex
	cfg GAConfig
}

// NewShared wraps cfg for concurrent read/update access.
func NewShared(cfg GAConfig) *SharedConfig {
	return &SharedConfig{cfg: cfg}
}

// Get returns a snapshot of the current configuration.
func (s *SharedConfig) Get() GAConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to a copy of the current configuration and stores
// the result.
func (s *SharedConfig) Update(fn func(GAConfig) GAConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = fn(s.cfg)
}
