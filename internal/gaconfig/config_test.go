// ABOUTME: Tests for TOML round-tripping and the default/missing-file fallbacks
// ABOUTME: Also covers SharedConfig's concurrent-safe get/update

package gaconfig

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PopulationSize != 200 {
		t.Errorf("expected PopulationSize 200, got %d", cfg.PopulationSize)
	}
	if cfg.TileSide != 64 {
		t.Errorf("expected TileSide 64, got %d", cfg.TileSide)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := t.TempDir() + "/jigsaw-ga.toml"

	cfg := DefaultConfig()
	cfg.PopulationSize = 321
	cfg.Seed = 99

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded.PopulationSize != cfg.PopulationSize {
		t.Errorf("PopulationSize mismatch: got %d, want %d", loaded.PopulationSize, cfg.PopulationSize)
	}
	if loaded.Seed != cfg.Seed {
		t.Errorf("Seed mismatch: got %d, want %d", loaded.Seed, cfg.Seed)
	}
}

func TestLoadNonExistentConfigReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/jigsaw-ga.toml")
	if err != nil {
		t.Errorf("expected no error for a missing file, got: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.PopulationSize != defaults.PopulationSize {
		t.Errorf("expected default PopulationSize %d, got %d", defaults.PopulationSize, cfg.PopulationSize)
	}
}

func TestSharedConfigGetUpdate(t *testing.T) {
	shared := NewShared(DefaultConfig())

	shared.Update(func(cfg GAConfig) GAConfig {
		cfg.Generations = 750
		return cfg
	})

	if got := shared.Get().Generations; got != 750 {
		t.Errorf("expected updated Generations 750, got %d", got)
	}
}

func TestSaveConfigFailsWhenParentIsAFile(t *testing.T) {
	// Exercises SaveConfig's error path without depending on filesystem
	// permission behaviour: a path whose parent is itself a file can't be
	// created.
	blocker := t.TempDir() + "/blocker"
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := SaveConfig(blocker+"/config.toml", DefaultConfig()); err == nil {
		t.Fatal("expected an error writing under a path whose parent is a regular file")
	}
}
