package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}
	if cfg.World.MapWidth <= 0 || cfg.World.MapHeight <= 0 {
		t.Errorf("defaults have invalid map size %dx%d", cfg.World.MapWidth, cfg.World.MapHeight)
	}
	if cfg.Derived.MapW32 != float32(cfg.World.MapWidth) {
		t.Errorf("derived MapW32 not computed: got %f", cfg.Derived.MapW32)
	}
	if len(cfg.Growth.StageDurations) != 2 {
		t.Errorf("expected 2 stage durations, got %d", len(cfg.Growth.StageDurations))
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	override := "world:\n  map_width: 50\n  map_height: 50\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.World.MapWidth != 50 || cfg.World.MapHeight != 50 {
		t.Errorf("override not applied: got %dx%d", cfg.World.MapWidth, cfg.World.MapHeight)
	}
	// Fields absent from the override keep their defaults
	if cfg.Blobs.HungerRate != 2.0 {
		t.Errorf("default hunger_rate lost: got %g", cfg.Blobs.HungerRate)
	}
}

func TestValidateRejectsNegativeDimensions(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.World.MapWidth = -10
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative map width")
	}
	if !strings.Contains(err.Error(), "map dimensions") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadProbability(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Spawning.TreeForestProb = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for probability > 1")
	}
}

func TestValidateRejectsInvertedTraitRange(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Genetics.SpeedMin = 5.0
	cfg.Genetics.SpeedMax = 1.0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted speed range")
	}
}
