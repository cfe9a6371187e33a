package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Screen.Width != 520 || cfg.Screen.Height != 520 {
		t.Errorf("expected 520x520 screen, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Render.Cone != 0x67D6F5 {
		t.Errorf("expected cone colour 0x67D6F5, got %#x", cfg.Render.Cone)
	}
	if cfg.Beast.MemoryTicks != 10 {
		t.Errorf("expected memory_ticks 10, got %d", cfg.Beast.MemoryTicks)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Default()

	if math.Abs(cfg.Derived.FOV-math.Pi/2) > 1e-12 {
		t.Errorf("expected FOV pi/2, got %f", cfg.Derived.FOV)
	}
	if cfg.Derived.FrameInterval != time.Second/60 {
		t.Errorf("expected frame interval 1/60s, got %v", cfg.Derived.FrameInterval)
	}
	// (520 - 2*10) / 5
	if cfg.Derived.PlantCellW != 100 || cfg.Derived.PlantCellH != 100 {
		t.Errorf("expected 100x100 plant cells, got %fx%f", cfg.Derived.PlantCellW, cfg.Derived.PlantCellH)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("screen:\n  target_fps: 30\nbeast:\n  sight_range: 40\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Screen.TargetFPS != 30 {
		t.Errorf("expected overlaid target_fps 30, got %d", cfg.Screen.TargetFPS)
	}
	if cfg.Beast.SightRange != 40 {
		t.Errorf("expected overlaid sight_range 40, got %f", cfg.Beast.SightRange)
	}
	// Untouched fields keep their defaults
	if cfg.Screen.Width != 520 {
		t.Errorf("expected default width 520, got %d", cfg.Screen.Width)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad_yaml", "screen: [unclosed"},
		{"zero_fps", "screen:\n  target_fps: 0\n"},
		{"huge_border", "world:\n  border: 400\n"},
		{"no_memory", "beast:\n  memory_ticks: 0\n"},
		{"infinite_sight", "beast:\n  sight_range: .inf\n"},
		{"nan_sight", "beast:\n  sight_range: .nan\n"},
		{"no_herbivores", "population:\n  herbivores: 0\n"},
		{"no_carnivores", "population:\n  carnivores: 0\n"},
		{"negative_carnivores", "population:\n  carnivores: -2\n"},
		{"negative_plants", "population:\n  plants: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Herbivores = 17

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written config failed: %v", err)
	}
	if loaded.Population.Herbivores != 17 {
		t.Errorf("expected herbivores 17 after roundtrip, got %d", loaded.Population.Herbivores)
	}
}

func TestRefresh(t *testing.T) {
	cfg := Default()
	cfg.Beast.FOVDegrees = 180
	cfg.World.PlantGrid = 10
	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if math.Abs(cfg.Derived.FOV-math.Pi) > 1e-12 {
		t.Errorf("expected FOV pi after refresh, got %f", cfg.Derived.FOV)
	}
	if cfg.Derived.PlantCellW != 50 {
		t.Errorf("expected plant cell width 50, got %f", cfg.Derived.PlantCellW)
	}

	cfg.Beast.MemoryTicks = 0
	if err := cfg.Refresh(); err == nil {
		t.Error("expected error for memory_ticks 0")
	}

	cfg = Default()
	cfg.Population.Plants = -1
	if err := cfg.Refresh(); err == nil {
		t.Error("expected error for negative plant population")
	}

	cfg = Default()
	cfg.Population.Herbivores = 0
	if err := cfg.Refresh(); err == nil {
		t.Error("expected error for empty herbivore population")
	}
}
