package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Steps != DefaultSteps {
		t.Errorf("expected %d steps, got %d", DefaultSteps, cfg.Steps)
	}
	if cfg.Backend != "scalar" {
		t.Errorf("expected scalar backend, got %s", cfg.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
steps: 2500
backend: parallel
output:
  record_every: 50
metrics:
  textfile: /tmp/nbody.prom
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Steps != 2500 {
		t.Errorf("expected 2500 steps, got %d", cfg.Steps)
	}
	if cfg.Backend != "parallel" {
		t.Errorf("expected parallel backend, got %s", cfg.Backend)
	}
	if cfg.Output.RecordEvery != 50 {
		t.Errorf("expected record_every 50, got %d", cfg.Output.RecordEvery)
	}
	if !cfg.Output.Record {
		t.Error("expected record default to survive partial file")
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected default data dir, got %s", cfg.DataDir)
	}
	if cfg.Metrics.Textfile != "/tmp/nbody.prom" {
		t.Errorf("unexpected textfile %s", cfg.Metrics.Textfile)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative steps", "steps: -5\n"},
		{"negative stride", "output:\n  record_every: -1\n"},
		{"unknown backend", "backend: cuda\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "run.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("steps: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Steps = 42
	cfg.Output.Trajectory = "out.csv"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded, cfg)
	}
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 10
	cfg.Output.RecordEvery = 0

	sc := cfg.SimConfig()
	if sc.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", sc.Steps)
	}
	if sc.SampleEvery != 1 {
		t.Errorf("expected stride 1, got %d", sc.SampleEvery)
	}
	if sc.CheckEvery != DefaultCheckEvery {
		t.Errorf("expected check interval %d, got %d", DefaultCheckEvery, sc.CheckEvery)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("benchmark")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if cfg.Steps != 50_000_000 {
		t.Errorf("expected 50000000 steps, got %d", cfg.Steps)
	}
	if cfg.Output.Record {
		t.Error("benchmark preset should not record")
	}

	cfg.Steps = 1
	if Presets["benchmark"].Steps == 1 {
		t.Error("GetPreset returned a shared pointer")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg, _ := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}
