package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	// smoke is the short run used to check energies against the fixtures.
	"smoke": {
		Steps: 1000, Backend: "scalar", DataDir: DefaultDataDir,
		Output: OutputConfig{Record: true, RecordEvery: 1},
	},
	// benchmark is the standard 50M step timing run.
	"benchmark": {
		Steps: 50_000_000, Backend: "scalar", DataDir: DefaultDataDir,
		Output: OutputConfig{Record: false, RecordEvery: 1},
	},
	"trajectory": {
		Steps: 100_000, Backend: "scalar", DataDir: DefaultDataDir,
		Output: OutputConfig{Record: true, RecordEvery: 100},
	},
	// neptune covers one Neptune orbit, about 165 years of 100 steps each.
	"neptune": {
		Steps: 16_500, Backend: "parallel", DataDir: DefaultDataDir,
		Output: OutputConfig{Record: true, RecordEvery: 10},
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := *p
	return &cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
