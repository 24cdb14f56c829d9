package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"baseline": {
		Timesteps: 300, Alpha: 0.4, Beta: 0.5, Gamma: 0.6, ShockIntensity: 0.3, DrugEffect: "none",
	},
	"trauma-loop": {
		Timesteps: 500, Alpha: 0.7, Beta: 0.5, Gamma: 0.3, ShockIntensity: 0.8, DrugEffect: "none",
	},
	"ssri": {
		Timesteps: 500, Alpha: 0.4, Beta: 0.5, Gamma: 0.6, ShockIntensity: 0.5, DrugEffect: "ssri",
	},
	"dopamine": {
		Timesteps: 500, Alpha: 0.4, Beta: 0.7, Gamma: 0.6, ShockIntensity: 0.3, DrugEffect: "dopamine agonist",
	},
	"aletheamine": {
		Timesteps: 500, Alpha: 0.3, Beta: 0.5, Gamma: 0.8, ShockIntensity: 0.5, DrugEffect: "aletheamine",
	},
	"rigid-memory": {
		Timesteps: 300, Alpha: 0.95, Beta: 0.5, Gamma: 0.6, ShockIntensity: 0.3, DrugEffect: "none",
	},
	"fluid-memory": {
		Timesteps: 300, Alpha: 0.05, Beta: 0.5, Gamma: 0.6, ShockIntensity: 0.3, DrugEffect: "none",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// LookupPreset is GetPreset with an error for unknown names.
func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
