package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cortexforge/internal/rcd"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timesteps != 300 {
		t.Errorf("expected 300 timesteps, got %d", cfg.Timesteps)
	}
	if cfg.Alpha != 0.4 || cfg.Beta != 0.5 || cfg.Gamma != 0.6 {
		t.Errorf("unexpected coefficients: %+v", cfg)
	}
	if cfg.ShockIntensity != 0.3 {
		t.Errorf("expected shock 0.3, got %f", cfg.ShockIntensity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultsMatchOptions(t *testing.T) {
	cfg := DefaultConfig()
	for _, o := range Options {
		v, err := cfg.Get(o.Name)
		if err != nil {
			t.Fatalf("get %s: %v", o.Name, err)
		}
		if v != o.Default {
			t.Errorf("%s: default %v, option table says %v", o.Name, v, o.Default)
		}
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
		ok    bool
	}{
		{"min timesteps", func(c *Config) { c.Timesteps = 100 }, true},
		{"max timesteps", func(c *Config) { c.Timesteps = 1000 }, true},
		{"too few timesteps", func(c *Config) { c.Timesteps = 99 }, false},
		{"too many timesteps", func(c *Config) { c.Timesteps = 1001 }, false},
		{"alpha zero", func(c *Config) { c.Alpha = 0 }, true},
		{"alpha one", func(c *Config) { c.Alpha = 1 }, true},
		{"negative beta", func(c *Config) { c.Beta = -0.01 }, false},
		{"gamma above one", func(c *Config) { c.Gamma = 1.01 }, false},
		{"NaN shock", func(c *Config) { c.ShockIntensity = math.NaN() }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.apply(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestValidateDrug(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DrugEffect = "placebo"
	if err := cfg.Validate(); !errors.Is(err, rcd.ErrUnknownDrug) {
		t.Errorf("expected ErrUnknownDrug, got %v", err)
	}
}

func TestEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DrugEffect = "Dopamine Agonist"

	ec, err := cfg.Engine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	want := rcd.Config{Timesteps: 300, Alpha: 0.4, Beta: 0.5, Gamma: 0.6, ShockIntensity: 0.3, Drug: rcd.DrugDopamineAgonist}
	if ec != want {
		t.Errorf("got %+v, want %+v", ec, want)
	}

	cfg.Timesteps = 5
	if _, err := cfg.Engine(); err == nil {
		t.Error("expected engine conversion to reject out-of-range timesteps")
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Alpha = 0.75
	cfg.DrugEffect = "aletheamine"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoadIntoKeepsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("gamma: 0.9\ndrug_effect: ssri\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("trauma-loop")
	cfg, err := LoadInto(path, base)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Gamma != 0.9 || cfg.DrugEffect != "ssri" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Alpha != base.Alpha || cfg.Timesteps != base.Timesteps {
		t.Errorf("base values lost: %+v", cfg)
	}
	if base.Gamma == 0.9 {
		t.Error("LoadInto mutated base")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetSetUnknown(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := cfg.Get("delta"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
	if err := cfg.Set("delta", 1); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
}

func TestSetRoundsTimesteps(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("timesteps", 449.6); err != nil {
		t.Fatal(err)
	}
	if cfg.Timesteps != 450 {
		t.Errorf("expected 450, got %d", cfg.Timesteps)
	}
}

func TestNudge(t *testing.T) {
	tests := []struct {
		name  string
		opt   string
		start float64
		dir   int
		want  float64
	}{
		{"alpha up", "alpha", 0.4, 1, 0.45},
		{"alpha down", "alpha", 0.4, -1, 0.35},
		{"alpha clamps high", "alpha", 1.0, 1, 1.0},
		{"beta clamps low", "beta", 0.0, -1, 0.0},
		{"off-grid snaps", "gamma", 0.43, 1, 0.5},
		{"timesteps down", "timesteps", 300, -1, 250},
		{"timesteps clamps low", "timesteps", 100, -1, 100},
		{"timesteps clamps high", "timesteps", 1000, 2, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.opt, tt.start); err != nil {
				t.Fatal(err)
			}
			if err := cfg.Nudge(tt.opt, tt.dir); err != nil {
				t.Fatal(err)
			}
			got, _ := cfg.Get(tt.opt)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCycleDrug(t *testing.T) {
	cfg := DefaultConfig()

	cfg.CycleDrug(1)
	if cfg.DrugEffect != "SSRI" {
		t.Errorf("expected SSRI, got %s", cfg.DrugEffect)
	}

	cfg.DrugEffect = "none"
	cfg.CycleDrug(-1)
	if cfg.DrugEffect != "Aletheamine" {
		t.Errorf("expected wrap to Aletheamine, got %s", cfg.DrugEffect)
	}

	cfg.CycleDrug(1)
	if cfg.DrugEffect != "None" {
		t.Errorf("expected wrap to None, got %s", cfg.DrugEffect)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("trauma-loop")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.ShockIntensity != 0.8 {
		t.Errorf("expected shock 0.8, got %f", cfg.ShockIntensity)
	}

	cfg.ShockIntensity = 0
	if Presets["trauma-loop"].ShockIntensity != 0.8 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := LookupPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
