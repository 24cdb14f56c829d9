package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cortexforge/internal/rcd"
)

var (
	// ErrParameterBounds indicates a value outside its option range.
	ErrParameterBounds = errors.New("config: parameter out of valid bounds")
	// ErrUnknownOption indicates an option name missing from Options.
	ErrUnknownOption = errors.New("config: unknown option")
	// ErrUnknownPreset indicates a preset name missing from Presets.
	ErrUnknownPreset = errors.New("config: unknown preset")
)

const (
	DefaultTimesteps = 300
	DefaultAlpha     = 0.4
	DefaultBeta      = 0.5
	DefaultGamma     = 0.6
	DefaultShock     = 0.3
	DefaultDrug      = "none"
)

// Option describes one tunable numeric input: its range, default and
// slider step.
type Option struct {
	Name    string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

// Options lists the numeric inputs in display order.
var Options = []Option{
	{Name: "timesteps", Label: "Timesteps", Min: 100, Max: 1000, Default: DefaultTimesteps, Step: 50},
	{Name: "alpha", Label: "Memory Rigidity (α)", Min: 0, Max: 1, Default: DefaultAlpha, Step: 0.05},
	{Name: "beta", Label: "Reinforcement Modulation (β)", Min: 0, Max: 1, Default: DefaultBeta, Step: 0.05},
	{Name: "gamma", Label: "Symbolic Coherence (γ)", Min: 0, Max: 1, Default: DefaultGamma, Step: 0.05},
	{Name: "shock", Label: "Trauma Shock Intensity", Min: 0, Max: 1, Default: DefaultShock, Step: 0.05},
}

const DrugLabel = "Pharmacological Analog"

// LookupOption returns the option registered under name.
func LookupOption(name string) (Option, error) {
	for _, o := range Options {
		if o.Name == name {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("%w: %q", ErrUnknownOption, name)
}

// OptionNames returns the numeric option names in display order.
func OptionNames() []string {
	names := make([]string, len(Options))
	for i, o := range Options {
		names[i] = o.Name
	}
	return names
}

type Config struct {
	Timesteps      int     `yaml:"timesteps"`
	Alpha          float64 `yaml:"alpha"`
	Beta           float64 `yaml:"beta"`
	Gamma          float64 `yaml:"gamma"`
	ShockIntensity float64 `yaml:"shock_intensity"`
	DrugEffect     string  `yaml:"drug_effect"`
}

func DefaultConfig() *Config {
	return &Config{
		Timesteps:      DefaultTimesteps,
		Alpha:          DefaultAlpha,
		Beta:           DefaultBeta,
		Gamma:          DefaultGamma,
		ShockIntensity: DefaultShock,
		DrugEffect:     DefaultDrug,
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a YAML file on top of a copy of base. Keys missing from
// the file keep base's values.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Get returns the value of a numeric option.
func (c *Config) Get(name string) (float64, error) {
	switch name {
	case "timesteps":
		return float64(c.Timesteps), nil
	case "alpha":
		return c.Alpha, nil
	case "beta":
		return c.Beta, nil
	case "gamma":
		return c.Gamma, nil
	case "shock":
		return c.ShockIntensity, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOption, name)
}

// Set assigns a numeric option without range checks. Timesteps are
// rounded to the nearest integer.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "timesteps":
		c.Timesteps = int(math.Round(v))
	case "alpha":
		c.Alpha = v
	case "beta":
		c.Beta = v
	case "gamma":
		c.Gamma = v
	case "shock":
		c.ShockIntensity = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return nil
}

// Nudge moves a numeric option dir steps, snapping to the step grid and
// clamping to the option range.
func (c *Config) Nudge(name string, dir int) error {
	opt, err := LookupOption(name)
	if err != nil {
		return err
	}
	cur, _ := c.Get(name)
	steps := math.Round((cur-opt.Min)/opt.Step) + float64(dir)
	v := opt.Min + steps*opt.Step
	v = math.Max(opt.Min, math.Min(opt.Max, v))
	v = math.Round(v*1e9) / 1e9
	return c.Set(name, v)
}

// CycleDrug moves the drug effect dir entries through rcd.Drugs, wrapping
// at either end. An unparseable value restarts from None.
func (c *Config) CycleDrug(dir int) {
	d, _ := rcd.ParseDrug(c.DrugEffect)
	n := len(rcd.Drugs)
	idx := ((int(d)+dir)%n + n) % n
	c.DrugEffect = rcd.Drugs[idx].String()
}

// Validate checks every option against its range and the drug name
// against the enum.
func (c *Config) Validate() error {
	for _, o := range Options {
		v, _ := c.Get(o.Name)
		if !(v >= o.Min && v <= o.Max) {
			return fmt.Errorf("%w: %s=%v not in [%v, %v]", ErrParameterBounds, o.Name, v, o.Min, o.Max)
		}
	}
	if _, err := rcd.ParseDrug(c.DrugEffect); err != nil {
		return fmt.Errorf("drug_effect: %w", err)
	}
	return nil
}

// Engine validates the config and converts it into the engine's
// immutable parameter set.
func (c *Config) Engine() (rcd.Config, error) {
	if err := c.Validate(); err != nil {
		return rcd.Config{}, err
	}
	d, _ := rcd.ParseDrug(c.DrugEffect)
	return rcd.Config{
		Timesteps:      c.Timesteps,
		Alpha:          c.Alpha,
		Beta:           c.Beta,
		Gamma:          c.Gamma,
		ShockIntensity: c.ShockIntensity,
		Drug:           d,
	}, nil
}
