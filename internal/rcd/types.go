package rcd

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	InitialValue = 0.5
	ShockPeriod  = 50
)

// ErrUnknownDrug is returned by ParseDrug for names outside the enum.
var ErrUnknownDrug = errors.New("rcd: unknown drug effect")

// Drug is the pharmacological analog added to the reinforcement update.
type Drug int

const (
	DrugNone Drug = iota
	DrugSSRI
	DrugDopamineAgonist
	DrugAletheamine
)

var drugModulation = [...]float64{
	DrugNone:            0,
	DrugSSRI:            0.1,
	DrugDopamineAgonist: 0.15,
	DrugAletheamine:     0.25,
}

var drugNames = [...]string{
	DrugNone:            "None",
	DrugSSRI:            "SSRI",
	DrugDopamineAgonist: "Dopamine Agonist",
	DrugAletheamine:     "Aletheamine",
}

// Drugs lists every drug effect in selector order.
var Drugs = []Drug{DrugNone, DrugSSRI, DrugDopamineAgonist, DrugAletheamine}

// Modulation returns the additive reinforcement constant. Values outside
// the enum modulate nothing.
func (d Drug) Modulation() float64 {
	if !d.Valid() {
		return 0
	}
	return drugModulation[d]
}

func (d Drug) Valid() bool { return d >= DrugNone && d <= DrugAletheamine }

func (d Drug) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Drug(%d)", int(d))
	}
	return drugNames[d]
}

// ParseDrug accepts display names and their snake, kebab or squashed
// forms, case-insensitively. The empty string means DrugNone.
func ParseDrug(s string) (Drug, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "", "none":
		return DrugNone, nil
	case "ssri":
		return DrugSSRI, nil
	case "dopamineagonist", "dopamine":
		return DrugDopamineAgonist, nil
	case "aletheamine":
		return DrugAletheamine, nil
	}
	return DrugNone, fmt.Errorf("%w: %q", ErrUnknownDrug, s)
}

// Config parameterizes a single run. It is passed by value and never
// mutated by the engine.
type Config struct {
	Timesteps      int
	Alpha          float64 // memory rigidity
	Beta           float64 // reinforcement modulation
	Gamma          float64 // symbolic coherence
	ShockIntensity float64
	Drug           Drug
}

// Point is one (H, M, R) sample.
type Point struct {
	H, M, R float64
}

func (p Point) Finite() bool {
	for _, v := range [3]float64{p.H, p.M, p.R} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Trajectory holds the three index-aligned sequences of a run.
type Trajectory struct {
	H, M, R []float64
}

func (tr Trajectory) Len() int { return len(tr.H) }

func (tr Trajectory) At(i int) Point {
	return Point{H: tr.H[i], M: tr.M[i], R: tr.R[i]}
}

// Final returns the last sample, or the zero Point for an empty trajectory.
func (tr Trajectory) Final() Point {
	if tr.Len() == 0 {
		return Point{}
	}
	return tr.At(tr.Len() - 1)
}

func (tr Trajectory) Points() []Point {
	pts := make([]Point, tr.Len())
	for i := range pts {
		pts[i] = tr.At(i)
	}
	return pts
}

// Gradient maps index i linearly onto [0, 1] across the trajectory.
func (tr Trajectory) Gradient(i int) float64 {
	n := tr.Len()
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Finite reports whether every sample is free of NaN and Inf.
func (tr Trajectory) Finite() bool {
	for i := 0; i < tr.Len(); i++ {
		if !tr.At(i).Finite() {
			return false
		}
	}
	return true
}
