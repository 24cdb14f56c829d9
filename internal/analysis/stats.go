package analysis

import (
	"math"

	"github.com/san-kum/cortexforge/internal/rcd"
)

// VarStats summarizes one variable over the finite samples of a run.
type VarStats struct {
	Min, Max, Mean float64
	Final          float64
	NonFinite      int
}

func describe(values []float64) VarStats {
	s := VarStats{Min: math.Inf(1), Max: math.Inf(-1)}
	n := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.NonFinite++
			continue
		}
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Mean += v
		n++
	}
	if n == 0 {
		s.Min, s.Max = 0, 0
	} else {
		s.Mean /= float64(n)
	}
	if len(values) > 0 {
		s.Final = values[len(values)-1]
	}
	return s
}

// Describe returns per-variable statistics for H, M and R.
func Describe(tr rcd.Trajectory) (h, m, r VarStats) {
	return describe(tr.H), describe(tr.M), describe(tr.R)
}

// Periods holds the dominant period of each variable in steps, 0 if none.
type Periods struct {
	Hope, Memory, Reinforcement float64
}

// Report is the full summary of one run.
type Report struct {
	Steps                       int
	Hope, Memory, Reinforcement VarStats
	Period                      Periods
}

func Analyze(tr rcd.Trajectory) Report {
	h, m, r := Describe(tr)
	return Report{
		Steps:         tr.Len(),
		Hope:          h,
		Memory:        m,
		Reinforcement: r,
		Period: Periods{
			Hope:          DominantPeriod(tr.H),
			Memory:        DominantPeriod(tr.M),
			Reinforcement: DominantPeriod(tr.R),
		},
	}
}
