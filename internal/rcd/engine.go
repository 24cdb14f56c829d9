package rcd

// Next computes the state at step t from the state at t-1. Only prev is
// read, so the three updates do not observe each other.
func Next(cfg Config, prev Point, t int) Point {
	shock := 0.0
	if t%ShockPeriod == 0 {
		shock = cfg.ShockIntensity
	}
	drugMod := cfg.Drug.Modulation()

	return Point{
		M: prev.M + cfg.Alpha*(prev.H-prev.M) - shock,
		R: prev.R + cfg.Beta*(prev.H-prev.R) + drugMod,
		H: prev.H + cfg.Gamma*(prev.M-prev.R),
	}
}

// Simulate runs the recurrence for cfg.Timesteps samples. Ranges are not
// checked and values are neither clamped nor guarded against overflow.
func Simulate(cfg Config) Trajectory {
	n := cfg.Timesteps
	if n < 0 {
		n = 0
	}
	tr := Trajectory{
		H: make([]float64, n),
		M: make([]float64, n),
		R: make([]float64, n),
	}
	if n == 0 {
		return tr
	}

	tr.H[0], tr.M[0], tr.R[0] = InitialValue, InitialValue, InitialValue
	prev := tr.At(0)
	for t := 1; t < n; t++ {
		p := Next(cfg, prev, t)
		tr.H[t], tr.M[t], tr.R[t] = p.H, p.M, p.R
		prev = p
	}
	return tr
}
