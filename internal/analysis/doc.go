// Package analysis summarizes finished trajectories.
//
//   - [Describe]: per-variable range, mean and final value
//   - [PowerSpectrum]: magnitude spectrum via go-dsp
//   - [DominantPeriod]: strongest oscillation period from the power spectrum
//   - [Analyze]: both, for H, M and R
//
// # Oscillation
//
// The shock every 50 steps and the H-M-R coupling make runs oscillate;
// the period comes from the power spectrum of the trailing window:
//
//	rep := analysis.Analyze(tr)
//	if rep.Period.Hope > 0 {
//	    // H oscillates with period rep.Period.Hope steps
//	}
package analysis
