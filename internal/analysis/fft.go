package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum.
func PowerSpectrum(data []float64) []float64 {
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod returns the period, in steps, of the strongest non-DC
// component of the series. The trailing power-of-two window is used after
// removing its mean and applying a Hann taper. It returns 0 when the series
// is too short, flat or non-finite.
func DominantPeriod(values []float64) float64 {
	m := 1
	for m*2 <= len(values) {
		m *= 2
	}
	if m < 8 {
		return 0
	}

	win := make([]float64, m)
	copy(win, values[len(values)-m:])
	mean := 0.0
	for _, v := range win {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		mean += v
	}
	mean /= float64(m)
	for i := range win {
		win[i] -= mean
	}
	window.Apply(win, window.Hann)

	ps := PowerSpectrum(win)
	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < 1e-12 {
		return 0
	}
	return float64(m) / float64(bestK)
}
