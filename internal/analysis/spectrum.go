package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PowerSpectrum returns magnitudes for bins 0..N/2 of the mean-removed,
// Hann-windowed series zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := NextPow2(len(data))
	buf := make([]float64, n)
	for i, v := range data {
		window := 1.0
		if len(data) > 1 {
			window = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(data)-1)))
		}
		buf[i] = (v - mean) * window
	}

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// BinFrequency converts a spectrum bin to Hz for a series sampled every dt.
func BinFrequency(bin, samples int, dt float64) float64 {
	n := NextPow2(samples)
	return float64(bin) / (float64(n) * dt)
}

// DominantFrequency returns the frequency and magnitude of the largest
// non-DC bin. A flat or empty series reports zero.
func DominantFrequency(data []float64, dt float64) (float64, float64) {
	ps := PowerSpectrum(data)
	best, power := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			best, power = i, ps[i]
		}
	}
	if best == 0 {
		return 0, 0
	}
	return BinFrequency(best, len(data), dt), power
}
