// Package analysis extracts frequency content from sampled metric
// series, e.g. the sloshing frequency of a collapsing water column.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2
// decimation. The input length must be a power of two; use
// [PadToPowerOfTwo] on raw samples first.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitude of the first half of the
// transform, one bin per frequency up to Nyquist.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// PadToPowerOfTwo zero-pads samples up to the next power of two.
func PadToPowerOfTwo(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// DominantFrequency locates the strongest non-DC bin of a series
// sampled over the given time span. Returns 0 for flat or too-short
// series.
func DominantFrequency(samples []float64, span float64) float64 {
	if len(samples) < 4 || span <= 0 {
		return 0
	}
	padded := PadToPowerOfTwo(samples)
	ps := PowerSpectrum(padded)

	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower, maxIdx = ps[i], i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	// Bin k of an n-point transform over samples spaced span/(len-1)
	// apart sits at k / (n * spacing).
	spacing := span / float64(len(samples)-1)
	return float64(maxIdx) / (float64(len(padded)) * spacing)
}
