package noise

import (
	"fmt"
	"math"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-augment/core"
)

// Gaussian returns n independent standard-normal samples drawn from rng.
func Gaussian(rng *rand.Rand, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}

	return out
}

// Pink returns n samples of pink noise (1/f power spectral density).
func Pink(rng *rand.Rand, n int) ([]float64, error) {
	return Powerlaw(rng, 1, n)
}

// Powerlaw returns n samples of Gaussian noise whose power spectral
// density scales as f^-exponent. Exponent 0 is white, 1 is pink, 2 is
// brown. The output amplitude is not normalized; see NormalizePeak.
//
// Frequencies below 1/m (m being the internal transform size) share the
// weight of the lowest resolvable bin, so the DC component stays finite
// for positive exponents.
func Powerlaw(rng *rand.Rand, exponent float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("powerlaw noise length must be > 0: %d", n)
	}
	if exponent < 0 || math.IsNaN(exponent) || math.IsInf(exponent, 0) {
		return nil, fmt.Errorf("powerlaw noise exponent must be finite and >= 0: %f", exponent)
	}

	m := nextPow2(n)
	if m < 2 {
		m = 2
	}
	half := m / 2

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("powerlaw noise: failed to create FFT plan: %w", err)
	}

	weights := make([]float64, half+1)
	for k := 1; k <= half; k++ {
		f := float64(k) / float64(m)
		weights[k] = math.Pow(f, -exponent/2)
	}
	weights[0] = weights[1]

	spectrum := make([]complex128, m)
	spectrum[0] = complex(rng.NormFloat64()*weights[0], 0)
	for k := 1; k < half; k++ {
		re := rng.NormFloat64() * weights[k]
		im := rng.NormFloat64() * weights[k]
		spectrum[k] = complex(re, im)
		spectrum[m-k] = complex(re, -im)
	}
	// Nyquist bin must be real for a real-valued inverse transform.
	spectrum[half] = complex(rng.NormFloat64()*weights[half], 0)

	timeFrame := make([]complex128, m)
	err = plan.Inverse(timeFrame, spectrum)
	if err != nil {
		return nil, fmt.Errorf("powerlaw noise: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(timeFrame[i])
	}

	return out, nil
}

// NormalizePeak scales data to the target peak amplitude and returns a new
// slice. An all-zero input stays all-zero.
func NormalizePeak(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	peak := core.MaxAbs(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / peak
	for i, v := range data {
		out[i] = v * scale
	}

	return out, nil
}

func nextPow2(n int) int {
	m := 1
	for m < n {
		m <<= 1
	}

	return m
}
