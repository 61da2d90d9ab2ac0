package augment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-augment/core"
	"github.com/cwbudde/algo-augment/noise"
)

// GaussianNoiseSNR mixes white Gaussian noise into the waveform at a
// signal-to-noise ratio drawn uniformly from [minSNR, maxSNR] dB. The
// noise is peak-normalized against the signal peak, so an all-silent
// input receives zero-amplitude noise.
type GaussianNoiseSNR struct {
	gate
	minSNR float64
	maxSNR float64
}

// NewGaussianNoiseSNR creates a white-noise injection transform with the
// given SNR bounds in dB.
func NewGaussianNoiseSNR(minSNR, maxSNR float64, opts ...Option) (*GaussianNoiseSNR, error) {
	g, err := newGate(opts...)
	if err != nil {
		return nil, err
	}
	err = validateSNRRange(minSNR, maxSNR)
	if err != nil {
		return nil, err
	}

	return &GaussianNoiseSNR{gate: g, minSNR: minSNR, maxSNR: maxSNR}, nil
}

// MinSNR returns the lower SNR bound in dB.
func (t *GaussianNoiseSNR) MinSNR() float64 { return t.minSNR }

// MaxSNR returns the upper SNR bound in dB.
func (t *GaussianNoiseSNR) MaxSNR() float64 { return t.maxSNR }

// Invoke applies the transform behind its probability gate.
func (t *GaussianNoiseSNR) Invoke(rng *rand.Rand, y []float64) []float64 {
	return t.gate.run(rng, y, t.apply)
}

func (t *GaussianNoiseSNR) apply(rng *rand.Rand, y []float64) []float64 {
	if len(y) == 0 {
		return y
	}

	amp := drawNoiseAmplitude(rng, y, t.minSNR, t.maxSNR)

	return mixAtPeak(y, noise.Gaussian(rng, len(y)), amp)
}

// PinkNoiseSNR mixes pink (1/f) noise into the waveform at a
// signal-to-noise ratio drawn uniformly from [minSNR, maxSNR] dB, with
// the same peak-matching behavior as GaussianNoiseSNR.
type PinkNoiseSNR struct {
	gate
	minSNR float64
	maxSNR float64
}

// NewPinkNoiseSNR creates a pink-noise injection transform with the given
// SNR bounds in dB.
func NewPinkNoiseSNR(minSNR, maxSNR float64, opts ...Option) (*PinkNoiseSNR, error) {
	g, err := newGate(opts...)
	if err != nil {
		return nil, err
	}
	err = validateSNRRange(minSNR, maxSNR)
	if err != nil {
		return nil, err
	}

	return &PinkNoiseSNR{gate: g, minSNR: minSNR, maxSNR: maxSNR}, nil
}

// MinSNR returns the lower SNR bound in dB.
func (t *PinkNoiseSNR) MinSNR() float64 { return t.minSNR }

// MaxSNR returns the upper SNR bound in dB.
func (t *PinkNoiseSNR) MaxSNR() float64 { return t.maxSNR }

// Invoke applies the transform behind its probability gate.
func (t *PinkNoiseSNR) Invoke(rng *rand.Rand, y []float64) []float64 {
	return t.gate.run(rng, y, t.apply)
}

func (t *PinkNoiseSNR) apply(rng *rand.Rand, y []float64) []float64 {
	if len(y) == 0 {
		return y
	}

	amp := drawNoiseAmplitude(rng, y, t.minSNR, t.maxSNR)

	pink, err := noise.Pink(rng, len(y))
	if err != nil {
		out := make([]float64, len(y))
		copy(out, y)
		return out
	}

	return mixAtPeak(y, pink, amp)
}

func validateSNRRange(minSNR, maxSNR float64) error {
	if math.IsNaN(minSNR) || math.IsInf(minSNR, 0) ||
		math.IsNaN(maxSNR) || math.IsInf(maxSNR, 0) {
		return fmt.Errorf("%w: SNR bounds must be finite: [%f, %f]", ErrInvalidConfiguration, minSNR, maxSNR)
	}
	if minSNR > maxSNR {
		return fmt.Errorf("%w: min SNR must not exceed max SNR: [%f, %f]", ErrInvalidConfiguration, minSNR, maxSNR)
	}

	return nil
}

// drawNoiseAmplitude draws an SNR from [minSNR, maxSNR] dB and converts
// it to the target noise peak amplitude for y.
func drawNoiseAmplitude(rng *rand.Rand, y []float64, minSNR, maxSNR float64) float64 {
	snr := minSNR + rng.Float64()*(maxSNR-minSNR)

	return core.MaxAbs(y) / core.DBToLinear(snr)
}

// mixAtPeak returns y plus n scaled so that n's peak amplitude equals
// amp. A silent noise buffer or zero amplitude yields a copy of y.
func mixAtPeak(y, n []float64, amp float64) []float64 {
	out := make([]float64, len(y))

	noisePeak := core.MaxAbs(n)
	if noisePeak == 0 || amp == 0 {
		copy(out, y)
		return out
	}

	vecmath.ScaleBlock(out, n, amp/noisePeak)
	vecmath.AddBlockInPlace(out, y)

	return out
}
