package augment

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-augment/pitch"
)

// PitchShift shifts the waveform's pitch by a whole number of semitones
// drawn uniformly from the half-open range [-maxSteps, maxSteps). The
// output keeps the input's length and duration.
type PitchShift struct {
	gate
	sampleRate float64
	maxSteps   int
	shifter    *pitch.Shifter
}

// NewPitchShift creates a pitch-shift transform for waveforms at the
// given sample rate. maxSteps must be in [1, 24] so every drawable step
// stays within the shifter's two-octave range.
func NewPitchShift(sampleRate float64, maxSteps int, opts ...Option) (*PitchShift, error) {
	g, err := newGate(opts...)
	if err != nil {
		return nil, err
	}
	if maxSteps < 1 || float64(maxSteps) > pitch.MaxSemitones {
		return nil, fmt.Errorf("%w: pitch shift max steps must be in [1, %v]: %d",
			ErrInvalidConfiguration, pitch.MaxSemitones, maxSteps)
	}

	shifter, err := pitch.New(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return &PitchShift{gate: g, sampleRate: sampleRate, maxSteps: maxSteps, shifter: shifter}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (t *PitchShift) SampleRate() float64 { return t.sampleRate }

// MaxSteps returns the semitone step bound. Drawn steps lie in
// [-MaxSteps, MaxSteps).
func (t *PitchShift) MaxSteps() int { return t.maxSteps }

// Invoke applies the transform behind its probability gate.
func (t *PitchShift) Invoke(rng *rand.Rand, y []float64) []float64 {
	return t.gate.run(rng, y, t.apply)
}

func (t *PitchShift) apply(rng *rand.Rand, y []float64) []float64 {
	if len(y) == 0 {
		return y
	}

	// Half-open draw: the positive bound is excluded.
	steps := rng.Intn(2*t.maxSteps) - t.maxSteps

	out, err := t.shifter.Shift(y, float64(steps))
	if err != nil {
		out = make([]float64, len(y))
		copy(out, y)
	}

	return out
}
