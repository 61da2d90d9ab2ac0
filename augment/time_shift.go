package augment

import (
	"fmt"
	"math"
	"math/rand"
)

// PaddingMode selects what happens to the region a TimeShift wraps around.
type PaddingMode string

const (
	// PaddingReplace keeps the wrapped samples audible: the shift is a
	// plain circular rotation.
	PaddingReplace PaddingMode = "replace"
	// PaddingZero silences the wrapped-in region after rotation.
	PaddingZero PaddingMode = "zero"
)

// TimeShift circularly rotates the waveform by a sample offset drawn
// uniformly from the half-open range [-maxShift, maxShift), where
// maxShift is sampleRate*maxShiftSeconds. Positive shifts rotate forward;
// samples rolling off the end reappear at the start.
type TimeShift struct {
	gate
	sampleRate      float64
	maxShiftSeconds float64
	maxShift        int
	padding         PaddingMode
}

// NewTimeShift creates a time-shift transform. The shift bound
// sampleRate*maxShiftSeconds must come to at least one sample, and
// padding must be PaddingReplace or PaddingZero.
func NewTimeShift(sampleRate, maxShiftSeconds float64, padding PaddingMode, opts ...Option) (*TimeShift, error) {
	g, err := newGate(opts...)
	if err != nil {
		return nil, err
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: time shift sample rate must be positive and finite: %f",
			ErrInvalidConfiguration, sampleRate)
	}
	if maxShiftSeconds <= 0 || math.IsNaN(maxShiftSeconds) || math.IsInf(maxShiftSeconds, 0) {
		return nil, fmt.Errorf("%w: time shift max seconds must be positive and finite: %f",
			ErrInvalidConfiguration, maxShiftSeconds)
	}
	if padding != PaddingReplace && padding != PaddingZero {
		return nil, fmt.Errorf("%w: time shift padding mode must be %q or %q: %q",
			ErrInvalidConfiguration, PaddingReplace, PaddingZero, padding)
	}

	maxShift := int(sampleRate * maxShiftSeconds)
	if maxShift < 1 {
		return nil, fmt.Errorf("%w: time shift bound must cover at least one sample: %f s at %f Hz",
			ErrInvalidConfiguration, maxShiftSeconds, sampleRate)
	}

	return &TimeShift{
		gate:            g,
		sampleRate:      sampleRate,
		maxShiftSeconds: maxShiftSeconds,
		maxShift:        maxShift,
		padding:         padding,
	}, nil
}

// SampleRate returns the configured sample rate in Hz.
func (t *TimeShift) SampleRate() float64 { return t.sampleRate }

// MaxShiftSeconds returns the shift bound in seconds.
func (t *TimeShift) MaxShiftSeconds() float64 { return t.maxShiftSeconds }

// MaxShift returns the shift bound in samples. Drawn shifts lie in
// [-MaxShift, MaxShift).
func (t *TimeShift) MaxShift() int { return t.maxShift }

// Padding returns the configured padding mode.
func (t *TimeShift) Padding() PaddingMode { return t.padding }

// Invoke applies the transform behind its probability gate.
func (t *TimeShift) Invoke(rng *rand.Rand, y []float64) []float64 {
	return t.gate.run(rng, y, t.apply)
}

func (t *TimeShift) apply(rng *rand.Rand, y []float64) []float64 {
	if len(y) == 0 {
		return y
	}

	// Half-open draw: the positive bound is excluded.
	shift := rng.Intn(2*t.maxShift) - t.maxShift

	out := rotate(y, shift)
	if t.padding == PaddingZero {
		zeroWrapped(out, shift)
	}

	return out
}

// rotate returns y circularly rotated by shift samples. Shift magnitudes
// beyond len(y) wrap modularly.
func rotate(y []float64, shift int) []float64 {
	n := len(y)
	out := make([]float64, n)

	k := ((shift % n) + n) % n
	for i, v := range y {
		j := i + k
		if j >= n {
			j -= n
		}
		out[j] = v
	}

	return out
}

// zeroWrapped silences the rotated-in region: the first shift samples for
// a forward shift, the last |shift| samples otherwise. The zeroed span is
// clamped to the buffer length; a zero shift silences nothing.
func zeroWrapped(buf []float64, shift int) {
	if shift > 0 {
		m := min(shift, len(buf))
		for i := range m {
			buf[i] = 0
		}
		return
	}

	m := min(-shift, len(buf))
	for i := len(buf) - m; i < len(buf); i++ {
		buf[i] = 0
	}
}
