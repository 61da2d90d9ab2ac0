package pitch

import (
	"fmt"
	"math"
)

const (
	// Music-tuned defaults: a long sequence window fits several beat
	// cycles into the correlation search, which helps segment selection
	// on polyphonic material.
	defaultSequenceMs = 82.0
	defaultOverlapMs  = 10.0
	defaultSearchMs   = 28.0

	minSequenceMs = 20.0
	maxSequenceMs = 120.0
	minOverlapMs  = 4.0
	maxOverlapMs  = 60.0
	minSearchMs   = 2.0
	maxSearchMs   = 40.0

	// MaxSemitones bounds the supported shift range to two octaves in
	// either direction.
	MaxSemitones = 24.0

	identityEps = 1e-9
	energyFloor = 1e-12
)

// Shifter is a mono, one-shot pitch shifter with immutable configuration.
//
// Shift output always has the same length as its input; only the perceived
// pitch changes.
type Shifter struct {
	sampleRate float64
	sequenceMs float64
	overlapMs  float64
	searchMs   float64

	sequenceLen int
	overlapLen  int
	searchLen   int
	hop         int

	fadeIn  []float64
	fadeOut []float64
}

// Option configures a Shifter before validation.
type Option func(*Shifter)

// WithSequence sets the WSOLA sequence window length in milliseconds.
func WithSequence(ms float64) Option {
	return func(s *Shifter) {
		s.sequenceMs = ms
	}
}

// WithOverlap sets the crossfade overlap length in milliseconds.
func WithOverlap(ms float64) Option {
	return func(s *Shifter) {
		s.overlapMs = ms
	}
}

// WithSearch sets the correlation seek radius in milliseconds.
func WithSearch(ms float64) Option {
	return func(s *Shifter) {
		s.searchMs = ms
	}
}

// New creates a pitch shifter for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Shifter, error) {
	if !isFinitePositive(sampleRate) {
		return nil, fmt.Errorf("pitch shifter sample rate must be positive and finite: %f", sampleRate)
	}

	s := &Shifter{
		sampleRate: sampleRate,
		sequenceMs: defaultSequenceMs,
		overlapMs:  defaultOverlapMs,
		searchMs:   defaultSearchMs,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	err := s.build()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// SampleRate returns the configured sample rate in Hz.
func (s *Shifter) SampleRate() float64 { return s.sampleRate }

// Sequence returns the sequence window length in milliseconds.
func (s *Shifter) Sequence() float64 { return s.sequenceMs }

// Overlap returns the crossfade overlap length in milliseconds.
func (s *Shifter) Overlap() float64 { return s.overlapMs }

// Search returns the correlation seek radius in milliseconds.
func (s *Shifter) Search() float64 { return s.searchMs }

// Shift returns input shifted by the given number of semitones.
//
// semitones must be finite and within [-MaxSemitones, MaxSemitones].
// A zero shift returns an exact copy. The output length always equals the
// input length; an empty input yields nil.
func (s *Shifter) Shift(input []float64, semitones float64) ([]float64, error) {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) ||
		semitones < -MaxSemitones || semitones > MaxSemitones {
		return nil, fmt.Errorf("pitch shift semitones must be in [%v, %v]: %f",
			-MaxSemitones, MaxSemitones, semitones)
	}
	if len(input) == 0 {
		return nil, nil
	}

	ratio := math.Pow(2, semitones/12.0)
	if math.Abs(ratio-1) <= identityEps {
		out := make([]float64, len(input))
		copy(out, input)
		return out, nil
	}

	stretched := s.stretch(input, ratio)

	return resampleHermite(stretched, len(input)), nil
}

func (s *Shifter) build() error {
	if s.sequenceMs < minSequenceMs || s.sequenceMs > maxSequenceMs ||
		math.IsNaN(s.sequenceMs) || math.IsInf(s.sequenceMs, 0) {
		return fmt.Errorf("pitch shifter sequence must be in [%f, %f] ms: %f",
			minSequenceMs, maxSequenceMs, s.sequenceMs)
	}
	if s.overlapMs < minOverlapMs || s.overlapMs > maxOverlapMs ||
		math.IsNaN(s.overlapMs) || math.IsInf(s.overlapMs, 0) {
		return fmt.Errorf("pitch shifter overlap must be in [%f, %f] ms: %f",
			minOverlapMs, maxOverlapMs, s.overlapMs)
	}
	if s.searchMs < minSearchMs || s.searchMs > maxSearchMs ||
		math.IsNaN(s.searchMs) || math.IsInf(s.searchMs, 0) {
		return fmt.Errorf("pitch shifter search must be in [%f, %f] ms: %f",
			minSearchMs, maxSearchMs, s.searchMs)
	}
	if s.overlapMs >= s.sequenceMs {
		return fmt.Errorf("pitch shifter overlap must be smaller than sequence: overlap=%f sequence=%f",
			s.overlapMs, s.sequenceMs)
	}

	s.sequenceLen = int(math.Round(s.sequenceMs * 0.001 * s.sampleRate))
	if s.sequenceLen < 32 {
		s.sequenceLen = 32
	}
	s.overlapLen = int(math.Round(s.overlapMs * 0.001 * s.sampleRate))
	if s.overlapLen < 8 {
		s.overlapLen = 8
	}
	if s.overlapLen >= s.sequenceLen {
		return fmt.Errorf("pitch shifter overlap too large for sequence: overlap=%d sequence=%d",
			s.overlapLen, s.sequenceLen)
	}
	s.hop = s.sequenceLen - s.overlapLen
	if s.hop < 4 {
		return fmt.Errorf("pitch shifter output hop too small: %d", s.hop)
	}
	s.searchLen = int(math.Round(s.searchMs * 0.001 * s.sampleRate))
	if s.searchLen < 1 {
		s.searchLen = 1
	}

	s.fadeIn = make([]float64, s.overlapLen)
	s.fadeOut = make([]float64, s.overlapLen)
	for i := range s.overlapLen {
		t := float64(i) / float64(s.overlapLen-1)
		in := 0.5 - 0.5*math.Cos(math.Pi*t)
		s.fadeIn[i] = in
		s.fadeOut[i] = 1 - in
	}

	return nil
}

// stretch changes the duration of input by ratio while keeping pitch,
// using overlap-add with a normalized cross-correlation segment search.
func (s *Shifter) stretch(input []float64, ratio float64) []float64 {
	targetLen := int(math.Round(float64(len(input)) * ratio))
	if targetLen < 1 {
		targetLen = 1
	}

	inStep := float64(s.hop) / ratio
	if inStep < 1 {
		inStep = 1
	}

	frames := targetLen/s.hop + 4
	out := make([]float64, frames*s.hop+s.sequenceLen+1)

	for i := range s.sequenceLen {
		out[i] = sampleZero(input, i)
	}
	written := s.sequenceLen
	prevStart := 0
	nominal := inStep
	ref := make([]float64, s.overlapLen)

	for written < targetLen+s.sequenceLen {
		refStart := prevStart + s.hop
		for i := range s.overlapLen {
			ref[i] = sampleZero(input, refStart+i)
		}

		candStart := s.seekSegment(ref, input, int(math.Round(nominal)))

		joinAt := written - s.overlapLen
		for i := range s.overlapLen {
			old := out[joinAt+i]
			next := sampleZero(input, candStart+i)
			out[joinAt+i] = old*s.fadeOut[i] + next*s.fadeIn[i]
		}
		for i := s.overlapLen; i < s.sequenceLen; i++ {
			out[joinAt+i] = sampleZero(input, candStart+i)
		}

		written = joinAt + s.sequenceLen
		prevStart = candStart
		nominal += inStep

		if prevStart > len(input)+s.sequenceLen && written >= targetLen {
			break
		}
	}

	if targetLen <= len(out) {
		return out[:targetLen]
	}
	padded := make([]float64, targetLen)
	copy(padded, out)
	return padded
}

// seekSegment finds the input offset near predicted whose overlap region
// best matches ref, scored by normalized cross-correlation.
func (s *Shifter) seekSegment(ref, input []float64, predicted int) int {
	refEnergy := energyFloor
	for _, v := range ref {
		refEnergy += v * v
	}

	best := predicted
	bestScore := math.Inf(-1)
	for cand := predicted - s.searchLen; cand <= predicted+s.searchLen; cand++ {
		dot := 0.0
		candEnergy := energyFloor
		for i, rv := range ref {
			cv := sampleZero(input, cand+i)
			dot += rv * cv
			candEnergy += cv * cv
		}

		score := dot / math.Sqrt(refEnergy*candEnergy)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	return best
}

// resampleHermite maps input onto outLen samples with 4-point cubic
// Hermite interpolation, clamping at the edges.
func resampleHermite(input []float64, outLen int) []float64 {
	if outLen <= 0 || len(input) == 0 {
		return nil
	}

	out := make([]float64, outLen)
	if len(input) == 1 || outLen == 1 {
		for i := range out {
			out[i] = input[0]
		}
		return out
	}

	step := float64(len(input)-1) / float64(outLen-1)
	pos := 0.0
	for i := range out {
		idx := int(math.Floor(pos))
		frac := pos - float64(idx)
		out[i] = hermite4(frac,
			sampleClamp(input, idx-1),
			sampleClamp(input, idx),
			sampleClamp(input, idx+1),
			sampleClamp(input, idx+2))
		pos += step
	}

	return out
}

// hermite4 computes cubic 4-point interpolation from x0 to x1 using the
// neighbor points xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

func sampleZero(x []float64, idx int) float64 {
	if idx < 0 || idx >= len(x) {
		return 0
	}
	return x[idx]
}

func sampleClamp(x []float64, idx int) float64 {
	if idx < 0 {
		return x[0]
	}
	if idx >= len(x) {
		return x[len(x)-1]
	}
	return x[idx]
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
