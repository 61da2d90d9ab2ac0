package augment

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultProbability is the apply probability used when WithProbability is
// not given.
const DefaultProbability = 0.5

// Transform perturbs a waveform behind a probability gate. Invoke returns
// a buffer of the same length as y; when the gate stays closed it returns
// y itself, unmodified.
type Transform interface {
	Invoke(rng *rand.Rand, y []float64) []float64
}

// gate holds the shared apply-or-skip configuration embedded by every
// concrete transform.
type gate struct {
	alwaysApply bool
	p           float64
}

// Option configures the probability gate of a transform.
type Option func(*gate)

// WithProbability sets the probability of applying the transform per
// Invoke. Values outside [0, 1] fail construction.
func WithProbability(p float64) Option {
	return func(g *gate) {
		g.p = p
	}
}

// WithAlwaysApply makes the transform apply unconditionally, ignoring the
// probability.
func WithAlwaysApply() Option {
	return func(g *gate) {
		g.alwaysApply = true
	}
}

func newGate(opts ...Option) (gate, error) {
	g := gate{p: DefaultProbability}
	for _, opt := range opts {
		if opt != nil {
			opt(&g)
		}
	}

	if math.IsNaN(g.p) || g.p < 0 || g.p > 1 {
		return gate{}, fmt.Errorf("%w: probability must be in [0, 1]: %f", ErrInvalidConfiguration, g.p)
	}

	return g, nil
}

// run executes apply when the gate opens: unconditionally with
// alwaysApply, otherwise when a uniform draw lands below the probability.
// A closed gate returns y without copying.
func (g gate) run(rng *rand.Rand, y []float64, apply func(*rand.Rand, []float64) []float64) []float64 {
	if !g.alwaysApply && rng.Float64() >= g.p {
		return y
	}

	return apply(rng, y)
}

// Probability returns the configured apply probability.
func (g gate) Probability() float64 { return g.p }

// AlwaysApply reports whether the transform applies unconditionally.
func (g gate) AlwaysApply() bool { return g.alwaysApply }
