package augment

import (
	"fmt"
	"math/rand"
)

// Compose applies its transforms sequentially in construction order,
// feeding each output into the next transform. An empty Compose is the
// identity.
type Compose struct {
	transforms []Transform
}

// NewCompose creates a sequential pipeline from the given transforms.
func NewCompose(transforms ...Transform) (*Compose, error) {
	for i, tr := range transforms {
		if tr == nil {
			return nil, fmt.Errorf("%w: compose transform %d is nil", ErrInvalidConfiguration, i)
		}
	}

	return &Compose{transforms: transforms}, nil
}

// Invoke runs every child in order. Each child still decides via its own
// gate whether it mutates the signal.
func (c *Compose) Invoke(rng *rand.Rand, y []float64) []float64 {
	for _, tr := range c.transforms {
		y = tr.Invoke(rng, y)
	}

	return y
}

// Len returns the number of child transforms.
func (c *Compose) Len() int { return len(c.transforms) }

// OneOf picks exactly one of its transforms uniformly at random per Invoke
// and delegates to it. The chosen child's own probability gate still
// applies, so OneOf controls which transform is attempted, not whether it
// executes.
type OneOf struct {
	transforms []Transform
}

// NewOneOf creates a random single-choice dispatcher. At least one
// transform is required.
func NewOneOf(transforms ...Transform) (*OneOf, error) {
	if len(transforms) == 0 {
		return nil, fmt.Errorf("%w: one-of requires at least one transform", ErrInvalidConfiguration)
	}
	for i, tr := range transforms {
		if tr == nil {
			return nil, fmt.Errorf("%w: one-of transform %d is nil", ErrInvalidConfiguration, i)
		}
	}

	return &OneOf{transforms: transforms}, nil
}

// Invoke selects a child with a discrete uniform draw and delegates.
func (o *OneOf) Invoke(rng *rand.Rand, y []float64) []float64 {
	return o.transforms[rng.Intn(len(o.transforms))].Invoke(rng, y)
}

// Len returns the number of candidate transforms.
func (o *OneOf) Len() int { return len(o.transforms) }
