package augment

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-augment/core"
	"github.com/cwbudde/algo-augment/internal/testutil"
)

func TestNewGaussianNoiseSNRValidation(t *testing.T) {
	tests := []struct {
		name           string
		minSNR, maxSNR float64
		opts           []Option
		wantErr        bool
	}{
		{name: "valid", minSNR: 5, maxSNR: 20},
		{name: "valid degenerate range", minSNR: 10, maxSNR: 10},
		{name: "min above max", minSNR: 20, maxSNR: 5, wantErr: true},
		{name: "NaN min", minSNR: math.NaN(), maxSNR: 20, wantErr: true},
		{name: "Inf max", minSNR: 5, maxSNR: math.Inf(1), wantErr: true},
		{name: "bad probability", minSNR: 5, maxSNR: 20, opts: []Option{WithProbability(2)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGaussianNoiseSNR(tt.minSNR, tt.maxSNR, tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGaussianNoiseSNR() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestGaussianNoiseSNRLengthInvariance(t *testing.T) {
	tr, err := NewGaussianNoiseSNR(5, 20, WithAlwaysApply())
	if err != nil {
		t.Fatalf("NewGaussianNoiseSNR() error = %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 5, 128, 4096} {
		y := testutil.DeterministicSine(440, 32000, 0.8, n)
		out := tr.Invoke(rng, y)
		if len(out) != n {
			t.Fatalf("len = %d, want %d", len(out), n)
		}
		testutil.RequireFinite(t, out)
	}
}

func TestGaussianNoiseSNRPeakMatchesTarget(t *testing.T) {
	// A degenerate SNR range pins the drawn SNR, so the injected noise
	// peak is exactly a_signal / 10^(snr/20).
	const snr = 12.0

	tr, err := NewGaussianNoiseSNR(snr, snr, WithAlwaysApply())
	if err != nil {
		t.Fatalf("NewGaussianNoiseSNR() error = %v", err)
	}

	rng := rand.New(rand.NewSource(9))
	y := testutil.DeterministicSine(440, 32000, 0.8, 4096)

	out := tr.Invoke(rng, y)

	added := make([]float64, len(y))
	for i := range y {
		added[i] = out[i] - y[i]
	}

	want := core.MaxAbs(y) / core.DBToLinear(snr)
	got := core.MaxAbs(added)
	if !core.NearlyEqual(got, want, 1e-9) {
		t.Fatalf("added-noise peak = %v, want %v", got, want)
	}
}

func TestGaussianNoiseSNRPeakWithinDrawnBounds(t *testing.T) {
	const (
		minSNR = 5.0
		maxSNR = 20.0
	)

	tr, err := NewGaussianNoiseSNR(minSNR, maxSNR, WithAlwaysApply())
	if err != nil {
		t.Fatalf("NewGaussianNoiseSNR() error = %v", err)
	}

	rng := rand.New(rand.NewSource(2))
	y := testutil.DeterministicSine(220, 32000, 0.5, 2048)
	peak := core.MaxAbs(y)

	lo := peak / core.DBToLinear(maxSNR)
	hi := peak / core.DBToLinear(minSNR)

	for range 50 {
		out := tr.Invoke(rng, y)
		added := 0.0
		for i := range y {
			d := math.Abs(out[i] - y[i])
			if d > added {
				added = d
			}
		}
		if added < lo-1e-9 || added > hi+1e-9 {
			t.Fatalf("added-noise peak %v outside [%v, %v]", added, lo, hi)
		}
	}
}

func TestGaussianNoiseSNRSilentInputStaysSilent(t *testing.T) {
	tr, err := NewGaussianNoiseSNR(5, 20, WithAlwaysApply())
	if err != nil {
		t.Fatalf("NewGaussianNoiseSNR() error = %v", err)
	}

	rng := rand.New(rand.NewSource(3))
	y := make([]float64, 256)

	out := tr.Invoke(rng, y)
	testutil.RequireSliceNearlyEqual(t, out, y, 0)
}

func TestGaussianNoiseSNRGateOff(t *testing.T) {
	tr, err := NewGaussianNoiseSNR(5, 20, WithProbability(0))
	if err != nil {
		t.Fatalf("NewGaussianNoiseSNR() error = %v", err)
	}

	rng := rand.New(rand.NewSource(4))
	y := []float64{0.5, -0.25}
	out := tr.Invoke(rng, y)
	if &out[0] != &y[0] {
		t.Fatal("gated-off transform must return the input slice itself")
	}
}

func TestNewPinkNoiseSNRValidation(t *testing.T) {
	if _, err := NewPinkNoiseSNR(20, 5); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("NewPinkNoiseSNR(20, 5) error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewPinkNoiseSNR(5, 20, WithProbability(-1)); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("NewPinkNoiseSNR(p=-1) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestPinkNoiseSNRPeakMatchesTarget(t *testing.T) {
	const snr = 8.0

	tr, err := NewPinkNoiseSNR(snr, snr, WithAlwaysApply())
	if err != nil {
		t.Fatalf("NewPinkNoiseSNR() error = %v", err)
	}

	rng := rand.New(rand.NewSource(21))
	y := testutil.DeterministicSine(330, 32000, 0.7, 4096)

	out := tr.Invoke(rng, y)
	if len(out) != len(y) {
		t.Fatalf("len = %d, want %d", len(out), len(y))
	}

	added := make([]float64, len(y))
	for i := range y {
		added[i] = out[i] - y[i]
	}

	want := core.MaxAbs(y) / core.DBToLinear(snr)
	got := core.MaxAbs(added)
	if !core.NearlyEqual(got, want, 1e-9) {
		t.Fatalf("added-noise peak = %v, want %v", got, want)
	}
}

func TestPinkNoiseSNRSilentInputStaysSilent(t *testing.T) {
	tr, err := NewPinkNoiseSNR(5, 20, WithAlwaysApply())
	if err != nil {
		t.Fatalf("NewPinkNoiseSNR() error = %v", err)
	}

	rng := rand.New(rand.NewSource(6))
	y := make([]float64, 100)

	out := tr.Invoke(rng, y)
	testutil.RequireSliceNearlyEqual(t, out, y, 0)
}

func TestNoiseSNRAccessors(t *testing.T) {
	g, err := NewGaussianNoiseSNR(5, 20)
	if err != nil {
		t.Fatalf("NewGaussianNoiseSNR() error = %v", err)
	}
	if g.MinSNR() != 5 || g.MaxSNR() != 20 {
		t.Fatalf("SNR bounds = [%v, %v], want [5, 20]", g.MinSNR(), g.MaxSNR())
	}
	if g.Probability() != DefaultProbability {
		t.Fatalf("Probability() = %v, want %v", g.Probability(), DefaultProbability)
	}

	p, err := NewPinkNoiseSNR(3, 9, WithAlwaysApply())
	if err != nil {
		t.Fatalf("NewPinkNoiseSNR() error = %v", err)
	}
	if p.MinSNR() != 3 || p.MaxSNR() != 9 || !p.AlwaysApply() {
		t.Fatalf("unexpected pink config: [%v, %v] alwaysApply=%v", p.MinSNR(), p.MaxSNR(), p.AlwaysApply())
	}
}
