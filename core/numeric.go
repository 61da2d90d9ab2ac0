package core

import "math"

const defaultEpsilon = 1e-12

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// NearlyEqual reports whether a and b are equal within eps.
// A non-positive eps falls back to a small absolute default.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// MaxAbs returns the peak absolute value in x, or 0 for an empty slice.
func MaxAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		av := math.Abs(v)
		if av > peak {
			peak = av
		}
	}

	return peak
}
