// Package pitch provides a non-I/O pitch-shifting primitive for
// augmentation pipelines.
//
// Shifter performs a WSOLA-style time stretch followed by cubic Hermite
// fractional resampling, so the output keeps the input's length and
// duration while the perceived pitch moves by the requested number of
// semitones. Configuration is fixed at construction; Shift takes the
// semitone amount per call.
package pitch
