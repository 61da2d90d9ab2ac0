// Package augment provides randomized waveform transforms for training
// data augmentation.
//
// Transforms:
//   - GaussianNoiseSNR: mixes in white Gaussian noise at a random SNR
//   - PinkNoiseSNR: mixes in 1/f (pink) noise at a random SNR
//   - PitchShift: shifts pitch by a random whole number of semitones
//   - TimeShift: circularly rotates the waveform by a random offset
//
// Combinators:
//   - Compose: applies transforms sequentially
//   - OneOf: applies exactly one transform, chosen uniformly at random
//
// Every transform carries a probability gate: it either always applies or
// applies with a configured probability, otherwise returning its input
// untouched. Randomness comes from an explicit *rand.Rand passed to
// Invoke, so a seeded source reproduces a pipeline exactly. All transforms
// preserve the input length. Configuration is validated eagerly at
// construction and immutable afterwards.
package augment
