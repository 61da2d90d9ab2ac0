// Package noise generates random noise buffers for augmentation and testing.
//
// Generators:
//   - Gaussian: independent standard-normal white noise
//   - Powerlaw: noise with a 1/f^exponent power spectral density
//   - Pink: Powerlaw with exponent 1
//
// All generators draw from an explicit *rand.Rand so output is
// reproducible under seeding. Powerlaw shapes a white Gaussian spectrum
// with f^(-exponent/2) amplitude weighting and inverse-transforms it on a
// power-of-two FFT plan, truncating to the requested length.
package noise
