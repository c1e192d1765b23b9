// Package spectrum computes and inspects one-sided spectra of real-valued
// acquisitions.
//
// [Transform] produces the normalized non-negative-frequency bins together with
// their frequency axis. Power-of-two lengths are planned with algo-fft; any
// other length falls back to gonum's mixed-radix real FFT. The remaining
// helpers operate on the complex bins: magnitude, power and phase extraction.
package spectrum
