// Package window generates apodization functions for decaying time signals.
//
// Apodization multiplies the free-induction decay before zero-fill and
// transform. Exponential and Gaussian functions trade resolution for
// signal-to-noise and are parameterized by a line broadening in Hz. Hann,
// half-Hann and Tukey tapers are parameterized by position only.
package window
