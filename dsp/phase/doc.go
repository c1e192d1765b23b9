// Package phase applies zeroth-order phase correction to one-sided complex
// spectra and searches for the angle that maximizes in-phase intensity.
//
// Angles are integer degrees. For a bin X the phased value at angle θ is
//
//	Re(X)*cos(θ) + Im(X)*sin(θ)
//
// so θ = 0 yields the real part and θ = 90 the imaginary part. The
// first-order angle carried by [State] is tracked for display only and does
// not enter any computation.
package phase
