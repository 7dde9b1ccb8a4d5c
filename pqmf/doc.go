// Package pqmf implements a pseudo-quadrature-mirror filterbank for
// near-perfect-reconstruction sub-band coding of audio signals.
//
// A single low-pass prototype filter is designed from a Kaiser-windowed
// sinc and cosine-modulated into one analysis and one synthesis filter per
// sub-band. Analysis splits a full-rate signal into critically decimated
// sub-band signals; synthesis merges them back into a single full-rate
// signal. The cascade synthesis(analysis(x)) reproduces x with no net
// delay: the symmetric taps/2 padding of each stage absorbs the filter
// group delay. The residual error is aliasing bounded by the prototype
// design.
//
// Both directions are expressed as convolutions: a dense filterbank
// convolution followed by a strided routing convolution for analysis, and
// a strided transposed routing convolution followed by a collapsing
// filterbank convolution for synthesis. This is the polyphase formulation
// with the phase selection spelled out as a stride.
package pqmf
