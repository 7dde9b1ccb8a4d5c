// Package melgan implements the forward-inference multi-band generator
// network of a neural vocoder: an upsampling convolutional stack that maps
// a low-rate mel-spectrogram to several band-limited sub-band signals,
// merged into a single full-rate waveform by PQMF synthesis.
//
// The layer sequence is fixed at construction from a [Config] and applied
// strictly in order; a generator is immutable afterwards and safe for
// concurrent inference calls.
package melgan
