package pqmf

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// Analysis holds numerically measured spectral properties of a filterbank
// design, evaluated on a dense FFT grid.
type Analysis struct {
	// Taps is the prototype filter order.
	Taps int
	// Subbands is the band count the modulation was evaluated for.
	Subbands int
	// PassbandEdge is the -3 dB point of the prototype in normalized
	// frequency (0..0.5).
	PassbandEdge float64
	// StopbandAttenuationDB is the peak prototype magnitude beyond the
	// first band edge, in dB relative to DC. More negative is better.
	StopbandAttenuationDB float64
	// CompositeRippleDB is the peak-to-peak deviation of the summed
	// band power responses from flatness, in dB. Near-perfect
	// reconstruction requires this to stay small.
	CompositeRippleDB float64
}

// Analyze designs a prototype for the given parameters and measures the
// resulting filterbank: prototype passband edge, stopband attenuation
// beyond the band edge at 1/(2*subbands), and the flatness of the summed
// per-band power responses.
func Analyze(subbands, taps int, cutoffRatio, beta float64) (Analysis, error) {
	if subbands < 1 {
		return Analysis{}, fmt.Errorf("%w: %d", ErrInvalidSubbands, subbands)
	}
	proto, err := DesignPrototypeFilter(taps, cutoffRatio, beta)
	if err != nil {
		return Analysis{}, err
	}

	fftSize := 4096
	for fftSize < 4*(taps+1) {
		fftSize *= 2
	}
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Analysis{}, fmt.Errorf("pqmf: fft plan: %w", err)
	}

	protoMag, err := magnitudeSpectrum(plan, proto, fftSize)
	if err != nil {
		return Analysis{}, err
	}

	dc := protoMag[0]
	half := len(protoMag)

	// -3 dB passband edge of the prototype.
	edge := 0.5
	target := dc / math.Sqrt2
	for i := 1; i < half; i++ {
		if protoMag[i] < target {
			edge = float64(i) / float64(fftSize)
			break
		}
	}

	// Peak stopband level beyond the band edge.
	bandEdge := 1.0 / float64(2*subbands)
	startBin := int(math.Ceil(bandEdge * float64(fftSize)))
	peak := 0.0
	for i := startBin; i < half; i++ {
		if protoMag[i] > peak {
			peak = protoMag[i]
		}
	}
	atten := math.Inf(-1)
	if peak > 0 && dc > 0 {
		atten = 20 * math.Log10(peak/dc)
	}

	// Composite power response of the modulated analysis filters.
	fb := buildFilterBank(proto, subbands)
	composite := make([]float64, half)
	band := make([]float64, taps+1)
	for k := 0; k < subbands; k++ {
		for n := 0; n <= taps; n++ {
			band[n] = float64(fb.analysis[n*subbands+k])
		}
		mag, err := magnitudeSpectrum(plan, band, fftSize)
		if err != nil {
			return Analysis{}, err
		}
		for i, m := range mag {
			composite[i] += m * m
		}
	}

	minP, maxP := math.Inf(1), math.Inf(-1)
	for _, p := range composite {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	ripple := math.Inf(1)
	if minP > 0 {
		ripple = 10 * math.Log10(maxP/minP)
	}

	return Analysis{
		Taps:                  taps,
		Subbands:              subbands,
		PassbandEdge:          edge,
		StopbandAttenuationDB: atten,
		CompositeRippleDB:     ripple,
	}, nil
}

// magnitudeSpectrum zero-pads coeffs to fftSize and returns |H| for the
// non-negative frequency bins.
func magnitudeSpectrum(plan *algofft.Plan[complex128], coeffs []float64, fftSize int) ([]float64, error) {
	buf := make([]complex128, fftSize)
	for i, v := range coeffs {
		buf[i] = complex(v, 0)
	}
	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("pqmf: forward fft: %w", err)
	}
	half := fftSize/2 + 1
	mag := make([]float64, half)
	for i := 0; i < half; i++ {
		re := real(buf[i])
		im := imag(buf[i])
		mag[i] = math.Hypot(re, im)
	}
	return mag, nil
}
