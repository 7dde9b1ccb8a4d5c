package pqmf

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by filter design and filterbank construction.
var (
	ErrOddTaps         = errors.New("pqmf: taps must be a positive even number")
	ErrCutoffRange     = errors.New("pqmf: cutoff ratio must be in (0, 1)")
	ErrInvalidBeta     = errors.New("pqmf: beta must be >= 0")
	ErrInvalidSubbands = errors.New("pqmf: subbands must be >= 1")
)

// DesignPrototypeFilter computes the impulse response of the low-pass
// prototype filter: an ideal sinc low-pass at omega_c = pi*cutoffRatio,
// shaped by a Kaiser window with the given beta. The result has taps+1
// coefficients, symmetric about the center sample.
//
// The ideal response h[n] = sin(omega_c*(n-taps/2)) / (pi*(n-taps/2)) has a
// removable singularity at n = taps/2; that sample is set to its limit,
// cutoffRatio, directly.
func DesignPrototypeFilter(taps int, cutoffRatio, beta float64) ([]float64, error) {
	if taps <= 0 || taps%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddTaps, taps)
	}
	if cutoffRatio <= 0 || cutoffRatio >= 1 {
		return nil, fmt.Errorf("%w: %g", ErrCutoffRange, cutoffRatio)
	}
	if beta < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidBeta, beta)
	}

	h := make([]float64, taps+1)
	omega := math.Pi * cutoffRatio
	half := taps / 2
	for n := range h {
		if n == half {
			h[n] = cutoffRatio
			continue
		}
		m := float64(n - half)
		h[n] = math.Sin(omega*m) / (math.Pi * m)
	}

	w, err := window.Kaiser(taps+1, beta)
	if err != nil {
		return nil, fmt.Errorf("pqmf: kaiser window: %w", err)
	}
	vecmath.MulBlockInPlace(h, w)

	return h, nil
}
