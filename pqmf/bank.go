package pqmf

import "math"

// filterBank holds the convolution-ready coefficient tensors derived from
// one prototype filter.
//
// Layouts follow the convolution weight conventions of package nn:
//
//	analysis:  (taps+1, 1, subbands)          one input channel fanned out
//	synthesis: (taps+1, subbands, 1)          subbands collapsed to one
//	routing:   (subbands, subbands, subbands) identity selector [0,k,k]=1
//
// Analysis expands on the output-channel axis, synthesis on the
// input-channel axis.
type filterBank struct {
	analysis  []float32
	synthesis []float32
	routing   []float32
	subbands  int
	taps      int
}

// buildFilterBank derives the per-sub-band filters from the prototype by
// cosine modulation. For sub-band k:
//
//	hA[k][n] = 2*h[n]*cos((2k+1)*(pi/(2*subbands))*(n-taps/2) + (-1)^k*pi/4)
//	hS[k][n] = 2*h[n]*cos((2k+1)*(pi/(2*subbands))*(n-taps/2) - (-1)^k*pi/4)
//
// The phase offset sign alternates per band and flips between the analysis
// and synthesis sets; this is what cancels aliasing between adjacent bands.
func buildFilterBank(proto []float64, subbands int) filterBank {
	taps := len(proto) - 1
	half := float64(taps) / 2

	fb := filterBank{
		analysis:  make([]float32, (taps+1)*subbands),
		synthesis: make([]float32, (taps+1)*subbands),
		routing:   make([]float32, subbands*subbands*subbands),
		subbands:  subbands,
		taps:      taps,
	}

	for k := 0; k < subbands; k++ {
		factor := float64(2*k+1) * math.Pi / float64(2*subbands)
		phase := math.Pi / 4
		if k%2 == 1 {
			phase = -phase
		}
		for n := 0; n <= taps; n++ {
			arg := factor * (float64(n) - half)
			// analysis element (n, 0, k); synthesis element (n, k, 0).
			fb.analysis[n*subbands+k] = float32(2 * proto[n] * math.Cos(arg+phase))
			fb.synthesis[n*subbands+k] = float32(2 * proto[n] * math.Cos(arg-phase))
		}
	}

	// Selector picking the k-th channel at the first kernel position. The
	// same flat tensor serves as forward-convolution weights (kernel, in,
	// out) for decimation and as transposed-convolution weights (kernel,
	// out, in) for interpolation: the nonzero entries sit at symmetric
	// positions [0, k, k] in both layouts.
	for k := 0; k < subbands; k++ {
		fb.routing[k*subbands+k] = 1
	}

	return fb
}

// scaledRouting returns a copy of the routing tensor multiplied by gain,
// compensating the energy spread of zero-stuffing interpolation.
func (fb filterBank) scaledRouting(gain float32) []float32 {
	out := make([]float32, len(fb.routing))
	for i, v := range fb.routing {
		out[i] = v * gain
	}
	return out
}
