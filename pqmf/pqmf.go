package pqmf

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/nn"
)

// PQMF splits a single-channel signal into critically sampled sub-bands
// (analysis) and merges sub-bands back into a single-channel signal
// (synthesis). All filter state is fixed at construction; the value is
// safe for concurrent use.
type PQMF struct {
	subbands int
	taps     int

	pad           *nn.Pad1D
	analysisConv  *nn.Conv1D
	routingDown   *nn.Conv1D
	routingUp     *nn.ConvTranspose1D
	synthesisConv *nn.Conv1D
}

// New builds a PQMF for the given band count from a Kaiser-windowed
// prototype filter with the given taps, cutoff ratio, and beta.
//
// The common design for four bands is taps=62, cutoffRatio=0.15, beta=9.0.
func New(subbands, taps int, cutoffRatio, beta float64) (*PQMF, error) {
	if subbands < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSubbands, subbands)
	}

	proto, err := DesignPrototypeFilter(taps, cutoffRatio, beta)
	if err != nil {
		return nil, err
	}
	fb := buildFilterBank(proto, subbands)

	pad, err := nn.NewPad1D(taps/2, nn.PadConstant)
	if err != nil {
		return nil, err
	}

	analysisConv, err := nn.NewConv1D(1, subbands, taps+1, nn.WithoutBias())
	if err != nil {
		return nil, err
	}
	if err := analysisConv.SetParameters(fb.analysis, nil); err != nil {
		return nil, err
	}

	routingDown, err := nn.NewConv1D(subbands, subbands, subbands,
		nn.WithStride(subbands), nn.WithoutBias())
	if err != nil {
		return nil, err
	}
	if err := routingDown.SetParameters(fb.routing, nil); err != nil {
		return nil, err
	}

	routingUp, err := nn.NewConvTranspose1D(subbands, subbands, subbands, subbands,
		nn.WithoutBias())
	if err != nil {
		return nil, err
	}
	if err := routingUp.SetParameters(fb.scaledRouting(float32(subbands)), nil); err != nil {
		return nil, err
	}

	synthesisConv, err := nn.NewConv1D(subbands, 1, taps+1, nn.WithoutBias())
	if err != nil {
		return nil, err
	}
	if err := synthesisConv.SetParameters(fb.synthesis, nil); err != nil {
		return nil, err
	}

	return &PQMF{
		subbands:      subbands,
		taps:          taps,
		pad:           pad,
		analysisConv:  analysisConv,
		routingDown:   routingDown,
		routingUp:     routingUp,
		synthesisConv: synthesisConv,
	}, nil
}

// Subbands returns the number of sub-bands.
func (p *PQMF) Subbands() int { return p.subbands }

// Taps returns the prototype filter order.
func (p *PQMF) Taps() int { return p.taps }

// AnalysisFilter returns a copy of the analysis coefficient tensor in
// (taps+1, 1, subbands) layout.
func (p *PQMF) AnalysisFilter() []float32 { return p.analysisConv.Weights() }

// SynthesisFilter returns a copy of the synthesis coefficient tensor in
// (taps+1, subbands, 1) layout.
func (p *PQMF) SynthesisFilter() []float32 { return p.synthesisConv.Weights() }

// RoutingFilter returns a copy of the routing tensor in
// (subbands, subbands, subbands) layout, nonzero only at [0,k,k].
func (p *PQMF) RoutingFilter() []float32 { return p.routingDown.Weights() }

// Analysis splits x of shape (B, T, 1) into sub-band signals of shape
// (B, T/subbands, subbands). T must be at least subbands.
func (p *PQMF) Analysis(x *nn.Tensor) (*nn.Tensor, error) {
	if x == nil || x.Channels != 1 {
		ch := 0
		if x != nil {
			ch = x.Channels
		}
		return nil, fmt.Errorf("%w: analysis input needs 1 channel, got %d", nn.ErrShapeMismatch, ch)
	}

	padded, err := p.pad.Forward(x)
	if err != nil {
		return nil, err
	}
	// Dense filtering is length-preserving: the taps/2 padding on both
	// sides exactly absorbs the taps+1 kernel.
	bands, err := p.analysisConv.Forward(padded)
	if err != nil {
		return nil, err
	}
	return p.routingDown.Forward(bands)
}

// Synthesis merges x of shape (B, T', subbands) into a single-channel
// signal of shape (B, T'*subbands, 1).
func (p *PQMF) Synthesis(x *nn.Tensor) (*nn.Tensor, error) {
	if x == nil || x.Channels != p.subbands {
		ch := 0
		if x != nil {
			ch = x.Channels
		}
		return nil, fmt.Errorf("%w: synthesis input needs %d channels, got %d", nn.ErrShapeMismatch, p.subbands, ch)
	}

	up, err := p.routingUp.Forward(x)
	if err != nil {
		return nil, err
	}
	padded, err := p.pad.Forward(up)
	if err != nil {
		return nil, err
	}
	return p.synthesisConv.Forward(padded)
}
