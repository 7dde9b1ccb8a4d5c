package nn

import (
	"fmt"
	"math"
)

type convConfig struct {
	stride     int
	dilation   int
	bias       bool
	weightNorm bool
	seed       int64
}

func defaultConvConfig() convConfig {
	return convConfig{
		stride:   1,
		dilation: 1,
		bias:     true,
		seed:     42,
	}
}

// ConvOption configures convolution layers.
type ConvOption func(*convConfig)

// WithStride sets the convolution stride.
func WithStride(s int) ConvOption {
	return func(c *convConfig) {
		if s > 0 {
			c.stride = s
		}
	}
}

// WithDilation sets the kernel dilation rate.
func WithDilation(d int) ConvOption {
	return func(c *convConfig) {
		if d > 0 {
			c.dilation = d
		}
	}
}

// WithoutBias disables the additive bias term.
func WithoutBias() ConvOption {
	return func(c *convConfig) {
		c.bias = false
	}
}

// WithWeightNorm enables weight normalization: stored weights are
// reparameterized as g·v/‖v‖ per output channel, with the gain g
// materialized once at construction or parameter load.
func WithWeightNorm() ConvOption {
	return func(c *convConfig) {
		c.weightNorm = true
	}
}

// WithInitSeed sets the seed for the Glorot-normal weight initializer.
func WithInitSeed(seed int64) ConvOption {
	return func(c *convConfig) {
		c.seed = seed
	}
}

// Conv1D is a one-dimensional convolution over the time axis with no
// implicit padding (valid framing). Weights use the layout
// (kernel, inChannels, outChannels): element (q, ic, oc) lives at
// weight[(q*inChannels+ic)*outChannels+oc].
type Conv1D struct {
	weight   []float32
	bias     []float32 // nil when disabled
	inCh     int
	outCh    int
	kernel   int
	stride   int
	dilation int

	weightNorm bool
}

// NewConv1D creates a convolution layer with Glorot-normal initialized
// weights and zero bias.
func NewConv1D(inCh, outCh, kernel int, opts ...ConvOption) (*Conv1D, error) {
	if inCh <= 0 || outCh <= 0 {
		return nil, fmt.Errorf("%w: in=%d out=%d", ErrInvalidChannel, inCh, outCh)
	}
	if kernel <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernel, kernel)
	}

	cfg := defaultConvConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &Conv1D{
		weight:     make([]float32, kernel*inCh*outCh),
		inCh:       inCh,
		outCh:      outCh,
		kernel:     kernel,
		stride:     cfg.stride,
		dilation:   cfg.dilation,
		weightNorm: cfg.weightNorm,
	}
	if cfg.bias {
		c.bias = make([]float32, outCh)
	}

	glorotNormal(c.weight, kernel*inCh, outCh, newRNG(cfg.seed))
	return c, nil
}

// InChannels returns the expected input channel count.
func (c *Conv1D) InChannels() int { return c.inCh }

// OutChannels returns the produced output channel count.
func (c *Conv1D) OutChannels() int { return c.outCh }

// Kernel returns the kernel size.
func (c *Conv1D) Kernel() int { return c.kernel }

// Stride returns the time stride.
func (c *Conv1D) Stride() int { return c.stride }

// Weights returns a copy of the weight tensor in
// (kernel, inChannels, outChannels) layout.
func (c *Conv1D) Weights() []float32 {
	w := make([]float32, len(c.weight))
	copy(w, c.weight)
	return w
}

// SetParameters replaces the layer weights and bias. weight must have
// kernel*inChannels*outChannels elements in (kernel, in, out) layout; bias
// must have outChannels elements or be nil for a bias-free layer.
func (c *Conv1D) SetParameters(weight, bias []float32) error {
	if len(weight) != len(c.weight) {
		return fmt.Errorf("%w: weight %d, want %d", ErrParameterSize, len(weight), len(c.weight))
	}
	if c.bias == nil {
		if bias != nil {
			return fmt.Errorf("%w: layer has no bias", ErrParameterSize)
		}
	} else if len(bias) != len(c.bias) {
		return fmt.Errorf("%w: bias %d, want %d", ErrParameterSize, len(bias), len(c.bias))
	}

	copy(c.weight, weight)
	if c.bias != nil {
		copy(c.bias, bias)
	}
	return nil
}

// SetGain reapplies weight normalization with explicit per-output-channel
// gains. Only valid on layers built with WithWeightNorm.
func (c *Conv1D) SetGain(gain []float32) error {
	if !c.weightNorm {
		return fmt.Errorf("%w: layer built without weight normalization", ErrParameterSize)
	}
	if len(gain) != c.outCh {
		return fmt.Errorf("%w: gain %d, want %d", ErrParameterSize, len(gain), c.outCh)
	}
	for oc := 0; oc < c.outCh; oc++ {
		var sumSq float64
		for q := 0; q < c.kernel; q++ {
			for ic := 0; ic < c.inCh; ic++ {
				v := float64(c.weight[(q*c.inCh+ic)*c.outCh+oc])
				sumSq += v * v
			}
		}
		norm := math.Sqrt(sumSq)
		if norm == 0 {
			continue
		}
		scale := float32(float64(gain[oc]) / norm)
		for q := 0; q < c.kernel; q++ {
			for ic := 0; ic < c.inCh; ic++ {
				c.weight[(q*c.inCh+ic)*c.outCh+oc] *= scale
			}
		}
	}
	return nil
}

// OutputTime returns the output time length for an input of length t.
func (c *Conv1D) OutputTime(t int) int {
	eff := (c.kernel-1)*c.dilation + 1
	if t < eff {
		return 0
	}
	return (t-eff)/c.stride + 1
}

// Forward applies the convolution. Input shape (B, T, inChannels) yields
// (B, (T-effKernel)/stride+1, outChannels) with effKernel the dilated
// kernel span.
func (c *Conv1D) Forward(x *Tensor) (*Tensor, error) {
	eff := (c.kernel-1)*c.dilation + 1
	if err := checkInput(x, c.inCh, eff); err != nil {
		return nil, err
	}

	outT := c.OutputTime(x.Time)
	out := NewTensor(x.Batch, outT, c.outCh)

	for b := 0; b < x.Batch; b++ {
		for ot := 0; ot < outT; ot++ {
			acc := out.Frame(b, ot)
			if c.bias != nil {
				copy(acc, c.bias)
			}
			t0 := ot * c.stride
			for q := 0; q < c.kernel; q++ {
				in := x.Frame(b, t0+q*c.dilation)
				wq := c.weight[q*c.inCh*c.outCh : (q+1)*c.inCh*c.outCh]
				for ic, xv := range in {
					if xv == 0 {
						continue
					}
					wRow := wq[ic*c.outCh : (ic+1)*c.outCh]
					for oc, wv := range wRow {
						acc[oc] += xv * wv
					}
				}
			}
		}
	}
	return out, nil
}
