package nn

import (
	"fmt"
	"math"
)

// ConvTranspose1D is a strided transposed (fractionally-strided)
// convolution over the time axis. It upsamples an input of length T to
// exactly T*stride samples, matching the "same" framing of the forward
// strided convolution it inverts. Weights use the layout
// (kernel, outChannels, inChannels): element (q, oc, ic) lives at
// weight[(q*outChannels+oc)*inChannels+ic].
type ConvTranspose1D struct {
	weight  []float32
	bias    []float32 // nil when disabled
	inCh    int
	outCh   int
	kernel  int
	stride  int
	padLeft int

	weightNorm bool
}

// NewConvTranspose1D creates a transposed convolution layer with
// Glorot-normal initialized weights and zero bias.
func NewConvTranspose1D(inCh, outCh, kernel, stride int, opts ...ConvOption) (*ConvTranspose1D, error) {
	if inCh <= 0 || outCh <= 0 {
		return nil, fmt.Errorf("%w: in=%d out=%d", ErrInvalidChannel, inCh, outCh)
	}
	if kernel <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernel, kernel)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStride, stride)
	}
	if kernel < stride {
		return nil, fmt.Errorf("%w: kernel %d shorter than stride %d leaves gaps", ErrInvalidKernel, kernel, stride)
	}

	cfg := defaultConvConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &ConvTranspose1D{
		weight:     make([]float32, kernel*outCh*inCh),
		inCh:       inCh,
		outCh:      outCh,
		kernel:     kernel,
		stride:     stride,
		padLeft:    (kernel - stride) / 2,
		weightNorm: cfg.weightNorm,
	}
	if cfg.bias {
		c.bias = make([]float32, outCh)
	}

	glorotNormal(c.weight, kernel*inCh, outCh, newRNG(cfg.seed))
	return c, nil
}

// InChannels returns the expected input channel count.
func (c *ConvTranspose1D) InChannels() int { return c.inCh }

// OutChannels returns the produced output channel count.
func (c *ConvTranspose1D) OutChannels() int { return c.outCh }

// Kernel returns the kernel size.
func (c *ConvTranspose1D) Kernel() int { return c.kernel }

// Stride returns the upsampling factor.
func (c *ConvTranspose1D) Stride() int { return c.stride }

// SetParameters replaces the layer weights and bias. weight must have
// kernel*outChannels*inChannels elements in (kernel, out, in) layout.
func (c *ConvTranspose1D) SetParameters(weight, bias []float32) error {
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
func (c *ConvTranspose1D) SetGain(gain []float32) error {
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
				v := float64(c.weight[(q*c.outCh+oc)*c.inCh+ic])
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
				c.weight[(q*c.outCh+oc)*c.inCh+ic] *= scale
			}
		}
	}
	return nil
}

// Forward applies the transposed convolution. Input shape (B, T, inChannels)
// yields (B, T*stride, outChannels): each input sample is scattered into
// stride-spaced output positions through the kernel.
func (c *ConvTranspose1D) Forward(x *Tensor) (*Tensor, error) {
	if err := checkInput(x, c.inCh, 1); err != nil {
		return nil, err
	}

	outT := x.Time * c.stride
	out := NewTensor(x.Batch, outT, c.outCh)

	if c.bias != nil {
		for b := 0; b < x.Batch; b++ {
			for t := 0; t < outT; t++ {
				copy(out.Frame(b, t), c.bias)
			}
		}
	}

	for b := 0; b < x.Batch; b++ {
		for t := 0; t < x.Time; t++ {
			in := x.Frame(b, t)
			base := t*c.stride - c.padLeft
			for q := 0; q < c.kernel; q++ {
				o := base + q
				if o < 0 || o >= outT {
					continue
				}
				acc := out.Frame(b, o)
				wq := c.weight[q*c.outCh*c.inCh : (q+1)*c.outCh*c.inCh]
				for oc := 0; oc < c.outCh; oc++ {
					wRow := wq[oc*c.inCh : (oc+1)*c.inCh]
					var sum float32
					for ic, wv := range wRow {
						sum += wv * in[ic]
					}
					acc[oc] += sum
				}
			}
		}
	}
	return out, nil
}
