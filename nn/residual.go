package nn

import "fmt"

// ResidualStack is a dilated-convolution residual unit: activation,
// padded dilated convolution, activation, 1x1 convolution, summed with a
// 1x1 convolution shortcut. Channel count and time length are preserved.
type ResidualStack struct {
	blocks   []Layer
	shortcut *Conv1D
}

type residualConfig struct {
	padType    PadType
	actName    string
	actParams  map[string]float64
	bias       bool
	weightNorm bool
	seed       int64
}

// ResidualOption configures a ResidualStack.
type ResidualOption func(*residualConfig)

// WithResidualPadType sets the padding mode of the dilated convolution.
func WithResidualPadType(t PadType) ResidualOption {
	return func(c *residualConfig) { c.padType = t }
}

// WithResidualActivation sets the activation applied inside the unit.
func WithResidualActivation(name string, params map[string]float64) ResidualOption {
	return func(c *residualConfig) {
		c.actName = name
		c.actParams = params
	}
}

// WithResidualBias toggles the bias terms of the convolutions.
func WithResidualBias(enabled bool) ResidualOption {
	return func(c *residualConfig) { c.bias = enabled }
}

// WithResidualWeightNorm enables weight normalization on the convolutions.
func WithResidualWeightNorm() ResidualOption {
	return func(c *residualConfig) { c.weightNorm = true }
}

// WithResidualSeed sets the weight initializer seed.
func WithResidualSeed(seed int64) ResidualOption {
	return func(c *residualConfig) { c.seed = seed }
}

// NewResidualStack creates a residual unit over the given channel count
// with the given kernel size and dilation rate.
func NewResidualStack(channels, kernel, dilation int, opts ...ResidualOption) (*ResidualStack, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, channels)
	}
	if kernel <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernel, kernel)
	}
	if dilation <= 0 {
		return nil, fmt.Errorf("%w: dilation %d", ErrInvalidKernel, dilation)
	}

	cfg := residualConfig{
		padType: PadReflect,
		actName: "LeakyReLU",
		bias:    true,
		seed:    42,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	convOpts := []ConvOption{WithInitSeed(cfg.seed)}
	if !cfg.bias {
		convOpts = append(convOpts, WithoutBias())
	}
	if cfg.weightNorm {
		convOpts = append(convOpts, WithWeightNorm())
	}

	act1, err := NewActivation(cfg.actName, cfg.actParams)
	if err != nil {
		return nil, err
	}
	act2, err := NewActivation(cfg.actName, cfg.actParams)
	if err != nil {
		return nil, err
	}
	pad, err := NewPad1D(dilation*(kernel-1)/2, cfg.padType)
	if err != nil {
		return nil, err
	}
	dilated, err := NewConv1D(channels, channels, kernel, append(convOpts, WithDilation(dilation))...)
	if err != nil {
		return nil, err
	}
	pointwise, err := NewConv1D(channels, channels, 1, convOpts...)
	if err != nil {
		return nil, err
	}
	shortcut, err := NewConv1D(channels, channels, 1, convOpts...)
	if err != nil {
		return nil, err
	}

	return &ResidualStack{
		blocks:   []Layer{act1, pad, dilated, act2, pointwise},
		shortcut: shortcut,
	}, nil
}

// Forward computes shortcut(x) + blocks(x).
func (r *ResidualStack) Forward(x *Tensor) (*Tensor, error) {
	y := x
	var err error
	for _, l := range r.blocks {
		y, err = l.Forward(y)
		if err != nil {
			return nil, err
		}
	}

	s, err := r.shortcut.Forward(x)
	if err != nil {
		return nil, err
	}
	if len(s.Data) != len(y.Data) {
		return nil, fmt.Errorf("%w: residual branch %s vs shortcut %s", ErrShapeMismatch, y, s)
	}
	for i, v := range s.Data {
		y.Data[i] += v
	}
	return y, nil
}
