package melgan

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vocoder/nn"
)

// ErrInvalidConfig reports inconsistent generator configuration.
var ErrInvalidConfig = errors.New("melgan: invalid configuration")

// Config describes the generator architecture and its PQMF output stage.
type Config struct {
	// MelChannels is the mel-spectrogram channel count of the input.
	MelChannels int
	// Filters is the channel count after the first convolution. It is
	// halved at every upsampling stage, so it must be divisible by
	// 2^len(UpsampleScales) and at least the product of the scales.
	Filters int
	// KernelSize is the kernel size of the first and last convolutions.
	KernelSize int
	// UpsampleScales lists the per-stage time upsampling factors.
	UpsampleScales []int
	// Stacks is the number of residual units per upsampling stage.
	Stacks int
	// StackKernelSize is the kernel size inside the residual units; the
	// dilation of unit j is StackKernelSize^j.
	StackKernelSize int
	// UseBias toggles bias terms on all convolutions.
	UseBias bool
	// NonlinearActivation names the activation applied between layers,
	// resolved once at construction (ReLU, LeakyReLU, ELU, Tanh).
	NonlinearActivation string
	// NonlinearActivationParams holds the activation parameters, e.g.
	// {"alpha": 0.2} for LeakyReLU.
	NonlinearActivationParams map[string]float64
	// IsWeightNorm enables weight normalization on the convolutions.
	IsWeightNorm bool
	// InitializerSeed seeds the Glorot-normal weight initializer.
	InitializerSeed int64
	// PaddingType selects the edge padding mode of the convolutions.
	PaddingType nn.PadType
	// OutChannels is the generator output channel count; it must equal
	// Subbands so PQMF synthesis can merge the bands.
	OutChannels int
	// UseFinalNonlinearActivation bounds the sub-band output with tanh.
	UseFinalNonlinearActivation bool

	// Subbands, Taps, CutoffRatio, and Beta parameterize the PQMF stage.
	Subbands    int
	Taps        int
	CutoffRatio float64
	Beta        float64
}

// DefaultConfig returns the four-band configuration with a total
// upsampling factor of 256 (64 from the network, 4 from the filterbank).
func DefaultConfig() Config {
	return Config{
		MelChannels:                 80,
		Filters:                     384,
		KernelSize:                  7,
		UpsampleScales:              []int{8, 4, 2},
		Stacks:                      4,
		StackKernelSize:             3,
		UseBias:                     true,
		NonlinearActivation:         "LeakyReLU",
		NonlinearActivationParams:   map[string]float64{"alpha": 0.2},
		IsWeightNorm:                true,
		InitializerSeed:             42,
		PaddingType:                 nn.PadReflect,
		OutChannels:                 4,
		UseFinalNonlinearActivation: true,
		Subbands:                    4,
		Taps:                        62,
		CutoffRatio:                 0.15,
		Beta:                        9.0,
	}
}

// UpsampleFactor returns the network-internal time upsampling, the product
// of the upsample scales.
func (c Config) UpsampleFactor() int {
	prod := 1
	for _, s := range c.UpsampleScales {
		prod *= s
	}
	return prod
}

// HopSize returns the full-rate samples produced per mel frame, including
// the sub-band expansion of the PQMF stage.
func (c Config) HopSize() int {
	return c.UpsampleFactor() * c.Subbands
}

func (c Config) validate() error {
	if c.MelChannels <= 0 {
		return fmt.Errorf("%w: mel channels %d", ErrInvalidConfig, c.MelChannels)
	}
	if c.KernelSize <= 0 {
		return fmt.Errorf("%w: kernel size %d", ErrInvalidConfig, c.KernelSize)
	}
	if len(c.UpsampleScales) == 0 {
		return fmt.Errorf("%w: no upsample scales", ErrInvalidConfig)
	}
	for _, s := range c.UpsampleScales {
		if s <= 0 {
			return fmt.Errorf("%w: upsample scale %d", ErrInvalidConfig, s)
		}
	}
	if c.Stacks <= 0 || c.StackKernelSize <= 0 {
		return fmt.Errorf("%w: stacks %d kernel %d", ErrInvalidConfig, c.Stacks, c.StackKernelSize)
	}
	if c.Filters < c.UpsampleFactor() {
		return fmt.Errorf("%w: filters %d below upsample product %d",
			ErrInvalidConfig, c.Filters, c.UpsampleFactor())
	}
	if c.Filters%(1<<len(c.UpsampleScales)) != 0 {
		return fmt.Errorf("%w: filters %d not divisible by 2^%d",
			ErrInvalidConfig, c.Filters, len(c.UpsampleScales))
	}
	if c.Subbands < 1 {
		return fmt.Errorf("%w: subbands %d", ErrInvalidConfig, c.Subbands)
	}
	if c.OutChannels != c.Subbands {
		return fmt.Errorf("%w: out channels %d must equal subbands %d",
			ErrInvalidConfig, c.OutChannels, c.Subbands)
	}
	return nil
}
