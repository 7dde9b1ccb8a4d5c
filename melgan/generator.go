package melgan

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-vocoder/nn"
	"github.com/cwbudde/algo-vocoder/pqmf"
)

// Generator is the multi-band vocoder network. It owns an ordered layer
// stack built once from a Config and the PQMF merging its sub-band output
// into a single full-rate waveform.
type Generator struct {
	cfg    Config
	layers []nn.Layer
	bank   *pqmf.PQMF
}

// NewGenerator validates cfg, builds the layer stack, and constructs the
// PQMF output stage. Weights are Glorot-normal initialized from
// cfg.InitializerSeed; load trained parameters through the layer
// SetParameters methods before real use.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bank, err := pqmf.New(cfg.Subbands, cfg.Taps, cfg.CutoffRatio, cfg.Beta)
	if err != nil {
		return nil, err
	}

	layers, err := buildLayers(cfg)
	if err != nil {
		return nil, err
	}

	return &Generator{cfg: cfg, layers: layers, bank: bank}, nil
}

func buildLayers(cfg Config) ([]nn.Layer, error) {
	convOpts := []nn.ConvOption{nn.WithInitSeed(cfg.InitializerSeed)}
	if !cfg.UseBias {
		convOpts = append(convOpts, nn.WithoutBias())
	}
	if cfg.IsWeightNorm {
		convOpts = append(convOpts, nn.WithWeightNorm())
	}

	resOpts := []nn.ResidualOption{
		nn.WithResidualPadType(cfg.PaddingType),
		nn.WithResidualActivation(cfg.NonlinearActivation, cfg.NonlinearActivationParams),
		nn.WithResidualBias(cfg.UseBias),
		nn.WithResidualSeed(cfg.InitializerSeed),
	}
	if cfg.IsWeightNorm {
		resOpts = append(resOpts, nn.WithResidualWeightNorm())
	}

	var layers []nn.Layer

	pad, err := nn.NewPad1D((cfg.KernelSize-1)/2, cfg.PaddingType)
	if err != nil {
		return nil, err
	}
	first, err := nn.NewConv1D(cfg.MelChannels, cfg.Filters, cfg.KernelSize, convOpts...)
	if err != nil {
		return nil, err
	}
	layers = append(layers, pad, first)

	channels := cfg.Filters
	for i, scale := range cfg.UpsampleScales {
		act, err := nn.NewActivation(cfg.NonlinearActivation, cfg.NonlinearActivationParams)
		if err != nil {
			return nil, err
		}

		next := cfg.Filters >> (i + 1)
		up, err := nn.NewConvTranspose1D(channels, next, 2*scale, scale, convOpts...)
		if err != nil {
			return nil, err
		}
		layers = append(layers, act, up)
		channels = next

		for j := 0; j < cfg.Stacks; j++ {
			dilation := 1
			for range j {
				dilation *= cfg.StackKernelSize
			}
			res, err := nn.NewResidualStack(channels, cfg.StackKernelSize, dilation, resOpts...)
			if err != nil {
				return nil, err
			}
			layers = append(layers, res)
		}
	}

	lastAct, err := nn.NewActivation(cfg.NonlinearActivation, cfg.NonlinearActivationParams)
	if err != nil {
		return nil, err
	}
	lastPad, err := nn.NewPad1D((cfg.KernelSize-1)/2, cfg.PaddingType)
	if err != nil {
		return nil, err
	}
	last, err := nn.NewConv1D(channels, cfg.OutChannels, cfg.KernelSize, convOpts...)
	if err != nil {
		return nil, err
	}
	layers = append(layers, lastAct, lastPad, last)

	if cfg.UseFinalNonlinearActivation {
		tanh, err := nn.NewActivation("Tanh", nil)
		if err != nil {
			return nil, err
		}
		layers = append(layers, tanh)
	}

	return layers, nil
}

// Config returns the configuration the generator was built from.
func (g *Generator) Config() Config { return g.cfg }

// PQMF returns the filterbank merging the generator's sub-band output.
func (g *Generator) PQMF() *pqmf.PQMF { return g.bank }

// Inference maps a mel-spectrogram of shape (B, T, MelChannels) to a
// waveform of shape (B, T*HopSize, 1): the layer stack produces sub-band
// audio (B, T*UpsampleFactor, Subbands) which PQMF synthesis merges.
func (g *Generator) Inference(mels *nn.Tensor) (*nn.Tensor, error) {
	bands, err := g.forward(mels)
	if err != nil {
		return nil, err
	}
	return g.bank.Synthesis(bands)
}

// InferenceSingle is Inference restricted to batch size one, for
// export-constrained consumers that require a static batch dimension.
func (g *Generator) InferenceSingle(mels *nn.Tensor) (*nn.Tensor, error) {
	if mels == nil || mels.Batch != 1 {
		b := 0
		if mels != nil {
			b = mels.Batch
		}
		return nil, fmt.Errorf("%w: batch %d, want 1", nn.ErrShapeMismatch, b)
	}
	return g.Inference(mels)
}

// forward runs the layer stack up to the sub-band output.
func (g *Generator) forward(mels *nn.Tensor) (*nn.Tensor, error) {
	if mels == nil || mels.Channels != g.cfg.MelChannels {
		ch := 0
		if mels != nil {
			ch = mels.Channels
		}
		return nil, fmt.Errorf("%w: mel input needs %d channels, got %d",
			nn.ErrShapeMismatch, g.cfg.MelChannels, ch)
	}

	x := mels
	var err error
	for _, l := range g.layers {
		x, err = l.Forward(x)
		if err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Verify runs one dummy forward pass over 100 mel frames and checks the
// output length against the configured hop size. It exercises every layer
// once, surfacing shape arithmetic problems at startup instead of on the
// first real call.
func (g *Generator) Verify() error {
	const frames = 100
	probe := nn.NewTensor(1, frames, g.cfg.MelChannels)
	rng := rand.New(rand.NewSource(g.cfg.InitializerSeed))
	for i := range probe.Data {
		probe.Data[i] = rng.Float32()
	}

	out, err := g.Inference(probe)
	if err != nil {
		return fmt.Errorf("melgan: verify: %w", err)
	}
	want := frames * g.cfg.HopSize()
	if out.Time != want || out.Channels != 1 {
		return fmt.Errorf("%w: verify produced (%d, %d, %d), want (1, %d, 1)",
			nn.ErrShapeMismatch, out.Batch, out.Time, out.Channels, want)
	}
	return nil
}
