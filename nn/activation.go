package nn

import (
	"fmt"

	"github.com/cwbudde/algo-approx"
)

// Activation applies an elementwise nonlinearity. The function is resolved
// from the registry once at construction, never per call.
type Activation struct {
	name string
	fn   func(float32) float32
}

// activationBuilders maps activation names to constructors taking the
// parameter map from the generator configuration.
var activationBuilders = map[string]func(params map[string]float64) func(float32) float32{
	"ReLU": func(map[string]float64) func(float32) float32 {
		return func(x float32) float32 {
			if x < 0 {
				return 0
			}
			return x
		}
	},
	"LeakyReLU": func(params map[string]float64) func(float32) float32 {
		alpha := float32(0.3)
		if v, ok := params["alpha"]; ok {
			alpha = float32(v)
		}
		return func(x float32) float32 {
			if x < 0 {
				return alpha * x
			}
			return x
		}
	},
	"ELU": func(params map[string]float64) func(float32) float32 {
		alpha := float32(1.0)
		if v, ok := params["alpha"]; ok {
			alpha = float32(v)
		}
		return func(x float32) float32 {
			if x < 0 {
				return alpha * (approx.FastExp(x) - 1)
			}
			return x
		}
	},
	"Tanh": func(map[string]float64) func(float32) float32 {
		return fastTanh
	},
}

// fastTanh evaluates tanh through the fast exponential:
// tanh(x) = 2/(1+exp(-2x)) - 1. Output stays strictly inside (-1, 1).
func fastTanh(x float32) float32 {
	if x > 10 {
		return 1
	}
	if x < -10 {
		return -1
	}
	return 2/(1+approx.FastExp(-2*x)) - 1
}

// NewActivation resolves an activation by name with its parameters.
// Recognized names: ReLU, LeakyReLU (alpha), ELU (alpha), Tanh.
func NewActivation(name string, params map[string]float64) (*Activation, error) {
	build, ok := activationBuilders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
	return &Activation{name: name, fn: build(params)}, nil
}

// Name returns the registry name the activation was resolved from.
func (a *Activation) Name() string { return a.name }

// Apply evaluates the activation for a single value.
func (a *Activation) Apply(x float32) float32 { return a.fn(x) }

// Forward applies the activation elementwise, preserving shape.
func (a *Activation) Forward(x *Tensor) (*Tensor, error) {
	if x == nil || len(x.Data) == 0 {
		return nil, fmt.Errorf("%w: empty tensor", ErrShapeMismatch)
	}
	out := &Tensor{
		Data:     make([]float32, len(x.Data)),
		Batch:    x.Batch,
		Time:     x.Time,
		Channels: x.Channels,
	}
	for i, v := range x.Data {
		out.Data[i] = a.fn(v)
	}
	return out, nil
}
