package nn

import "errors"

// Errors returned by layer constructors and forward passes.
var (
	ErrShapeMismatch     = errors.New("nn: input shape mismatch")
	ErrInvalidChannel    = errors.New("nn: channel count must be positive")
	ErrInvalidKernel     = errors.New("nn: kernel size must be positive")
	ErrInvalidStride     = errors.New("nn: stride must be positive")
	ErrInvalidPad        = errors.New("nn: padding must be non-negative")
	ErrUnknownActivation = errors.New("nn: unknown activation")
	ErrParameterSize     = errors.New("nn: parameter slice has wrong length")
)
