// Package nn provides the forward-inference building blocks used by the
// vocoder generator: a rank-3 tensor container and one-dimensional
// convolution, transposed convolution, padding, activation, and residual
// layers.
//
// All layers are immutable after construction and safe for concurrent use.
// Forward passes allocate their output tensor and never mutate the input.
// Shape violations are detected at call entry and reported as errors
// wrapping [ErrShapeMismatch].
package nn
