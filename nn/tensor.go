package nn

import "fmt"

// Tensor is a dense rank-3 tensor shaped (batch, time, channels), stored
// row-major in a single backing slice: element (b, t, c) lives at
// Data[(b*Time+t)*Channels+c].
type Tensor struct {
	Data     []float32
	Batch    int
	Time     int
	Channels int
}

// NewTensor allocates a zero-filled tensor of the given shape.
func NewTensor(batch, time, channels int) *Tensor {
	if batch <= 0 || time <= 0 || channels <= 0 {
		return &Tensor{Batch: batch, Time: time, Channels: channels}
	}
	return &Tensor{
		Data:     make([]float32, batch*time*channels),
		Batch:    batch,
		Time:     time,
		Channels: channels,
	}
}

// At returns the element at (b, t, c).
func (x *Tensor) At(b, t, c int) float32 {
	return x.Data[(b*x.Time+t)*x.Channels+c]
}

// Set stores v at (b, t, c).
func (x *Tensor) Set(b, t, c int, v float32) {
	x.Data[(b*x.Time+t)*x.Channels+c] = v
}

// Frame returns the contiguous channel slice at (b, t).
func (x *Tensor) Frame(b, t int) []float32 {
	off := (b*x.Time + t) * x.Channels
	return x.Data[off : off+x.Channels]
}

// Clone returns a deep copy of the tensor.
func (x *Tensor) Clone() *Tensor {
	out := &Tensor{
		Data:     make([]float32, len(x.Data)),
		Batch:    x.Batch,
		Time:     x.Time,
		Channels: x.Channels,
	}
	copy(out.Data, x.Data)
	return out
}

// String describes the tensor shape.
func (x *Tensor) String() string {
	return fmt.Sprintf("Tensor(%d, %d, %d)", x.Batch, x.Time, x.Channels)
}

// checkInput validates a forward-pass input against an expected channel
// count and a minimum time length.
func checkInput(x *Tensor, channels, minTime int) error {
	if x == nil || len(x.Data) == 0 {
		return fmt.Errorf("%w: empty tensor", ErrShapeMismatch)
	}
	if x.Channels != channels {
		return fmt.Errorf("%w: got %d channels, want %d", ErrShapeMismatch, x.Channels, channels)
	}
	if x.Time < minTime {
		return fmt.Errorf("%w: time length %d shorter than %d", ErrShapeMismatch, x.Time, minTime)
	}
	return nil
}
