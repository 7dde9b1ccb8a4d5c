package nn

import "fmt"

// PadType selects how samples outside the signal are synthesized.
type PadType int

const (
	// PadReflect mirrors around the edge sample, excluding it:
	// [a b c] padded by 2 on the left gives [c b a b c].
	PadReflect PadType = iota
	// PadSymmetric mirrors including the edge sample:
	// [a b c] padded by 2 on the left gives [b a a b c].
	PadSymmetric
	// PadConstant extends with zeros.
	PadConstant
)

// Pad1D pads the time axis by a fixed amount on each side.
type Pad1D struct {
	left  int
	right int
	typ   PadType
}

// NewPad1D creates a symmetric time-axis padding layer.
func NewPad1D(pad int, typ PadType) (*Pad1D, error) {
	if pad < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPad, pad)
	}
	return &Pad1D{left: pad, right: pad, typ: typ}, nil
}

// Forward pads the input. Output time length is T + 2*pad.
func (p *Pad1D) Forward(x *Tensor) (*Tensor, error) {
	if x == nil || len(x.Data) == 0 {
		return nil, fmt.Errorf("%w: empty tensor", ErrShapeMismatch)
	}
	if p.typ != PadConstant && p.left >= x.Time {
		return nil, fmt.Errorf("%w: reflect padding %d needs time length > %d", ErrShapeMismatch, p.left, p.left)
	}

	out := NewTensor(x.Batch, x.Time+p.left+p.right, x.Channels)
	for b := 0; b < x.Batch; b++ {
		for t := 0; t < out.Time; t++ {
			src := p.sourceIndex(t-p.left, x.Time)
			if src < 0 {
				continue
			}
			copy(out.Frame(b, t), x.Frame(b, src))
		}
	}
	return out, nil
}

// sourceIndex maps a padded time index (relative to the signal start) to
// the input index it copies from, or -1 for zero fill.
func (p *Pad1D) sourceIndex(t, n int) int {
	if t >= 0 && t < n {
		return t
	}
	switch p.typ {
	case PadReflect:
		if t < 0 {
			return -t
		}
		return 2*n - 2 - t
	case PadSymmetric:
		if t < 0 {
			return -t - 1
		}
		return 2*n - 1 - t
	default:
		return -1
	}
}
