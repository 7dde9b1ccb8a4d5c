package nn

// Layer is a forward-inference transform over rank-3 tensors. Forward
// allocates and returns its output; the input is never modified.
type Layer interface {
	Forward(x *Tensor) (*Tensor, error)
}
