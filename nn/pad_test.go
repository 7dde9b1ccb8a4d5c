package nn

import (
	"errors"
	"testing"
)

func TestPad1DModes(t *testing.T) {
	cases := []struct {
		name string
		typ  PadType
		want []float32
	}{
		{"reflect", PadReflect, []float32{3, 2, 1, 2, 3, 4, 3, 2}},
		{"symmetric", PadSymmetric, []float32{2, 1, 1, 2, 3, 4, 4, 3}},
		{"constant", PadConstant, []float32{0, 0, 1, 2, 3, 4, 0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPad1D(2, tc.typ)
			if err != nil {
				t.Fatalf("new pad failed: %v", err)
			}

			x := NewTensor(1, 4, 1)
			copy(x.Data, []float32{1, 2, 3, 4})

			y, err := p.Forward(x)
			if err != nil {
				t.Fatalf("forward failed: %v", err)
			}
			if y.Time != len(tc.want) {
				t.Fatalf("time=%d, want %d", y.Time, len(tc.want))
			}
			for i, w := range tc.want {
				if y.Data[i] != w {
					t.Fatalf("y[%d]=%v, want %v", i, y.Data[i], w)
				}
			}
		})
	}
}

func TestPad1DPreservesChannels(t *testing.T) {
	p, err := NewPad1D(1, PadConstant)
	if err != nil {
		t.Fatalf("new pad failed: %v", err)
	}

	x := NewTensor(2, 2, 3)
	for i := range x.Data {
		x.Data[i] = float32(i + 1)
	}

	y, err := p.Forward(x)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}
	if y.Batch != 2 || y.Time != 4 || y.Channels != 3 {
		t.Fatalf("shape %s, want (2, 4, 3)", y)
	}
	for c := 0; c < 3; c++ {
		if y.At(1, 1, c) != x.At(1, 0, c) {
			t.Fatalf("channel %d not copied through", c)
		}
	}
}

func TestPad1DErrors(t *testing.T) {
	if _, err := NewPad1D(-1, PadReflect); !errors.Is(err, ErrInvalidPad) {
		t.Fatalf("err=%v, want ErrInvalidPad", err)
	}

	p, err := NewPad1D(4, PadReflect)
	if err != nil {
		t.Fatalf("new pad failed: %v", err)
	}
	if _, err := p.Forward(NewTensor(1, 3, 1)); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("reflect overrun err=%v, want ErrShapeMismatch", err)
	}
}
