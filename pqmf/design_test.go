package pqmf

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestDesignPrototypeFilterBasics(t *testing.T) {
	cases := []struct {
		name   string
		taps   int
		cutoff float64
		beta   float64
	}{
		{"default", 62, 0.15, 9.0},
		{"short", 14, 0.25, 6.0},
		{"long", 126, 0.07, 9.0},
		{"halfband", 30, 0.5, 8.0},
		{"nearfull", 32, 0.9, 4.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := DesignPrototypeFilter(tc.taps, tc.cutoff, tc.beta)
			if err != nil {
				t.Fatalf("design failed: %v", err)
			}
			if len(h) != tc.taps+1 {
				t.Fatalf("len=%d, want %d", len(h), tc.taps+1)
			}

			for n, v := range h {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("h[%d] invalid: %v", n, v)
				}
			}

			// Symmetric impulse response (linear phase).
			for n := 0; n <= tc.taps/2; n++ {
				if !almostEqual(h[n], h[tc.taps-n], 1e-9) {
					t.Fatalf("asymmetry at %d: %v vs %v", n, h[n], h[tc.taps-n])
				}
			}

			// Center sample carries the closed-form limit of the sinc.
			if !almostEqual(h[tc.taps/2], tc.cutoff, 1e-12) {
				t.Fatalf("center=%v, want %v", h[tc.taps/2], tc.cutoff)
			}
		})
	}
}

func TestDesignPrototypeFilterDCGain(t *testing.T) {
	h, err := DesignPrototypeFilter(62, 0.15, 9.0)
	if err != nil {
		t.Fatalf("design failed: %v", err)
	}

	// The sinc is normalized for unit passband gain, so the windowed
	// filter sums to roughly one at DC.
	var sum float64
	for _, v := range h {
		sum += v
	}
	if sum < 0.9 || sum > 1.1 {
		t.Fatalf("dc gain %v, want near 1", sum)
	}
}

func TestDesignPrototypeFilterErrors(t *testing.T) {
	cases := []struct {
		name   string
		taps   int
		cutoff float64
		beta   float64
		want   error
	}{
		{"odd taps", 63, 0.15, 9.0, ErrOddTaps},
		{"zero taps", 0, 0.15, 9.0, ErrOddTaps},
		{"negative taps", -4, 0.15, 9.0, ErrOddTaps},
		{"cutoff zero", 62, 0, 9.0, ErrCutoffRange},
		{"cutoff one", 62, 1, 9.0, ErrCutoffRange},
		{"cutoff negative", 62, -0.2, 9.0, ErrCutoffRange},
		{"cutoff above one", 62, 1.5, 9.0, ErrCutoffRange},
		{"negative beta", 62, 0.15, -1, ErrInvalidBeta},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DesignPrototypeFilter(tc.taps, tc.cutoff, tc.beta)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, want %v", err, tc.want)
			}
		})
	}
}
