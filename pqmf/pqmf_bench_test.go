package pqmf

import (
	"testing"

	"github.com/cwbudde/algo-vocoder/nn"
)

func BenchmarkAnalysis(b *testing.B) {
	bank, err := New(4, 62, 0.15, 9.0)
	if err != nil {
		b.Fatalf("new failed: %v", err)
	}
	sig := bandlimitedSignal(16384, 3)
	x := nn.NewTensor(1, len(sig), 1)
	for i, v := range sig {
		x.Data[i] = float32(v)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bank.Analysis(x); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSynthesis(b *testing.B) {
	bank, err := New(4, 62, 0.15, 9.0)
	if err != nil {
		b.Fatalf("new failed: %v", err)
	}
	sig := bandlimitedSignal(16384, 3)
	x := nn.NewTensor(1, len(sig), 1)
	for i, v := range sig {
		x.Data[i] = float32(v)
	}
	bands, err := bank.Analysis(x)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bank.Synthesis(bands); err != nil {
			b.Fatal(err)
		}
	}
}
