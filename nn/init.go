package nn

import (
	"math"
	"math/rand"
)

// glorotNormal fills w with samples from N(0, 2/(fanIn+fanOut)), the
// Glorot (Xavier) normal initialization. The rng makes construction
// deterministic for a given seed.
func glorotNormal(w []float32, fanIn, fanOut int, rng *rand.Rand) {
	stddev := math.Sqrt(2.0 / float64(fanIn+fanOut))
	for i := range w {
		w[i] = float32(rng.NormFloat64() * stddev)
	}
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
