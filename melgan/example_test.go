package melgan_test

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/melgan"
	"github.com/cwbudde/algo-vocoder/nn"
)

func ExampleConfig_HopSize() {
	cfg := melgan.DefaultConfig()
	fmt.Println(cfg.UpsampleFactor(), cfg.HopSize())
	// Output:
	// 64 256
}

func ExampleGenerator_Inference() {
	cfg := melgan.DefaultConfig()
	cfg.MelChannels = 16
	cfg.Filters = 64
	cfg.Stacks = 2

	g, err := melgan.NewGenerator(cfg)
	if err != nil {
		panic(err)
	}

	mels := nn.NewTensor(1, 5, 16)
	out, err := g.Inference(mels)
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// Tensor(1, 1280, 1)
}
