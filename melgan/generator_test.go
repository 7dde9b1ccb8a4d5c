package melgan

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-vocoder/nn"
)

// smallConfig keeps the four-band architecture but shrinks the channel
// counts so forward passes stay fast in tests.
func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.MelChannels = 16
	cfg.Filters = 64
	cfg.Stacks = 2
	return cfg
}

func newSmallGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(smallConfig())
	if err != nil {
		t.Fatalf("new generator failed: %v", err)
	}
	return g
}

func TestInferenceOutputShape(t *testing.T) {
	g := newSmallGenerator(t)

	mels := nn.NewTensor(1, 10, 16)
	for i := range mels.Data {
		mels.Data[i] = float32(i%23) * 0.05
	}

	out, err := g.Inference(mels)
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	want := 10 * g.Config().HopSize()
	if out.Batch != 1 || out.Time != want || out.Channels != 1 {
		t.Fatalf("output %s, want (1, %d, 1)", out, want)
	}
}

func TestInferenceHundredFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("long forward pass")
	}
	g := newSmallGenerator(t)

	mels := nn.NewTensor(1, 100, 16)
	for i := range mels.Data {
		mels.Data[i] = float32(i%31) * 0.03
	}

	out, err := g.Inference(mels)
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	// 100 frames * 64 network upsampling * 4 sub-bands.
	if out.Time != 25600 || out.Channels != 1 {
		t.Fatalf("output %s, want (1, 25600, 1)", out)
	}
}

func TestInferenceBatched(t *testing.T) {
	g := newSmallGenerator(t)

	mels := nn.NewTensor(3, 6, 16)
	out, err := g.Inference(mels)
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	if out.Batch != 3 {
		t.Fatalf("batch %d, want 3", out.Batch)
	}
}

func TestInferenceSingleRejectsBatches(t *testing.T) {
	g := newSmallGenerator(t)

	if _, err := g.InferenceSingle(nn.NewTensor(2, 6, 16)); !errors.Is(err, nn.ErrShapeMismatch) {
		t.Fatalf("err=%v, want ErrShapeMismatch", err)
	}

	out, err := g.InferenceSingle(nn.NewTensor(1, 6, 16))
	if err != nil {
		t.Fatalf("single inference failed: %v", err)
	}
	if out.Batch != 1 {
		t.Fatalf("batch %d, want 1", out.Batch)
	}
}

func TestInferenceRejectsWrongMelChannels(t *testing.T) {
	g := newSmallGenerator(t)

	if _, err := g.Inference(nn.NewTensor(1, 10, 80)); !errors.Is(err, nn.ErrShapeMismatch) {
		t.Fatalf("err=%v, want ErrShapeMismatch", err)
	}
}

func TestInferenceDeterministic(t *testing.T) {
	a := newSmallGenerator(t)
	b := newSmallGenerator(t)

	mels := nn.NewTensor(1, 8, 16)
	for i := range mels.Data {
		mels.Data[i] = float32(i%13)*0.1 - 0.6
	}

	ya, err := a.Inference(mels)
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	yb, err := b.Inference(mels)
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	for i := range ya.Data {
		if ya.Data[i] != yb.Data[i] {
			t.Fatalf("outputs diverge at %d: %v vs %v", i, ya.Data[i], yb.Data[i])
		}
	}
}

func TestVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("long forward pass")
	}
	g := newSmallGenerator(t)
	if err := g.Verify(); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestGeneratorWithoutFinalActivation(t *testing.T) {
	cfg := smallConfig()
	cfg.UseFinalNonlinearActivation = false
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("new generator failed: %v", err)
	}

	out, err := g.Inference(nn.NewTensor(1, 4, 16))
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	if out.Time != 4*cfg.HopSize() {
		t.Fatalf("time %d, want %d", out.Time, 4*cfg.HopSize())
	}
}

func TestGeneratorUnknownActivation(t *testing.T) {
	cfg := smallConfig()
	cfg.NonlinearActivation = "Mish"
	if _, err := NewGenerator(cfg); !errors.Is(err, nn.ErrUnknownActivation) {
		t.Fatalf("err=%v, want ErrUnknownActivation", err)
	}
}
