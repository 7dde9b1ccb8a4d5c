package melgan

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.UpsampleFactor(); got != 64 {
		t.Fatalf("upsample factor %d, want 64", got)
	}
	if got := cfg.HopSize(); got != 256 {
		t.Fatalf("hop size %d, want 256", got)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"filters below upsample product", func(c *Config) { c.Filters = 32 }},
		{"filters not divisible by halvings", func(c *Config) { c.Filters = 100 }},
		{"no upsample scales", func(c *Config) { c.UpsampleScales = nil }},
		{"non-positive scale", func(c *Config) { c.UpsampleScales = []int{8, 0, 2} }},
		{"zero mel channels", func(c *Config) { c.MelChannels = 0 }},
		{"zero kernel", func(c *Config) { c.KernelSize = 0 }},
		{"zero stacks", func(c *Config) { c.Stacks = 0 }},
		{"zero stack kernel", func(c *Config) { c.StackKernelSize = 0 }},
		{"zero subbands", func(c *Config) { c.Subbands = 0; c.OutChannels = 0 }},
		{"out channels diverge from subbands", func(c *Config) { c.OutChannels = 2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err=%v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewGeneratorRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filters = 63 // below the product of the upsample scales
	if _, err := NewGenerator(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err=%v, want ErrInvalidConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Filters = 68 // 68 % 8 != 0
	if _, err := NewGenerator(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err=%v, want ErrInvalidConfig", err)
	}
}
