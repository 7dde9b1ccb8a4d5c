// Command pqmf-roundtrip runs a signal through PQMF analysis and synthesis
// and reports the reconstruction quality.
//
// Without -in it generates a logarithmic sine sweep; with -in it reads a
// mono WAV file. The reconstructed signal can be written with -out.
//
// Examples:
//
//	pqmf-roundtrip
//	pqmf-roundtrip -subbands 8 -taps 126 -cutoff 0.07
//	pqmf-roundtrip -in voice.wav -out roundtrip.wav
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	dspsweep "github.com/cwbudde/algo-dsp/measure/sweep"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-vocoder/nn"
	"github.com/cwbudde/algo-vocoder/pqmf"
)

func main() {
	inPath := flag.String("in", "", "input mono WAV file (default: generated sweep)")
	outPath := flag.String("out", "", "output WAV file for the reconstruction")
	subbands := flag.Int("subbands", 4, "number of sub-bands")
	taps := flag.Int("taps", 62, "prototype filter taps (even)")
	cutoff := flag.Float64("cutoff", 0.15, "cutoff frequency ratio in (0,1)")
	beta := flag.Float64("beta", 9.0, "kaiser window beta")
	rate := flag.Int("rate", 22050, "sample rate for the generated sweep")
	dur := flag.Float64("dur", 2.0, "duration in seconds for the generated sweep")
	flag.Parse()

	if err := run(*inPath, *outPath, *subbands, *taps, *cutoff, *beta, *rate, *dur); err != nil {
		fmt.Fprintln(os.Stderr, "pqmf-roundtrip:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, subbands, taps int, cutoff, beta float64, rate int, dur float64) error {
	var (
		samples []float64
		err     error
	)
	if inPath != "" {
		samples, rate, err = readMonoWAV(inPath)
	} else {
		samples, err = generateSweep(rate, dur)
	}
	if err != nil {
		return err
	}

	// Trim to a multiple of the band count so the decimation is exact.
	n := len(samples) - len(samples)%subbands
	if n < subbands {
		return fmt.Errorf("input too short: %d samples", len(samples))
	}
	samples = samples[:n]

	bank, err := pqmf.New(subbands, taps, cutoff, beta)
	if err != nil {
		return err
	}

	x := nn.NewTensor(1, n, 1)
	for i, v := range samples {
		x.Data[i] = float32(v)
	}

	bands, err := bank.Analysis(x)
	if err != nil {
		return err
	}
	y, err := bank.Synthesis(bands)
	if err != nil {
		return err
	}

	snr := reconstructionSNR(samples, y.Data, taps)
	fmt.Printf("samples        %d @ %d Hz\n", n, rate)
	fmt.Printf("sub-bands      %d x %d samples\n", bands.Channels, bands.Time)
	fmt.Printf("reconstruction %.1f dB SNR\n", snr)

	if outPath != "" {
		if err := writeMonoWAV(outPath, y.Data, rate); err != nil {
			return err
		}
		fmt.Printf("wrote          %s\n", outPath)
	}
	return nil
}

func generateSweep(rate int, dur float64) ([]float64, error) {
	s := &dspsweep.LogSweep{
		StartFreq:  20,
		EndFreq:    0.45 * float64(rate),
		Duration:   dur,
		SampleRate: float64(rate),
	}
	sig, err := s.Generate()
	if err != nil {
		return nil, err
	}
	for i := range sig {
		sig[i] *= 0.5
	}
	return sig, nil
}

// reconstructionSNR compares the reconstruction against the input at zero
// delay: the symmetric padding inside the filterbank absorbs the group
// delay. The first and last taps samples hold the filter transients and
// are skipped.
func reconstructionSNR(in []float64, out []float32, taps int) float64 {
	n := len(in)
	if len(out) < n {
		n = len(out)
	}
	var sigPow, errPow float64
	for i := taps; i < n-taps; i++ {
		ref := in[i]
		e := float64(out[i]) - ref
		sigPow += ref * ref
		errPow += e * e
	}
	if errPow == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(sigPow/errPow)
}

func readMonoWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	norm := 1.0
	if dec.BitDepth > 0 {
		norm = float64(int(1) << (dec.BitDepth - 1))
	}
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / (float64(ch) * norm)
	}
	return out, buf.Format.SampleRate, nil
}

func writeMonoWAV(path string, data []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}
