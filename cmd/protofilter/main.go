// Command protofilter prints properties of a PQMF prototype filter design.
//
// Usage:
//
//	protofilter [flags]
//
// Examples:
//
//	protofilter
//	protofilter -taps 62 -cutoff 0.15 -beta 9.0 -subbands 4
//	protofilter -taps 126 -coeffs
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vocoder/pqmf"
)

func main() {
	taps := flag.Int("taps", 62, "prototype filter taps (even)")
	cutoff := flag.Float64("cutoff", 0.15, "cutoff frequency ratio in (0,1)")
	beta := flag.Float64("beta", 9.0, "kaiser window beta")
	subbands := flag.Int("subbands", 4, "number of sub-bands")
	coeffs := flag.Bool("coeffs", false, "dump prototype coefficients")
	flag.Parse()

	report, err := pqmf.Analyze(*subbands, *taps, *cutoff, *beta)
	if err != nil {
		fmt.Fprintln(os.Stderr, "protofilter:", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "taps\t%d\n", report.Taps)
	fmt.Fprintf(w, "subbands\t%d\n", report.Subbands)
	fmt.Fprintf(w, "cutoff ratio\t%.4f\n", *cutoff)
	fmt.Fprintf(w, "kaiser beta\t%.2f\n", *beta)
	fmt.Fprintf(w, "passband edge\t%.4f\n", report.PassbandEdge)
	fmt.Fprintf(w, "stopband attenuation\t%.1f dB\n", report.StopbandAttenuationDB)
	fmt.Fprintf(w, "composite ripple\t%.3f dB\n", report.CompositeRippleDB)
	w.Flush()

	if *coeffs {
		h, err := pqmf.DesignPrototypeFilter(*taps, *cutoff, *beta)
		if err != nil {
			fmt.Fprintln(os.Stderr, "protofilter:", err)
			os.Exit(1)
		}
		fmt.Println()
		for n, v := range h {
			fmt.Printf("h[%3d] = %+.10f\n", n, v)
		}
	}
}
