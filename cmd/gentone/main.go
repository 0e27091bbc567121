// Command gentone is a quick test program for generating tones: it
// renders a single sine tone to a WAV file through the node graph
// instead of driving a sound card directly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/units"
	"github.com/SamiPerttu/fundsp/wave"
)

func main() {
	freq := pflag.Float64P("freq", "f", 440, "tone frequency in Hz")
	gainDb := pflag.Float64P("gain", "g", -6, "tone gain in dB")
	seconds := pflag.Float64P("seconds", "s", 2, "tone duration in seconds")
	sampleRate := pflag.Float64P("rate", "r", 44100, "sample rate in Hz")
	out := pflag.StringP("out", "o", "tone.wav", "output WAV path")
	pflag.Parse()

	osc := fundsp.Pipe(units.Constant(*freq), units.Sine())
	tone := fundsp.Mul(osc, units.DbAmp(*gainDb))
	tone.SetSampleRate(*sampleRate)

	frames := int(*seconds * *sampleRate)
	samples := fundsp.GetMono(tone, frames)

	w := &wave.Wave{SampleRate: *sampleRate, Channels: [][]float32{samples}}
	if err := wave.Save(*out, w); err != nil {
		fmt.Fprintln(os.Stderr, "gentone:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d frames of a %.1fHz tone to %s\n", frames, *freq, *out)
}
