// Command graphplay is an external host: it owns the audio device and
// repeatedly calls a dynamic network's Process, demonstrating the node
// contract being driven from outside the core rather than the core
// ever touching a device itself.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"

	"github.com/SamiPerttu/fundsp/dynamic"
	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/internal/logutil"
	"github.com/SamiPerttu/fundsp/units"
)

func main() {
	freq := pflag.Float64P("freq", "f", 220, "tone frequency in Hz")
	gainDb := pflag.Float64P("gain", "g", -12, "tone gain in dB")
	seconds := pflag.Float64P("seconds", "s", 3, "playback duration in seconds")
	rate := pflag.Float64P("rate", "r", 44100, "sample rate in Hz")
	pflag.Parse()

	log := logutil.New(os.Stderr, "graphplay")

	tone := fundsp.Mul(fundsp.Pipe(units.Constant(*freq), units.Sine()), units.DbAmp(*gainDb))
	tone.SetSampleRate(*rate)

	net := dynamic.New(0, 1, log)
	id := net.Push(tone)
	net.SetOutput(0, dynamic.FromNode(id, 0))
	net.Commit()

	renderer := dynamic.NewRenderer(net, fundsp.BlockSize*4)

	if err := portaudio.Initialize(); err != nil {
		fmt.Fprintln(os.Stderr, "graphplay:", err)
		os.Exit(1)
	}
	defer portaudio.Terminate()

	in := fundsp.NewBuffer(0)
	out := fundsp.NewBuffer(1)

	callback := func(output [][]float32) {
		remaining := output[0]
		for len(remaining) > 0 {
			chunk := fundsp.BlockSize
			if len(remaining) < chunk {
				chunk = len(remaining)
			}
			renderer.Process(in, out, chunk)
			copy(remaining[:chunk], out.Channel(0)[:chunk])
			remaining = remaining[chunk:]
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, 1, *rate, fundsp.BlockSize, callback)
	if err != nil {
		fmt.Fprintln(os.Stderr, "graphplay:", err)
		os.Exit(1)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "graphplay:", err)
		os.Exit(1)
	}
	time.Sleep(time.Duration(*seconds * float64(time.Second)))
	if err := stream.Stop(); err != nil {
		fmt.Fprintln(os.Stderr, "graphplay:", err)
	}
}
