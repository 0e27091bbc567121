package wave

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/SamiPerttu/fundsp/fundsp"
)

// Render drives a generator node (zero inputs) for the given number
// of frames at sampleRate and collects its output channels into a
// Wave.
func Render(n fundsp.Node, sampleRate float64, frames int) *Wave {
	n.SetSampleRate(sampleRate)
	n.Reset()
	n.Allocate()

	channels := make([][]float32, n.Outputs())
	for c := range channels {
		channels[c] = make([]float32, frames)
	}
	in := fundsp.NewBuffer(n.Inputs())
	out := fundsp.NewBuffer(n.Outputs())
	pos := 0
	for pos < frames {
		chunk := fundsp.BlockSize
		if frames-pos < chunk {
			chunk = frames - pos
		}
		n.Process(in, out, chunk)
		for c := range channels {
			copy(channels[c][pos:pos+chunk], out.Channel(c)[:chunk])
		}
		pos += chunk
	}
	return &Wave{SampleRate: sampleRate, Channels: channels}
}

// Filter runs w through a filter node whose input arity matches w's
// channel count and returns the filtered result at w's sample rate.
func Filter(n fundsp.Node, w *Wave) *Wave {
	if n.Inputs() != len(w.Channels) {
		panic(fmt.Sprintf("wave: filter wants %d input channels, wave has %d", n.Inputs(), len(w.Channels)))
	}
	n.SetSampleRate(w.SampleRate)
	n.Reset()
	n.Allocate()

	frames := w.Frames()
	channels := make([][]float32, n.Outputs())
	for c := range channels {
		channels[c] = make([]float32, frames)
	}
	in := fundsp.NewBuffer(n.Inputs())
	out := fundsp.NewBuffer(n.Outputs())
	pos := 0
	for pos < frames {
		chunk := fundsp.BlockSize
		if frames-pos < chunk {
			chunk = frames - pos
		}
		for c := range w.Channels {
			copy(in.Channel(c)[:chunk], w.Channels[c][pos:pos+chunk])
		}
		n.Process(in, out, chunk)
		for c := range channels {
			copy(channels[c][pos:pos+chunk], out.Channel(c)[:chunk])
		}
		pos += chunk
	}
	return &Wave{SampleRate: w.SampleRate, Channels: channels}
}

// SaveFloat32 writes w to path as a 32-bit IEEE float WAV file,
// preserving sample values exactly instead of quantizing to 16-bit
// PCM the way Save does.
func SaveFloat32(path string, w *Wave) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wave: create %s: %w", path, err)
	}
	defer f.Close()

	nCh := len(w.Channels)
	enc := wav.NewEncoder(f, int(w.SampleRate), 32, nCh, 3)
	nFrames := w.Frames()
	for i := 0; i < nFrames; i++ {
		for c := 0; c < nCh; c++ {
			if err := enc.WriteFrame(w.Channels[c][i]); err != nil {
				return fmt.Errorf("wave: write %s: %w", path, err)
			}
		}
	}
	return enc.Close()
}
