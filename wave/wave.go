// Package wave is a thin WAV collaborator: enough to load a file into
// memory and play it back through the node contract, or save rendered
// output to disk. It is not a general audio file codec — PCM WAV in,
// 16-bit PCM or 32-bit float WAV out, via github.com/go-audio/wav and
// github.com/go-audio/audio.
package wave

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Wave is audio held in memory as planar float32 samples in [-1, 1],
// one slice per channel, all the same length.
type Wave struct {
	SampleRate float64
	Channels   [][]float32
}

// Frames reports the number of samples per channel.
func (w *Wave) Frames() int {
	if len(w.Channels) == 0 {
		return 0
	}
	return len(w.Channels[0])
}

// Load reads a 16-bit PCM WAV file into memory.
func Load(path string) (*Wave, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wave: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wave: decode %s: %w", path, err)
	}

	nCh := buf.Format.NumChannels
	nFrames := len(buf.Data) / nCh
	channels := make([][]float32, nCh)
	for c := range channels {
		channels[c] = make([]float32, nFrames)
	}
	scale := float32(1) / float32(int(1)<<(buf.SourceBitDepth-1))
	for i := 0; i < nFrames; i++ {
		for c := 0; c < nCh; c++ {
			channels[c][i] = float32(buf.Data[i*nCh+c]) * scale
		}
	}
	return &Wave{SampleRate: float64(buf.Format.SampleRate), Channels: channels}, nil
}

// Save writes w to path as a 16-bit PCM WAV file.
func Save(path string, w *Wave) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wave: create %s: %w", path, err)
	}
	defer f.Close()

	nCh := len(w.Channels)
	enc := wav.NewEncoder(f, int(w.SampleRate), 16, nCh, 1)

	nFrames := w.Frames()
	data := make([]int, nFrames*nCh)
	const peak = float32(1<<15 - 1)
	for i := 0; i < nFrames; i++ {
		for c := 0; c < nCh; c++ {
			v := w.Channels[c][i]
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			data[i*nCh+c] = int(v * peak)
		}
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: nCh, SampleRate: int(w.SampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wave: write %s: %w", path, err)
	}
	return enc.Close()
}
