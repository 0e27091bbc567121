package wave

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamiPerttu/fundsp/fundsp"
)

func makeTestWave() *Wave {
	ch0 := []float32{0, 0.5, -0.5, 1, -1}
	ch1 := []float32{0, -0.5, 0.5, -1, 1}
	return &Wave{SampleRate: 44100, Channels: [][]float32{ch0, ch1}}
}

func TestSaveLoadRoundTripsWithinQuantizationError(t *testing.T) {
	w := makeTestWave()
	path := filepath.Join(t.TempDir(), "roundtrip.wav")

	require.NoError(t, Save(path, w))
	got, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, w.SampleRate, got.SampleRate)
	require.Equal(t, len(w.Channels), len(got.Channels))
	require.Equal(t, w.Frames(), got.Frames())
	for c := range w.Channels {
		for i := range w.Channels[c] {
			assert.InDelta(t, w.Channels[c][i], got.Channels[c][i], 1.0/(1<<14))
		}
	}
}

func TestFramesReportsZeroForEmptyWave(t *testing.T) {
	w := &Wave{SampleRate: 44100}
	assert.Equal(t, 0, w.Frames())
}

func TestPlayerEmitsWaveSamplesThenSilenceWithoutLoop(t *testing.T) {
	w := &Wave{SampleRate: 44100, Channels: [][]float32{{1, 2, 3}}}
	p := Player(w, false)
	p.Allocate()

	var out []float32
	for i := 0; i < 5; i++ {
		out = append(out, p.Tick(nil)[0])
	}
	assert.Equal(t, []float32{1, 2, 3, 0, 0}, out)
}

func TestPlayerLoopsBackToStart(t *testing.T) {
	w := &Wave{SampleRate: 44100, Channels: [][]float32{{1, 2}}}
	p := Player(w, true)
	p.Allocate()

	var out []float32
	for i := 0; i < 5; i++ {
		out = append(out, p.Tick(nil)[0])
	}
	assert.Equal(t, []float32{1, 2, 1, 2, 1}, out)
}

func TestPlayerOutputsCountMatchesWaveChannels(t *testing.T) {
	w := &Wave{SampleRate: 44100, Channels: [][]float32{{0}, {0}, {0}}}
	p := Player(w, false)
	assert.Equal(t, 3, p.Outputs())
	assert.Equal(t, 0, p.Inputs())
}

func TestPlayerProcessFillsBlock(t *testing.T) {
	w := &Wave{SampleRate: 44100, Channels: [][]float32{{1, 2, 3, 4}}}
	p := Player(w, false)
	p.Allocate()

	buf := fundsp.NewBuffer(1)
	p.Process(nil, buf, 4)
	assert.Equal(t, []float32{1, 2, 3, 4}, buf.Channel(0)[:4])
}
