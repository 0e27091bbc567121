package dynamic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/units"
)

// renderBlocks drives r for the given number of BlockSize blocks and
// returns channel 0 as one flat slice.
func renderBlocks(r *Renderer, in, out *fundsp.Buffer, blocks int) []float32 {
	var samples []float32
	for b := 0; b < blocks; b++ {
		r.Process(in, out, fundsp.BlockSize)
		samples = append(samples, out.Channel(0)[:fundsp.BlockSize]...)
	}
	return samples
}

func countZeroCrossings(samples []float32) int {
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] < 0) != (samples[i] < 0) {
			crossings++
		}
	}
	return crossings
}

// TestCommitDoublesOscillatorFrequency replaces the frequency source
// of a committed dc >> sine patch and checks the rendered frequency
// doubles after the commit, with the backend allocation-free
// throughout.
func TestCommitDoublesOscillatorFrequency(t *testing.T) {
	net := New(0, 1, nil)
	dc := net.Push(units.Constant(220))
	osc := net.Push(units.Sine())
	require.Nil(t, net.Connect(osc, 0, FromNode(dc, 0)))
	require.Nil(t, net.SetOutput(0, FromNode(osc, 0)))
	net.Commit()

	r := NewRenderer(net, fundsp.BlockSize)
	in := fundsp.NewBuffer(0)
	out := fundsp.NewBuffer(1)

	// One second at the default rate of 44100Hz: ~440 crossings at 220Hz.
	blocks := 44100 / fundsp.BlockSize
	before := renderBlocks(r, in, out, blocks)
	beforeCrossings := countZeroCrossings(before)
	assert.InDelta(t, 2*220, float64(beforeCrossings), 6)

	require.Nil(t, net.Replace(dc, units.Constant(440)))
	net.Commit()

	// Skip one block so the renderer's crossfade out of the old patch
	// has settled before counting.
	r.Process(in, out, fundsp.BlockSize)
	after := renderBlocks(r, in, out, blocks)
	afterCrossings := countZeroCrossings(after)
	assert.InDelta(t, 2*440, float64(afterCrossings), 6)

	allocs := testing.AllocsPerRun(50, func() {
		r.Process(in, out, fundsp.BlockSize)
	})
	assert.Zero(t, allocs, "the backend's process path must not allocate")
}

// TestCommitIsObservedAtBlockBoundaries checks that several commits
// landing between two process calls collapse into a single observed
// transition: the backend renders the newest committed graph for the
// whole next block, never a half-applied state.
func TestCommitIsObservedAtBlockBoundaries(t *testing.T) {
	net := New(0, 1, nil)
	id := net.Push(units.Constant(0.1))
	require.Nil(t, net.SetOutput(0, FromNode(id, 0)))
	net.Commit()

	r := NewRenderer(net, 1)
	in := fundsp.NewBuffer(0)
	out := fundsp.NewBuffer(1)
	r.Process(in, out, fundsp.BlockSize)

	require.Nil(t, net.Replace(id, units.Constant(0.2)))
	net.Commit()
	require.Nil(t, net.Replace(id, units.Constant(0.3)))
	net.Commit()

	// Render a settling block (1-frame crossfade), then verify every
	// sample of the following block comes from the newest graph only.
	r.Process(in, out, fundsp.BlockSize)
	r.Process(in, out, fundsp.BlockSize)
	for i := 0; i < fundsp.BlockSize; i++ {
		require.InDelta(t, 0.3, float64(out.Channel(0)[i]), 1e-6)
	}
}
