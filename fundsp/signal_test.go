package fundsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumTagsValueZeroIdentity(t *testing.T) {
	r := SumTags(ValueTag(0), LatencyTag(3))
	assert.Equal(t, KindLatency, r.Kind)
	assert.Equal(t, 3.0, r.Latency)

	r2 := SumTags(LatencyTag(3), ValueTag(0))
	assert.Equal(t, KindLatency, r2.Kind)
}

func TestSumTagsValuePlusValue(t *testing.T) {
	r := SumTags(ValueTag(2), ValueTag(3))
	require.Equal(t, KindValue, r.Kind)
	assert.Equal(t, 5.0, r.Value)
}

func TestDelayTagAccumulatesLatency(t *testing.T) {
	r := DelayTag(LatencyTag(2), 3)
	d, ok := r.CausalLatency()
	require.True(t, ok)
	assert.Equal(t, 5.0, d)
}

func TestGainTagScalesValue(t *testing.T) {
	r := GainTag(ValueTag(4), -2)
	require.Equal(t, KindValue, r.Kind)
	assert.Equal(t, -8.0, r.Value)
}

func TestLatencyOfGainNode(t *testing.T) {
	n := newGainTestNode(0.5)
	assert.Equal(t, 0.0, Latency(n))
}

func TestLatencyOfDelayNode(t *testing.T) {
	delay := &delayTagOnlyNode{samples: 7}
	assert.Equal(t, 7.0, Latency(delay))
}

// delayTagOnlyNode is a test fixture exercising Route/Latency without
// depending on the units package's concrete Delay implementation.
type delayTagOnlyNode struct {
	samples float64
}

func (d *delayTagOnlyNode) Inputs() int  { return 1 }
func (d *delayTagOnlyNode) Outputs() int { return 1 }
func (d *delayTagOnlyNode) Reset()       {}
func (d *delayTagOnlyNode) SetSampleRate(sr float64) {}
func (d *delayTagOnlyNode) Allocate()    {}
func (d *delayTagOnlyNode) Process(input, output *Buffer, n int) {}
func (d *delayTagOnlyNode) Tick(input Frame) Frame { return input }
func (d *delayTagOnlyNode) Set(s Setting, addr Address) {}
func (d *delayTagOnlyNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (d *delayTagOnlyNode) Route(in []Tag) []Tag {
	return []Tag{DelayTag(in[0], d.samples)}
}

func TestResponseOfGainNode(t *testing.T) {
	n := newGainTestNode(2)
	g, ok := Response(n, 0, 1000, 44100)
	require.True(t, ok)
	assert.InDelta(t, 2.0, real(g), 1e-9)
	assert.InDelta(t, 0.0, imag(g), 1e-9)
}
