package fundsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPipeAllComposesChain(t *testing.T) {
	n := PipeAll(newGainTestNode(2), newGainTestNode(3), newGainTestNode(5))
	n.Allocate()
	out := n.Tick(Frame{1})
	assert.Equal(t, float32(30), out[0])
}

func TestPipeAllMatchesNestedPipes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g1 := rapid.Float64Range(-2, 2).Draw(rt, "g1")
		g2 := rapid.Float64Range(-2, 2).Draw(rt, "g2")
		g3 := rapid.Float64Range(-2, 2).Draw(rt, "g3")
		x := rapid.Float64Range(-1, 1).Draw(rt, "x")

		flat := PipeAll(newGainTestNode(g1), newGainTestNode(g2), newGainTestNode(g3))
		nested := Pipe(Pipe(newGainTestNode(g1), newGainTestNode(g2)), newGainTestNode(g3))
		flat.Allocate()
		nested.Allocate()

		a := flat.Tick(Frame{float32(x)})
		b := nested.Tick(Frame{float32(x)})
		require.InDelta(rt, float64(b[0]), float64(a[0]), 1e-6)
	})
}

func TestBusAllSumsEveryChild(t *testing.T) {
	n := BusAll(newGainTestNode(1), newGainTestNode(2), newGainTestNode(3))
	n.Allocate()
	out := n.Tick(Frame{1})
	assert.Equal(t, float32(6), out[0])
}

func TestBranchAllConcatenatesOutputs(t *testing.T) {
	n := BranchAll(newGainTestNode(1), newGainTestNode(2), newGainTestNode(3))
	n.Allocate()
	require.Equal(t, 3, n.Outputs())
	out := n.Tick(Frame{2})
	assert.Equal(t, Frame{2, 4, 6}, out)
}

func TestStackAllRunsDisjointChildren(t *testing.T) {
	n := StackAll(newGainTestNode(1), newGainTestNode(2), newGainTestNode(3))
	n.Allocate()
	require.Equal(t, 3, n.Inputs())
	out := n.Tick(Frame{1, 1, 1})
	assert.Equal(t, Frame{1, 2, 3}, out)
}

func TestSumAllAddsGeneratorOutputs(t *testing.T) {
	n := SumAll(newConstTestNode(1), newConstTestNode(2), newConstTestNode(4))
	n.Allocate()
	out := n.Tick(nil)
	assert.Equal(t, float32(7), out[0])
}

func TestProductAllMultipliesGeneratorOutputs(t *testing.T) {
	n := ProductAll(newConstTestNode(2), newConstTestNode(3), newConstTestNode(5))
	n.Allocate()
	out := n.Tick(nil)
	assert.Equal(t, float32(30), out[0])
}

func TestNaryRejectsMismatchedArities(t *testing.T) {
	assert.Panics(t, func() { PipeAll(&twoOutNode{}, newGainTestNode(1)) })
	assert.Panics(t, func() { BusAll(newGainTestNode(1), &twoOutNode{}) })
	assert.Panics(t, func() { SumAll(newConstTestNode(1), &twoOutNode{}) })
}

func TestNaryRejectsEmptyChain(t *testing.T) {
	assert.Panics(t, func() { PipeAll() })
}

func TestIndexTokenAddressesNaryChild(t *testing.T) {
	a := newGainTestNode(1)
	b := newGainTestNode(1)
	n := PipeAll(a, b)
	n.Allocate()

	n.Set(ValueSetting(4), IndexAddr(1))
	out := n.Tick(Frame{1})
	assert.Equal(t, float32(4), out[0])

	// Out-of-range indices are ignored.
	n.Set(ValueSetting(100), IndexAddr(7))
	out = n.Tick(Frame{1})
	assert.Equal(t, float32(4), out[0])
}

func TestNaryPingDecorrelatesChildren(t *testing.T) {
	a := newGainTestNode(1)
	b := newGainTestNode(1)
	n := StackAll(a, b)
	// Distinct child indices must produce distinct subtree hashes for
	// otherwise identical children.
	h1 := mixChild(42, kindStack, 0)
	h2 := mixChild(42, kindStack, 1)
	assert.NotEqual(t, h1, h2)
	n.Ping(true, 42)
}

func TestPipeAllRouteComposesResponses(t *testing.T) {
	n := PipeAll(newGainTestNode(2), newGainTestNode(3))
	g, ok := Response(n, 0, 100, DefaultSampleRate)
	require.True(t, ok)
	assert.InDelta(t, 6, real(g), 1e-9)
	assert.InDelta(t, 0, imag(g), 1e-9)
}
