package dynamic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/internal/logutil"
	"github.com/SamiPerttu/fundsp/units"
)

// gainTestNode is a minimal one-input, one-output fixed-gain fixture,
// used here the same way fundsp's own package-level test fixture is
// used: a stand-in concrete component for combinator arity tests,
// since this package stays agnostic of any concrete DSP catalog too.
type gainTestNode struct {
	gain float32
	out  fundsp.Frame
}

func newGainTestNode(gain float64) *gainTestNode { return &gainTestNode{gain: float32(gain)} }

func (g *gainTestNode) Inputs() int  { return 1 }
func (g *gainTestNode) Outputs() int { return 1 }
func (g *gainTestNode) Reset()       {}
func (g *gainTestNode) SetSampleRate(sr float64) {}
func (g *gainTestNode) Allocate() {
	if g.out == nil {
		g.out = make(fundsp.Frame, 1)
	}
}
func (g *gainTestNode) Process(input, output *fundsp.Buffer, n int) {
	in := make(fundsp.Frame, 1)
	for i := 0; i < n; i++ {
		in = input.FrameAt(i, in)
		output.SetFrameAt(i, g.Tick(in))
	}
}
func (g *gainTestNode) Tick(input fundsp.Frame) fundsp.Frame {
	if g.out == nil {
		g.out = make(fundsp.Frame, 1)
	}
	g.out[0] = input[0] * g.gain
	return g.out
}
func (g *gainTestNode) Set(s fundsp.Setting, addr fundsp.Address)   {}
func (g *gainTestNode) Ping(commit bool, hashIn uint64) uint64      { return hashIn }
func (g *gainTestNode) Route(in []fundsp.Tag) []fundsp.Tag          { return []fundsp.Tag{fundsp.UnknownTag()} }

// twoOutNode is a zero-input, two-output fixture for arity-mismatch tests.
type twoOutNode struct{ out fundsp.Frame }

func (n *twoOutNode) Inputs() int  { return 0 }
func (n *twoOutNode) Outputs() int { return 2 }
func (n *twoOutNode) Reset()       {}
func (n *twoOutNode) SetSampleRate(sr float64) {}
func (n *twoOutNode) Allocate() {
	if n.out == nil {
		n.out = make(fundsp.Frame, 2)
	}
}
func (n *twoOutNode) Process(input, output *fundsp.Buffer, frames int) {}
func (n *twoOutNode) Tick(input fundsp.Frame) fundsp.Frame {
	if n.out == nil {
		n.out = make(fundsp.Frame, 2)
	}
	return n.out
}
func (n *twoOutNode) Set(s fundsp.Setting, addr fundsp.Address)   {}
func (n *twoOutNode) Ping(commit bool, hashIn uint64) uint64      { return hashIn }
func (n *twoOutNode) Route(in []fundsp.Tag) []fundsp.Tag {
	return []fundsp.Tag{fundsp.UnknownTag(), fundsp.UnknownTag()}
}

func renderOne(t *testing.T, net *Network) *fundsp.Buffer {
	t.Helper()
	net.Commit()
	r := NewRenderer(net, 1)
	out := fundsp.NewBuffer(net.Outputs())
	r.Process(nil, out, 1)
	return out
}

func TestDynamicNegateInvertsSign(t *testing.T) {
	net := Negate(NodeOperand(units.Constant(3)), logutil.Nop)
	out := renderOne(t, net)
	assert.Equal(t, float32(-3), out.Channel(0)[0])
}

func TestDynamicAddSumsOperands(t *testing.T) {
	net := Add(NodeOperand(units.Constant(2)), NodeOperand(units.Constant(5)), logutil.Nop)
	out := renderOne(t, net)
	assert.Equal(t, float32(7), out.Channel(0)[0])
}

func TestDynamicMulMultipliesOperands(t *testing.T) {
	net := Mul(NodeOperand(units.Constant(2)), NodeOperand(units.Constant(5)), logutil.Nop)
	out := renderOne(t, net)
	assert.Equal(t, float32(10), out.Channel(0)[0])
}

func TestDynamicSubSubtractsOperands(t *testing.T) {
	net := Sub(NodeOperand(units.Constant(5)), NodeOperand(units.Constant(2)), logutil.Nop)
	out := renderOne(t, net)
	assert.Equal(t, float32(3), out.Channel(0)[0])
}

func TestDynamicAddRejectsMismatchedOutputArity(t *testing.T) {
	net := Add(NodeOperand(units.Constant(1)), NodeOperand(&twoOutNode{}), logutil.Nop)
	require.NotNil(t, net.Error())
	assert.Equal(t, ErrArityMismatch, net.Error().Kind)
}

func TestDynamicPipeChainsOperands(t *testing.T) {
	net := Pipe(NodeOperand(units.Constant(2)), NodeOperand(newGainTestNode(3)), logutil.Nop)
	out := renderOne(t, net)
	assert.Equal(t, float32(6), out.Channel(0)[0])
}

func TestDynamicPipeRejectsArityMismatch(t *testing.T) {
	net := Pipe(NodeOperand(units.Constant(1)), NodeOperand(&twoOutNode{}), logutil.Nop)
	require.NotNil(t, net.Error())
	assert.Equal(t, ErrArityMismatch, net.Error().Kind)
}

func TestDynamicStackRunsOperandsSideBySide(t *testing.T) {
	net := Stack(NodeOperand(units.Constant(1)), NodeOperand(units.Constant(2)), logutil.Nop)
	out := renderOne(t, net)
	assert.Equal(t, float32(1), out.Channel(0)[0])
	assert.Equal(t, float32(2), out.Channel(1)[0])
}

func TestDynamicBranchRejectsMismatchedInputArity(t *testing.T) {
	net := Branch(NodeOperand(newGainTestNode(1)), NodeOperand(units.Constant(1)), logutil.Nop)
	require.NotNil(t, net.Error())
	assert.Equal(t, ErrArityMismatch, net.Error().Kind)
}

func TestDynamicBusRequiresMatchingArityBothWays(t *testing.T) {
	net := Bus(NodeOperand(newGainTestNode(1)), NodeOperand(&twoOutNode{}), logutil.Nop)
	require.NotNil(t, net.Error())
	assert.Equal(t, ErrArityMismatch, net.Error().Kind)
}

func TestGraphWrapsAnExistingNetworkAsAnOperand(t *testing.T) {
	inner := New(0, 1, logutil.Nop)
	id := inner.Push(units.Constant(4))
	inner.SetOutput(0, FromNode(id, 0))

	net := Negate(Graph(inner), logutil.Nop)
	out := renderOne(t, net)
	assert.Equal(t, float32(-4), out.Channel(0)[0])
}
