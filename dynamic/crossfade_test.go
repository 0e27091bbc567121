package dynamic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamiPerttu/fundsp/control"
	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/internal/logutil"
	"github.com/SamiPerttu/fundsp/units"
)

func TestCrossfadeNodeBlendsOverItsWindow(t *testing.T) {
	c := newCrossfadeNode(units.Constant(0), units.Constant(1), control.Linear, 4)
	c.Allocate()

	assert.InDelta(t, 0.25, c.Tick(nil)[0], 1e-6)
	assert.InDelta(t, 0.5, c.Tick(nil)[0], 1e-6)
	assert.InDelta(t, 0.75, c.Tick(nil)[0], 1e-6)
	assert.InDelta(t, 1.0, c.Tick(nil)[0], 1e-6)
	assert.True(t, c.Done())

	// once settled, further ticks keep reading from the incoming node
	assert.InDelta(t, 1.0, c.Tick(nil)[0], 1e-6)
}

func TestCrossfadeNodeDefaultsNilCurveToLinear(t *testing.T) {
	c := newCrossfadeNode(units.Constant(0), units.Constant(1), nil, 2)
	c.Allocate()
	assert.InDelta(t, 0.5, c.Tick(nil)[0], 1e-6)
	assert.InDelta(t, 1.0, c.Tick(nil)[0], 1e-6)
}

func TestCrossfadeRejectsMismatchedArity(t *testing.T) {
	net := New(0, 1, logutil.Nop)
	id := net.Push(units.Delay(1))
	err := net.Crossfade(id, control.Linear, 4, units.Constant(1))
	require.NotNil(t, err)
	assert.Equal(t, ErrArityMismatch, err.Kind)
}

func TestCrossfadeOnUnknownNodeReportsDangling(t *testing.T) {
	net := New(0, 1, logutil.Nop)
	err := net.Crossfade(NodeID(999), control.Linear, 4, units.Constant(1))
	require.NotNil(t, err)
	assert.Equal(t, ErrDangling, err.Kind)
}

func TestSettledCrossfadeCollapsesAfterCommit(t *testing.T) {
	net := New(0, 1, logutil.Nop)
	a := net.Push(units.Constant(0))
	net.SetOutput(0, FromNode(a, 0))
	net.Commit()

	require.Nil(t, net.Crossfade(a, control.Linear, 1, units.Constant(1)))
	net.Commit()

	entry := net.nodes[a]
	cf, stillWrapped := entry.node.(*crossfadeNode)
	require.True(t, stillWrapped, "the fade has not ticked yet, so it should not have settled")

	cf.Tick(fundsp.Frame{})

	net.Commit()
	entry = net.nodes[a]
	_, stillWrapped = entry.node.(*crossfadeNode)
	assert.False(t, stillWrapped, "a fully elapsed fade should collapse to its settled node on the next commit")
}
