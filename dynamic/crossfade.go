package dynamic

import (
	"github.com/SamiPerttu/fundsp/control"
	"github.com/SamiPerttu/fundsp/fundsp"
)

// crossfadeNode wraps an outgoing and an incoming node of identical
// arity, blending from old to new over total frames following curve.
// Progress advances across Process/Tick calls regardless of block
// boundaries, so a fade spanning several Process calls stays
// sample-accurate. It implements fundsp.Node in full so the backend's
// topological order and scratch-buffer machinery treat it like any
// other node.
type crossfadeNode struct {
	old, new fundsp.Node
	curve    control.Curve
	total    int
	done     int
	outNew   fundsp.Frame
	in       fundsp.Frame
}

func newCrossfadeNode(old, new fundsp.Node, curve control.Curve, total int) *crossfadeNode {
	if total < 1 {
		total = 1
	}
	return &crossfadeNode{old: old, new: new, curve: curve, total: total}
}

func (c *crossfadeNode) Inputs() int  { return c.new.Inputs() }
func (c *crossfadeNode) Outputs() int { return c.new.Outputs() }

func (c *crossfadeNode) Reset() {
	c.old.Reset()
	c.new.Reset()
}

func (c *crossfadeNode) SetSampleRate(sr float64) {
	c.old.SetSampleRate(sr)
	c.new.SetSampleRate(sr)
}

func (c *crossfadeNode) Allocate() {
	c.old.Allocate()
	c.new.Allocate()
	if cap(c.outNew) < c.new.Outputs() {
		c.outNew = make(fundsp.Frame, c.new.Outputs())
	}
	if cap(c.in) < c.new.Inputs() {
		c.in = make(fundsp.Frame, c.new.Inputs())
	}
	c.outNew = c.outNew[:c.new.Outputs()]
}

func (c *crossfadeNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		c.in = input.FrameAt(i, c.in)
		output.SetFrameAt(i, c.Tick(c.in))
	}
}

func (c *crossfadeNode) Tick(input fundsp.Frame) fundsp.Frame {
	oldOut := c.old.Tick(input)
	newOut := c.new.Tick(input)

	w := 1.0
	if c.done < c.total {
		c.done++
		w = c.curve.Apply(float64(c.done) / float64(c.total))
	}
	if cap(c.outNew) < len(newOut) {
		c.outNew = make(fundsp.Frame, len(newOut))
	}
	out := c.outNew[:len(newOut)]
	wOld, wNew := float32(1-w), float32(w)
	for i := range out {
		var o float32
		if i < len(oldOut) {
			o = oldOut[i]
		}
		out[i] = wOld*o + wNew*newOut[i]
	}
	return out
}

func (c *crossfadeNode) Set(s fundsp.Setting, addr fundsp.Address) { c.new.Set(s, addr) }

func (c *crossfadeNode) Ping(commit bool, hashIn uint64) uint64 {
	c.old.Ping(commit, hashIn)
	return c.new.Ping(commit, hashIn)
}

// Route reports Unknown while a fade is in progress (the node is
// momentarily a nonlinear blend of two signals) and defers to the
// incoming node once the fade has settled.
func (c *crossfadeNode) Route(in []fundsp.Tag) []fundsp.Tag {
	if c.done >= c.total {
		return c.new.Route(in)
	}
	res := make([]fundsp.Tag, c.Outputs())
	for i := range res {
		res[i] = fundsp.UnknownTag()
	}
	return res
}

// Done reports whether the fade has fully settled on the incoming
// node, letting Commit collapse the wrapper and drop the outgoing
// node from memory.
func (c *crossfadeNode) Done() bool { return c.done >= c.total }

// Settled returns the node this wrapper will have fully become once
// Done reports true.
func (c *crossfadeNode) Settled() fundsp.Node { return c.new }

// settleable is implemented by wrapper nodes (currently only
// crossfadeNode) that can report having finished an internal
// transition and hand back the node they settle into.
type settleable interface {
	fundsp.Node
	Done() bool
	Settled() fundsp.Node
}

// collapseSettledCrossfades replaces any fully-settled crossfade
// wrapper with the plain node it faded into, so the outgoing node and
// the wrapper's bookkeeping are released instead of lingering forever
// once a fade completes.
func (net *Network) collapseSettledCrossfades() {
	for _, entry := range net.nodes {
		if cf, ok := entry.node.(settleable); ok && cf.Done() {
			entry.node = cf.Settled()
		}
	}
}

// Crossfade logically replaces the node at id with replacement while
// smoothly blending from the outgoing node's output to the incoming
// one's over totalFrames samples following curve (nil means Linear).
// Unlike Replace, the outgoing node stays alive and keeps rendering
// until the fade completes; replacement's arity must match the
// node being replaced exactly, same as Replace.
func (net *Network) Crossfade(id NodeID, curve control.Curve, totalFrames int, replacement fundsp.Node) *NetError {
	entry, ok := net.nodes[id]
	if !ok {
		err := &NetError{Kind: ErrDangling, NodeID: id, Message: "no such node"}
		net.err = err
		return err
	}
	old := entry.node
	if replacement.Inputs() != old.Inputs() || replacement.Outputs() != old.Outputs() {
		err := newArityError(id, 0, old.Inputs(), replacement.Inputs())
		net.err = err
		return err
	}
	entry.node = newCrossfadeNode(old, replacement, curve, totalFrames)
	net.log.Debug("crossfading node", "id", id, "frames", totalFrames)
	return nil
}
