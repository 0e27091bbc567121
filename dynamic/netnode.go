package dynamic

import "github.com/SamiPerttu/fundsp/fundsp"

// netNode adapts an existing *Network into a fundsp.Node, so a
// previously-built network can stand in as a combinator operand:
// spliced into a static combinator expression, or pushed as a single
// opaque node into another dynamic network. It owns a private
// Renderer bound to the wrapped network.
//
// Settings addressed with a leading NodeRef token are forwarded into
// the wrapped network's own node set; Route is conservatively
// Unknown, since nothing downstream of this adapter can see through
// to the wrapped network's internal topology for analysis.
type netNode struct {
	net    *Network
	rnd    *Renderer
	inBuf  *fundsp.Buffer
	outBuf *fundsp.Buffer
	frame  fundsp.Frame
}

// AsNode wraps net as a fundsp.Node with net.Inputs() inputs and
// net.Outputs() outputs, committing net immediately so the wrapper
// has a backend ready to render. Further edits to net after wrapping
// require an explicit net.Commit() (through the wrapper's Allocate,
// which re-commits) to be picked up.
func AsNode(net *Network) fundsp.Node {
	net.Commit()
	return &netNode{net: net, rnd: NewRenderer(net, 0)}
}

func (w *netNode) Inputs() int  { return w.net.nIn }
func (w *netNode) Outputs() int { return w.net.nOut }

func (w *netNode) Process(input, output *fundsp.Buffer, n int) {
	w.rnd.Process(input, output, n)
}

func (w *netNode) Tick(input fundsp.Frame) fundsp.Frame {
	if len(input) > 0 {
		w.inBuf.SetFrameAt(0, input)
	}
	w.rnd.Process(w.inBuf, w.outBuf, 1)
	w.frame = w.outBuf.FrameAt(0, w.frame)
	return w.frame
}

func (w *netNode) Reset() {
	for _, entry := range w.net.nodes {
		entry.node.Reset()
	}
}

func (w *netNode) SetSampleRate(sr float64) {
	for _, entry := range w.net.nodes {
		entry.node.SetSampleRate(sr)
	}
}

// Allocate re-commits the wrapped network so edits made through its
// frontend methods after AsNode are picked up before the first
// render, and preallocates the single-frame scratch buffers Tick
// uses so it never allocates once rendering starts.
func (w *netNode) Allocate() {
	w.net.Commit()
	w.inBuf = fundsp.NewBuffer(w.Inputs())
	w.outBuf = fundsp.NewBuffer(w.Outputs())
}

func (w *netNode) Set(s fundsp.Setting, addr fundsp.Address) { w.net.Set(s, addr) }

func (w *netNode) Ping(commit bool, hashIn uint64) uint64 {
	h := hashIn
	for _, id := range w.net.order {
		h = dynamicHashSeed(NodeID(h ^ uint64(id)))
		if commit {
			w.net.nodes[id].node.Ping(true, h)
		}
	}
	return h
}

func (w *netNode) Route(in []fundsp.Tag) []fundsp.Tag {
	out := make([]fundsp.Tag, w.Outputs())
	for i := range out {
		out[i] = fundsp.UnknownTag()
	}
	return out
}
