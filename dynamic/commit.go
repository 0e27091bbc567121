package dynamic

import "github.com/SamiPerttu/fundsp/fundsp"

// backend is one immutable, fully-resolved snapshot of a network,
// ready to render: a topological node order, every input source
// resolved (dangling and cyclic edges already replaced with
// SourceZero), and pre-sized scratch buffers for every node's inputs
// and outputs. Nothing about rendering a backend allocates.
type backend struct {
	order   []NodeID
	nodes   map[NodeID]fundsp.Node
	inputs  map[NodeID][]Source
	outputs []Source
	nodeIn  map[NodeID]*fundsp.Buffer
	nodeOut map[NodeID]*fundsp.Buffer
}

// Commit freezes the network's current structure into a new backend
// and hands it to the render thread via the commit ring. It allocates
// (building scratch buffers, calling Allocate on every node in the
// snapshot) and must only be called from the frontend
// goroutine, never from the render thread.
func (net *Network) Commit() {
	net.collapseSettledCrossfades()
	p := buildPlan(net)
	net.err = p.err

	b := &backend{
		order:   p.order,
		nodes:   make(map[NodeID]fundsp.Node, len(p.order)),
		inputs:  p.inputs,
		outputs: p.outputs,
		nodeIn:  make(map[NodeID]*fundsp.Buffer, len(p.order)),
		nodeOut: make(map[NodeID]*fundsp.Buffer, len(p.order)),
	}
	for _, id := range p.order {
		entry := net.nodes[id]
		entry.node.Allocate()
		b.nodes[id] = entry.node
		b.nodeOut[id] = fundsp.NewBuffer(entry.node.Outputs())
		b.nodeIn[id] = fundsp.NewBuffer(entry.node.Inputs())
	}
	net.log.Info("committed backend", "nodes", len(p.order), "err", p.err)
	net.ring.push(b)
}

// process renders n frames through this backend's nodes in
// topological order, resolving every input and graph output from its
// Source.
func (b *backend) process(input, output *fundsp.Buffer, n int) {
	for _, id := range b.order {
		node := b.nodes[id]
		inBuf := b.nodeIn[id]
		for slot, src := range b.inputs[id] {
			fillChannel(inBuf, slot, src, input, b.nodeOut, n)
		}
		node.Process(inBuf, b.nodeOut[id], n)
	}
	for ch, src := range b.outputs {
		fillChannel(output, ch, src, input, b.nodeOut, n)
	}
}

// fillChannel writes n samples of src into dst's channel dstCh.
func fillChannel(dst *fundsp.Buffer, dstCh int, src Source, graphInput *fundsp.Buffer, nodeOut map[NodeID]*fundsp.Buffer, n int) {
	switch src.Kind {
	case SourceGraphInput:
		dst.CopyChannelFrom(dstCh, graphInput, src.Input, n)
	case SourceNode:
		dst.CopyChannelFrom(dstCh, nodeOut[src.Node], src.Channel, n)
	default:
		c := dst.Channel(dstCh)
		for i := 0; i < n; i++ {
			c[i] = 0
		}
	}
}
