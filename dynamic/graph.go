// Package dynamic implements the runtime-constructable graph: a
// heap-stored population of nodes wired by a frontend that can
// push, remove, connect, and replace nodes while a backend renders a
// committed snapshot of the graph in real time, with crossfades
// smoothing the transition between snapshots and structural problems
// (cycles, dangling edges) recorded as values rather than panics.
package dynamic

import (
	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/internal/logutil"
)

// NodeID identifies a node pushed into a Network. IDs are never
// reused within a Network's lifetime.
type NodeID uint64

// SourceKind discriminates what an input slot pulls samples from.
type SourceKind int

const (
	// SourceGraphInput pulls from one of the network's own inputs.
	SourceGraphInput SourceKind = iota
	// SourceNode pulls from another node's output channel.
	SourceNode
	// SourceZero is a constant zero source, used for unconnected
	// slots and as the safe substitute for a broken edge.
	SourceZero
)

// Source names where an input slot (of a node, or of the network's
// own output) pulls its samples from.
type Source struct {
	Kind    SourceKind
	Node    NodeID
	Channel int
	Input   int
}

// GraphInput builds a Source reading graph input channel i.
func GraphInput(i int) Source { return Source{Kind: SourceGraphInput, Input: i} }

// FromNode builds a Source reading output channel ch of node id.
func FromNode(id NodeID, ch int) Source { return Source{Kind: SourceNode, Node: id, Channel: ch} }

// Zero builds the constant-zero Source.
func Zero() Source { return Source{Kind: SourceZero} }

type nodeEntry struct {
	node   fundsp.Node
	inputs []Source
}

// Network is the frontend half of the dynamic graph: the only side
// that allocates, used from whatever goroutine is building up the
// patch (a UI thread, a script). It is not safe to call concurrently
// with itself; pair it with one Renderer via Commit.
type Network struct {
	nIn, nOut int
	nodes     map[NodeID]*nodeEntry
	order     []NodeID // insertion order, for deterministic iteration
	nextID    NodeID
	outputs   []Source
	err       *NetError
	log       logutil.Logger
	ring      *commitRing
}

// New builds an empty network with nIn graph inputs and nOut graph
// outputs. Every output starts wired to graph input 0 when nIn > 0,
// and to constant zero otherwise, so a freshly built network is
// always renderable without requiring any patching first.
func New(nIn, nOut int, log logutil.Logger) *Network {
	outputs := make([]Source, nOut)
	for i := range outputs {
		if nIn > 0 {
			outputs[i] = GraphInput(0)
		} else {
			outputs[i] = Zero()
		}
	}
	return &Network{
		nIn:     nIn,
		nOut:    nOut,
		nodes:   make(map[NodeID]*nodeEntry),
		outputs: outputs,
		log:     logutil.Or(log),
		ring:    newCommitRing(4),
	}
}

// Inputs and Outputs report the network's fixed graph-level arity.
func (net *Network) Inputs() int  { return net.nIn }
func (net *Network) Outputs() int { return net.nOut }

// Push adds node to the network with every input defaulted to
// constant zero, and returns its ID. node is immediately pinged in
// commit mode with a hash derived from its ID, so two otherwise
// identical nodes pushed into the same network still decorrelate —
// structural-position seeding applied to push order, the dynamic
// layer's analogue of a combinator's child index.
func (net *Network) Push(node fundsp.Node) NodeID {
	id := net.nextID
	net.nextID++
	inputs := make([]Source, node.Inputs())
	for i := range inputs {
		inputs[i] = Zero()
	}
	node.Ping(true, dynamicHashSeed(id))
	net.nodes[id] = &nodeEntry{node: node, inputs: inputs}
	net.order = append(net.order, id)
	net.log.Debug("pushed node", "id", id, "inputs", node.Inputs(), "outputs", node.Outputs())
	return id
}

// dynamicHashSeed derives the location-hash seed handed to a node at
// Push time from its NodeID, using the same splitmix64 permutation
// the static layer's combinators mix through (fundsp/hash.go); the
// dynamic layer has no nested combinator structure to thread a parent
// hash through, so push order stands in for structural position.
func dynamicHashSeed(id NodeID) uint64 {
	x := uint64(id) + 1
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Remove deletes a node. Any edge still pointing at id becomes
// dangling; Error() will report it after the next Commit, and the
// backend renders zero on the affected path in the meantime.
func (net *Network) Remove(id NodeID) {
	delete(net.nodes, id)
	for i, existing := range net.order {
		if existing == id {
			net.order = append(net.order[:i], net.order[i+1:]...)
			break
		}
	}
	net.log.Debug("removed node", "id", id)
}

// Connect wires input slot of node id to src. Returns a *NetError
// (also retained for Error()) if id or slot is invalid; mismatched
// channel counts and cycles are only caught at Commit, since they can
// depend on edges not yet made.
func (net *Network) Connect(id NodeID, slot int, src Source) *NetError {
	entry, ok := net.nodes[id]
	if !ok {
		net.err = &NetError{Kind: ErrDangling, NodeID: id, Slot: slot, Message: "no such node"}
		return net.err
	}
	if slot < 0 || slot >= len(entry.inputs) {
		net.err = newArityError(id, slot, len(entry.inputs), slot+1)
		return net.err
	}
	entry.inputs[slot] = src
	return nil
}

// SetOutput wires graph output index out to src.
func (net *Network) SetOutput(out int, src Source) *NetError {
	if out < 0 || out >= len(net.outputs) {
		net.err = newArityError(0, out, len(net.outputs), out+1)
		return net.err
	}
	net.outputs[out] = src
	return nil
}

// Replace swaps the node at id for replacement, keeping every
// existing edge into and out of id. If replacement's arity does not
// match the node being replaced, the edges are kept anyway (they will
// read/produce zero past the old arity until repaired) and a
// *NetError is returned.
func (net *Network) Replace(id NodeID, replacement fundsp.Node) *NetError {
	entry, ok := net.nodes[id]
	if !ok {
		err := &NetError{Kind: ErrDangling, NodeID: id, Message: "no such node"}
		net.err = err
		return err
	}
	old := entry.node
	entry.node = replacement
	if replacement.Inputs() != old.Inputs() {
		inputs := make([]Source, replacement.Inputs())
		copy(inputs, entry.inputs)
		for i := len(entry.inputs); i < len(inputs); i++ {
			inputs[i] = Zero()
		}
		entry.inputs = inputs
		err := newArityError(id, 0, old.Inputs(), replacement.Inputs())
		net.err = err
		return err
	}
	if replacement.Outputs() != old.Outputs() {
		err := newArityError(id, 0, old.Outputs(), replacement.Outputs())
		net.err = err
		return err
	}
	return nil
}

// Error returns the most recent structural problem recorded since the
// last successful Commit, or nil if the network is currently sound.
func (net *Network) Error() *NetError { return net.err }

// Set routes a setting into the network. addr's first token
// must be NodeRef(id); the remaining tokens are forwarded to that
// node's own Set. An address with any other leading token, or one
// naming a node the network does not have, is silently ignored,
// matching the leaf-level "unrecognized settings are ignored" default.
func (net *Network) Set(s fundsp.Setting, addr fundsp.Address) {
	tok, rest, ok := addr.Head()
	if !ok || tok.Kind != fundsp.NodeRef {
		return
	}
	if entry, exists := net.nodes[NodeID(tok.Node)]; exists {
		entry.node.Set(s, rest)
	}
}
