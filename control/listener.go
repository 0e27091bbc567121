package control

import (
	"sync/atomic"

	"github.com/SamiPerttu/fundsp/fundsp"
)

// update is one queued setting, bound to the address it should be
// applied at.
type update struct {
	setting fundsp.Setting
	addr    fundsp.Address
}

// Listener wraps a node with a bounded, many-producer/single-consumer
// channel of Setting updates. Any number of goroutines may call Send;
// only the render thread should call Apply, once per block, to drain
// whatever arrived since the last call and apply it to the wrapped
// node in order.
type Listener struct {
	node    fundsp.Node
	updates chan update
	dropped atomic.Uint64
}

// NewListener wraps node with a queue of the given capacity. A
// capacity of 0 is rejected in favor of 1, since a listener with no
// room to hold even one pending update can never deliver anything.
func NewListener(node fundsp.Node, capacity int) *Listener {
	if capacity < 1 {
		capacity = 1
	}
	return &Listener{node: node, updates: make(chan update, capacity)}
}

// Send queues a setting for delivery on the next Apply call. If the
// queue is full the update is dropped and counted in Dropped — a
// listener never blocks its caller and never blocks the render
// thread.
func (l *Listener) Send(setting fundsp.Setting, addr fundsp.Address) {
	select {
	case l.updates <- update{setting, addr}:
	default:
		l.dropped.Add(1)
	}
}

// Dropped reports how many Send calls were discarded because the
// queue was full.
func (l *Listener) Dropped() uint64 { return l.dropped.Load() }

// Apply drains every update queued since the last call and applies it
// to the wrapped node, in arrival order. Must only be called from the
// render thread, between block-process calls.
func (l *Listener) Apply() {
	for {
		select {
		case u := <-l.updates:
			l.node.Set(u.setting, u.addr)
		default:
			return
		}
	}
}

// Node returns the wrapped node, so a Listener can be embedded
// directly wherever a fundsp.Node is expected.
func (l *Listener) Node() fundsp.Node { return l.node }

// Listen wraps node for cross-goroutine control: the returned
// Listener is the sender half, safe to call from any goroutine, and
// the returned node stands in for the original anywhere in a graph,
// draining queued settings at the start of every Process and Tick
// call before rendering.
func Listen(node fundsp.Node, capacity int) (*Listener, fundsp.Node) {
	l := NewListener(node, capacity)
	return l, &listenerNode{Listener: l}
}

// listenerNode is the render-side half of Listen: a transparent node
// wrapper that applies pending settings before delegating.
type listenerNode struct {
	*Listener
}

func (n *listenerNode) Inputs() int  { return n.node.Inputs() }
func (n *listenerNode) Outputs() int { return n.node.Outputs() }

func (n *listenerNode) Process(input, output *fundsp.Buffer, frames int) {
	n.Apply()
	n.node.Process(input, output, frames)
}

func (n *listenerNode) Tick(input fundsp.Frame) fundsp.Frame {
	n.Apply()
	return n.node.Tick(input)
}

func (n *listenerNode) Reset()                  { n.node.Reset() }
func (n *listenerNode) SetSampleRate(sr float64) { n.node.SetSampleRate(sr) }
func (n *listenerNode) Allocate()               { n.node.Allocate() }

func (n *listenerNode) Set(s fundsp.Setting, addr fundsp.Address) { n.node.Set(s, addr) }

func (n *listenerNode) Ping(commit bool, hashIn uint64) uint64 {
	return n.node.Ping(commit, hashIn)
}

func (n *listenerNode) Route(in []fundsp.Tag) []fundsp.Tag { return n.node.Route(in) }
