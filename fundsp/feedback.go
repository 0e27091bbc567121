package fundsp

// denormalOffset is injected into the recirculating state of a
// feedback loop once per sample: Go has no portable MXCSR/FTZ
// intrinsic without cgo, so instead of letting a decaying loop wander
// into denormal range on architectures without hardware flush-to-zero,
// the loop is nudged a fixed, inaudible amount away from zero every
// sample.
const denormalOffset = 1e-18

// feedbackNode wraps a single subgraph so its own output feeds back
// into its own input one sample later. The wrapped node's input and
// output arity must match: the loop only closes when what comes out
// can be added back to what goes in.
type feedbackNode struct {
	baseNode
	a     Node
	state Frame // one-sample-delayed output, fed back in on the next Tick
	mixIn Frame // scratch: external input + state
}

// Feedback returns a node wrapping a with a single-sample delayed
// feedback loop: at each sample, a's input is the caller's input plus
// a's own output from the previous sample. I(A) must equal O(A).
func Feedback(a Node) Node {
	requireEqual("feedback", "arity", a.Inputs(), a.Outputs())
	return &feedbackNode{baseNode: newBaseNode(), a: a}
}

func (n *feedbackNode) Inputs() int  { return n.a.Inputs() }
func (n *feedbackNode) Outputs() int { return n.a.Outputs() }

func (n *feedbackNode) Reset() {
	n.a.Reset()
	for i := range n.state {
		n.state[i] = 0
	}
}

func (n *feedbackNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
}

func (n *feedbackNode) Allocate() {
	n.allocateFrame(n.Inputs())
	if cap(n.state) < n.Outputs() {
		n.state = make(Frame, n.Outputs())
	}
	n.state = n.state[:n.Outputs()]
	if cap(n.mixIn) < n.Inputs() {
		n.mixIn = make(Frame, n.Inputs())
	}
	n.mixIn = n.mixIn[:n.Inputs()]
	n.a.Allocate()
	n.baseNode.Allocate()
}

func (n *feedbackNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}

func (n *feedbackNode) Tick(input Frame) Frame {
	if cap(n.mixIn) < len(input) {
		n.mixIn = make(Frame, len(input))
	}
	n.mixIn = n.mixIn[:len(input)]
	for i := range n.mixIn {
		n.mixIn[i] = input[i] + n.state[i]
	}
	out := n.a.Tick(n.mixIn)
	if cap(n.state) < len(out) {
		n.state = make(Frame, len(out))
	}
	n.state = n.state[:len(out)]
	for i := range out {
		n.state[i] = out[i] + denormalOffset
	}
	return out
}

func (n *feedbackNode) Set(s Setting, addr Address) {
	if _, rest, ok := addr.Head(); ok {
		n.a.Set(s, rest)
	} else {
		n.a.Set(s, addr)
	}
}

func (n *feedbackNode) Ping(commit bool, hashIn uint64) uint64 {
	h := n.a.Ping(commit, mixChild(hashIn, kindFeedback, 0))
	r := combineHash(kindFeedback, h)
	n.baseNode.seedFrom(commit, r)
	return r
}

// Route reports Unknown on every output: a recirculating loop's
// transfer function is the solution of an implicit equation, not a
// composition the local tag-propagation rules in signal.go can
// express, so the honest answer is "not analyzable" rather than a
// guess.
func (n *feedbackNode) Route(in []Tag) []Tag {
	res := make([]Tag, n.Outputs())
	for i := range res {
		res[i] = UnknownTag()
	}
	return res
}
