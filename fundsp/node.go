package fundsp

// Node is the uniform contract every processing element in the graph
// implements: generator, filter, sink, or combinator. Arities are
// fixed for the lifetime of the node, at construction time for both
// the static and dynamic layers.
//
// Contract invariants:
//   - process(x; n) then process(y; m) == process(x‖y; n+m) for the
//     same starting state.
//   - Tick and Process are observationally equivalent.
//   - Reset before any audio gives deterministic, repeatable output
//     under identical hash seeding.
type Node interface {
	// Inputs and Outputs report the node's fixed channel arities.
	Inputs() int
	Outputs() int

	// Process consumes and produces exactly n frames (n <= BlockSize).
	// input has Inputs() channels, output has Outputs() channels.
	Process(input, output *Buffer, n int)

	// Tick is the single-frame variant, semantically process(·; 1).
	Tick(input Frame) Frame

	// Reset returns the node to its initial phase/state without
	// touching the sample rate.
	Reset()

	// SetSampleRate recomputes rate-dependent coefficients. State is
	// preserved where meaningful.
	SetSampleRate(sr float64)

	// Allocate preallocates any remaining heap memory so that
	// subsequent Process/Tick calls make no allocations. Idempotent.
	Allocate()

	// Set applies a setting addressed by up to four-level tree
	// navigation (see setting.go). Unrecognized settings are ignored.
	Set(setting Setting, addr Address)

	// Ping computes the node's location hash recursively. In probe
	// mode (commit=false) the call only observes; in commit mode the
	// node records hashIn and reseeds its pseudorandom phase from it.
	Ping(commit bool, hashIn uint64) uint64

	// Route produces output signal tags given input signal tags (see
	// signal.go). len(in) == Inputs(), len(result) == Outputs().
	Route(in []Tag) []Tag
}

// Latency is the convenience query derived from Route: the minimum
// causal latency, in samples, reaching any output when all inputs are
// Unknown-free (an Unknown input taints the corresponding path).
func Latency(n Node) float64 {
	in := make([]Tag, n.Inputs())
	for i := range in {
		in[i] = LatencyTag(0)
	}
	out := n.Route(in)
	best := -1.0
	for _, t := range out {
		d, ok := t.CausalLatency()
		if !ok {
			continue
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// baseNode centralizes the bookkeeping every concrete component and
// combinator needs (sample rate, location hash, allocation flag) so
// leaf implementations only provide Process/Tick/Reset/Route.
type baseNode struct {
	sampleRate float64
	hash       uint64
	allocated  bool
	frameIn    Frame
}

func newBaseNode() baseNode {
	return baseNode{sampleRate: DefaultSampleRate}
}

func (b *baseNode) SetSampleRate(sr float64) { b.sampleRate = sr }
func (b *baseNode) SampleRate() float64      { return b.sampleRate }
func (b *baseNode) Allocate()                { b.allocated = true }
func (b *baseNode) Hash() uint64             { return b.hash }

// seedFrom records hashIn during a commit-mode Ping. Leaf nodes call
// this from their Ping implementation and re-derive pseudorandom state
// from the returned value.
func (b *baseNode) seedFrom(commit bool, hashIn uint64) uint64 {
	if commit {
		b.hash = hashIn
	}
	return hashIn
}
