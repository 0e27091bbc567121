package units

import "github.com/SamiPerttu/fundsp/fundsp"

type noiseNode struct {
	state uint64
	seed  uint64 // state Reset returns to
	seeded bool
	out   fundsp.Frame
}

// Noise returns a zero-input generator whose samples are a
// pseudorandom splitmix64 stream seeded from the node's location
// hash: deterministic at a fixed graph position, decorrelating from
// any other Noise node placed elsewhere under Stack.
func Noise() fundsp.Node { return &noiseNode{} }

func (nd *noiseNode) Inputs() int  { return 0 }
func (nd *noiseNode) Outputs() int { return 1 }
func (nd *noiseNode) Reset()       { nd.state = nd.seed }
func (nd *noiseNode) SetSampleRate(sr float64) {}
func (nd *noiseNode) Allocate() {
	if nd.out == nil {
		nd.out = make(fundsp.Frame, 1)
	}
}
func (nd *noiseNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		output.SetFrameAt(i, nd.Tick(nil))
	}
}

func splitmix64Next(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (nd *noiseNode) Tick(input fundsp.Frame) fundsp.Frame {
	if !nd.seeded {
		nd.state = 0x2545F4914F6CDD1D
		nd.seed = nd.state
		nd.seeded = true
	}
	nd.state = splitmix64Next(nd.state)
	if nd.out == nil {
		nd.out = make(fundsp.Frame, 1)
	}
	// Map the top 24 bits to a uniform value in [-1, 1).
	u := float32(nd.state>>40) / float32(1<<24)
	nd.out[0] = 2*u - 1
	return nd.out
}
func (nd *noiseNode) Set(setting fundsp.Setting, addr fundsp.Address) {}
func (nd *noiseNode) Ping(commit bool, hashIn uint64) uint64 {
	if commit {
		nd.state = hashIn
		nd.seed = hashIn
		nd.seeded = true
	}
	return hashIn
}
func (nd *noiseNode) Route(in []fundsp.Tag) []fundsp.Tag {
	return []fundsp.Tag{fundsp.UnknownTag()}
}
