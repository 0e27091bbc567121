package fundsp

// gainTestNode is a minimal fixed-gain node (one input, one output)
// used across this package's tests as a stand-in concrete component,
// since fundsp itself stays agnostic of any concrete DSP catalog
// (that lives in the units package, which depends on fundsp and so
// cannot be imported back here).
type gainTestNode struct {
	gain float32
	out  Frame
}

func newGainTestNode(gain float64) *gainTestNode { return &gainTestNode{gain: float32(gain)} }

func (g *gainTestNode) Inputs() int  { return 1 }
func (g *gainTestNode) Outputs() int { return 1 }
func (g *gainTestNode) Reset()       {}
func (g *gainTestNode) SetSampleRate(sr float64) {}
func (g *gainTestNode) Allocate() {
	if g.out == nil {
		g.out = make(Frame, 1)
	}
}
func (g *gainTestNode) Process(input, output *Buffer, n int) {
	in := make(Frame, 1)
	for i := 0; i < n; i++ {
		in = input.FrameAt(i, in)
		output.SetFrameAt(i, g.Tick(in))
	}
}
func (g *gainTestNode) Tick(input Frame) Frame {
	if g.out == nil {
		g.out = make(Frame, 1)
	}
	g.out[0] = g.gain * input[0]
	return g.out
}
func (g *gainTestNode) Set(s Setting, addr Address) {
	if s.Kind == SettingValue {
		g.gain = float32(s.Scalar)
	}
}
func (g *gainTestNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (g *gainTestNode) Route(in []Tag) []Tag {
	return []Tag{GainTag(in[0], float64(g.gain))}
}

// constTestNode is a zero-input generator emitting a fixed value,
// the other fixture shape tests need (arithmetic between two
// generators, feedback loops with a known steady state).
type constTestNode struct {
	value float64
	out   Frame
}

func newConstTestNode(v float64) *constTestNode { return &constTestNode{value: v} }

func (c *constTestNode) Inputs() int  { return 0 }
func (c *constTestNode) Outputs() int { return 1 }
func (c *constTestNode) Reset()       {}
func (c *constTestNode) SetSampleRate(sr float64) {}
func (c *constTestNode) Allocate() {
	if c.out == nil {
		c.out = make(Frame, 1)
	}
}
func (c *constTestNode) Process(input, output *Buffer, n int) {
	for i := 0; i < n; i++ {
		output.SetFrameAt(i, c.Tick(nil))
	}
}
func (c *constTestNode) Tick(input Frame) Frame {
	if c.out == nil {
		c.out = make(Frame, 1)
	}
	c.out[0] = float32(c.value)
	return c.out
}
func (c *constTestNode) Set(s Setting, addr Address) {}
func (c *constTestNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (c *constTestNode) Route(in []Tag) []Tag { return []Tag{ValueTag(c.value)} }
