// Package units is a minimal, deliberately incomplete catalog of
// concrete DSP components built on top of the fundsp node contract.
// It exists to give the core something to render and test against;
// it is not the audio algorithm library the core itself stays
// agnostic of.
package units

import "github.com/SamiPerttu/fundsp/fundsp"

type constantNode struct {
	value  float64
	frame  fundsp.Frame
	sr     float64
}

// Constant returns a zero-input generator that emits value forever on
// its single output.
func Constant(value float64) fundsp.Node {
	return &constantNode{value: value, sr: fundsp.DefaultSampleRate}
}

func (c *constantNode) Inputs() int  { return 0 }
func (c *constantNode) Outputs() int { return 1 }
func (c *constantNode) Reset()       {}
func (c *constantNode) SetSampleRate(sr float64) { c.sr = sr }
func (c *constantNode) Allocate() {
	if c.frame == nil {
		c.frame = make(fundsp.Frame, 1)
	}
	c.frame[0] = float32(c.value)
}
func (c *constantNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		output.SetFrameAt(i, c.Tick(nil))
	}
}
func (c *constantNode) Tick(input fundsp.Frame) fundsp.Frame {
	if c.frame == nil {
		c.frame = make(fundsp.Frame, 1)
	}
	c.frame[0] = float32(c.value)
	return c.frame
}
func (c *constantNode) Set(s fundsp.Setting, addr fundsp.Address) {
	if s.Kind == fundsp.SettingValue {
		c.value = s.Scalar
	}
}
func (c *constantNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (c *constantNode) Route(in []fundsp.Tag) []fundsp.Tag {
	return []fundsp.Tag{fundsp.ValueTag(c.value)}
}
