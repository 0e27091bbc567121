package units

import (
	"math"

	"github.com/SamiPerttu/fundsp/fundsp"
)

// biquadNode is a direct-form-I biquad: one input, one output, with
// coefficients recomputed from (cutoff, q) whenever the sample rate
// changes or a SettingCenterQ setting arrives.
type biquadNode struct {
	cutoff, q        float64
	sr               float64
	b0, b1, b2       float64
	a1, a2           float64
	x1, x2, y1, y2   float32
	out              fundsp.Frame
	in               fundsp.Frame
}

// ButterworthLowpass returns an RBJ-cookbook two-pole lowpass biquad
// (direct form I) with the given cutoff frequency (Hz) and Q.
func ButterworthLowpass(cutoffHz, q float64) fundsp.Node {
	n := &biquadNode{cutoff: cutoffHz, q: q, sr: fundsp.DefaultSampleRate}
	n.recompute()
	return n
}

func (n *biquadNode) recompute() {
	w0 := 2 * math.Pi * n.cutoff / n.sr
	alpha := math.Sin(w0) / (2 * n.q)
	cosw0 := math.Cos(w0)

	b0 := (1 - cosw0) / 2
	b1 := 1 - cosw0
	b2 := (1 - cosw0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw0
	a2 := 1 - alpha

	n.b0, n.b1, n.b2 = b0/a0, b1/a0, b2/a0
	n.a1, n.a2 = a1/a0, a2/a0
}

func (n *biquadNode) Inputs() int  { return 1 }
func (n *biquadNode) Outputs() int { return 1 }
func (n *biquadNode) Reset() {
	n.x1, n.x2, n.y1, n.y2 = 0, 0, 0, 0
}
func (n *biquadNode) SetSampleRate(sr float64) {
	n.sr = sr
	n.recompute()
}
func (n *biquadNode) Allocate() {
	if n.out == nil {
		n.out = make(fundsp.Frame, 1)
	}
	if n.in == nil {
		n.in = make(fundsp.Frame, 1)
	}
}
func (n *biquadNode) Process(input, output *fundsp.Buffer, frames int) {
	for i := 0; i < frames; i++ {
		n.in = input.FrameAt(i, n.in)
		output.SetFrameAt(i, n.Tick(n.in))
	}
}
func (n *biquadNode) Tick(input fundsp.Frame) fundsp.Frame {
	x0 := input[0]
	y0 := float32(n.b0)*x0 + float32(n.b1)*n.x1 + float32(n.b2)*n.x2 -
		float32(n.a1)*n.y1 - float32(n.a2)*n.y2
	n.x2, n.x1 = n.x1, x0
	n.y2, n.y1 = n.y1, y0
	if n.out == nil {
		n.out = make(fundsp.Frame, 1)
	}
	n.out[0] = y0
	return n.out
}
func (n *biquadNode) Set(setting fundsp.Setting, addr fundsp.Address) {
	switch setting.Kind {
	case fundsp.SettingCenter:
		n.cutoff = setting.Center
		n.recompute()
	case fundsp.SettingCenterQ:
		n.cutoff, n.q = setting.Center, setting.Q
		n.recompute()
	}
}
func (n *biquadNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (n *biquadNode) Route(in []fundsp.Tag) []fundsp.Tag {
	b0, b1, b2, a1, a2 := n.b0, n.b1, n.b2, n.a1, n.a2
	h := func(z complex128) complex128 {
		zi := 1 / z
		num := complex(b0, 0) + complex(b1, 0)*zi + complex(b2, 0)*zi*zi
		den := complex(1, 0) + complex(a1, 0)*zi + complex(a2, 0)*zi*zi
		return num / den
	}
	// The recursion reacts within the same sample; all of the filter's
	// delay is phase already carried by H.
	return []fundsp.Tag{fundsp.ComposeLinear(in[0], h, 0)}
}
