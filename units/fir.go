package units

import (
	"math/cmplx"

	"github.com/SamiPerttu/fundsp/fundsp"
)

type firNode struct {
	taps  []float32
	line  []float32 // ring buffer of the last len(taps) inputs
	pos   int
	out   fundsp.Frame
	in    fundsp.Frame
}

// FIR returns a direct-form finite impulse response filter: one
// input, one output. len(taps) must be at least 1.
func FIR(taps []float64) fundsp.Node {
	if len(taps) == 0 {
		panic("units: FIR requires at least one tap")
	}
	t := make([]float32, len(taps))
	for i, v := range taps {
		t[i] = float32(v)
	}
	return &firNode{taps: t}
}

func (f *firNode) Inputs() int  { return 1 }
func (f *firNode) Outputs() int { return 1 }
func (f *firNode) Reset() {
	for i := range f.line {
		f.line[i] = 0
	}
	f.pos = 0
}
func (f *firNode) SetSampleRate(sr float64) {}
func (f *firNode) Allocate() {
	if len(f.line) != len(f.taps) {
		f.line = make([]float32, len(f.taps))
	}
	if f.out == nil {
		f.out = make(fundsp.Frame, 1)
	}
	if f.in == nil {
		f.in = make(fundsp.Frame, 1)
	}
}
func (f *firNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		f.in = input.FrameAt(i, f.in)
		output.SetFrameAt(i, f.Tick(f.in))
	}
}
func (f *firNode) Tick(input fundsp.Frame) fundsp.Frame {
	f.line[f.pos] = input[0]
	var acc float32
	n := len(f.taps)
	// f.line[pos] is the newest sample; taps[0] is applied to the
	// newest sample, taps[k] to the sample k steps in the past.
	for k := 0; k < n; k++ {
		idx := f.pos - k
		if idx < 0 {
			idx += n
		}
		acc += f.taps[k] * f.line[idx]
	}
	f.pos++
	if f.pos == n {
		f.pos = 0
	}
	if f.out == nil {
		f.out = make(fundsp.Frame, 1)
	}
	f.out[0] = acc
	return f.out
}
func (f *firNode) Set(setting fundsp.Setting, addr fundsp.Address) {}
func (f *firNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (f *firNode) Route(in []fundsp.Tag) []fundsp.Tag {
	taps := f.taps
	h := func(z complex128) complex128 {
		var acc complex128
		for k, c := range taps {
			acc += complex(float64(c), 0) * cmplx.Pow(z, complex(-float64(k), 0))
		}
		return acc
	}
	latency := float64(len(taps) - 1)
	return []fundsp.Tag{fundsp.ComposeLinear(in[0], h, latency)}
}
