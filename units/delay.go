package units

import "github.com/SamiPerttu/fundsp/fundsp"

type delayNode struct {
	samples int
	line    []float32
	pos     int
	out     fundsp.Frame
	in      fundsp.Frame
}

// Delay returns an integer-sample delay line: one input, one output.
// samples must be >= 0.
func Delay(samples int) fundsp.Node {
	if samples < 0 {
		panic("units: Delay requires a non-negative sample count")
	}
	return &delayNode{samples: samples}
}

func (d *delayNode) Inputs() int  { return 1 }
func (d *delayNode) Outputs() int { return 1 }
func (d *delayNode) Reset() {
	for i := range d.line {
		d.line[i] = 0
	}
	d.pos = 0
}
func (d *delayNode) SetSampleRate(sr float64) {}
func (d *delayNode) Allocate() {
	if d.samples == 0 {
		d.line = nil
	} else if len(d.line) != d.samples {
		d.line = make([]float32, d.samples)
	}
	if d.out == nil {
		d.out = make(fundsp.Frame, 1)
	}
	if d.in == nil {
		d.in = make(fundsp.Frame, 1)
	}
}
func (d *delayNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		d.in = input.FrameAt(i, d.in)
		output.SetFrameAt(i, d.Tick(d.in))
	}
}
func (d *delayNode) Tick(input fundsp.Frame) fundsp.Frame {
	if d.out == nil {
		d.out = make(fundsp.Frame, 1)
	}
	if d.samples == 0 {
		d.out[0] = input[0]
		return d.out
	}
	d.out[0] = d.line[d.pos]
	d.line[d.pos] = input[0]
	d.pos++
	if d.pos == len(d.line) {
		d.pos = 0
	}
	return d.out
}
func (d *delayNode) Set(setting fundsp.Setting, addr fundsp.Address) {}
func (d *delayNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (d *delayNode) Route(in []fundsp.Tag) []fundsp.Tag {
	return []fundsp.Tag{fundsp.DelayTag(in[0], float64(d.samples))}
}
