package wave

import "github.com/SamiPerttu/fundsp/fundsp"

// playerNode is a zero-input generator that plays back an in-memory
// Wave, optionally looping, emitting silence past the end otherwise.
type playerNode struct {
	wave *Wave
	pos  int
	loop bool
	out  fundsp.Frame
}

// Player returns a generator node with len(w.Channels) outputs that
// plays w back from the start. If loop is false the node emits
// silence once the wave is exhausted; if true it wraps back to frame
// zero.
func Player(w *Wave, loop bool) fundsp.Node {
	return &playerNode{wave: w, loop: loop}
}

func (p *playerNode) Inputs() int  { return 0 }
func (p *playerNode) Outputs() int { return len(p.wave.Channels) }
func (p *playerNode) Reset()       { p.pos = 0 }
func (p *playerNode) SetSampleRate(sr float64) {}
func (p *playerNode) Allocate() {
	if p.out == nil {
		p.out = make(fundsp.Frame, p.Outputs())
	}
}
func (p *playerNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		output.SetFrameAt(i, p.Tick(nil))
	}
}
func (p *playerNode) Tick(input fundsp.Frame) fundsp.Frame {
	if p.out == nil {
		p.out = make(fundsp.Frame, p.Outputs())
	}
	frames := p.wave.Frames()
	if p.pos >= frames {
		if !p.loop || frames == 0 {
			for c := range p.out {
				p.out[c] = 0
			}
			return p.out
		}
		p.pos = 0
	}
	for c := range p.wave.Channels {
		p.out[c] = p.wave.Channels[c][p.pos]
	}
	p.pos++
	return p.out
}
func (p *playerNode) Set(setting fundsp.Setting, addr fundsp.Address) {}
func (p *playerNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (p *playerNode) Route(in []fundsp.Tag) []fundsp.Tag {
	res := make([]fundsp.Tag, p.Outputs())
	for i := range res {
		res[i] = fundsp.UnknownTag()
	}
	return res
}
