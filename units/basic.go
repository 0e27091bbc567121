package units

import (
	"math"

	"github.com/SamiPerttu/fundsp/fundsp"
)

// passNode copies its single input to its single output.
type passNode struct {
	out fundsp.Frame
}

// Pass returns the single-channel identity: one input, one output,
// output equals input.
func Pass() fundsp.Node { return &passNode{} }

func (p *passNode) Inputs() int  { return 1 }
func (p *passNode) Outputs() int { return 1 }
func (p *passNode) Reset()       {}
func (p *passNode) SetSampleRate(sr float64) {}
func (p *passNode) Allocate() {
	if p.out == nil {
		p.out = make(fundsp.Frame, 1)
	}
}
func (p *passNode) Process(input, output *fundsp.Buffer, n int) {
	output.CopyChannelFrom(0, input, 0, n)
}
func (p *passNode) Tick(input fundsp.Frame) fundsp.Frame {
	if p.out == nil {
		p.out = make(fundsp.Frame, 1)
	}
	p.out[0] = input[0]
	return p.out
}
func (p *passNode) Set(s fundsp.Setting, addr fundsp.Address)  {}
func (p *passNode) Ping(commit bool, hashIn uint64) uint64     { return hashIn }
func (p *passNode) Route(in []fundsp.Tag) []fundsp.Tag {
	return []fundsp.Tag{in[0]}
}

// sinkNode absorbs its single input and produces nothing.
type sinkNode struct{}

// Sink returns a one-input, zero-output node that absorbs its input.
// Thru(Sink()) re-exposes the absorbed channel, which makes
// !sink() equivalent to pass().
func Sink() fundsp.Node { return sinkNode{} }

func (sinkNode) Inputs() int  { return 1 }
func (sinkNode) Outputs() int { return 0 }
func (sinkNode) Reset()       {}
func (sinkNode) SetSampleRate(sr float64) {}
func (sinkNode) Allocate()    {}
func (sinkNode) Process(input, output *fundsp.Buffer, n int) {}
func (sinkNode) Tick(input fundsp.Frame) fundsp.Frame        { return nil }
func (sinkNode) Set(s fundsp.Setting, addr fundsp.Address)   {}
func (sinkNode) Ping(commit bool, hashIn uint64) uint64      { return hashIn }
func (sinkNode) Route(in []fundsp.Tag) []fundsp.Tag          { return nil }

// zeroNode emits constant silence.
type zeroNode struct {
	out fundsp.Frame
}

// Zero returns a zero-input generator emitting constant zero on its
// single output.
func Zero() fundsp.Node { return &zeroNode{} }

func (z *zeroNode) Inputs() int  { return 0 }
func (z *zeroNode) Outputs() int { return 1 }
func (z *zeroNode) Reset()       {}
func (z *zeroNode) SetSampleRate(sr float64) {}
func (z *zeroNode) Allocate() {
	if z.out == nil {
		z.out = make(fundsp.Frame, 1)
	}
}
func (z *zeroNode) Process(input, output *fundsp.Buffer, n int) {
	c := output.Channel(0)
	for i := 0; i < n; i++ {
		c[i] = 0
	}
}
func (z *zeroNode) Tick(input fundsp.Frame) fundsp.Frame {
	if z.out == nil {
		z.out = make(fundsp.Frame, 1)
	}
	z.out[0] = 0
	return z.out
}
func (z *zeroNode) Set(s fundsp.Setting, addr fundsp.Address) {}
func (z *zeroNode) Ping(commit bool, hashIn uint64) uint64    { return hashIn }
func (z *zeroNode) Route(in []fundsp.Tag) []fundsp.Tag {
	return []fundsp.Tag{fundsp.ValueTag(0)}
}

// Tick returns a single-sample delay: one input, one output, the
// smallest delay the graph can express.
func Tick() fundsp.Node { return Delay(1) }

// panNode spreads one input across two outputs with equal-power
// weights, pan in [-1, 1] where -1 is hard left and 1 hard right.
type panNode struct {
	pan  float64
	l, r float32
	out  fundsp.Frame
}

// Pan returns a one-input, two-output equal-power panner. It accepts
// the pan setting.
func Pan(pan float64) fundsp.Node {
	p := &panNode{}
	p.setPan(pan)
	return p
}

func (p *panNode) setPan(pan float64) {
	if pan < -1 {
		pan = -1
	} else if pan > 1 {
		pan = 1
	}
	p.pan = pan
	angle := (pan + 1) * math.Pi / 4
	p.l = float32(math.Cos(angle))
	p.r = float32(math.Sin(angle))
}

func (p *panNode) Inputs() int  { return 1 }
func (p *panNode) Outputs() int { return 2 }
func (p *panNode) Reset()       {}
func (p *panNode) SetSampleRate(sr float64) {}
func (p *panNode) Allocate() {
	if p.out == nil {
		p.out = make(fundsp.Frame, 2)
	}
}
func (p *panNode) Process(input, output *fundsp.Buffer, n int) {
	in := input.Channel(0)
	l := output.Channel(0)
	r := output.Channel(1)
	for i := 0; i < n; i++ {
		l[i] = in[i] * p.l
		r[i] = in[i] * p.r
	}
}
func (p *panNode) Tick(input fundsp.Frame) fundsp.Frame {
	if p.out == nil {
		p.out = make(fundsp.Frame, 2)
	}
	p.out[0] = input[0] * p.l
	p.out[1] = input[0] * p.r
	return p.out
}
func (p *panNode) Set(s fundsp.Setting, addr fundsp.Address) {
	if s.Kind == fundsp.SettingPan {
		p.setPan(s.Scalar)
	}
}
func (p *panNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (p *panNode) Route(in []fundsp.Tag) []fundsp.Tag {
	return []fundsp.Tag{
		fundsp.GainTag(in[0], float64(p.l)),
		fundsp.GainTag(in[0], float64(p.r)),
	}
}

// followerNode smooths its input asymmetrically: one time constant
// while the signal rises, another while it falls.
type followerNode struct {
	attack, release  float64 // seconds
	sr               float64
	upCoeff, dnCoeff float32
	state            float32
	out              fundsp.Frame
	in               fundsp.Frame
}

// Follower returns a one-input, one-output asymmetric follower with
// the given attack and release time constants in seconds. It accepts
// the attack-release setting.
func Follower(attack, release float64) fundsp.Node {
	f := &followerNode{attack: attack, release: release, sr: fundsp.DefaultSampleRate}
	f.recompute()
	return f
}

func (f *followerNode) recompute() {
	f.upCoeff = smoothingCoeff(f.attack, f.sr)
	f.dnCoeff = smoothingCoeff(f.release, f.sr)
}

// smoothingCoeff maps a time constant in seconds to a one-pole
// smoothing coefficient at the given sample rate. A non-positive time
// means no smoothing at all.
func smoothingCoeff(seconds, sr float64) float32 {
	if seconds <= 0 {
		return 0
	}
	return float32(math.Exp(-1 / (seconds * sr)))
}

func (f *followerNode) Inputs() int  { return 1 }
func (f *followerNode) Outputs() int { return 1 }
func (f *followerNode) Reset()       { f.state = 0 }
func (f *followerNode) SetSampleRate(sr float64) {
	f.sr = sr
	f.recompute()
}
func (f *followerNode) Allocate() {
	if f.out == nil {
		f.out = make(fundsp.Frame, 1)
	}
	if f.in == nil {
		f.in = make(fundsp.Frame, 1)
	}
}
func (f *followerNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		f.in = input.FrameAt(i, f.in)
		output.SetFrameAt(i, f.Tick(f.in))
	}
}
func (f *followerNode) Tick(input fundsp.Frame) fundsp.Frame {
	x := input[0]
	coeff := f.upCoeff
	if x < f.state {
		coeff = f.dnCoeff
	}
	f.state = coeff*f.state + (1-coeff)*x
	if f.out == nil {
		f.out = make(fundsp.Frame, 1)
	}
	f.out[0] = f.state
	return f.out
}
func (f *followerNode) Set(s fundsp.Setting, addr fundsp.Address) {
	if s.Kind == fundsp.SettingAttackRelease {
		f.attack, f.release = s.Attack, s.Release
		f.recompute()
	}
}
func (f *followerNode) Ping(commit bool, hashIn uint64) uint64 { return hashIn }
func (f *followerNode) Route(in []fundsp.Tag) []fundsp.Tag {
	// The smoothing coefficient switches on signal direction, so the
	// follower is not a fixed linear transform of its input.
	return []fundsp.Tag{fundsp.UnknownTag()}
}
