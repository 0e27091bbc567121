package units

import (
	"math"

	"github.com/SamiPerttu/fundsp/fundsp"
)

type sineNode struct {
	sr         float64
	phase      float64 // in [0, 1)
	phase0     float64 // phase Reset returns to
	hasPhase   bool    // true once a phase setting or location hash has seeded phase
	out        fundsp.Frame
	in         fundsp.Frame
}

// Sine returns a one-input (frequency in Hz), one-output oscillator.
// Phase advances by f/sr per sample and wraps at 1.0; the initial
// phase is pseudorandomly seeded from the node's location hash at
// commit time unless a SettingPhase setting overrides it first.
func Sine() fundsp.Node {
	return &sineNode{sr: fundsp.DefaultSampleRate}
}

func (s *sineNode) Inputs() int  { return 1 }
func (s *sineNode) Outputs() int { return 1 }
func (s *sineNode) Reset() {
	s.phase = s.phase0
}
func (s *sineNode) SetSampleRate(sr float64) { s.sr = sr }
func (s *sineNode) Allocate() {
	if s.out == nil {
		s.out = make(fundsp.Frame, 1)
	}
	if s.in == nil {
		s.in = make(fundsp.Frame, 1)
	}
}
func (s *sineNode) Process(input, output *fundsp.Buffer, n int) {
	for i := 0; i < n; i++ {
		s.in = input.FrameAt(i, s.in)
		output.SetFrameAt(i, s.Tick(s.in))
	}
}
func (s *sineNode) Tick(input fundsp.Frame) fundsp.Frame {
	f := float64(input[0])
	if s.out == nil {
		s.out = make(fundsp.Frame, 1)
	}
	s.out[0] = float32(math.Sin(2 * math.Pi * s.phase))
	s.phase += f / s.sr
	s.phase -= math.Floor(s.phase)
	return s.out
}
func (s *sineNode) Set(setting fundsp.Setting, addr fundsp.Address) {
	if setting.Kind == fundsp.SettingPhase {
		s.phase = setting.Scalar - math.Floor(setting.Scalar)
		s.phase0 = s.phase
		s.hasPhase = true
	}
}
func (s *sineNode) Ping(commit bool, hashIn uint64) uint64 {
	if commit && !s.hasPhase {
		s.phase = float64(hashIn>>11) / float64(1<<53)
		s.phase0 = s.phase
		s.hasPhase = true
	}
	return hashIn
}
func (s *sineNode) Route(in []fundsp.Tag) []fundsp.Tag {
	// A sine oscillator's output is a nonlinear function of its
	// frequency input's history, not a fixed linear transform of it.
	return []fundsp.Tag{fundsp.UnknownTag()}
}
