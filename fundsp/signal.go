package fundsp

import (
	"math"
	"math/cmplx"
)

// TagKind discriminates the four shapes a per-channel signal-flow
// descriptor can take.
type TagKind int

const (
	// Unknown means no analytic description is available for this
	// channel (nonlinear processing touched it).
	Unknown TagKind = iota
	// KindValue means the channel is provably constant.
	KindValue
	// KindLatency means the channel carries arbitrary audio delayed
	// by a fixed number of samples at unit gain.
	KindLatency
	// KindResponse means the channel is a linear transform of a
	// specific input channel with a known transfer function and
	// causal latency.
	KindResponse
)

// TransferFunc is a z-domain transfer function H(z), evaluated on the
// unit circle (z = e^{iω}) to obtain frequency response.
type TransferFunc func(z complex128) complex128

// Tag is the per-channel analytic descriptor threaded through Route.
// Exactly one of the Kind-specific fields is meaningful at a time.
type Tag struct {
	Kind    TagKind
	Value   float64      // meaningful when Kind == KindValue
	Latency float64      // meaningful when Kind == KindLatency or KindResponse
	H       TransferFunc // meaningful when Kind == KindResponse
}

// UnknownTag is the zero-information descriptor.
func UnknownTag() Tag { return Tag{Kind: Unknown} }

// ValueTag reports a channel provably constant at x.
func ValueTag(x float64) Tag { return Tag{Kind: KindValue, Value: x} }

// LatencyTag reports a channel carrying arbitrary audio delayed by d
// samples at unit gain.
func LatencyTag(d float64) Tag { return Tag{Kind: KindLatency, Latency: d} }

// ResponseTag reports a channel that is H(z) applied to a reference
// input with causal latency d.
func ResponseTag(h TransferFunc, d float64) Tag {
	return Tag{Kind: KindResponse, H: h, Latency: d}
}

// IdentityTag is the pass-through descriptor fed to thru/branch/bus
// inputs: unit gain, zero latency.
func IdentityTag() Tag {
	return ResponseTag(func(z complex128) complex128 { return 1 }, 0)
}

// CausalLatency extracts the minimum causal latency a tag carries, if
// any is defined.
func (t Tag) CausalLatency() (float64, bool) {
	switch t.Kind {
	case KindValue:
		return 0, true
	case KindLatency, KindResponse:
		return t.Latency, true
	default:
		return 0, false
	}
}

// DelayTag implements the delay composition rule for a delay of
// samples: Value stays Value, Latency/Response gain samples of latency
// (and an extra z^-samples factor for Response).
func DelayTag(t Tag, samples float64) Tag {
	switch t.Kind {
	case KindValue:
		return t
	case KindLatency:
		return LatencyTag(t.Latency + samples)
	case KindResponse:
		h := t.H
		return ResponseTag(func(z complex128) complex128 {
			return h(z) * cmplx.Pow(z, complex(-samples, 0))
		}, t.Latency+samples)
	default:
		return UnknownTag()
	}
}

// GainTag scales a tag by a real scalar gain g.
func GainTag(t Tag, g float64) Tag {
	switch t.Kind {
	case KindValue:
		return ValueTag(g * t.Value)
	case KindLatency:
		// A bare delayed-audio tag has no defined DC gain of its own;
		// promote to a flat-gain Response so the scalar is not lost.
		return ResponseTag(func(z complex128) complex128 {
			return complex(g, 0) * cmplx.Pow(z, complex(-t.Latency, 0))
		}, t.Latency)
	case KindResponse:
		h := t.H
		return ResponseTag(func(z complex128) complex128 {
			return complex(g, 0) * h(z)
		}, t.Latency)
	default:
		return UnknownTag()
	}
}

// ComposeLinear implements the "Linear filter with known transfer
// function H(z)" rule: it composes H after whatever tag
// already describes a channel.
func ComposeLinear(t Tag, h TransferFunc, latency float64) Tag {
	switch t.Kind {
	case KindValue:
		return ValueTag(real(h(complex(1, 0))) * t.Value)
	case KindLatency:
		return ResponseTag(h, t.Latency+latency)
	case KindResponse:
		inner := t.H
		return ResponseTag(func(z complex128) complex128 {
			return h(z) * inner(z)
		}, t.Latency+latency)
	default:
		return UnknownTag()
	}
}

// SumTags implements the componentwise tag-addition rule sum and bus
// combinators route through.
func SumTags(a, b Tag) Tag {
	if a.Kind == Unknown || b.Kind == Unknown {
		return UnknownTag()
	}
	if a.Kind == KindValue && b.Kind == KindValue {
		return ValueTag(a.Value + b.Value)
	}
	// Value(0) is the additive identity for Response/Latency.
	if a.Kind == KindValue && a.Value == 0 {
		return b
	}
	if b.Kind == KindValue && b.Value == 0 {
		return a
	}
	ha, hasA := asResponse(a)
	hb, hasB := asResponse(b)
	if hasA && hasB {
		d := ha.Latency
		if hb.Latency < d {
			d = hb.Latency
		}
		fa, fb := ha.H, hb.H
		return ResponseTag(func(z complex128) complex128 {
			return fa(z) + fb(z)
		}, d)
	}
	return UnknownTag()
}

// asResponse promotes a Latency tag (semantically z^-d)
// to an explicit Response so it can be added to another Response.
func asResponse(t Tag) (Tag, bool) {
	switch t.Kind {
	case KindResponse:
		return t, true
	case KindLatency:
		d := t.Latency
		return ResponseTag(func(z complex128) complex128 {
			return cmplx.Pow(z, complex(-d, 0))
		}, d), true
	default:
		return Tag{}, false
	}
}

// Response evaluates a node's output channel's transfer function at
// frequency f (Hz) given sample rate sr, returning the complex gain
// and whether the path was analyzable at all.
func Response(n Node, channel int, f, sr float64) (complex128, bool) {
	in := make([]Tag, n.Inputs())
	for i := range in {
		in[i] = LatencyTag(0)
	}
	out := n.Route(in)
	if channel < 0 || channel >= len(out) {
		return 0, false
	}
	t := out[channel]
	if t.Kind != KindResponse {
		return 0, false
	}
	omega := 2 * math.Pi * f / sr
	z := cmplx.Exp(complex(0, omega))
	return t.H(z), true
}

// ResponseDB is Response expressed in decibels of magnitude.
func ResponseDB(n Node, channel int, f, sr float64) (float64, bool) {
	g, ok := Response(n, channel, f, sr)
	if !ok {
		return 0, false
	}
	return 20 * math.Log10(cmplx.Abs(g)), true
}
