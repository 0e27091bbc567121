package fundsp

// SettingKind enumerates the fixed catalog of parameter kinds a node
// may accept.
type SettingKind int

const (
	SettingValue SettingKind = iota
	SettingCenter
	SettingCenterQ
	SettingCenterQGain
	SettingBiquadCoeffs
	SettingPhase
	SettingAttackRelease
	SettingPan
	SettingDelay
	SettingRoughness
	SettingVariability
)

// Setting is a tagged parameter update. Only the fields relevant to
// Kind are meaningful; the rest are zero.
type Setting struct {
	Kind SettingKind

	Scalar float64 // Value, Phase ([0,1]), Pan ([-1,1]), Roughness ([0,1]), Variability ([0,1])

	Center float64 // Center, CenterQ, CenterQGain
	Q      float64 // CenterQ, CenterQGain
	Gain   float64 // CenterQGain (amplitude, not dB)

	A1, A2, B0, B1, B2 float64 // BiquadCoeffs

	Attack, Release float64 // AttackRelease (seconds)

	DelaySamples float64 // Delay
}

// ValueSetting builds a SettingValue setting.
func ValueSetting(v float64) Setting { return Setting{Kind: SettingValue, Scalar: v} }

// CenterSetting builds a SettingCenter setting.
func CenterSetting(hz float64) Setting { return Setting{Kind: SettingCenter, Center: hz} }

// CenterQSetting builds a SettingCenterQ setting.
func CenterQSetting(hz, q float64) Setting {
	return Setting{Kind: SettingCenterQ, Center: hz, Q: q}
}

// CenterQGainSetting builds a SettingCenterQGain setting.
func CenterQGainSetting(hz, q, gain float64) Setting {
	return Setting{Kind: SettingCenterQGain, Center: hz, Q: q, Gain: gain}
}

// PhaseSetting builds a SettingPhase setting.
func PhaseSetting(phase float64) Setting { return Setting{Kind: SettingPhase, Scalar: phase} }

// DelaySetting builds a SettingDelay setting.
func DelaySetting(samples float64) Setting {
	return Setting{Kind: SettingDelay, DelaySamples: samples}
}

// TokenKind discriminates the navigation tokens an Address is built
// from.
type TokenKind int

const (
	Left TokenKind = iota
	Right
	Index
	NodeRef
)

// Token is one step of an address: Left/Right pick a side of a binary
// combinator, Index(i) picks the i-th child of an n-ary builder, and
// NodeRef(id) picks a specific node inside a dynamic network.
type Token struct {
	Kind  TokenKind
	Index int
	Node  uint64 // meaningful when Kind == NodeRef; a dynamic.NodeID
}

// Address is a stack of up to four navigation tokens, consumed
// front-to-back as Set recurses into the tree. An empty Address
// applies the setting at the current node.
type Address []Token

const maxAddressDepth = 4

// NewAddress validates and builds an Address from up to four tokens.
func NewAddress(tokens ...Token) Address {
	if len(tokens) > maxAddressDepth {
		panic("fundsp: address exceeds four navigation levels")
	}
	return Address(tokens)
}

// Head returns the first token and a shortened address for the
// remaining navigation, or ok=false if addr is empty (meaning "apply
// here").
func (a Address) Head() (tok Token, rest Address, ok bool) {
	if len(a) == 0 {
		return Token{}, nil, false
	}
	return a[0], a[1:], true
}

// LeftAddr prefixes addr with a Left token.
func LeftAddr(rest ...Token) Address { return append(Address{{Kind: Left}}, rest...) }

// RightAddr prefixes addr with a Right token.
func RightAddr(rest ...Token) Address { return append(Address{{Kind: Right}}, rest...) }

// IndexAddr prefixes addr with an Index(i) token.
func IndexAddr(i int, rest ...Token) Address {
	return append(Address{{Kind: Index, Index: i}}, rest...)
}

// NodeAddr prefixes addr with a NodeRef(id) token.
func NodeAddr(id uint64, rest ...Token) Address {
	return append(Address{{Kind: NodeRef, Node: id}}, rest...)
}
