package fundsp

import "fmt"

// allocateFrame grows frameIn to at least n capacity (once) and
// reslices it to length n in place; part of the baseNode contract so
// combinators never allocate past Allocate().
func (b *baseNode) allocateFrame(n int) {
	if cap(b.frameIn) < n {
		b.frameIn = make(Frame, n)
	}
	b.frameIn = b.frameIn[:n]
}

// tickBuffer is the shared helper every node's Process implementation
// delegates to: Process is defined, once, as n sequential Tick calls.
// This is what makes the block-split and tick/process-equivalence
// contract invariants hold by construction rather than by
// careful bookkeeping in every leaf and combinator.
func tickBuffer(self Node, scratch *baseNode, input, output *Buffer, n int) {
	in := scratch.frameIn
	for i := 0; i < n; i++ {
		in = input.FrameAt(i, in)
		out := self.Tick(in)
		output.SetFrameAt(i, out)
	}
	scratch.frameIn = in
}

func requireEqual(op string, label string, a, b int) {
	if a != b {
		panic(fmt.Sprintf("fundsp: %s requires matching %s (got %d and %d)", op, label, a, b))
	}
}

// ---------------------------------------------------------------
// negate: -A
// ---------------------------------------------------------------

type negateNode struct {
	baseNode
	a Node
}

// Negate returns -A: every output of A with its sign inverted.
func Negate(a Node) Node { return &negateNode{baseNode: newBaseNode(), a: a} }

func (n *negateNode) Inputs() int  { return n.a.Inputs() }
func (n *negateNode) Outputs() int { return n.a.Outputs() }
func (n *negateNode) Reset()       { n.a.Reset() }
func (n *negateNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
}
func (n *negateNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.a.Allocate()
	n.baseNode.Allocate()
}
func (n *negateNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *negateNode) Tick(input Frame) Frame {
	out := n.a.Tick(input)
	for i := range out {
		out[i] = -out[i]
	}
	return out
}
func (n *negateNode) Set(s Setting, addr Address) {
	if _, rest, ok := addr.Head(); ok {
		n.a.Set(s, rest)
	} else {
		n.a.Set(s, addr)
	}
}
func (n *negateNode) Ping(commit bool, hashIn uint64) uint64 {
	h := n.a.Ping(commit, mixChild(hashIn, kindNegate, 0))
	r := combineHash(kindNegate, h)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *negateNode) Route(in []Tag) []Tag {
	out := n.a.Route(in)
	res := make([]Tag, len(out))
	for i, t := range out {
		res[i] = GainTag(t, -1)
	}
	return res
}

// ---------------------------------------------------------------
// thru: !A
// ---------------------------------------------------------------

type thruNode struct {
	baseNode
	a   Node
	out Frame
}

// Thru returns !A: the first min(I(A), O(A)) channels of A's output,
// with any remaining input channels beyond O(A) passed through
// unchanged, and any extra A outputs beyond I(A) discarded.
func Thru(a Node) Node { return &thruNode{baseNode: newBaseNode(), a: a} }

func (n *thruNode) Inputs() int  { return n.a.Inputs() }
func (n *thruNode) Outputs() int { return n.a.Inputs() }
func (n *thruNode) Reset()       { n.a.Reset() }
func (n *thruNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
}
func (n *thruNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.out = make(Frame, n.Inputs())
	n.a.Allocate()
	n.baseNode.Allocate()
}
func (n *thruNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *thruNode) Tick(input Frame) Frame {
	childOut := n.a.Tick(input)
	if cap(n.out) < len(input) {
		n.out = make(Frame, len(input))
	}
	n.out = n.out[:len(input)]
	shared := len(childOut)
	if shared > len(input) {
		shared = len(input)
	}
	copy(n.out[:shared], childOut[:shared])
	for k := shared; k < len(input); k++ {
		n.out[k] = input[k]
	}
	return n.out
}
func (n *thruNode) Set(s Setting, addr Address) { n.a.Set(s, addr) }
func (n *thruNode) Ping(commit bool, hashIn uint64) uint64 {
	h := n.a.Ping(commit, mixChild(hashIn, kindThru, 0))
	r := combineHash(kindThru, h)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *thruNode) Route(in []Tag) []Tag {
	childOut := n.a.Route(in)
	res := make([]Tag, len(in))
	shared := len(childOut)
	if shared > len(in) {
		shared = len(in)
	}
	copy(res[:shared], childOut[:shared])
	for k := shared; k < len(in); k++ {
		res[k] = in[k]
	}
	return res
}

// ---------------------------------------------------------------
// product/sum/diff: A*B, A+B, A-B (node-node, arities must match)
// ---------------------------------------------------------------

type arithOp int

const (
	opProduct arithOp = iota
	opSum
	opDiff
)

type arithNode struct {
	baseNode
	a, b Node
	op   arithOp
	out  Frame
}

func newArith(op arithOp, kind combKind, a, b Node) *arithNode {
	requireEqual(arithOpName(op), "output arity", a.Outputs(), b.Outputs())
	return &arithNode{baseNode: newBaseNode(), a: a, b: b, op: op}
}

func arithOpName(op arithOp) string {
	switch op {
	case opProduct:
		return "product"
	case opSum:
		return "sum"
	default:
		return "diff"
	}
}

func (n *arithNode) kind() combKind {
	switch n.op {
	case opProduct:
		return kindProduct
	case opSum:
		return kindSum
	default:
		return kindDiff
	}
}

// Mul returns A*B: channelwise product of two nodes with matching
// output arity; inputs are I(A)+I(B).
func Mul(a, b Node) Node { return newArith(opProduct, kindProduct, a, b) }

// Add returns A+B: channelwise sum of two nodes with matching output
// arity; inputs are I(A)+I(B).
func Add(a, b Node) Node { return newArith(opSum, kindSum, a, b) }

// Sub returns A-B: channelwise difference of two nodes with matching
// output arity; inputs are I(A)+I(B).
func Sub(a, b Node) Node { return newArith(opDiff, kindDiff, a, b) }

func (n *arithNode) Inputs() int  { return n.a.Inputs() + n.b.Inputs() }
func (n *arithNode) Outputs() int { return n.a.Outputs() }
func (n *arithNode) Reset()       { n.a.Reset(); n.b.Reset() }
func (n *arithNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
	n.b.SetSampleRate(sr)
}
func (n *arithNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.out = make(Frame, n.Outputs())
	n.a.Allocate()
	n.b.Allocate()
	n.baseNode.Allocate()
}
func (n *arithNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *arithNode) Tick(input Frame) Frame {
	split := n.a.Inputs()
	outA := n.a.Tick(input[:split])
	outB := n.b.Tick(input[split:])
	if cap(n.out) < len(outA) {
		n.out = make(Frame, len(outA))
	}
	n.out = n.out[:len(outA)]
	for i := range n.out {
		switch n.op {
		case opProduct:
			n.out[i] = outA[i] * outB[i]
		case opSum:
			n.out[i] = outA[i] + outB[i]
		default:
			n.out[i] = outA[i] - outB[i]
		}
	}
	return n.out
}
func (n *arithNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		return
	}
	switch tok.Kind {
	case Left:
		n.a.Set(s, rest)
	case Right:
		n.b.Set(s, rest)
	}
}
func (n *arithNode) Ping(commit bool, hashIn uint64) uint64 {
	k := n.kind()
	ha := n.a.Ping(commit, mixChild(hashIn, k, 0))
	hb := n.b.Ping(commit, mixChild(hashIn, k, 1))
	r := combineHash(k, ha, hb)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *arithNode) Route(in []Tag) []Tag {
	split := n.a.Inputs()
	ra := n.a.Route(in[:split])
	rb := n.b.Route(in[split:])
	res := make([]Tag, len(ra))
	for i := range res {
		switch n.op {
		case opSum:
			res[i] = SumTags(ra[i], rb[i])
		case opDiff:
			res[i] = SumTags(ra[i], GainTag(rb[i], -1))
		default:
			res[i] = productTag(ra[i], rb[i])
		}
	}
	return res
}

// productTag has no general linear description (a product of two
// signals is nonlinear except when one side is a provable constant),
// so Route degrades gracefully to Value/Unknown composition.
func productTag(a, b Tag) Tag {
	if a.Kind == KindValue && b.Kind == KindValue {
		return ValueTag(a.Value * b.Value)
	}
	if a.Kind == KindValue {
		return GainTag(b, a.Value)
	}
	if b.Kind == KindValue {
		return GainTag(a, b.Value)
	}
	return UnknownTag()
}

// ---------------------------------------------------------------
// scalar broadcast arithmetic: c*A, A*c, c+A, A+c, c-A, A-c
// ---------------------------------------------------------------

type scalarNode struct {
	baseNode
	a      Node
	c      float64
	op     arithOp
	flip   bool // true when the scalar is the left operand of a non-commutative op (c - A)
	kind   combKind
}

func newScalarArith(op arithOp, a Node, c float64, flip bool) *scalarNode {
	k := kindProduct
	switch op {
	case opSum:
		k = kindSum
	case opDiff:
		k = kindDiff
	}
	return &scalarNode{baseNode: newBaseNode(), a: a, c: c, op: op, flip: flip, kind: k}
}

// MulScalar returns A*c, broadcasting c across every output of A. If
// O(A) == 0 this is a no-op.
func MulScalar(a Node, c float64) Node { return newScalarArith(opProduct, a, c, false) }

// ScalarMul returns c*A (identical to MulScalar; kept for the c-op-A
// reading order).
func ScalarMul(c float64, a Node) Node { return MulScalar(a, c) }

// AddScalar returns A+c, broadcasting c across every output of A.
func AddScalar(a Node, c float64) Node { return newScalarArith(opSum, a, c, false) }

// ScalarAdd returns c+A (identical to AddScalar).
func ScalarAdd(c float64, a Node) Node { return AddScalar(a, c) }

// SubScalar returns A-c, broadcasting c across every output of A.
func SubScalar(a Node, c float64) Node { return newScalarArith(opDiff, a, c, false) }

// ScalarSub returns c-A, broadcasting c across every output of A.
func ScalarSub(c float64, a Node) Node { return newScalarArith(opDiff, a, c, true) }

func (n *scalarNode) Inputs() int  { return n.a.Inputs() }
func (n *scalarNode) Outputs() int { return n.a.Outputs() }
func (n *scalarNode) Reset()       { n.a.Reset() }
func (n *scalarNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
}
func (n *scalarNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.a.Allocate()
	n.baseNode.Allocate()
}
func (n *scalarNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *scalarNode) Tick(input Frame) Frame {
	out := n.a.Tick(input)
	c := float32(n.c)
	for i := range out {
		switch n.op {
		case opProduct:
			out[i] *= c
		case opSum:
			out[i] += c
		default:
			if n.flip {
				out[i] = c - out[i]
			} else {
				out[i] -= c
			}
		}
	}
	return out
}
func (n *scalarNode) Set(s Setting, addr Address) { n.a.Set(s, addr) }
func (n *scalarNode) Ping(commit bool, hashIn uint64) uint64 {
	h := n.a.Ping(commit, mixChild(hashIn, n.kind, 0))
	r := combineHash(n.kind, h)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *scalarNode) Route(in []Tag) []Tag {
	out := n.a.Route(in)
	res := make([]Tag, len(out))
	for i, t := range out {
		switch n.op {
		case opProduct:
			res[i] = GainTag(t, n.c)
		case opSum:
			res[i] = SumTags(t, ValueTag(n.c))
		default:
			if n.flip {
				res[i] = SumTags(ValueTag(n.c), GainTag(t, -1))
			} else {
				res[i] = SumTags(t, ValueTag(-n.c))
			}
		}
	}
	return res
}

// ---------------------------------------------------------------
// pipe: A >> B
// ---------------------------------------------------------------

type pipeNode struct {
	baseNode
	a, b Node
}

// Pipe returns A >> B: A's outputs feed B's inputs directly, so
// O(A) must equal I(B).
func Pipe(a, b Node) Node {
	requireEqual("pipe", "arity", a.Outputs(), b.Inputs())
	return &pipeNode{baseNode: newBaseNode(), a: a, b: b}
}

func (n *pipeNode) Inputs() int  { return n.a.Inputs() }
func (n *pipeNode) Outputs() int { return n.b.Outputs() }
func (n *pipeNode) Reset()       { n.a.Reset(); n.b.Reset() }
func (n *pipeNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
	n.b.SetSampleRate(sr)
}
func (n *pipeNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.a.Allocate()
	n.b.Allocate()
	n.baseNode.Allocate()
}
func (n *pipeNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *pipeNode) Tick(input Frame) Frame {
	return n.b.Tick(n.a.Tick(input))
}
func (n *pipeNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		return
	}
	switch tok.Kind {
	case Left:
		n.a.Set(s, rest)
	case Right:
		n.b.Set(s, rest)
	}
}
func (n *pipeNode) Ping(commit bool, hashIn uint64) uint64 {
	ha := n.a.Ping(commit, mixChild(hashIn, kindPipe, 0))
	hb := n.b.Ping(commit, mixChild(hashIn, kindPipe, 1))
	r := combineHash(kindPipe, ha, hb)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *pipeNode) Route(in []Tag) []Tag {
	return n.b.Route(n.a.Route(in))
}

// ---------------------------------------------------------------
// bus: A & B
// ---------------------------------------------------------------

type busNode struct {
	baseNode
	a, b Node
	out  Frame
}

// Bus returns A & B: both receive the same inputs, outputs are
// summed. I(A) must equal I(B) and O(A) must equal O(B).
func Bus(a, b Node) Node {
	requireEqual("bus", "input arity", a.Inputs(), b.Inputs())
	requireEqual("bus", "output arity", a.Outputs(), b.Outputs())
	return &busNode{baseNode: newBaseNode(), a: a, b: b}
}

func (n *busNode) Inputs() int  { return n.a.Inputs() }
func (n *busNode) Outputs() int { return n.a.Outputs() }
func (n *busNode) Reset()       { n.a.Reset(); n.b.Reset() }
func (n *busNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
	n.b.SetSampleRate(sr)
}
func (n *busNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.out = make(Frame, n.Outputs())
	n.a.Allocate()
	n.b.Allocate()
	n.baseNode.Allocate()
}
func (n *busNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *busNode) Tick(input Frame) Frame {
	outA := n.a.Tick(input)
	outB := n.b.Tick(input)
	if cap(n.out) < len(outA) {
		n.out = make(Frame, len(outA))
	}
	n.out = n.out[:len(outA)]
	for i := range n.out {
		n.out[i] = outA[i] + outB[i]
	}
	return n.out
}
func (n *busNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		n.a.Set(s, addr)
		n.b.Set(s, addr)
		return
	}
	switch tok.Kind {
	case Left:
		n.a.Set(s, rest)
	case Right:
		n.b.Set(s, rest)
	}
}
func (n *busNode) Ping(commit bool, hashIn uint64) uint64 {
	ha := n.a.Ping(commit, mixChild(hashIn, kindBus, 0))
	hb := n.b.Ping(commit, mixChild(hashIn, kindBus, 1))
	r := combineHash(kindBus, ha, hb)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *busNode) Route(in []Tag) []Tag {
	ra := n.a.Route(in)
	rb := n.b.Route(in)
	res := make([]Tag, len(ra))
	for i := range res {
		res[i] = SumTags(ra[i], rb[i])
	}
	return res
}

// ---------------------------------------------------------------
// branch: A ^ B
// ---------------------------------------------------------------

type branchNode struct {
	baseNode
	a, b Node
	out  Frame
}

// Branch returns A ^ B: both receive the same inputs, outputs are
// concatenated (A's then B's). I(A) must equal I(B).
func Branch(a, b Node) Node {
	requireEqual("branch", "input arity", a.Inputs(), b.Inputs())
	return &branchNode{baseNode: newBaseNode(), a: a, b: b}
}

func (n *branchNode) Inputs() int  { return n.a.Inputs() }
func (n *branchNode) Outputs() int { return n.a.Outputs() + n.b.Outputs() }
func (n *branchNode) Reset()       { n.a.Reset(); n.b.Reset() }
func (n *branchNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
	n.b.SetSampleRate(sr)
}
func (n *branchNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.out = make(Frame, n.Outputs())
	n.a.Allocate()
	n.b.Allocate()
	n.baseNode.Allocate()
}
func (n *branchNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *branchNode) Tick(input Frame) Frame {
	outA := n.a.Tick(input)
	outB := n.b.Tick(input)
	if cap(n.out) < len(outA)+len(outB) {
		n.out = make(Frame, len(outA)+len(outB))
	}
	n.out = n.out[:len(outA)+len(outB)]
	copy(n.out[:len(outA)], outA)
	copy(n.out[len(outA):], outB)
	return n.out
}
func (n *branchNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		n.a.Set(s, addr)
		n.b.Set(s, addr)
		return
	}
	switch tok.Kind {
	case Left:
		n.a.Set(s, rest)
	case Right:
		n.b.Set(s, rest)
	}
}
func (n *branchNode) Ping(commit bool, hashIn uint64) uint64 {
	ha := n.a.Ping(commit, mixChild(hashIn, kindBranch, 0))
	hb := n.b.Ping(commit, mixChild(hashIn, kindBranch, 1))
	r := combineHash(kindBranch, ha, hb)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *branchNode) Route(in []Tag) []Tag {
	ra := n.a.Route(in)
	rb := n.b.Route(in)
	res := make([]Tag, 0, len(ra)+len(rb))
	res = append(res, ra...)
	res = append(res, rb...)
	return res
}

// ---------------------------------------------------------------
// stack: A ‖ B
// ---------------------------------------------------------------

type stackNode struct {
	baseNode
	a, b Node
	out  Frame
}

// Stack returns A ‖ B: disjoint inputs and outputs running in
// parallel, with no arity constraint between A and B.
func Stack(a, b Node) Node { return &stackNode{baseNode: newBaseNode(), a: a, b: b} }

func (n *stackNode) Inputs() int  { return n.a.Inputs() + n.b.Inputs() }
func (n *stackNode) Outputs() int { return n.a.Outputs() + n.b.Outputs() }
func (n *stackNode) Reset()       { n.a.Reset(); n.b.Reset() }
func (n *stackNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	n.a.SetSampleRate(sr)
	n.b.SetSampleRate(sr)
}
func (n *stackNode) Allocate() {
	n.allocateFrame(n.Inputs())
	n.out = make(Frame, n.Outputs())
	n.a.Allocate()
	n.b.Allocate()
	n.baseNode.Allocate()
}
func (n *stackNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}
func (n *stackNode) Tick(input Frame) Frame {
	split := n.a.Inputs()
	outA := n.a.Tick(input[:split])
	outB := n.b.Tick(input[split:])
	if cap(n.out) < len(outA)+len(outB) {
		n.out = make(Frame, len(outA)+len(outB))
	}
	n.out = n.out[:len(outA)+len(outB)]
	copy(n.out[:len(outA)], outA)
	copy(n.out[len(outA):], outB)
	return n.out
}
func (n *stackNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok {
		n.a.Set(s, addr)
		n.b.Set(s, addr)
		return
	}
	switch tok.Kind {
	case Left:
		n.a.Set(s, rest)
	case Right:
		n.b.Set(s, rest)
	}
}
func (n *stackNode) Ping(commit bool, hashIn uint64) uint64 {
	ha := n.a.Ping(commit, mixChild(hashIn, kindStack, 0))
	hb := n.b.Ping(commit, mixChild(hashIn, kindStack, 1))
	r := combineHash(kindStack, ha, hb)
	n.baseNode.seedFrom(commit, r)
	return r
}
func (n *stackNode) Route(in []Tag) []Tag {
	split := n.a.Inputs()
	ra := n.a.Route(in[:split])
	rb := n.b.Route(in[split:])
	res := make([]Tag, 0, len(ra)+len(rb))
	res = append(res, ra...)
	res = append(res, rb...)
	return res
}
