package fundsp

// naryNode flattens an associative combinator chain into a single
// node holding every operand, so deep A >> B >> C >> ... expressions
// cost one virtual call per child instead of one per nesting level.
// Children are addressable with the Index token.
type naryNode struct {
	baseNode
	kind     combKind
	children []Node
	out      Frame
}

func newNary(kind combKind, op string, children []Node) *naryNode {
	if len(children) == 0 {
		panic("fundsp: " + op + " requires at least one node")
	}
	for i := 1; i < len(children); i++ {
		switch kind {
		case kindPipe:
			requireEqual(op, "arity", children[i-1].Outputs(), children[i].Inputs())
		case kindBus:
			requireEqual(op, "input arity", children[0].Inputs(), children[i].Inputs())
			requireEqual(op, "output arity", children[0].Outputs(), children[i].Outputs())
		case kindBranch:
			requireEqual(op, "input arity", children[0].Inputs(), children[i].Inputs())
		case kindSum, kindProduct:
			requireEqual(op, "output arity", children[0].Outputs(), children[i].Outputs())
		}
	}
	return &naryNode{baseNode: newBaseNode(), kind: kind, children: children}
}

// PipeAll returns the flattened pipe A >> B >> ... >> Z.
func PipeAll(nodes ...Node) Node { return newNary(kindPipe, "pipe", nodes) }

// BusAll returns the flattened bus A & B & ... & Z: every node
// receives the same inputs and the outputs are summed.
func BusAll(nodes ...Node) Node { return newNary(kindBus, "bus", nodes) }

// BranchAll returns the flattened branch A ^ B ^ ... ^ Z: every node
// receives the same inputs and the outputs are concatenated.
func BranchAll(nodes ...Node) Node { return newNary(kindBranch, "branch", nodes) }

// StackAll returns the flattened stack A ‖ B ‖ ... ‖ Z: disjoint
// inputs and outputs, all in parallel.
func StackAll(nodes ...Node) Node { return newNary(kindStack, "stack", nodes) }

// SumAll returns the flattened sum A + B + ... + Z over disjoint
// inputs, outputs summed channelwise.
func SumAll(nodes ...Node) Node { return newNary(kindSum, "sum", nodes) }

// ProductAll returns the flattened product A * B * ... * Z over
// disjoint inputs, outputs multiplied channelwise.
func ProductAll(nodes ...Node) Node { return newNary(kindProduct, "product", nodes) }

func (n *naryNode) Inputs() int {
	switch n.kind {
	case kindPipe, kindBus, kindBranch:
		return n.children[0].Inputs()
	default:
		total := 0
		for _, c := range n.children {
			total += c.Inputs()
		}
		return total
	}
}

func (n *naryNode) Outputs() int {
	switch n.kind {
	case kindPipe:
		return n.children[len(n.children)-1].Outputs()
	case kindBus, kindSum, kindProduct:
		return n.children[0].Outputs()
	default:
		total := 0
		for _, c := range n.children {
			total += c.Outputs()
		}
		return total
	}
}

func (n *naryNode) Reset() {
	for _, c := range n.children {
		c.Reset()
	}
}

func (n *naryNode) SetSampleRate(sr float64) {
	n.baseNode.SetSampleRate(sr)
	for _, c := range n.children {
		c.SetSampleRate(sr)
	}
}

func (n *naryNode) Allocate() {
	n.allocateFrame(n.Inputs())
	if cap(n.out) < n.Outputs() {
		n.out = make(Frame, n.Outputs())
	}
	n.out = n.out[:n.Outputs()]
	for _, c := range n.children {
		c.Allocate()
	}
	n.baseNode.Allocate()
}

func (n *naryNode) Process(input, output *Buffer, frames int) {
	tickBuffer(n, &n.baseNode, input, output, frames)
}

func (n *naryNode) Tick(input Frame) Frame {
	switch n.kind {
	case kindPipe:
		cur := input
		for _, c := range n.children {
			cur = c.Tick(cur)
		}
		return cur
	case kindBus:
		n.ensureOut(n.children[0].Outputs())
		for i := range n.out {
			n.out[i] = 0
		}
		for _, c := range n.children {
			out := c.Tick(input)
			for i := range out {
				n.out[i] += out[i]
			}
		}
		return n.out
	case kindBranch:
		n.ensureOut(n.Outputs())
		pos := 0
		for _, c := range n.children {
			out := c.Tick(input)
			copy(n.out[pos:pos+len(out)], out)
			pos += len(out)
		}
		return n.out
	case kindStack:
		n.ensureOut(n.Outputs())
		inPos, outPos := 0, 0
		for _, c := range n.children {
			out := c.Tick(input[inPos : inPos+c.Inputs()])
			inPos += c.Inputs()
			copy(n.out[outPos:outPos+len(out)], out)
			outPos += len(out)
		}
		return n.out
	default: // kindSum, kindProduct
		n.ensureOut(n.children[0].Outputs())
		inPos := 0
		for ci, c := range n.children {
			out := c.Tick(input[inPos : inPos+c.Inputs()])
			inPos += c.Inputs()
			for i := range out {
				if ci == 0 {
					n.out[i] = out[i]
				} else if n.kind == kindSum {
					n.out[i] += out[i]
				} else {
					n.out[i] *= out[i]
				}
			}
		}
		return n.out
	}
}

func (n *naryNode) ensureOut(size int) {
	if cap(n.out) < size {
		n.out = make(Frame, size)
	}
	n.out = n.out[:size]
}

// Set navigates with the Index token: Index(i) addresses the i-th
// child. An empty address, or a leading Left/Right token, is ignored
// here since an n-ary builder has no two sides to pick from.
func (n *naryNode) Set(s Setting, addr Address) {
	tok, rest, ok := addr.Head()
	if !ok || tok.Kind != Index {
		return
	}
	if tok.Index < 0 || tok.Index >= len(n.children) {
		return
	}
	n.children[tok.Index].Set(s, rest)
}

func (n *naryNode) Ping(commit bool, hashIn uint64) uint64 {
	hashes := make([]uint64, len(n.children))
	for i, c := range n.children {
		hashes[i] = c.Ping(commit, mixChild(hashIn, n.kind, i))
	}
	r := combineHash(n.kind, hashes...)
	n.baseNode.seedFrom(commit, r)
	return r
}

func (n *naryNode) Route(in []Tag) []Tag {
	switch n.kind {
	case kindPipe:
		cur := in
		for _, c := range n.children {
			cur = c.Route(cur)
		}
		return cur
	case kindBus:
		res := n.children[0].Route(in)
		for _, c := range n.children[1:] {
			out := c.Route(in)
			for i := range res {
				res[i] = SumTags(res[i], out[i])
			}
		}
		return res
	case kindBranch:
		res := make([]Tag, 0, n.Outputs())
		for _, c := range n.children {
			res = append(res, c.Route(in)...)
		}
		return res
	case kindStack:
		res := make([]Tag, 0, n.Outputs())
		pos := 0
		for _, c := range n.children {
			res = append(res, c.Route(in[pos:pos+c.Inputs()])...)
			pos += c.Inputs()
		}
		return res
	default: // kindSum, kindProduct
		var res []Tag
		pos := 0
		for ci, c := range n.children {
			out := c.Route(in[pos : pos+c.Inputs()])
			pos += c.Inputs()
			if ci == 0 {
				res = out
				continue
			}
			for i := range res {
				if n.kind == kindSum {
					res[i] = SumTags(res[i], out[i])
				} else {
					res[i] = productTag(res[i], out[i])
				}
			}
		}
		return res
	}
}
