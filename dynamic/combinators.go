package dynamic

import (
	"github.com/SamiPerttu/fundsp/fundsp"
	"github.com/SamiPerttu/fundsp/internal/logutil"
)

// Operand is either an inline node or an existing network, the two
// things a dynamic combinator accepts as an argument. Use
// NodeOperand to wrap a plain fundsp.Node, or Graph to wrap a
// *Network (which is committed and adapted via AsNode).
type Operand struct{ node fundsp.Node }

// NodeOperand wraps an inline node as an Operand.
func NodeOperand(n fundsp.Node) Operand { return Operand{node: n} }

// Graph wraps an existing network as an Operand, committing it and
// adapting it to fundsp.Node via AsNode.
func Graph(net *Network) Operand { return Operand{node: AsNode(net)} }

func (o Operand) Inputs() int  { return o.node.Inputs() }
func (o Operand) Outputs() int { return o.node.Outputs() }

// wrapSingle builds a network whose external arity matches node's,
// with graph inputs feeding node's inputs in order and node's outputs
// feeding graph outputs in order — the synthesized network every
// dynamic combinator produces.
func wrapSingle(node fundsp.Node, log logutil.Logger) *Network {
	net := New(node.Inputs(), node.Outputs(), log)
	id := net.Push(node)
	for i := 0; i < node.Inputs(); i++ {
		net.Connect(id, i, GraphInput(i))
	}
	for i := 0; i < node.Outputs(); i++ {
		net.SetOutput(i, FromNode(id, i))
	}
	return net
}

// errorNetwork returns a network already carrying a structural error,
// for a combinator call whose operands fail the operator's arity
// requirement — the dynamic layer never panics on a bad combinator
// call, it records the problem and keeps the network otherwise
// usable (every output reads zero).
func errorNetwork(nIn, nOut int, err *NetError, log logutil.Logger) *Network {
	net := New(nIn, nOut, log)
	for i := range net.outputs {
		net.outputs[i] = Zero()
	}
	net.err = err
	return net
}

// Negate synthesizes a network computing -A.
func Negate(a Operand, log logutil.Logger) *Network {
	return wrapSingle(fundsp.Negate(a.node), log)
}

// Thru synthesizes a network computing !A.
func Thru(a Operand, log logutil.Logger) *Network {
	return wrapSingle(fundsp.Thru(a.node), log)
}

// Mul synthesizes a network computing A*B. A and B must have matching
// output arity; on mismatch the returned network carries an
// ErrArityMismatch.
func Mul(a, b Operand, log logutil.Logger) *Network {
	if a.Outputs() != b.Outputs() {
		return errorNetwork(a.Inputs()+b.Inputs(), a.Outputs(),
			newArityError(0, 0, a.Outputs(), b.Outputs()), log)
	}
	return wrapSingle(fundsp.Mul(a.node, b.node), log)
}

// Add synthesizes a network computing A+B. Arity requirements as Mul.
func Add(a, b Operand, log logutil.Logger) *Network {
	if a.Outputs() != b.Outputs() {
		return errorNetwork(a.Inputs()+b.Inputs(), a.Outputs(),
			newArityError(0, 0, a.Outputs(), b.Outputs()), log)
	}
	return wrapSingle(fundsp.Add(a.node, b.node), log)
}

// Sub synthesizes a network computing A-B. Arity requirements as Mul.
func Sub(a, b Operand, log logutil.Logger) *Network {
	if a.Outputs() != b.Outputs() {
		return errorNetwork(a.Inputs()+b.Inputs(), a.Outputs(),
			newArityError(0, 0, a.Outputs(), b.Outputs()), log)
	}
	return wrapSingle(fundsp.Sub(a.node, b.node), log)
}

// Pipe synthesizes a network computing A>>B. O(A) must equal I(B); on
// mismatch the returned network carries an ErrArityMismatch.
func Pipe(a, b Operand, log logutil.Logger) *Network {
	if a.Outputs() != b.Inputs() {
		return errorNetwork(a.Inputs(), b.Outputs(),
			newArityError(0, 0, a.Outputs(), b.Inputs()), log)
	}
	return wrapSingle(fundsp.Pipe(a.node, b.node), log)
}

// Bus synthesizes a network computing A&B. I(A) must equal I(B) and
// O(A) must equal O(B).
func Bus(a, b Operand, log logutil.Logger) *Network {
	if a.Inputs() != b.Inputs() || a.Outputs() != b.Outputs() {
		return errorNetwork(a.Inputs(), a.Outputs(),
			newArityError(0, 0, a.Inputs(), b.Inputs()), log)
	}
	return wrapSingle(fundsp.Bus(a.node, b.node), log)
}

// Branch synthesizes a network computing A^B. I(A) must equal I(B).
func Branch(a, b Operand, log logutil.Logger) *Network {
	if a.Inputs() != b.Inputs() {
		return errorNetwork(a.Inputs(), a.Outputs()+b.Outputs(),
			newArityError(0, 0, a.Inputs(), b.Inputs()), log)
	}
	return wrapSingle(fundsp.Branch(a.node, b.node), log)
}

// Stack synthesizes a network computing A‖B: disjoint inputs and
// outputs, no arity constraint between A and B.
func Stack(a, b Operand, log logutil.Logger) *Network {
	return wrapSingle(fundsp.Stack(a.node, b.node), log)
}
