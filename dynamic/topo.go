package dynamic

// plan is the frozen, validated execution order a backend renders
// from: nodes in dependency order, with every input source resolved
// and any broken edge replaced by SourceZero so rendering never reads
// a missing node.
type plan struct {
	order   []NodeID
	inputs  map[NodeID][]Source
	outputs []Source
	err     *NetError
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// buildPlan topologically sorts net's current node graph, resolving
// dangling and cyclic edges to SourceZero so the returned plan is
// always renderable. The first structural problem encountered (if
// any) is returned alongside the plan; Commit records it for Error().
func buildPlan(net *Network) *plan {
	p := &plan{
		inputs: make(map[NodeID][]Source, len(net.nodes)),
	}

	state := make(map[NodeID]visitState, len(net.nodes))
	var firstErr *NetError
	resolved := make(map[NodeID][]Source, len(net.nodes))

	var visit func(id NodeID) bool // returns true if id is safe to depend on
	visit = func(id NodeID) bool {
		switch state[id] {
		case visited:
			return true
		case visiting:
			if firstErr == nil {
				firstErr = &NetError{Kind: ErrCycle, NodeID: id, Message: "edge closes a cycle"}
			}
			return false
		}
		entry, ok := net.nodes[id]
		if !ok {
			return false
		}
		state[id] = visiting
		fixed := make([]Source, len(entry.inputs))
		for i, src := range entry.inputs {
			fixed[i] = src
			if src.Kind == SourceNode {
				if _, exists := net.nodes[src.Node]; !exists {
					if firstErr == nil {
						firstErr = &NetError{Kind: ErrDangling, NodeID: id, Slot: i, Message: "source node no longer exists"}
					}
					fixed[i] = Zero()
					continue
				}
				if src.Channel < 0 || src.Channel >= net.nodes[src.Node].node.Outputs() {
					if firstErr == nil {
						firstErr = &NetError{Kind: ErrArityMismatch, NodeID: id, Slot: i, Message: "source channel out of range"}
					}
					fixed[i] = Zero()
					continue
				}
				if !visit(src.Node) {
					fixed[i] = Zero()
				}
			}
		}
		resolved[id] = fixed
		state[id] = visited
		p.order = append(p.order, id)
		return true
	}

	for _, id := range net.order {
		visit(id)
	}

	p.inputs = resolved
	p.outputs = make([]Source, len(net.outputs))
	for i, src := range net.outputs {
		p.outputs[i] = src
		if src.Kind == SourceNode {
			if _, exists := net.nodes[src.Node]; !exists {
				if firstErr == nil {
					firstErr = &NetError{Kind: ErrDangling, Slot: i, Message: "output source node no longer exists"}
				}
				p.outputs[i] = Zero()
			} else if src.Channel < 0 || src.Channel >= net.nodes[src.Node].node.Outputs() {
				if firstErr == nil {
					firstErr = &NetError{Kind: ErrArityMismatch, Slot: i, Message: "output source channel out of range"}
				}
				p.outputs[i] = Zero()
			}
		}
	}
	p.err = firstErr
	return p
}
