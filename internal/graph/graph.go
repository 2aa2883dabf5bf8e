package graph

import (
	"errors"
	"fmt"

	dag "github.com/dominikbraun/graph"
)

// Op identifies the operation a node performs.
type Op string

const (
	// OpInput yields the request vector. Exactly one per graph.
	OpInput Op = "input"
	// OpConst yields the scalar Value.
	OpConst Op = "const"
	// OpMul multiplies its two inputs element-wise (scalars broadcast).
	OpMul Op = "mul"
	// OpAdd adds its two inputs element-wise (scalars broadcast).
	OpAdd Op = "add"
	// OpOutput marks the result vector. Exactly one per graph.
	OpOutput Op = "output"
)

// arity is the number of inputs each op takes.
var arity = map[Op]int{
	OpInput:  0,
	OpConst:  0,
	OpMul:    2,
	OpAdd:    2,
	OpOutput: 1,
}

// Node is a single operation in the graph.
type Node struct {
	ID     string   `json:"id"`
	Op     Op       `json:"op"`
	Inputs []string `json:"inputs,omitempty"`
	Value  int64    `json:"value,omitempty"`
}

// Graph is a named set of nodes.
type Graph struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
}

// Validate checks the graph structure without evaluating it.
func (g *Graph) Validate() error {
	_, err := g.Plan()
	return err
}

// Plan validates the graph and returns node ids in execution order. Ties
// between independent nodes are broken by id so the order is stable.
func (g *Graph) Plan() ([]string, error) {
	if g == nil || len(g.Nodes) == 0 {
		return nil, invalidGraphError{msg: "no nodes"}
	}
	byID := make(map[string]*Node, len(g.Nodes))
	d := dag.New(dag.StringHash, dag.Directed(), dag.PreventCycles())
	var inputs, outputs int
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.ID == "" {
			return nil, invalidGraphError{msg: fmt.Sprintf("node %d has empty id", i)}
		}
		want, ok := arity[n.Op]
		if !ok {
			return nil, invalidGraphError{msg: fmt.Sprintf("node %q: unknown op %q", n.ID, n.Op)}
		}
		if len(n.Inputs) != want {
			return nil, invalidGraphError{msg: fmt.Sprintf("node %q: op %s takes %d inputs, got %d", n.ID, n.Op, want, len(n.Inputs))}
		}
		switch n.Op {
		case OpInput:
			inputs++
		case OpOutput:
			outputs++
		}
		if err := d.AddVertex(n.ID); err != nil {
			if errors.Is(err, dag.ErrVertexAlreadyExists) {
				return nil, invalidGraphError{msg: fmt.Sprintf("duplicate node id %q", n.ID)}
			}
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
		byID[n.ID] = n
	}
	if inputs != 1 || outputs != 1 {
		return nil, invalidGraphError{msg: fmt.Sprintf("want exactly one input and one output node, got %d and %d", inputs, outputs)}
	}
	for _, n := range g.Nodes {
		for _, in := range n.Inputs {
			err := d.AddEdge(in, n.ID)
			switch {
			case err == nil, errors.Is(err, dag.ErrEdgeAlreadyExists):
			case errors.Is(err, dag.ErrVertexNotFound):
				return nil, invalidGraphError{msg: fmt.Sprintf("node %q references unknown node %q", n.ID, in)}
			case errors.Is(err, dag.ErrEdgeCreatesCycle):
				return nil, invalidGraphError{msg: fmt.Sprintf("edge %q -> %q creates a cycle", in, n.ID)}
			default:
				return nil, fmt.Errorf("add edge %q -> %q: %w", in, n.ID, err)
			}
		}
	}
	order, err := dag.StableTopologicalSort(d, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, fmt.Errorf("topological sort: %w", err)
	}
	if err := typeCheck(order, byID); err != nil {
		return nil, err
	}
	return order, nil
}

// typeCheck walks nodes in execution order and checks that the output node
// yields a vector.
func typeCheck(order []string, byID map[string]*Node) error {
	vector := make(map[string]bool, len(order))
	for _, id := range order {
		n := byID[id]
		switch n.Op {
		case OpInput:
			vector[id] = true
		case OpConst:
			vector[id] = false
		case OpMul, OpAdd:
			vector[id] = vector[n.Inputs[0]] || vector[n.Inputs[1]]
		case OpOutput:
			if !vector[n.Inputs[0]] {
				return invalidGraphError{msg: fmt.Sprintf("output %q is fed by a scalar", id)}
			}
			vector[id] = true
		}
	}
	return nil
}
