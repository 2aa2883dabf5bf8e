package graph

import (
	"context"
	"fmt"
	"math"
)

// Program is a compiled, immutable Graph.
type Program struct {
	name  string
	steps []Node
}

// Compile validates g and fixes its execution order. The returned Program
// holds its own copy of the nodes; later changes to g do not affect it.
func Compile(g *Graph) (*Program, error) {
	order, err := g.Plan()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	steps := make([]Node, 0, len(order))
	for _, id := range order {
		n := byID[id]
		n.Inputs = append([]string(nil), n.Inputs...)
		steps = append(steps, n)
	}
	return &Program{name: g.Name, steps: steps}, nil
}

// Name returns the name of the compiled graph.
func (p *Program) Name() string { return p.name }

// Len returns the number of nodes in the program.
func (p *Program) Len() int { return len(p.steps) }

// value is either a vector or a broadcastable scalar.
type value struct {
	vec    []int64
	scalar int64
	isVec  bool
}

// Eval runs the program over in. in is never modified; the result is a newly
// allocated slice of the same length (vector-vector ops require equal lengths,
// which always holds since the input node is the only vector source).
func (p *Program) Eval(ctx context.Context, in []int64) ([]int64, error) {
	vals := make(map[string]value, len(p.steps))
	for _, n := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch n.Op {
		case OpInput:
			vals[n.ID] = value{vec: in, isVec: true}
		case OpConst:
			vals[n.ID] = value{scalar: n.Value}
		case OpMul:
			v, err := apply(vals[n.Inputs[0]], vals[n.Inputs[1]], mulInt64)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", n.ID, err)
			}
			vals[n.ID] = v
		case OpAdd:
			v, err := apply(vals[n.Inputs[0]], vals[n.Inputs[1]], addInt64)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", n.ID, err)
			}
			vals[n.ID] = v
		case OpOutput:
			src := vals[n.Inputs[0]]
			out := make([]int64, len(src.vec))
			copy(out, src.vec)
			return out, nil
		}
	}
	return nil, invalidGraphError{msg: "no output node reached"}
}

func apply(a, b value, op func(x, y int64) (int64, bool)) (value, error) {
	if !a.isVec && !b.isVec {
		r, ok := op(a.scalar, b.scalar)
		if !ok {
			return value{}, ErrOverflow
		}
		return value{scalar: r}, nil
	}
	n := len(a.vec)
	if !a.isVec {
		n = len(b.vec)
	}
	if a.isVec && b.isVec && len(a.vec) != len(b.vec) {
		return value{}, fmt.Errorf("length mismatch: %d vs %d", len(a.vec), len(b.vec))
	}
	out := make([]int64, n)
	for i := range out {
		x, y := a.scalar, b.scalar
		if a.isVec {
			x = a.vec[i]
		}
		if b.isVec {
			y = b.vec[i]
		}
		r, ok := op(x, y)
		if !ok {
			return value{}, fmt.Errorf("element %d: %w", i, ErrOverflow)
		}
		out[i] = r
	}
	return value{vec: out, isVec: true}, nil
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

func addInt64(a, b int64) (int64, bool) {
	r := a + b
	if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
		return 0, false
	}
	return r, true
}
