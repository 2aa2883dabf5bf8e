package graph

// DoublingName is the name given to the graph built by Doubling.
const DoublingName = "doubleit"

// Doubling returns the graph that maps a vector x to 2*x.
func Doubling() *Graph {
	return &Graph{
		Name: DoublingName,
		Nodes: []Node{
			{ID: "x", Op: OpInput},
			{ID: "two", Op: OpConst, Value: 2},
			{ID: "mul", Op: OpMul, Inputs: []string{"x", "two"}},
			{ID: "y", Op: OpOutput, Inputs: []string{"mul"}},
		},
	}
}
