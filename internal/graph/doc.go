// Package graph defines the computation graph served by doubleit and the
// on-disk artifact format it is persisted in.
//
// A Graph is a flat list of nodes. Each node names its inputs by id, so nodes
// may be stored in any order; Compile validates the graph, fixes a stable
// topological execution order and returns an immutable Program that is safe
// for concurrent use.
//
// Files:
//
//   - graph.go: Node/Graph types, validation and planning.
//   - eval.go: Program and element-wise evaluation with overflow checks.
//   - codec.go: versioned JSON envelope with an xxhash64 checksum.
//   - doubling.go: the canonical "multiply by two" graph.
package graph
