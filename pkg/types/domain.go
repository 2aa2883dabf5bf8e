package types

// ModelInfo describes the artifact backing the served computation.
type ModelInfo struct {
	// Absolute path to the artifact file on disk.
	// example: /srv/doubleit/doubleit_model.graph
	Path string `json:"path" example:"/srv/doubleit/doubleit_model.graph"`
	// Artifact format name.
	// example: doubleit.graph
	Format string `json:"format" example:"doubleit.graph"`
	// Artifact format version.
	// example: 1
	Version int `json:"version" example:"1"`
	// Hex-encoded xxhash64 of the serialized graph.
	// example: 9c1e5a2f0d3b7e41
	Checksum string `json:"checksum" example:"9c1e5a2f0d3b7e41"`
	// Number of nodes in the computation graph.
	// example: 4
	Nodes int `json:"nodes" example:"4"`
}
