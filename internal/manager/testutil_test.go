package manager

import (
	"context"
	"path/filepath"
	"testing"

	"doubleit/internal/graph"
)

// writeArtifact writes the doubling graph into dir and returns its path.
func writeArtifact(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "doubleit_model.graph")
	if err := graph.WriteFile(p, graph.Doubling()); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return p
}

// newLoaded returns a manager that has loaded a fresh doubling artifact.
func newLoaded(t *testing.T) *Manager {
	t.Helper()
	m := New(writeArtifact(t, t.TempDir()))
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func equalInts(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
