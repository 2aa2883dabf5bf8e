package manager

import (
	"context"
	"fmt"

	"doubleit/internal/common/fsutil"
	"doubleit/internal/graph"
	"doubleit/pkg/types"
)

// Load reads, verifies and compiles the artifact. Only the first call does any
// work; later calls return the first result. A failed load leaves the manager
// in StateError for the rest of the process lifetime.
func (m *Manager) Load(ctx context.Context) error {
	m.loadOnce.Do(func() {
		m.loadErr = m.load(ctx)
	})
	return m.loadErr
}

func (m *Manager) load(ctx context.Context) error {
	start := m.now()
	m.publish(Event{Name: "load_start", Fields: map[string]any{"path": m.artifactPath}})
	m.log.Info().Str("path", m.artifactPath).Msg("artifact load start")

	info, prog, err := m.readArtifact(ctx)
	if err != nil {
		m.mu.Lock()
		m.state = StateError
		m.err = err.Error()
		m.mu.Unlock()
		loadsTotal.WithLabelValues("error").Inc()
		m.publish(Event{Name: "load_error", Fields: map[string]any{"error": err.Error()}})
		m.log.Error().Err(err).Str("path", m.artifactPath).Msg("artifact load failed")
		return err
	}

	m.mu.Lock()
	m.prog = prog
	m.info = info
	m.state = StateReady
	m.err = ""
	m.mu.Unlock()
	m.loadsTotal.Add(1)
	loadsTotal.WithLabelValues("ok").Inc()
	m.publish(Event{Name: "load_ready", Fields: map[string]any{"checksum": info.Checksum, "nodes": info.Nodes}})
	m.log.Info().
		Str("path", info.Path).
		Str("graph", prog.Name()).
		Int("version", info.Version).
		Str("checksum", info.Checksum).
		Dur("dur", m.now().Sub(start)).
		Msg("artifact ready")
	return nil
}

func (m *Manager) readArtifact(ctx context.Context) (*types.ModelInfo, *graph.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if m.artifactPath == "" {
		return nil, nil, fmt.Errorf("artifact path is empty")
	}
	abs, err := fsutil.ResolvePath(m.artifactPath)
	if err != nil {
		return nil, nil, err
	}
	if !fsutil.PathExists(abs) {
		return nil, nil, artifactNotFoundError{path: abs}
	}
	a, err := graph.ReadFile(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("read artifact: %w", err)
	}
	prog, err := graph.Compile(a.Graph)
	if err != nil {
		return nil, nil, fmt.Errorf("compile artifact: %w", err)
	}
	info := &types.ModelInfo{
		Path:     abs,
		Format:   graph.FormatName,
		Version:  a.Version,
		Checksum: a.Checksum,
		Nodes:    prog.Len(),
	}
	return info, prog, nil
}
