package manager

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"doubleit/internal/graph"
	"doubleit/pkg/types"
)

type Manager struct {
	mu           sync.RWMutex
	state        State
	prog         *graph.Program
	info         *types.ModelInfo
	err          string
	artifactPath string

	loadOnce sync.Once
	loadErr  error

	loadsTotal       atomic.Uint64
	predictionsTotal atomic.Uint64

	log       zerolog.Logger
	pub       EventPublisher
	now       func() time.Time
	startTime time.Time
}

// New returns a Manager that will load the artifact at artifactPath.
func New(artifactPath string) *Manager {
	return NewWithConfig(ManagerConfig{ArtifactPath: artifactPath})
}

// SetEventPublisher replaces the lifecycle event sink. Nil restores the no-op sink.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		p = noopPublisher{}
	}
	m.pub = p
}

// Ready reports whether the model is loaded and serving.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateReady && m.prog != nil
}

// ArtifactPath returns the configured artifact location.
func (m *Manager) ArtifactPath() string { return m.artifactPath }

func (m *Manager) publish(e Event) {
	m.mu.RLock()
	p := m.pub
	m.mu.RUnlock()
	p.Publish(e)
}
