package manager

import (
	"time"

	"github.com/rs/zerolog"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// ArtifactPath is the serialized graph loaded by Load.
	ArtifactPath string
	// Logger receives lifecycle logs. Nil disables logging.
	Logger *zerolog.Logger
	// Publisher receives lifecycle events. Nil drops them.
	Publisher EventPublisher
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewWithConfig constructs a Manager from ManagerConfig. The manager starts in
// StateLoading; call Load to read the artifact.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		state:        StateLoading,
		artifactPath: cfg.ArtifactPath,
		log:          zerolog.Nop(),
		pub:          cfg.Publisher,
		now:          cfg.Now,
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	if m.pub == nil {
		m.pub = noopPublisher{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.startTime = m.now()
	return m
}
