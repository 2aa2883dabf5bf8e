package manager

import "doubleit/pkg/types"

// Snapshot returns a read-only view of the manager state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{State: m.state, Model: m.modelInfoLocked(), Err: m.err}
}

// Status builds the /status payload.
func (m *Manager) Status() types.StatusResponse {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return types.StatusResponse{
		State:            string(m.state),
		Model:            m.modelInfoLocked(),
		Error:            m.err,
		LoadsTotal:       m.loadsTotal.Load(),
		PredictionsTotal: m.predictionsTotal.Load(),
		UptimeSeconds:    int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
	}
}

// modelInfoLocked returns a copy of the model info; callers hold m.mu.
func (m *Manager) modelInfoLocked() *types.ModelInfo {
	if m.info == nil {
		return nil
	}
	cp := *m.info
	return &cp
}
