package manager

import (
	"context"
	"errors"

	"doubleit/internal/graph"
)

// Predict runs values through the loaded model. The returned slice has the
// same length as values; values is never modified.
func (m *Manager) Predict(ctx context.Context, values []int64) ([]int64, error) {
	m.mu.RLock()
	prog, state := m.prog, m.state
	m.mu.RUnlock()
	if prog == nil {
		return nil, notReadyError{state: state}
	}
	out, err := prog.Eval(ctx, values)
	if err != nil {
		if errors.Is(err, graph.ErrOverflow) {
			predictionsTotal.WithLabelValues("overflow").Inc()
			return nil, overflowError{err: err}
		}
		predictionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	m.predictionsTotal.Add(1)
	predictionsTotal.WithLabelValues("ok").Inc()
	predictionValues.Observe(float64(len(values)))
	return out, nil
}
