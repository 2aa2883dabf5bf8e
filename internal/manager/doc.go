// Package manager owns the lifecycle of the served model. It is structured
// into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: lifecycle State and the read-only Snapshot.
//   - errors.go: error types and helpers (IsNotReady, IsOverflow).
//   - load.go: one-shot artifact load (loading -> ready | error).
//   - predict.go: inference entry point.
//   - status_report.go: Status/Snapshot reporting helpers.
//   - events.go, eventpub_memory.go: lifecycle event publishing.
//   - metrics.go: Prometheus counters for loads and predictions.
//
// The loaded program is immutable and shared by all callers; the mutex only
// guards lifecycle state.
package manager
