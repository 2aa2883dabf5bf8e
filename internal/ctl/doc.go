// Package ctl implements doubleitctl, the developer CLI around the service:
//
//   - build: write the doubling graph artifact to disk.
//   - verify model: load an artifact and check a fixed sample.
//   - verify api: POST a fixed sample to a running service and check the reply.
//   - verify all: both checks concurrently.
//
// Files:
//
//   - root.go    (buildRootCmdWith: cobra command tree)
//   - actions.go (fn* hooks, swappable in tests)
//   - main.go    (Config, MainWithArgs, Main)
//   - log.go     (zerolog console logger, SetLogLevel)
package ctl
