package ctl

import (
	"context"
	"os"
	"time"

	"doubleit/internal/config"
)

// Config carries flag values shared by the command tree.
type Config struct {
	Artifact string
	URL      string
	Wait     time.Duration
	LogLvl   string
}

// defaultConfig seeds flag defaults from DOUBLEIT_* environment variables.
func defaultConfig() *Config {
	env := config.Config{}
	if err := config.ApplyEnv(&env); err != nil {
		logger.Warn().Err(err).Msg("ignoring environment")
		env = config.Config{}
	}
	env = env.WithDefaults()
	url := "http://127.0.0.1" + env.Addr
	if env.Addr != "" && env.Addr[0] != ':' {
		url = "http://" + env.Addr
	}
	return &Config{
		Artifact: env.Artifact,
		URL:      url,
		LogLvl:   env.LogLevel,
	}
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code: 0 on success, 2 when no command is given, 1 on error.
func MainWithArgs(args []string) int {
	cfg := defaultConfig()
	root := buildRootCmdWith(cfg)
	if len(args) == 0 {
		_ = root.Usage()
		return 2
	}
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error().Err(err).Msg("doubleitctl failed")
		return 1
	}
	return 0
}

// Main returns an exit code for use by cmd/doubleitctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
