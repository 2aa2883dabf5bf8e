package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"doubleit/internal/config"
	"doubleit/internal/httpapi"
	"doubleit/internal/manager"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "doubleitd:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("doubleitd", flag.ContinueOnError)
	configPath := fs.String("config", "", "Optional config file (.yaml, .yml, .json, .toml)")
	addr := fs.String("addr", config.DefaultAddr, "HTTP listen address, e.g. :8080")
	artifact := fs.String("artifact", config.DefaultArtifact, "Path to the model artifact written by doubleitctl build")
	logLevel := fs.String("log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error")
	maxBody := fs.Int64("max-body-bytes", config.DefaultMaxBodyBytes, "Maximum request body size in bytes")
	corsEnabled := fs.Bool("cors-enabled", false, "Enable CORS")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed CORS origins")
	swagger := fs.Bool("swagger", false, "Serve API docs under /swagger/")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Precedence: flags > env > config file > defaults.
	var cfg config.Config
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = *addr
		case "artifact":
			cfg.Artifact = *artifact
		case "log-level":
			cfg.LogLevel = *logLevel
		case "max-body-bytes":
			cfg.MaxBodyBytes = *maxBody
		case "cors-enabled":
			cfg.CORSEnabled = *corsEnabled
		case "cors-origins":
			cfg.CORSOrigins = splitCSV(*corsOrigins)
		case "swagger":
			cfg.Swagger = *swagger
		}
	})
	cfg = cfg.WithDefaults()

	logger := newLogger(cfg.LogLevel)
	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)
	httpapi.SetSwaggerEnabled(cfg.Swagger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	// The model must be ready before the listener opens; a failed load is fatal.
	mgr := manager.NewWithConfig(manager.ManagerConfig{ArtifactPath: cfg.Artifact, Logger: &logger})
	if err := mgr.Load(ctx); err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Str("artifact", cfg.Artifact).Msg("doubleitd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Str("service", "doubleitd").Logger().Level(lvl)
}

// splitCSV splits a comma-separated list, trimming spaces and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
