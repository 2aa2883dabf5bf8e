package ctl

import (
	"context"
	"net/http"
	"time"

	"doubleit/internal/common/fsutil"
	"doubleit/internal/graph"
	"doubleit/internal/verify"
)

// Function hooks for the command tree; tests swap them out.
var (
	fnBuild       = buildArtifact
	fnVerifyModel = verify.Model
	fnVerifyAPI   = verifyAPI
)

// buildArtifact writes the doubling graph to path, replacing any existing file.
func buildArtifact(path string) error {
	abs, err := fsutil.ResolvePath(path)
	if err != nil {
		return err
	}
	if err := graph.WriteFile(abs, graph.Doubling()); err != nil {
		return err
	}
	logger.Info().Str("path", abs).Str("graph", graph.DoublingName).Int("version", graph.FormatVersion).Msg("artifact written")
	return nil
}

// verifyAPI optionally waits for /readyz and then runs the API check.
func verifyAPI(ctx context.Context, baseURL string, wait time.Duration) error {
	client := &http.Client{Timeout: 10 * time.Second}
	if wait > 0 {
		wctx, cancel := context.WithTimeout(ctx, wait)
		defer cancel()
		logger.Debug().Str("url", baseURL).Dur("wait", wait).Msg("waiting for readiness")
		if err := verify.WaitReady(wctx, client, baseURL); err != nil {
			return err
		}
	}
	return verify.API(ctx, client, baseURL)
}
