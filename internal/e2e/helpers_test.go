package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"doubleit/internal/graph"
	"doubleit/internal/httpapi"
	"doubleit/internal/manager"
)

// writeArtifact writes the doubling graph into a temp dir and returns its path.
func writeArtifact(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "doubleit_model.graph")
	if err := graph.WriteFile(p, graph.Doubling()); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return p
}

// newServer starts an httptest server over a manager for artifactPath. When
// load is true the artifact is loaded before the server is returned.
func newServer(t *testing.T, artifactPath string, load bool) (*httptest.Server, *manager.Manager) {
	t.Helper()
	mgr := manager.New(artifactPath)
	if load {
		if err := mgr.Load(context.Background()); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
