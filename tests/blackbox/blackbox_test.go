package blackbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	return port, func() { _ = ln.Close() }
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// buildBinaries compiles doubleitd and doubleitctl into a temp dir.
func buildBinaries(t *testing.T) (daemon, ctl string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping blackbox build in -short mode")
	}
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	for _, name := range []string{"doubleitd", "doubleitctl"} {
		cmd := exec.Command("go", "build", "-o", filepath.Join(outDir, name), "./cmd/"+name)
		cmd.Dir = root
		cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("go build %s failed: %v\n%s", name, err, string(out))
		}
	}
	return filepath.Join(outDir, "doubleitd"), filepath.Join(outDir, "doubleitctl")
}

func runCtl(t *testing.T, bin string, args ...string) (int, string) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return ee.ExitCode(), string(out)
		}
		t.Fatalf("run %s: %v", bin, err)
	}
	return 0, string(out)
}

func startServer(t *testing.T, bin, artifact string, port int) string {
	t.Helper()
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	cmd := exec.Command(bin, "--addr", fmt.Sprintf("127.0.0.1:%d", port), "--artifact", artifact)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill(); _ = cmd.Wait() })
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/readyz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become ready in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return base
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_BuildServeVerify(t *testing.T) {
	daemon, ctl := buildBinaries(t)
	artifact := filepath.Join(t.TempDir(), "doubleit_model.graph")

	if code, out := runCtl(t, ctl, "build", "--artifact", artifact); code != 0 {
		t.Fatalf("build exit %d: %s", code, out)
	}
	if code, out := runCtl(t, ctl, "verify", "model", "--artifact", artifact); code != 0 {
		t.Fatalf("verify model exit %d: %s", code, out)
	}

	port, release := findFreePort(t)
	release()
	base := startServer(t, daemon, artifact, port)

	resp, body := postJSON(t, base+"/predict", []byte(`{"values":[5,10]}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/predict %d %s", resp.StatusCode, body)
	}
	if got := strings.TrimSpace(string(body)); got != `{"result":[10,20]}` {
		t.Fatalf("/predict body=%s", got)
	}

	if code, out := runCtl(t, ctl, "verify", "api", "--url", base); code != 0 {
		t.Fatalf("verify api exit %d: %s", code, out)
	}
}

func TestBlackbox_MissingArtifactIsFatal(t *testing.T) {
	daemon, _ := buildBinaries(t)
	port, release := findFreePort(t)
	release()
	cmd := exec.Command(daemon, "--addr", fmt.Sprintf("127.0.0.1:%d", port), "--artifact", filepath.Join(t.TempDir(), "missing.graph"))
	out, err := cmd.CombinedOutput()
	ee, ok := err.(*exec.ExitError)
	if !ok || ee.ExitCode() == 0 {
		t.Fatalf("expected non-zero exit, err=%v out=%s", err, out)
	}
}
