// Package verify checks the doubling property end to end: directly against
// an artifact on disk, and against a running service over HTTP. All checks
// require exact equality.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"doubleit/internal/graph"
	"doubleit/pkg/types"
)

// Fixed samples used by the checks.
var (
	ModelSample     = []int64{1, 2, 3, 4}
	ModelExpected   = []int64{2, 4, 6, 8}
	APISample       = []int64{5, 10}
	APIExpected     = []int64{10, 20}
	readyPollPeriod = 200 * time.Millisecond
)

// MismatchError reports a check whose output differed from the expected value.
type MismatchError struct {
	Check string
	Input []int64
	Got   []int64
	Want  []int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: input %v: got %v, want %v", e.Check, e.Input, e.Got, e.Want)
}

// Model loads the artifact at path and checks it doubles ModelSample.
func Model(ctx context.Context, path string) error {
	a, err := graph.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load artifact: %w", err)
	}
	p, err := graph.Compile(a.Graph)
	if err != nil {
		return fmt.Errorf("compile artifact: %w", err)
	}
	got, err := p.Eval(ctx, ModelSample)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	if !equal(got, ModelExpected) {
		return &MismatchError{Check: "model", Input: ModelSample, Got: got, Want: ModelExpected}
	}
	return nil
}

// API posts APISample to baseURL/predict and checks the response.
func API(ctx context.Context, client *http.Client, baseURL string) error {
	if client == nil {
		client = http.DefaultClient
	}
	payload, err := json.Marshal(types.PredictRequest{Values: APISample})
	if err != nil {
		return err
	}
	url := strings.TrimRight(baseURL, "/") + "/predict"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var out types.PredictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !equal(out.Result, APIExpected) {
		return &MismatchError{Check: "api", Input: APISample, Got: out.Result, Want: APIExpected}
	}
	return nil
}

// WaitReady polls baseURL/readyz until it returns 200 or ctx is done.
func WaitReady(ctx context.Context, client *http.Client, baseURL string) error {
	if client == nil {
		client = http.DefaultClient
	}
	url := strings.TrimRight(baseURL, "/") + "/readyz"
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-time.After(readyPollPeriod):
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s: %w", url, ctx.Err())
		}
	}
}

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
