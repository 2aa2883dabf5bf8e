package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const (
	// FormatName identifies doubleit artifacts.
	FormatName = "doubleit.graph"
	// FormatVersion is the only envelope version this package reads and writes.
	FormatVersion = 1
)

// envelope is the on-disk artifact layout. Checksum covers the compact JSON
// encoding of Graph.
type envelope struct {
	Format   string          `json:"format"`
	Version  int             `json:"version"`
	Checksum string          `json:"checksum"`
	Graph    json.RawMessage `json:"graph"`
}

// Artifact is a decoded artifact: the graph and its envelope metadata.
type Artifact struct {
	Graph    *Graph
	Version  int
	Checksum string
}

func checksum(b []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// Encode validates g and writes it as an artifact to w.
func Encode(w io.Writer, g *Graph) error {
	if err := g.Validate(); err != nil {
		return err
	}
	body, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	b, err := json.MarshalIndent(envelope{
		Format:   FormatName,
		Version:  FormatVersion,
		Checksum: checksum(body),
		Graph:    body,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Decode reads an artifact from r, verifies its envelope and validates the graph.
func Decode(r io.Reader) (Artifact, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Artifact{}, formatError{msg: "decode envelope: " + err.Error()}
	}
	if env.Format != FormatName {
		return Artifact{}, formatError{msg: "unknown format " + strconv.Quote(env.Format)}
	}
	if env.Version != FormatVersion {
		return Artifact{}, formatError{msg: fmt.Sprintf("unsupported version %d", env.Version)}
	}
	if len(env.Graph) == 0 {
		return Artifact{}, formatError{msg: "missing graph"}
	}
	var body bytes.Buffer
	if err := json.Compact(&body, env.Graph); err != nil {
		return Artifact{}, formatError{msg: "compact graph: " + err.Error()}
	}
	if sum := checksum(body.Bytes()); sum != env.Checksum {
		return Artifact{}, formatError{msg: fmt.Sprintf("checksum mismatch: have %s, want %s", sum, env.Checksum)}
	}
	dec := json.NewDecoder(&body)
	dec.DisallowUnknownFields()
	var g Graph
	if err := dec.Decode(&g); err != nil {
		return Artifact{}, formatError{msg: "decode graph: " + err.Error()}
	}
	if err := g.Validate(); err != nil {
		return Artifact{}, err
	}
	return Artifact{Graph: &g, Version: env.Version, Checksum: env.Checksum}, nil
}

// ReadFile decodes the artifact stored at path.
func ReadFile(path string) (Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return Artifact{}, err
	}
	defer f.Close()
	a, err := Decode(f)
	if err != nil {
		return Artifact{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// WriteFile encodes g to path, replacing any existing file. The artifact is
// written to a temporary file in the same directory and renamed into place.
func WriteFile(path string, g *Graph) error {
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".doubleit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
