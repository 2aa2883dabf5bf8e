package graph

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doubleit_model.graph")
	require.NoError(t, WriteFile(path, Doubling()))

	a, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, a.Version)
	assert.Len(t, a.Checksum, 16)
	assert.Equal(t, Doubling(), a.Graph)

	p, err := Compile(a.Graph)
	require.NoError(t, err)
	got, err := p.Eval(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 6}, got)
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.graph")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))
	require.NoError(t, WriteFile(path, Doubling()))

	_, err := ReadFile(path)
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestLoadTwiceIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.graph")
	require.NoError(t, WriteFile(path, Doubling()))

	in := []int64{9, -4, 0, 1 << 40}
	var outs [][]int64
	for i := 0; i < 2; i++ {
		a, err := ReadFile(path)
		require.NoError(t, err)
		p, err := Compile(a.Graph)
		require.NoError(t, err)
		out, err := p.Eval(context.Background(), in)
		require.NoError(t, err)
		outs = append(outs, out)
	}
	assert.Equal(t, outs[0], outs[1])
}

func TestEncodeRejectsInvalidGraph(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, &Graph{Name: "broken"})
	require.Error(t, err)
	assert.True(t, IsInvalidGraph(err))
	assert.Zero(t, buf.Len())
}

func TestDecodeRejects(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Doubling()))
	good := buf.String()

	cases := map[string]string{
		"not json":       "not json",
		"wrong format":   strings.Replace(good, FormatName, "torchscript", 1),
		"wrong version":  strings.Replace(good, `"version": 1`, `"version": 2`, 1),
		"tampered graph": strings.Replace(good, `"value": 2`, `"value": 3`, 1),
		"missing graph":  `{"format":"doubleit.graph","version":1,"checksum":"0000000000000000"}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(in))
			require.Error(t, err)
			assert.True(t, IsFormatError(err), "err=%v", err)
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.graph"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
