package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sagernet/fdstream"

	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"lukechampine.com/blake3"
)

func newFlags() *flags {
	return &flags{Fd: -1, BufferSize: fdstream.DefaultBufferSize}
}

func writeInput(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestRunCopiesRemainder(t *testing.T) {
	content := []byte("header:payload")
	f := newFlags()
	f.Skip = 7
	var output bytes.Buffer
	require.NoError(t, run(f, []string{writeInput(t, content)}, &output))
	require.Equal(t, "payload", output.String())
}

func TestRunLimit(t *testing.T) {
	f := newFlags()
	f.Skip = 2
	f.Limit = 3
	var output bytes.Buffer
	require.NoError(t, run(f, []string{writeInput(t, []byte("0123456789"))}, &output))
	require.Equal(t, "234", output.String())
}

func TestRunBlake3(t *testing.T) {
	content := bytes.Repeat([]byte("fdstream"), 4096)
	f := newFlags()
	f.Skip = 100
	f.Blake3 = true
	var output bytes.Buffer
	require.NoError(t, run(f, []string{writeInput(t, content)}, &output))
	digest := blake3.Sum256(content[100:])
	expected := hex.EncodeToString(digest[:]) + " " + strconv.Itoa(len(content)-100) + "\n"
	require.Equal(t, expected, output.String())
}

func TestRunXZ(t *testing.T) {
	plain := bytes.Repeat([]byte("resume here "), 1000)
	var compressed bytes.Buffer
	compressed.WriteString("PADDING!")
	writer, err := xz.NewWriter(&compressed)
	require.NoError(t, err)
	_, err = writer.Write(plain)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	f := newFlags()
	f.Skip = 8
	f.XZ = true
	var output bytes.Buffer
	require.NoError(t, run(f, []string{writeInput(t, compressed.Bytes())}, &output))
	require.Equal(t, plain, output.Bytes())
}

func TestRunConfigFile(t *testing.T) {
	config := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(config, []byte(`{"skip": 4, "limit": 2}`), 0o644))
	f := newFlags()
	f.ConfigFile = config
	var output bytes.Buffer
	require.NoError(t, run(f, []string{writeInput(t, []byte("abcdefgh"))}, &output))
	require.Equal(t, "ef", output.String())
}

func TestRunErrors(t *testing.T) {
	f := newFlags()
	f.Skip = -1
	require.Error(t, run(f, []string{writeInput(t, nil)}, new(bytes.Buffer)))

	f = newFlags()
	require.Error(t, run(f, []string{filepath.Join(t.TempDir(), "missing")}, new(bytes.Buffer)))

	f = newFlags()
	f.Fd = 0
	require.Error(t, run(f, []string{writeInput(t, nil)}, new(bytes.Buffer)))

	f = newFlags()
	f.ConfigFile = filepath.Join(t.TempDir(), "missing.json")
	require.Error(t, run(f, nil, new(bytes.Buffer)))
}
