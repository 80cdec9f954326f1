package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "input.txt")
	packed := filepath.Join(dir, "input.hpk")
	restored := filepath.Join(dir, "restored.txt")

	data := []byte("she sells sea shells by the sea shore\n")
	require.NoError(t, os.WriteFile(original, data, 0o666))

	for _, flags := range [][]string{nil, {"-canonical"}, {"-nochecksum"}} {
		args := append(append([]string(nil), flags...), "encode", original, packed)
		require.NoError(t, run(args, io.Discard))
		require.NoError(t, run([]string{"decode", packed, restored}, io.Discard))

		actual, err := os.ReadFile(restored)
		require.NoError(t, err)
		require.Equal(t, data, actual)
	}
}

func TestRun_LogsToStderr(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(input, []byte("aaaabbbcc"), 0o666))

	var stderr bytes.Buffer
	require.NoError(t, run([]string{"encode", input, filepath.Join(dir, "out")}, &stderr))
	require.True(t, strings.HasPrefix(stderr.String(), "huffpack: "+input+": 9 bytes -> 14 bits"), "stderr: %q", stderr.String())
}

func TestRun_Usage(t *testing.T) {
	require.True(t, errors.Is(run(nil, io.Discard), errUsage))
	require.True(t, errors.Is(run([]string{"encode", "x"}, io.Discard), errUsage))

	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o666))
	require.True(t, errors.Is(run([]string{"squash", input, filepath.Join(dir, "out")}, io.Discard), errUsage))
}
