// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOutputTarget(t *testing.T) {
	require.True(t, ParseOutputTarget("").IsStdout())
	require.True(t, ParseOutputTarget("-").IsStdout())
	require.Equal(t, Stdout, ParseOutputTarget("-"))
	require.Equal(t, "stdout", Stdout.String())

	target := ParseOutputTarget("key.json")
	require.False(t, target.IsStdout())
	require.Equal(t, "key.json", target.Path())
	require.Equal(t, File("key.json"), target)
}

func TestWriteStdout(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Stdout.Write(buf, []byte(`{"n":"AQAB"}`), PublicFileMode))
	require.Equal(t, "{\"n\":\"AQAB\"}\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 100)), 0600))

	target := File(path)
	require.NoError(t, target.Write(nil, []byte(`{"v":"AQ","e":0}`), PrivateFileMode))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\"v\":\"AQ\",\"e\":0}\n", string(b))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, PrivateFileMode, fi.Mode().Perm())
}

func TestWriteFileOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	err := File(path).Write(nil, []byte("{}"), PublicFileMode)
	require.Error(t, err)

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "open", fe.Op)
	require.Equal(t, path, fe.Path)
	require.True(t, fe.NotFound())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteStdoutFailure(t *testing.T) {
	err := Stdout.Write(failingWriter{}, []byte("{}"), PublicFileMode)
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "write", fe.Op)
	require.Equal(t, "stdout", fe.Path)
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	b, err := ReadInput(nil, path)
	require.NoError(t, err)
	require.Equal(t, "{}", string(b))

	b, err = ReadInput(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	require.Equal(t, "from stdin", string(b))

	_, err = ReadInput(nil, filepath.Join(dir, "nope.json"))
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	require.True(t, fe.NotFound())
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, "read "+filepath.Join(dir, "nope.json")+": no such file or directory", err.Error())
}

func TestStdinCount(t *testing.T) {
	require.Equal(t, 0, StdinCount("a", "b"))
	require.Equal(t, 1, StdinCount("a", "-"))
	require.Equal(t, 2, StdinCount("-", "b", "-"))
}

func TestExplicitBzero(t *testing.T) {
	b := []byte("secret key material")
	ExplicitBzero(b)
	require.Equal(t, make([]byte, len(b)), b)
}
