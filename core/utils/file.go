// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// StdioPath is the path that names standard input or standard output.
const StdioPath = "-"

const (
	// PrivateFileMode is used for files holding secret key material.
	PrivateFileMode os.FileMode = 0600

	// PublicFileMode is used for every other document.
	PublicFileMode os.FileMode = 0644
)

// FileError records a failed file operation.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the file did not exist.
func (e *FileError) NotFound() bool {
	return errors.Is(e.Err, fs.ErrNotExist)
}

// OutputTarget is where a command writes its document: either standard
// output or a named file.
type OutputTarget struct {
	path string
}

// Stdout is the standard output target.
var Stdout = OutputTarget{}

// ParseOutputTarget resolves a destination argument. An empty string and
// StdioPath both select standard output.
func ParseOutputTarget(s string) OutputTarget {
	if s == "" || s == StdioPath {
		return Stdout
	}
	return File(s)
}

// File returns the target for the named file.
func File(path string) OutputTarget {
	return OutputTarget{path: path}
}

// IsStdout reports whether t is standard output.
func (t OutputTarget) IsStdout() bool {
	return t.path == ""
}

// Path returns the file name, empty for standard output.
func (t OutputTarget) Path() string {
	return t.path
}

func (t OutputTarget) String() string {
	if t.IsStdout() {
		return "stdout"
	}
	return t.path
}

// Write emits doc followed by a newline. stdout is used when t is standard
// output; otherwise the file is created or truncated with the given mode,
// closed before returning, and removed again if it could not be completely
// written.
func (t OutputTarget) Write(stdout io.Writer, doc []byte, mode os.FileMode) error {
	if t.IsStdout() {
		if err := writeLine(stdout, doc); err != nil {
			return &FileError{Op: "write", Path: t.String(), Err: err}
		}
		return nil
	}

	f, err := os.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return &FileError{Op: "open", Path: t.path, Err: err}
	}
	err = writeLine(f, doc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(t.path)
		return &FileError{Op: "write", Path: t.path, Err: err}
	}
	return nil
}

func writeLine(w io.Writer, doc []byte) error {
	if _, err := w.Write(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadInput returns the contents of path, or everything on stdin when path
// is StdioPath.
func ReadInput(stdin io.Reader, path string) ([]byte, error) {
	if path == StdioPath {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &FileError{Op: "read", Path: "stdin", Err: err}
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return b, nil
}

// StdinCount returns how many of paths name standard input.
func StdinCount(paths ...string) int {
	n := 0
	for _, p := range paths {
		if p == StdioPath {
			n++
		}
	}
	return n
}
