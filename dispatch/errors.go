// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package dispatch

import "fmt"

const (
	// StatusOK is returned on success, when help was shown, and when an
	// action failed without asking for another status.
	StatusOK = 0

	// StatusFileError is returned when a required input can not be read.
	StatusFileError = 1

	// StatusParseFailure is returned when the invocation can not be parsed.
	StatusParseFailure = 2
)

// ExitError is returned by an action that wants the process to end with
// a particular status. Err is printed as a diagnostic.
type ExitError struct {
	Code int
	Err  error
}

// Exit returns an ExitError.
func Exit(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
