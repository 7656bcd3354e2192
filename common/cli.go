// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

// Package common provides shared utilities for the pheutil command line.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/carlmjohnson/versioninfo"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Execute runs cmd through fang. fang has already reported a returned
// error to the command's error stream.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	return fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(versioninfo.Short()),
		fang.WithErrorHandler(ErrorHandlerWithUsage(cmd)),
		fang.WithoutManpage(),
		fang.WithoutCompletions(),
	)
}

// UsageError marks an error caused by the way the program was invoked
// rather than by the files it was given.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError formats a UsageError. The message starts with "invalid
// argument" like the errors pflag returns for malformed values.
func NewUsageError(format string, a ...interface{}) error {
	return &UsageError{Err: fmt.Errorf("invalid argument: "+format, a...)}
}

// ErrorHandlerWithUsage creates a custom error handler that displays error messages
// followed by the full program help for CLI argument errors.
func ErrorHandlerWithUsage(cmd *cobra.Command) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		_, _ = fmt.Fprintln(w, styles.ErrorHeader.String())
		_, _ = fmt.Fprintln(w, styles.ErrorText.Render(err.Error()+"."))
		_, _ = fmt.Fprintln(w)

		if isUsageError(err) {
			// The help goes to the error stream with the message.
			cmd.SetOut(w)
			if helpFunc := cmd.HelpFunc(); helpFunc != nil {
				helpFunc(cmd, []string{})
			}
			return
		}
		_, _ = fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		))
		_, _ = fmt.Fprintln(w)
	}
}

// isUsageError determines if an error is related to CLI usage and should trigger
// automatic display of the program help.
func isUsageError(err error) bool {
	var ue *UsageError
	if errors.As(err, &ue) {
		return true
	}
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"bad flag syntax:",
		"unknown command",
		"invalid argument",
		"required flag",
		"accepts",
		"arg(s), received",
		"arg(s), only received",
	} {
		if strings.Contains(s, prefix) {
			return true
		}
	}
	return false
}

var diagnosticHeader = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FF5F87")).
	SetString("ERROR")

// PrintError writes a one line diagnostic for a failed command. Colour is
// only emitted when w is a terminal that supports it.
func PrintError(w io.Writer, err error) {
	cw := colorprofile.NewWriter(w, os.Environ())
	_, _ = fmt.Fprintln(cw, diagnosticHeader.String()+" "+err.Error())
}
