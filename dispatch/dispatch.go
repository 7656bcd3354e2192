// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

// Package dispatch resolves a command line to one registered command and
// runs it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/katzenpost/hpqc/rand"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/op/go-logging.v1"

	"github.com/katzenpost/pheutil/common"
	"github.com/katzenpost/pheutil/core/log"
)

// Invocation is the parsed command line handed to a descriptor's Prepare
// step. Help never reaches Prepare: a help request is answered first.
type Invocation struct {
	Verb    string
	Verbose bool

	// Flags holds the global and command options.
	Flags *pflag.FlagSet
	Args  []string

	// Log traces option resolution.
	Log *logging.Logger
}

// Env is what an action may use besides its arguments.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log  *logging.Logger
	Rand io.Reader
}

// App is the command line program.
type App struct {
	Name     string
	Registry *Registry
	Backend  *log.Backend

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Rand defaults to the hpqc entropy source.
	Rand io.Reader
}

// run is the state of one invocation.
type run struct {
	app     *App
	verbose bool
	action  Action
	status  int
}

// Run executes args, which exclude the program name, and returns the
// process exit status.
func (a *App) Run(ctx context.Context, args []string) int {
	r := &run{app: a}
	root := r.newRootCommand()

	switch {
	case len(args) == 1 && args[0] == "--version":
		root.SetArgs(args)
	case len(args) == 0 || !a.registered(args[0]):
		root.SetArgs([]string{"--help"})
	default:
		root.SetArgs(args)
	}

	if err := common.Execute(ctx, root); err != nil {
		return StatusParseFailure
	}
	return r.status
}

func (a *App) registered(name string) bool {
	_, ok := a.Registry.Lookup(name)
	return ok
}

func (a *App) random() io.Reader {
	if a.Rand != nil {
		return a.Rand
	}
	return rand.Reader
}

func (r *run) newRootCommand() *cobra.Command {
	a := r.app
	root := &cobra.Command{
		Use:   a.Name + " COMMAND",
		Short: "Paillier key and ciphertext utility",
		Long: fmt.Sprintf("Manage Paillier keys and ciphertexts.\n\n"+
			"Try %s COMMAND --help for command usage.", a.Name),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !r.verbose {
				return nil
			}
			return a.Backend.SetDefaultLevel(log.VerboseLevel)
		},
	}
	root.SetIn(a.Stdin)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)
	root.PersistentFlags().BoolVarP(&r.verbose, "verbose", "v", false, "Enable verbose logging")
	root.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	for _, d := range a.Registry.Descriptors() {
		root.AddCommand(r.newCommand(d))
	}
	return root
}

func (r *run) newCommand(d *Descriptor) *cobra.Command {
	a := r.app
	l := a.Backend.GetLogger(d.Name)
	cmd := &cobra.Command{
		Use:                   d.Name + " " + d.Usage,
		Short:                 d.Blurb,
		Long:                  d.Description,
		Args:                  d.Args,
		DisableFlagsInUseLine: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			l.Infof("Running %s with arguments %q", d.Name, args)
			action, err := d.Prepare(&Invocation{
				Verb:    d.Name,
				Verbose: r.verbose,
				Flags:   cmd.Flags(),
				Args:    args,
				Log:     l,
			})
			if err != nil {
				return err
			}
			r.action = action
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := r.action(&Env{
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
				Log:    l,
				Rand:   a.random(),
			}, args)
			r.status = r.finish(cmd.ErrOrStderr(), l, err)
			return nil
		},
	}
	if d.Flags != nil {
		d.Flags(cmd.Flags())
	}
	return cmd
}

// finish maps the result of an action to an exit status. Only an
// ExitError changes the status; any other failure is logged.
func (r *run) finish(stderr io.Writer, l *logging.Logger, err error) int {
	if err == nil {
		return StatusOK
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		if exit.Err != nil {
			common.PrintError(stderr, exit.Err)
		}
		return exit.Code
	}
	l.Warningf("Failed to run command. Reason: %v", err)
	return StatusOK
}
