// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package dispatch

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Action runs a command with the positional arguments left after parsing.
type Action func(env *Env, args []string) error

// Descriptor describes one command. Descriptors are built once when the
// registry is populated and never modified afterwards.
type Descriptor struct {
	// Name selects the command and must be unique.
	Name string
	// Blurb is the one line summary shown in the program help.
	Blurb string
	// Description is shown in the command help.
	Description string
	// Usage describes the positional arguments.
	Usage string

	// Args validates the positional arguments.
	Args cobra.PositionalArgs
	// Flags adds the command's options. It may be nil.
	Flags func(fs *pflag.FlagSet)
	// Prepare validates and normalizes the parsed options and returns
	// the action to run. Its errors are parse failures.
	Prepare func(inv *Invocation) (Action, error)
}

// Registry maps command names to descriptors.
type Registry struct {
	commands map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Descriptor)}
}

// Register adds d. It panics if d is incomplete or its name is taken.
func (r *Registry) Register(d *Descriptor) {
	if d == nil || d.Name == "" || d.Prepare == nil {
		panic("dispatch: incomplete command descriptor")
	}
	if _, exists := r.commands[d.Name]; exists {
		panic(fmt.Sprintf("dispatch: command %s already registered", d.Name))
	}
	r.commands[d.Name] = d
}

// Lookup returns the descriptor for name and whether it exists.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.commands[name]
	return d, ok
}

// Descriptors returns every registered descriptor ordered by name.
func (r *Registry) Descriptors() []*Descriptor {
	ds := make([]*Descriptor, 0, len(r.commands))
	for _, d := range r.commands {
		ds = append(ds, d)
	}
	sort.Slice(ds, func(i, j int) bool {
		return ds[i].Name < ds[j].Name
	})
	return ds
}
