// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/katzenpost/hpqc/rand"

	"github.com/katzenpost/pheutil/commands"
	"github.com/katzenpost/pheutil/core/log"
	"github.com/katzenpost/pheutil/dispatch"
)

func main() {
	backend, err := log.New(os.Stderr, log.QuietLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logging backend: %v\n", err)
		os.Exit(1)
	}

	app := &dispatch.App{
		Name:     "pheutil",
		Registry: commands.NewRegistry(),
		Backend:  backend,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Rand:     rand.Reader,
	}
	os.Exit(app.Run(context.Background(), os.Args[1:]))
}
