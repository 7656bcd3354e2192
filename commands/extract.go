// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katzenpost/pheutil/common"
	"github.com/katzenpost/pheutil/core/utils"
	"github.com/katzenpost/pheutil/dispatch"
)

func extract() *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:        "extract",
		Blurb:       "Extract the public key from a PRIVATE key",
		Description: "Extract the public key from a private key",
		Usage:       "PRIVATEKEY [OUTPUT]",
		Args:        cobra.RangeArgs(1, 2),
		Prepare: func(inv *dispatch.Invocation) (dispatch.Action, error) {
			target := utils.Stdout
			if len(inv.Args) == 2 {
				target = utils.ParseOutputTarget(inv.Args[1])
			}
			inv.Log.Infof("Using destination of %s", target)

			return func(env *dispatch.Env, args []string) error {
				sk, err := readPrivateKey(env, args[0])
				if err != nil {
					return err
				}
				pub, err := sk.PublicJSON()
				if err != nil {
					return err
				}
				if err := target.Write(env.Stdout, pub, utils.PublicFileMode); err != nil {
					return err
				}
				env.Log.Infof("Wrote public key %s to %s", common.KeyID(sk.Public.N), target)
				return nil
			}, nil
		},
	}
}
