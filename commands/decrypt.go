// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katzenpost/pheutil/core/utils"
	"github.com/katzenpost/pheutil/dispatch"
)

func decrypt() *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:  "decrypt",
		Blurb: "Decrypt ENCRYPTED using PRIVATEKEY",
		Description: "Decrypt ENCRYPTED using PRIVATEKEY\n\n" +
			"Decrypted value could be an integer or float.",
		Usage: "[--output=FILE] PRIVATEKEY ENCRYPTED",
		Args:  cobra.ExactArgs(2),
		Flags: addOutputFlag,
		Prepare: func(inv *dispatch.Invocation) (dispatch.Action, error) {
			if err := checkInputs(inv.Args...); err != nil {
				return nil, err
			}
			target, err := outputTarget(inv)
			if err != nil {
				return nil, err
			}

			return func(env *dispatch.Env, args []string) error {
				doc, err := readPrivateKey(env, args[0])
				if err != nil {
					return err
				}
				en, err := readEncryptedNumber(env, args[1])
				if err != nil {
					return err
				}
				sk, err := doc.Paillier()
				if err != nil {
					return err
				}
				plaintext, err := sk.Decrypt(en)
				if err != nil {
					return err
				}
				return target.Write(env.Stdout, []byte(plaintext.String()), utils.PublicFileMode)
			}, nil
		},
	}
}
