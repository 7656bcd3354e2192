// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katzenpost/pheutil/core/crypto/paillier"
	"github.com/katzenpost/pheutil/dispatch"
)

func encrypt() *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:  "encrypt",
		Blurb: "Encrypt a value with the given public key",
		Description: "Encrypt a value with the given public key\n\n" +
			"The PLAINTEXT will be interpreted as a floating point number.\n" +
			"\n" +
			"Output will be a JSON object with a \"v\" attribute containing the\n" +
			"ciphertext as a string, and \"e\" the exponent as an integer.",
		Usage: "[--output=FILE] PUBLICKEY PLAINTEXT",
		Args:  cobra.ExactArgs(2),
		Flags: addOutputFlag,
		Prepare: func(inv *dispatch.Invocation) (dispatch.Action, error) {
			target, err := outputTarget(inv)
			if err != nil {
				return nil, err
			}
			value, err := parsePlaintext(inv.Args[1])
			if err != nil {
				return nil, err
			}
			inv.Log.Infof("Encrypting %v", value)

			return func(env *dispatch.Env, args []string) error {
				pk, err := readPublicKey(env, args[0])
				if err != nil {
					return err
				}
				en, err := pk.Encrypt(env.Rand, value, paillier.DefaultPrecision)
				if err != nil {
					return err
				}
				return writeEncryptedNumber(env, target, en)
			}, nil
		},
	}
}
