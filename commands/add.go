// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"github.com/spf13/cobra"

	"github.com/katzenpost/pheutil/core/crypto/paillier"
	"github.com/katzenpost/pheutil/dispatch"
)

func add() *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:  "add",
		Blurb: "Add ENCRYPTED to PLAINTEXT",
		Description: "Add ENCRYPTED and PLAINTEXT numbers together\n" +
			"producing a new encrypted number.",
		Usage: "[--output=FILE] PUBLICKEY ENCRYPTED PLAINTEXT",
		Args:  cobra.ExactArgs(3),
		Flags: addOutputFlag,
		Prepare: func(inv *dispatch.Invocation) (dispatch.Action, error) {
			if err := checkInputs(inv.Args[:2]...); err != nil {
				return nil, err
			}
			target, err := outputTarget(inv)
			if err != nil {
				return nil, err
			}
			value, err := parsePlaintext(inv.Args[2])
			if err != nil {
				return nil, err
			}
			inv.Log.Infof("Adding %v", value)

			return func(env *dispatch.Env, args []string) error {
				pk, err := readPublicKey(env, args[0])
				if err != nil {
					return err
				}
				en, err := readEncryptedNumber(env, args[1])
				if err != nil {
					return err
				}
				sum, err := pk.AddPlaintext(en, value, paillier.DefaultPrecision)
				if err != nil {
					return err
				}
				return writeEncryptedNumber(env, target, sum)
			}, nil
		},
	}
}

func addenc() *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:  "addenc",
		Blurb: "Add ENCRYPTED1 to ENCRYPTED2",
		Description: "Add two encrypted numbers together\n" +
			"producing a new encrypted number.",
		Usage: "[--output=FILE] PUBLICKEY ENCRYPTED1 ENCRYPTED2",
		Args:  cobra.ExactArgs(3),
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
				pk, err := readPublicKey(env, args[0])
				if err != nil {
					return err
				}
				a, err := readEncryptedNumber(env, args[1])
				if err != nil {
					return err
				}
				b, err := readEncryptedNumber(env, args[2])
				if err != nil {
					return err
				}
				sum, err := pk.Add(a, b)
				if err != nil {
					return err
				}
				return writeEncryptedNumber(env, target, sum)
			}, nil
		},
	}
}
