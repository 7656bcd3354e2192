// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katzenpost/pheutil/common"
	"github.com/katzenpost/pheutil/core/crypto/paillier"
	"github.com/katzenpost/pheutil/core/jwk"
	"github.com/katzenpost/pheutil/core/utils"
	"github.com/katzenpost/pheutil/dispatch"
)

const (
	keysizeFlag = "keysize"
	messageFlag = "message"
)

func genpkey() *dispatch.Descriptor {
	return &dispatch.Descriptor{
		Name:  "genpkey",
		Blurb: "Create a new paillier keypair",
		Description: "Generate a new public/private keypair for use in\n" +
			"paillier operations.\n" +
			"Output in JSON Web Key format\n" +
			"https://tools.ietf.org/html/rfc7517",
		Usage: "[--keysize=KEYSIZE] [--message=TEXT] [OUTPUT]",
		Args:  cobra.MaximumNArgs(1),
		Flags: func(fs *pflag.FlagSet) {
			fs.IntP(keysizeFlag, "s", paillier.DefaultKeySize, "The keysize in bits")
			fs.StringP(messageFlag, "m", "", "Add an identifying comment to the key")
		},
		Prepare: prepareGenpkey,
	}
}

func prepareGenpkey(inv *dispatch.Invocation) (dispatch.Action, error) {
	keysize, err := inv.Flags.GetInt(keysizeFlag)
	if err != nil {
		return nil, err
	}
	if keysize < paillier.MinKeySize || keysize%2 != 0 {
		return nil, common.NewUsageError("keysize %d: need an even number of at least %d bits", keysize, paillier.MinKeySize)
	}
	if inv.Flags.Changed(keysizeFlag) {
		inv.Log.Infof("Using provided key size of %d", keysize)
	} else {
		inv.Log.Infof("Using default key size of %d", keysize)
	}

	comment, err := inv.Flags.GetString(messageFlag)
	if err != nil {
		return nil, err
	}
	inv.Log.Infof("Comment: %s", comment)

	target := utils.Stdout
	if len(inv.Args) == 1 {
		target = utils.ParseOutputTarget(inv.Args[0])
	}
	inv.Log.Infof("Using destination of %s", target)

	return func(env *dispatch.Env, _ []string) error {
		sk, err := paillier.GenerateKey(env.Rand, keysize)
		if err != nil {
			return err
		}
		env.Log.Infof("Generated private key %s", common.KeyID(sk.N))

		b, err := jwk.NewPrivateKey(sk, comment).Marshal()
		if err != nil {
			return err
		}
		defer utils.ExplicitBzero(b)
		return target.Write(env.Stdout, b, utils.PrivateFileMode)
	}, nil
}
