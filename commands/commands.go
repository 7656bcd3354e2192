// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

// Package commands provides the pheutil commands.
package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/katzenpost/pheutil/common"
	"github.com/katzenpost/pheutil/core/crypto/paillier"
	"github.com/katzenpost/pheutil/core/jwk"
	"github.com/katzenpost/pheutil/core/utils"
	"github.com/katzenpost/pheutil/dispatch"
)

const outputFlag = "output"

// NewRegistry returns a registry holding every pheutil command.
func NewRegistry() *dispatch.Registry {
	r := dispatch.NewRegistry()
	for _, d := range []*dispatch.Descriptor{
		genpkey(),
		extract(),
		encrypt(),
		decrypt(),
		add(),
		addenc(),
	} {
		r.Register(d)
	}
	return r
}

func addOutputFlag(fs *pflag.FlagSet) {
	fs.StringP(outputFlag, "o", "", "Output to given file instead of stdout")
}

func outputTarget(inv *dispatch.Invocation) (utils.OutputTarget, error) {
	s, err := inv.Flags.GetString(outputFlag)
	if err != nil {
		return utils.Stdout, err
	}
	t := utils.ParseOutputTarget(s)
	inv.Log.Infof("Using destination of %s", t)
	return t, nil
}

// checkInputs rejects reading more than one input from stdin.
func checkInputs(paths ...string) error {
	if utils.StdinCount(paths...) > 1 {
		return common.NewUsageError("only one input may be read from stdin")
	}
	return nil
}

func parsePlaintext(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, common.NewUsageError("PLAINTEXT %q is not a finite number", s)
	}
	return v, nil
}

// readInput reads a document named on the command line. Failing to read
// it ends the process with status 1.
func readInput(env *dispatch.Env, what, path string) ([]byte, error) {
	b, err := utils.ReadInput(env.Stdin, path)
	if err != nil {
		var fe *utils.FileError
		if errors.As(err, &fe) && fe.NotFound() {
			return nil, dispatch.Exit(dispatch.StatusFileError, fmt.Errorf("%s file not found: %s", what, path))
		}
		return nil, dispatch.Exit(dispatch.StatusFileError, fmt.Errorf("%s not readable: %v", what, err))
	}
	env.Log.Infof("Read %s from %s", what, path)
	return b, nil
}

func readPublicKey(env *dispatch.Env, path string) (*paillier.PublicKey, error) {
	b, err := readInput(env, "Public key", path)
	if err != nil {
		return nil, err
	}
	doc, err := jwk.UnmarshalPublicKey(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pk, err := doc.Paillier()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	env.Log.Infof("Using public key %s", common.KeyID(pk.N))
	return pk, nil
}

func readPrivateKey(env *dispatch.Env, path string) (*jwk.PrivateKey, error) {
	b, err := readInput(env, "Private key", path)
	if err != nil {
		return nil, err
	}
	defer utils.ExplicitBzero(b)
	doc, err := jwk.UnmarshalPrivateKey(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	env.Log.Infof("Loaded private key %s", common.KeyID(doc.Public.N))
	if doc.Comment != "" {
		env.Log.Infof("Comment: %s", doc.Comment)
	}
	return doc, nil
}

func readEncryptedNumber(env *dispatch.Env, path string) (*paillier.EncryptedNumber, error) {
	b, err := readInput(env, "Encrypted number", path)
	if err != nil {
		return nil, err
	}
	doc, err := jwk.UnmarshalEncryptedNumber(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	env.Log.Infof("Encrypted number %s with exponent %d", common.TruncateForLogging(jwk.EncodeInt(doc.Ciphertext)), doc.Exponent)
	return doc.Paillier(), nil
}

func writeEncryptedNumber(env *dispatch.Env, target utils.OutputTarget, en *paillier.EncryptedNumber) error {
	b, err := jwk.NewEncryptedNumber(en).Marshal()
	if err != nil {
		return err
	}
	if err := target.Write(env.Stdout, b, utils.PublicFileMode); err != nil {
		return err
	}
	env.Log.Infof("Wrote encrypted number with exponent %d to %s", en.Exponent, target)
	return nil
}
