// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package jwk

import (
	"math/big"

	"github.com/katzenpost/pheutil/core/crypto/paillier"
)

const encryptedNumberDoc = "encrypted number"

// EncryptedNumber is the document form of a ciphertext and the exponent
// of the plaintext it hides.
type EncryptedNumber struct {
	Ciphertext *big.Int
	Exponent   int
}

type encryptedNumberJSON struct {
	V string `json:"v"`
	E int    `json:"e"`
}

type encryptedNumberInput struct {
	V *string `json:"v"`
	E *int    `json:"e"`
}

// NewEncryptedNumber returns the document form of en.
func NewEncryptedNumber(en *paillier.EncryptedNumber) *EncryptedNumber {
	return &EncryptedNumber{
		Ciphertext: new(big.Int).Set(en.Ciphertext),
		Exponent:   en.Exponent,
	}
}

// Paillier returns the library form of e.
func (e *EncryptedNumber) Paillier() *paillier.EncryptedNumber {
	return &paillier.EncryptedNumber{
		Ciphertext: new(big.Int).Set(e.Ciphertext),
		Exponent:   e.Exponent,
	}
}

// Marshal returns the canonical encoding of e.
func (e *EncryptedNumber) Marshal() ([]byte, error) {
	return marshal(&encryptedNumberJSON{
		V: EncodeInt(e.Ciphertext),
		E: e.Exponent,
	})
}

// UnmarshalEncryptedNumber decodes an encrypted number document.
func UnmarshalEncryptedNumber(data []byte) (*EncryptedNumber, error) {
	var in encryptedNumberInput
	if err := unmarshal(encryptedNumberDoc, "", data, &in); err != nil {
		return nil, err
	}
	c, err := decodeIntField(encryptedNumberDoc, "v", in.V)
	if err != nil {
		return nil, err
	}
	if in.E == nil {
		return nil, &FormatError{Doc: encryptedNumberDoc, Field: "e", Err: errMissing}
	}
	return &EncryptedNumber{Ciphertext: c, Exponent: *in.E}, nil
}
