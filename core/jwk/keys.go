// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package jwk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/katzenpost/pheutil/core/crypto/paillier"
)

const (
	publicKeyDoc  = "public key"
	privateKeyDoc = "private key"
)

// PublicKey is the document form of a Paillier public key.
type PublicKey struct {
	N *big.Int
}

type publicKeyJSON struct {
	Kty    string   `json:"kty"`
	Alg    string   `json:"alg"`
	KeyOps []string `json:"key_ops"`
	N      string   `json:"n"`
}

type publicKeyInput struct {
	Kty *string `json:"kty"`
	N   *string `json:"n"`
}

// NewPublicKey returns the document form of pk.
func NewPublicKey(pk *paillier.PublicKey) *PublicKey {
	return &PublicKey{N: new(big.Int).Set(pk.N)}
}

// Paillier returns the library form of k. This is where the modulus is
// validated.
func (k *PublicKey) Paillier() (*paillier.PublicKey, error) {
	return paillier.NewPublicKey(k.N)
}

func (k *PublicKey) document() *publicKeyJSON {
	return &publicKeyJSON{
		Kty:    KeyType,
		Alg:    Algorithm,
		KeyOps: []string{"encrypt"},
		N:      EncodeInt(k.N),
	}
}

// Marshal returns the canonical encoding of k.
func (k *PublicKey) Marshal() ([]byte, error) {
	return marshal(k.document())
}

// UnmarshalPublicKey decodes a standalone public key document.
func UnmarshalPublicKey(data []byte) (*PublicKey, error) {
	return decodePublicKey(publicKeyDoc, "", data)
}

func decodePublicKey(doc, prefix string, data []byte) (*PublicKey, error) {
	var in publicKeyInput
	if err := unmarshal(doc, prefix, data, &in); err != nil {
		return nil, err
	}
	if err := checkKeyType(doc, joinField(prefix, "kty"), in.Kty); err != nil {
		return nil, err
	}
	n, err := decodeIntField(doc, joinField(prefix, "n"), in.N)
	if err != nil {
		return nil, err
	}
	return &PublicKey{N: n}, nil
}

func checkKeyType(doc, field string, kty *string) error {
	if kty != nil && *kty != KeyType {
		return &FormatError{Doc: doc, Field: field, Err: fmt.Errorf("unsupported key type %q", *kty)}
	}
	return nil
}

// PrivateKey is the document form of a Paillier private key.
type PrivateKey struct {
	Public  *PublicKey
	Lambda  *big.Int
	Mu      *big.Int
	Comment string

	// rawPublic is the "pub" member exactly as it was decoded.
	rawPublic []byte
}

type privateKeyJSON struct {
	Kty     string          `json:"kty"`
	KeyOps  []string        `json:"key_ops"`
	Pub     json.RawMessage `json:"pub"`
	Lambda  string          `json:"lambda"`
	Mu      string          `json:"mu"`
	Comment string          `json:"comment"`
}

type privateKeyInput struct {
	Kty     *string         `json:"kty"`
	Pub     json.RawMessage `json:"pub"`
	Lambda  *string         `json:"lambda"`
	Mu      *string         `json:"mu"`
	Comment *string         `json:"comment"`
}

// NewPrivateKey returns the document form of sk.
func NewPrivateKey(sk *paillier.PrivateKey, comment string) *PrivateKey {
	return &PrivateKey{
		Public:  NewPublicKey(sk.Public()),
		Lambda:  new(big.Int).Set(sk.Lambda),
		Mu:      new(big.Int).Set(sk.Mu),
		Comment: comment,
	}
}

// Paillier returns the library form of k.
func (k *PrivateKey) Paillier() (*paillier.PrivateKey, error) {
	pub, err := k.Public.Paillier()
	if err != nil {
		return nil, err
	}
	return paillier.NewPrivateKey(pub, k.Lambda, k.Mu)
}

// PublicJSON returns the embedded public key document. A decoded key
// yields its "pub" member as found in the input, with insignificant
// whitespace removed.
func (k *PrivateKey) PublicJSON() ([]byte, error) {
	if k.rawPublic != nil {
		return append([]byte(nil), k.rawPublic...), nil
	}
	return k.Public.Marshal()
}

// Marshal returns the canonical encoding of k.
func (k *PrivateKey) Marshal() ([]byte, error) {
	pub, err := k.Public.Marshal()
	if err != nil {
		return nil, err
	}
	return marshal(&privateKeyJSON{
		Kty:     KeyType,
		KeyOps:  []string{"decrypt"},
		Pub:     pub,
		Lambda:  EncodeInt(k.Lambda),
		Mu:      EncodeInt(k.Mu),
		Comment: k.Comment,
	})
}

// UnmarshalPrivateKey decodes a private key document.
func UnmarshalPrivateKey(data []byte) (*PrivateKey, error) {
	var in privateKeyInput
	if err := unmarshal(privateKeyDoc, "", data, &in); err != nil {
		return nil, err
	}
	if err := checkKeyType(privateKeyDoc, "kty", in.Kty); err != nil {
		return nil, err
	}
	if len(in.Pub) == 0 || bytes.Equal(in.Pub, []byte("null")) {
		return nil, &FormatError{Doc: privateKeyDoc, Field: "pub", Err: errMissing}
	}
	pub, err := decodePublicKey(privateKeyDoc, "pub", in.Pub)
	if err != nil {
		return nil, err
	}
	lambda, err := decodeIntField(privateKeyDoc, "lambda", in.Lambda)
	if err != nil {
		return nil, err
	}
	mu, err := decodeIntField(privateKeyDoc, "mu", in.Mu)
	if err != nil {
		return nil, err
	}

	raw := new(bytes.Buffer)
	if err := json.Compact(raw, in.Pub); err != nil {
		return nil, &FormatError{Doc: privateKeyDoc, Field: "pub", Err: err}
	}
	k := &PrivateKey{
		Public:    pub,
		Lambda:    lambda,
		Mu:        mu,
		rawPublic: raw.Bytes(),
	}
	if in.Comment != nil {
		k.Comment = *in.Comment
	}
	return k, nil
}
