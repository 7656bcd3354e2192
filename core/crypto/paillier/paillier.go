// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

// Package paillier implements the Paillier partially homomorphic
// cryptosystem with a base 16 fixed-point encoding for real numbers.
package paillier

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	// DefaultKeySize is the modulus size in bits used when none is given.
	DefaultKeySize = 2048

	// MinKeySize is the smallest modulus size GenerateKey accepts.
	MinKeySize = 256
)

var (
	// ErrInvalidPublicKey is returned when a modulus can not be a Paillier modulus.
	ErrInvalidPublicKey = errors.New("paillier: invalid public key")

	// ErrInvalidPrivateKey is returned when private components do not match the modulus.
	ErrInvalidPrivateKey = errors.New("paillier: invalid private key")

	// ErrInvalidCiphertext is returned for a ciphertext outside [0, n^2).
	ErrInvalidCiphertext = errors.New("paillier: invalid ciphertext")

	// ErrMessageTooLarge is returned for a raw plaintext outside [0, n).
	ErrMessageTooLarge = errors.New("paillier: message out of range for public key")

	// ErrKeySize is returned by GenerateKey for unusable modulus sizes.
	ErrKeySize = errors.New("paillier: invalid key size")

	one = big.NewInt(1)
)

// PublicKey is a Paillier public key. The generator is fixed to n+1.
type PublicKey struct {
	N        *big.Int
	NSquared *big.Int

	// MaxInt is the largest magnitude a signed encoding may have.
	MaxInt *big.Int
}

// NewPublicKey returns the public key for modulus n.
func NewPublicKey(n *big.Int) (*PublicKey, error) {
	if n == nil || n.Cmp(one) <= 0 || n.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: modulus must be an odd integer greater than one", ErrInvalidPublicKey)
	}
	nn := new(big.Int).Set(n)
	maxInt := new(big.Int).Div(nn, big.NewInt(3))
	maxInt.Sub(maxInt, one)
	if maxInt.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus too small", ErrInvalidPublicKey)
	}
	return &PublicKey{
		N:        nn,
		NSquared: new(big.Int).Mul(nn, nn),
		MaxInt:   maxInt,
	}, nil
}

// PrivateKey is a Paillier private key.
type PrivateKey struct {
	PublicKey

	// Lambda is lcm(p-1, q-1).
	Lambda *big.Int
	// Mu is Lambda^-1 mod n.
	Mu *big.Int
}

// NewPrivateKey assembles a private key from its public key and private
// components, checking that they belong together.
func NewPrivateKey(pub *PublicKey, lambda, mu *big.Int) (*PrivateKey, error) {
	if pub == nil {
		return nil, fmt.Errorf("%w: missing public key", ErrInvalidPrivateKey)
	}
	if lambda == nil || mu == nil || lambda.Sign() <= 0 || mu.Sign() <= 0 {
		return nil, fmt.Errorf("%w: components must be positive", ErrInvalidPrivateKey)
	}
	if mu.Cmp(pub.N) >= 0 {
		return nil, fmt.Errorf("%w: mu is not reduced modulo n", ErrInvalidPrivateKey)
	}
	check := new(big.Int).Mul(lambda, mu)
	check.Mod(check, pub.N)
	if check.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: mu is not the inverse of lambda", ErrInvalidPrivateKey)
	}
	return &PrivateKey{
		PublicKey: *pub,
		Lambda:    new(big.Int).Set(lambda),
		Mu:        new(big.Int).Set(mu),
	}, nil
}

// Public returns the public half of the keypair.
func (sk *PrivateKey) Public() *PublicKey {
	pub := sk.PublicKey
	return &pub
}

// GenerateKey creates a new keypair whose modulus is exactly bits long.
func GenerateKey(random io.Reader, bits int) (*PrivateKey, error) {
	if bits < MinKeySize || bits%2 != 0 {
		return nil, fmt.Errorf("%w: %d bits, need an even size of at least %d", ErrKeySize, bits, MinKeySize)
	}
	for {
		p, err := rand.Prime(random, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := rand.Prime(random, bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}
		pMinus1 := new(big.Int).Sub(p, one)
		qMinus1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pMinus1, qMinus1)
		if new(big.Int).GCD(nil, nil, n, phi).Cmp(one) != 0 {
			continue
		}

		gcd := new(big.Int).GCD(nil, nil, pMinus1, qMinus1)
		lambda := new(big.Int).Div(phi, gcd)
		mu := new(big.Int).ModInverse(lambda, n)
		if mu == nil {
			continue
		}
		pub, err := NewPublicKey(n)
		if err != nil {
			return nil, err
		}
		return &PrivateKey{
			PublicKey: *pub,
			Lambda:    lambda,
			Mu:        mu,
		}, nil
	}
}

// EncryptRaw encrypts m, which must lie in [0, n).
// c = (1 + m*n) * r^n mod n^2
func (pk *PublicKey) EncryptRaw(random io.Reader, m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, ErrMessageTooLarge
	}
	r, err := pk.nonce(random)
	if err != nil {
		return nil, err
	}
	c := pk.rawEncryptNoObfuscation(m)
	c.Mul(c, new(big.Int).Exp(r, pk.N, pk.NSquared))
	c.Mod(c, pk.NSquared)
	return c, nil
}

// rawEncryptNoObfuscation returns 1 + m*n mod n^2, the deterministic
// encryption of m with nonce 1.
func (pk *PublicKey) rawEncryptNoObfuscation(m *big.Int) *big.Int {
	c := new(big.Int).Mul(pk.N, m)
	c.Add(c, one)
	return c.Mod(c, pk.NSquared)
}

func (pk *PublicKey) nonce(random io.Reader) (*big.Int, error) {
	for {
		r, err := rand.Int(random, pk.N)
		if err != nil {
			return nil, err
		}
		if r.Sign() == 0 {
			continue
		}
		if new(big.Int).GCD(nil, nil, r, pk.N).Cmp(one) == 0 {
			return r, nil
		}
	}
}

// DecryptRaw recovers m in [0, n) from c.
// m = L(c^lambda mod n^2) * mu mod n, L(u) = (u-1)/n
func (sk *PrivateKey) DecryptRaw(c *big.Int) (*big.Int, error) {
	if c.Sign() < 0 || c.Cmp(sk.NSquared) >= 0 {
		return nil, ErrInvalidCiphertext
	}
	u := new(big.Int).Exp(c, sk.Lambda, sk.NSquared)
	u.Sub(u, one)
	u.Div(u, sk.N)
	u.Mul(u, sk.Mu)
	return u.Mod(u, sk.N), nil
}

// AddRaw returns the ciphertext of the sum of the plaintexts of c1 and c2.
func (pk *PublicKey) AddRaw(c1, c2 *big.Int) *big.Int {
	c := new(big.Int).Mul(c1, c2)
	return c.Mod(c, pk.NSquared)
}

// MulRaw returns the ciphertext of k times the plaintext of c.
func (pk *PublicKey) MulRaw(c, k *big.Int) *big.Int {
	return new(big.Int).Exp(c, k, pk.NSquared)
}

func (pk *PublicKey) validCiphertext(c *big.Int) bool {
	return c != nil && c.Sign() >= 0 && c.Cmp(pk.NSquared) < 0
}
