// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package paillier

import (
	"math/big"
	"testing"

	"github.com/katzenpost/hpqc/rand"
	"github.com/stretchr/testify/require"
)

const testKeySize = 512

func newTestKey(t *testing.T) *PrivateKey {
	t.Helper()
	sk, err := GenerateKey(rand.Reader, testKeySize)
	require.NoError(t, err)
	return sk
}

func TestGenerateKey(t *testing.T) {
	sk := newTestKey(t)
	require.Equal(t, testKeySize, sk.N.BitLen())
	require.Equal(t, new(big.Int).Mul(sk.N, sk.N), sk.NSquared)

	check := new(big.Int).Mul(sk.Lambda, sk.Mu)
	require.Equal(t, int64(1), check.Mod(check, sk.N).Int64())

	_, err := NewPrivateKey(sk.Public(), sk.Lambda, sk.Mu)
	require.NoError(t, err)
}

func TestGenerateKeyRejectsBadSizes(t *testing.T) {
	for _, bits := range []int{0, 128, MinKeySize - 2, MinKeySize + 1} {
		_, err := GenerateKey(rand.Reader, bits)
		require.ErrorIs(t, err, ErrKeySize, "bits=%d", bits)
	}
}

func TestNewPublicKeyRejectsBadModulus(t *testing.T) {
	for _, n := range []*big.Int{nil, big.NewInt(0), big.NewInt(1), big.NewInt(-15), big.NewInt(10), big.NewInt(3)} {
		_, err := NewPublicKey(n)
		require.ErrorIs(t, err, ErrInvalidPublicKey, "n=%v", n)
	}
	pk, err := NewPublicKey(big.NewInt(3233))
	require.NoError(t, err)
	require.Equal(t, int64(3233*3233), pk.NSquared.Int64())
	require.Equal(t, int64(1076), pk.MaxInt.Int64())
}

func TestNewPrivateKeyRejectsMismatch(t *testing.T) {
	sk := newTestKey(t)
	other := newTestKey(t)

	_, err := NewPrivateKey(sk.Public(), other.Lambda, other.Mu)
	require.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = NewPrivateKey(sk.Public(), sk.Lambda, new(big.Int).Add(sk.Mu, sk.N))
	require.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = NewPrivateKey(sk.Public(), big.NewInt(0), sk.Mu)
	require.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = NewPrivateKey(nil, sk.Lambda, sk.Mu)
	require.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestRawOperations(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	m1 := big.NewInt(15)
	m2 := big.NewInt(20)
	c1, err := pk.EncryptRaw(rand.Reader, m1)
	require.NoError(t, err)
	c2, err := pk.EncryptRaw(rand.Reader, m2)
	require.NoError(t, err)

	d, err := sk.DecryptRaw(c1)
	require.NoError(t, err)
	require.Equal(t, 0, d.Cmp(m1))

	sum, err := sk.DecryptRaw(pk.AddRaw(c1, c2))
	require.NoError(t, err)
	require.Equal(t, int64(35), sum.Int64())

	prod, err := sk.DecryptRaw(pk.MulRaw(c1, big.NewInt(10)))
	require.NoError(t, err)
	require.Equal(t, int64(150), prod.Int64())

	// Two encryptions of the same value differ.
	c1b, err := pk.EncryptRaw(rand.Reader, m1)
	require.NoError(t, err)
	require.NotEqual(t, 0, c1.Cmp(c1b))

	_, err = pk.EncryptRaw(rand.Reader, pk.N)
	require.ErrorIs(t, err, ErrMessageTooLarge)
	_, err = pk.EncryptRaw(rand.Reader, big.NewInt(-1))
	require.ErrorIs(t, err, ErrMessageTooLarge)

	_, err = sk.DecryptRaw(pk.NSquared)
	require.ErrorIs(t, err, ErrInvalidCiphertext)
}
