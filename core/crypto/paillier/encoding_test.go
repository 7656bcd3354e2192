// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package paillier

import (
	"math"
	"math/big"
	"testing"

	"github.com/katzenpost/hpqc/rand"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		mantissa  string
		exponent  int
	}{
		{"pi-ish", 3.14, DefaultPrecision, "842887332", -7},
		{"one", 1.0, DefaultPrecision, "268435456", -7},
		{"zero", 0, DefaultPrecision, "0", -14},
		{"negative full precision", -2.5, 0, "-11258999068426240", -13},
		{"large", 1e6, DefaultPrecision, "256000000", -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Encode(tt.value, tt.precision)
			require.NoError(t, err)
			require.Equal(t, tt.exponent, enc.Exponent)
			require.Equal(t, tt.mantissa, enc.Mantissa.String())
			if tt.precision > 0 {
				require.LessOrEqual(t, enc.Mantissa.BitLen(), tt.precision-1)
			}
		})
	}
}

func TestEncodeRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Encode(v, DefaultPrecision)
		require.ErrorIs(t, err, ErrNotFinite)
	}
}

func TestEncodedNumberString(t *testing.T) {
	require.Equal(t, "768", (&EncodedNumber{Mantissa: big.NewInt(3), Exponent: 2}).String())
	require.Equal(t, "0.5", (&EncodedNumber{Mantissa: big.NewInt(8), Exponent: -1}).String())
	require.Equal(t, "-7", (&EncodedNumber{Mantissa: big.NewInt(-7), Exponent: 0}).String())

	e := &EncodedNumber{Mantissa: big.NewInt(5), Exponent: 1}
	lower, err := e.DecreaseExponentTo(-1)
	require.NoError(t, err)
	require.Equal(t, "1280", lower.Mantissa.String())
	require.Equal(t, 0, e.Rat().Cmp(lower.Rat()))

	_, err = e.DecreaseExponentTo(2)
	require.ErrorIs(t, err, ErrExponent)
}

func TestEncryptDecrypt(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	for _, v := range []float64{3.14, -42.5, 0, 1e6, 0.001, -1e-9, 123456789.125} {
		en, err := pk.Encrypt(rand.Reader, v, DefaultPrecision)
		require.NoError(t, err)

		dec, err := sk.Decrypt(en)
		require.NoError(t, err)
		require.Equal(t, en.Exponent, dec.Exponent)

		tolerance := math.Pow(Base, float64(en.Exponent))
		require.InDelta(t, v, dec.Float64(), tolerance, "value %v", v)
	}
}

func TestAdd(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	a, err := pk.Encrypt(rand.Reader, 3.5, DefaultPrecision)
	require.NoError(t, err)
	b, err := pk.Encrypt(rand.Reader, -1.25, DefaultPrecision)
	require.NoError(t, err)

	sum, err := pk.Add(a, b)
	require.NoError(t, err)
	dec, err := sk.Decrypt(sum)
	require.NoError(t, err)
	require.Equal(t, 2.25, dec.Float64())
}

func TestAddAlignsExponents(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	large, err := pk.Encrypt(rand.Reader, 1e6, DefaultPrecision)
	require.NoError(t, err)
	small, err := pk.Encrypt(rand.Reader, 0.001, DefaultPrecision)
	require.NoError(t, err)
	require.NotEqual(t, large.Exponent, small.Exponent)

	sum, err := pk.Add(large, small)
	require.NoError(t, err)
	require.Equal(t, small.Exponent, sum.Exponent)

	dec, err := sk.Decrypt(sum)
	require.NoError(t, err)
	require.InDelta(t, 1000000.001, dec.Float64(), 1e-6)

	_, err = pk.DecreaseExponentTo(small, large.Exponent)
	require.ErrorIs(t, err, ErrExponent)
}

func TestAddPlaintext(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	a, err := pk.Encrypt(rand.Reader, 10.5, DefaultPrecision)
	require.NoError(t, err)

	for _, tt := range []struct {
		add, want float64
	}{
		{2, 12.5},
		{-20.75, -10.25},
		{0.0001, 10.5001},
		{1e6, 1000010.5},
	} {
		sum, err := pk.AddPlaintext(a, tt.add, DefaultPrecision)
		require.NoError(t, err)
		dec, err := sk.Decrypt(sum)
		require.NoError(t, err)
		require.InDelta(t, tt.want, dec.Float64(), math.Pow(Base, float64(sum.Exponent)))
	}

	_, err = pk.AddPlaintext(a, math.NaN(), DefaultPrecision)
	require.ErrorIs(t, err, ErrNotFinite)
}

func TestOverflow(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	tooBig := &EncodedNumber{Mantissa: new(big.Int).Add(pk.MaxInt, one), Exponent: 0}
	_, err := pk.EncryptEncoded(rand.Reader, tooBig)
	require.ErrorIs(t, err, ErrOverflow)

	// A raw value in the gap between MaxInt and n-MaxInt has no signed meaning.
	gap := new(big.Int).Add(pk.MaxInt, big.NewInt(1))
	c, err := pk.EncryptRaw(rand.Reader, gap)
	require.NoError(t, err)
	_, err = sk.Decrypt(&EncryptedNumber{Ciphertext: c})
	require.ErrorIs(t, err, ErrOverflow)
}

func TestInvalidCiphertext(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	bad := &EncryptedNumber{Ciphertext: new(big.Int).Set(pk.NSquared)}
	good, err := pk.Encrypt(rand.Reader, 1, DefaultPrecision)
	require.NoError(t, err)

	_, err = sk.Decrypt(bad)
	require.ErrorIs(t, err, ErrInvalidCiphertext)
	_, err = pk.Add(good, bad)
	require.ErrorIs(t, err, ErrInvalidCiphertext)
	_, err = pk.AddPlaintext(bad, 1, DefaultPrecision)
	require.ErrorIs(t, err, ErrInvalidCiphertext)
	_, err = sk.Decrypt(nil)
	require.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestExponentRange(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	good, err := pk.Encrypt(rand.Reader, 1.5, DefaultPrecision)
	require.NoError(t, err)

	for _, e := range []int{MaxExponent + 1, -MaxExponent - 1, 2305843009213693953, math.MaxInt64, math.MinInt64} {
		bad := &EncryptedNumber{Ciphertext: good.Ciphertext, Exponent: e}

		_, err := sk.Decrypt(bad)
		require.ErrorIs(t, err, ErrExponentRange, "exponent %d", e)
		_, err = pk.Add(good, bad)
		require.ErrorIs(t, err, ErrExponentRange, "exponent %d", e)
		_, err = pk.Add(bad, good)
		require.ErrorIs(t, err, ErrExponentRange, "exponent %d", e)
		_, err = pk.AddPlaintext(bad, 2, DefaultPrecision)
		require.ErrorIs(t, err, ErrExponentRange, "exponent %d", e)
		_, err = pk.DecreaseExponentTo(good, e)
		require.Error(t, err, "exponent %d", e)

		_, err = (&EncodedNumber{Mantissa: big.NewInt(1), Exponent: e}).DecreaseExponentTo(0)
		require.ErrorIs(t, err, ErrExponentRange, "exponent %d", e)
		_, err = pk.EncryptEncoded(rand.Reader, &EncodedNumber{Mantissa: big.NewInt(1), Exponent: e})
		require.ErrorIs(t, err, ErrExponentRange, "exponent %d", e)
	}

	_, err = pk.Add(
		&EncryptedNumber{Ciphertext: good.Ciphertext, Exponent: math.MaxInt64},
		&EncryptedNumber{Ciphertext: good.Ciphertext, Exponent: math.MinInt64},
	)
	require.ErrorIs(t, err, ErrExponentRange)
}

func TestRescaleOverflow(t *testing.T) {
	sk := newTestKey(t)
	pk := sk.Public()

	// Both exponents are in range, but Base^(gap) is larger than n.
	high, err := pk.Encrypt(rand.Reader, 1, DefaultPrecision)
	require.NoError(t, err)
	high.Exponent = MaxExponent
	low, err := pk.Encrypt(rand.Reader, 1, DefaultPrecision)
	require.NoError(t, err)
	low.Exponent = -MaxExponent

	_, err = pk.DecreaseExponentTo(high, low.Exponent)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = pk.Add(high, low)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = pk.AddPlaintext(low, 1, DefaultPrecision)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = pk.AddPlaintext(high, 1, DefaultPrecision)
	require.ErrorIs(t, err, ErrOverflow)

	// Decrypting the largest exponent in range still succeeds.
	dec, err := sk.Decrypt(high)
	require.NoError(t, err)
	require.Equal(t, MaxExponent, dec.Exponent)
	require.NotEmpty(t, dec.String())
}
