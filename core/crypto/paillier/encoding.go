// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package paillier

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
)

const (
	// Base is the radix of the fixed-point exponent.
	Base = 16

	// DefaultPrecision is the number of bits of a signed mantissa used when
	// encoding real numbers for encryption.
	DefaultPrecision = 32

	// MaxExponent bounds the magnitude of the exponent of any number that
	// is decrypted or rescaled. Encode stays far below it for every float64.
	MaxExponent = 1 << 16

	log2Base          = 4
	floatMantissaBits = 53
)

var (
	// ErrNotFinite is returned when encoding NaN or an infinity.
	ErrNotFinite = errors.New("paillier: value is not a finite number")

	// ErrOverflow is returned when a value does not fit the signed range of a key.
	ErrOverflow = errors.New("paillier: value out of range for public key")

	// ErrExponent is returned when asked to raise the exponent of an encrypted number.
	ErrExponent = errors.New("paillier: exponent can only be decreased")

	// ErrExponentRange is returned for an exponent beyond MaxExponent.
	ErrExponentRange = errors.New("paillier: exponent out of range")
)

// EncodedNumber is the fixed-point representation Mantissa * Base^Exponent.
// Mantissa is signed.
type EncodedNumber struct {
	Mantissa *big.Int
	Exponent int
}

// Encode represents value as a fixed-point number. The exponent starts at
// the one that captures every bit of the float64 mantissa and is raised
// until the mantissa fits in a signed integer of precision bits. A
// precision of zero or less keeps the full float64 resolution.
func Encode(value float64, precision int) (*EncodedNumber, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, ErrNotFinite
	}
	exact := new(big.Rat).SetFloat64(value)

	_, binExp := math.Frexp(value)
	exponent := int(math.Floor(float64(binExp-floatMantissaBits) / log2Base))
	mantissa := scaleAndRound(exact, exponent)
	if precision > 0 {
		for mantissa.BitLen() > precision-1 {
			exponent++
			mantissa = scaleAndRound(exact, exponent)
		}
	}
	return &EncodedNumber{Mantissa: mantissa, Exponent: exponent}, nil
}

// scaleAndRound returns value / Base^exponent rounded half away from zero.
func scaleAndRound(value *big.Rat, exponent int) *big.Int {
	scaled := new(big.Rat).Set(value)
	if exponent < 0 {
		scaled.Mul(scaled, new(big.Rat).SetInt(basePow(-exponent)))
	} else {
		scaled.Quo(scaled, new(big.Rat).SetInt(basePow(exponent)))
	}

	num := new(big.Int).Abs(scaled.Num())
	den := scaled.Denom()
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Lsh(r, 1).Cmp(den) >= 0 {
		q.Add(q, one)
	}
	if scaled.Sign() < 0 {
		q.Neg(q)
	}
	return q
}

func basePow(k int) *big.Int {
	return new(big.Int).Lsh(one, uint(k*log2Base))
}

func checkExponent(exponent int) error {
	if exponent < -MaxExponent || exponent > MaxExponent {
		return fmt.Errorf("%w: %d", ErrExponentRange, exponent)
	}
	return nil
}

// checkRescale validates moving from exponent from down to exponent to.
// Both must be in range, so their difference can not overflow.
func checkRescale(from, to int) error {
	if err := checkExponent(from); err != nil {
		return err
	}
	if err := checkExponent(to); err != nil {
		return err
	}
	if to > from {
		return fmt.Errorf("%w: %d > %d", ErrExponent, to, from)
	}
	return nil
}

// DecreaseExponentTo rescales e to a smaller exponent without losing
// precision.
func (e *EncodedNumber) DecreaseExponentTo(exponent int) (*EncodedNumber, error) {
	if err := checkRescale(e.Exponent, exponent); err != nil {
		return nil, err
	}
	m := new(big.Int).Mul(e.Mantissa, basePow(e.Exponent-exponent))
	return &EncodedNumber{Mantissa: m, Exponent: exponent}, nil
}

// Rat returns the exact value of e. The exponent must not exceed
// MaxExponent in magnitude.
func (e *EncodedNumber) Rat() *big.Rat {
	r := new(big.Rat).SetInt(e.Mantissa)
	if e.Exponent < 0 {
		return r.Quo(r, new(big.Rat).SetInt(basePow(-e.Exponent)))
	}
	return r.Mul(r, new(big.Rat).SetInt(basePow(e.Exponent)))
}

// Float64 returns the nearest float64 to e.
func (e *EncodedNumber) Float64() float64 {
	f, _ := e.Rat().Float64()
	return f
}

// String formats e as an integer when it has no fractional part by
// construction, and as the shortest float64 representation otherwise.
func (e *EncodedNumber) String() string {
	if e.Exponent >= 0 {
		return e.Rat().Num().String()
	}
	return strconv.FormatFloat(e.Float64(), 'g', -1, 64)
}

// EncryptedNumber is a ciphertext together with the exponent of the
// encoded plaintext it hides.
type EncryptedNumber struct {
	Ciphertext *big.Int
	Exponent   int
}

// encodedValue maps a signed mantissa into [0, n).
func (pk *PublicKey) encodedValue(e *EncodedNumber) (*big.Int, error) {
	if new(big.Int).Abs(e.Mantissa).Cmp(pk.MaxInt) > 0 {
		return nil, ErrOverflow
	}
	return new(big.Int).Mod(e.Mantissa, pk.N), nil
}

// decodeSigned maps a value in [0, n) back to a signed mantissa.
func (pk *PublicKey) decodeSigned(m *big.Int) (*big.Int, error) {
	if m.Cmp(pk.MaxInt) <= 0 {
		return new(big.Int).Set(m), nil
	}
	if m.Cmp(new(big.Int).Sub(pk.N, pk.MaxInt)) >= 0 {
		return new(big.Int).Sub(m, pk.N), nil
	}
	return nil, ErrOverflow
}

// Encrypt encodes value with the given precision and encrypts it.
func (pk *PublicKey) Encrypt(random io.Reader, value float64, precision int) (*EncryptedNumber, error) {
	enc, err := Encode(value, precision)
	if err != nil {
		return nil, err
	}
	return pk.EncryptEncoded(random, enc)
}

// EncryptEncoded encrypts an already encoded number.
func (pk *PublicKey) EncryptEncoded(random io.Reader, enc *EncodedNumber) (*EncryptedNumber, error) {
	if err := checkExponent(enc.Exponent); err != nil {
		return nil, err
	}
	m, err := pk.encodedValue(enc)
	if err != nil {
		return nil, err
	}
	c, err := pk.EncryptRaw(random, m)
	if err != nil {
		return nil, err
	}
	return &EncryptedNumber{Ciphertext: c, Exponent: enc.Exponent}, nil
}

// Decrypt recovers the encoded plaintext of en.
func (sk *PrivateKey) Decrypt(en *EncryptedNumber) (*EncodedNumber, error) {
	if en == nil || en.Ciphertext == nil {
		return nil, ErrInvalidCiphertext
	}
	if err := checkExponent(en.Exponent); err != nil {
		return nil, err
	}
	m, err := sk.DecryptRaw(en.Ciphertext)
	if err != nil {
		return nil, err
	}
	mantissa, err := sk.decodeSigned(m)
	if err != nil {
		return nil, err
	}
	return &EncodedNumber{Mantissa: mantissa, Exponent: en.Exponent}, nil
}

// DecreaseExponentTo rescales the plaintext hidden in en to a smaller
// exponent by homomorphic multiplication. A scale factor of n or more
// would wrap every nonzero plaintext and is reported as ErrOverflow.
func (pk *PublicKey) DecreaseExponentTo(en *EncryptedNumber, exponent int) (*EncryptedNumber, error) {
	if !pk.validCiphertext(en.Ciphertext) {
		return nil, ErrInvalidCiphertext
	}
	if err := checkRescale(en.Exponent, exponent); err != nil {
		return nil, err
	}
	diff := en.Exponent - exponent
	if diff*log2Base >= pk.N.BitLen() {
		return nil, fmt.Errorf("%w: rescaling by %d^%d", ErrOverflow, Base, diff)
	}
	return &EncryptedNumber{
		Ciphertext: pk.MulRaw(en.Ciphertext, basePow(diff)),
		Exponent:   exponent,
	}, nil
}

// Add returns the encryption of the sum of a and b. The result carries
// the smaller of the two exponents.
func (pk *PublicKey) Add(a, b *EncryptedNumber) (*EncryptedNumber, error) {
	if !pk.validCiphertext(a.Ciphertext) || !pk.validCiphertext(b.Ciphertext) {
		return nil, ErrInvalidCiphertext
	}
	if err := checkExponent(a.Exponent); err != nil {
		return nil, err
	}
	if err := checkExponent(b.Exponent); err != nil {
		return nil, err
	}
	var err error
	switch {
	case a.Exponent > b.Exponent:
		a, err = pk.DecreaseExponentTo(a, b.Exponent)
	case b.Exponent > a.Exponent:
		b, err = pk.DecreaseExponentTo(b, a.Exponent)
	}
	if err != nil {
		return nil, err
	}
	return &EncryptedNumber{
		Ciphertext: pk.AddRaw(a.Ciphertext, b.Ciphertext),
		Exponent:   a.Exponent,
	}, nil
}

// AddPlaintext returns the encryption of a plus value.
func (pk *PublicKey) AddPlaintext(a *EncryptedNumber, value float64, precision int) (*EncryptedNumber, error) {
	if !pk.validCiphertext(a.Ciphertext) {
		return nil, ErrInvalidCiphertext
	}
	if err := checkExponent(a.Exponent); err != nil {
		return nil, err
	}
	enc, err := Encode(value, precision)
	if err != nil {
		return nil, err
	}
	switch {
	case enc.Exponent > a.Exponent:
		enc, err = enc.DecreaseExponentTo(a.Exponent)
	case a.Exponent > enc.Exponent:
		a, err = pk.DecreaseExponentTo(a, enc.Exponent)
	}
	if err != nil {
		return nil, err
	}
	m, err := pk.encodedValue(enc)
	if err != nil {
		return nil, err
	}
	return &EncryptedNumber{
		Ciphertext: pk.AddRaw(a.Ciphertext, pk.rawEncryptNoObfuscation(m)),
		Exponent:   a.Exponent,
	}, nil
}
