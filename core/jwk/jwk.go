// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

// Package jwk implements the JSON documents used to exchange Paillier keys
// and encrypted numbers with other implementations. The layout follows JSON
// Web Keys (RFC 7517): every integer is the unsigned big-endian bytes of
// its magnitude, base64url encoded without padding.
package jwk

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// KeyType is the "kty" of every Paillier key document.
	KeyType = "DAJ"

	// Algorithm is the "alg" of a public key document.
	Algorithm = "PAI-GN1"
)

// ErrFormat matches every document decoding failure.
var ErrFormat = errors.New("jwk: malformed document")

var errMissing = errors.New("missing required field")

// FormatError describes why a document could not be decoded.
type FormatError struct {
	// Doc names the kind of document being decoded.
	Doc string
	// Field is the offending field, empty when the document itself is bad.
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("jwk: invalid %s: %v", e.Doc, e.Err)
	}
	return fmt.Sprintf("jwk: invalid %s: field %q: %v", e.Doc, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports ErrFormat as a match.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// EncodeInt returns the base64url encoding of the magnitude of x.
func EncodeInt(x *big.Int) string {
	return base64.RawURLEncoding.EncodeToString(x.Bytes())
}

// DecodeInt parses the output of EncodeInt. Correctly sized padding is
// tolerated.
func DecodeInt(s string) (*big.Int, error) {
	enc := base64.RawURLEncoding
	if strings.HasSuffix(s, "=") {
		enc = base64.URLEncoding
	}
	b, err := enc.Strict().DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// unmarshal decodes a whole document into v, turning every failure into a
// FormatError. Field names are reported relative to prefix.
func unmarshal(doc, prefix string, data []byte, v interface{}) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return &FormatError{Doc: doc, Field: prefix, Err: err}
	}
	if typeErr.Field == "" {
		return &FormatError{Doc: doc, Field: prefix, Err: fmt.Errorf("expected a JSON object, got %s", typeErr.Value)}
	}
	return &FormatError{
		Doc:   doc,
		Field: joinField(prefix, typeErr.Field),
		Err:   fmt.Errorf("expected %v, got JSON %s", typeErr.Type, typeErr.Value),
	}
}

func joinField(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// decodeIntField decodes a required base64url integer field.
func decodeIntField(doc, field string, s *string) (*big.Int, error) {
	if s == nil {
		return nil, &FormatError{Doc: doc, Field: field, Err: errMissing}
	}
	x, err := DecodeInt(*s)
	if err != nil {
		return nil, &FormatError{Doc: doc, Field: field, Err: err}
	}
	return x, nil
}

// marshal renders v on a single line without HTML escaping.
func marshal(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
