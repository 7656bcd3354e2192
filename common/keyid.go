// SPDX-FileCopyrightText: © 2026 Katzenpost dev team
// SPDX-License-Identifier: AGPL-3.0-only

package common

import (
	"encoding/hex"
	"math/big"

	"github.com/katzenpost/hpqc/hash"
)

const keyIDLen = 8

// KeyID returns a short fingerprint of a Paillier modulus for log lines:
// the hex encoded first bytes of its BLAKE2b-256 digest.
func KeyID(n *big.Int) string {
	sum := hash.Sum256(n.Bytes())
	return hex.EncodeToString(sum[:keyIDLen])
}

const truncateLen = 16

// TruncateForLogging shortens a long encoded value to its first
// characters plus "...".
func TruncateForLogging(s string) string {
	if len(s) <= truncateLen {
		return s
	}
	return s[:truncateLen] + "..."
}
