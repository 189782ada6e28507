// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto specifies the external CryptoOracle collaborator
// (spec.md §2 item 1): signature verification and content hashing. The
// ledger core never implements a signature scheme itself — it only
// depends on this interface, which embedders satisfy with the
// secp256k1signer package (or a test double).
package crypto

// Oracle verifies signatures and computes content hashes on behalf of the
// ledger core. Implementations must be safe for concurrent use.
type Oracle interface {
	// Verify reports whether sig is a valid signature over msg by pubKey.
	Verify(pubKey, msg, sig []byte) bool

	// Hash computes a content digest of msg. The digest length is
	// implementation defined but must be stable for identical input.
	Hash(msg []byte) []byte
}
