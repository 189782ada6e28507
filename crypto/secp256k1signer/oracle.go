// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package secp256k1signer is the default crypto.Oracle implementation: ECDSA
// over secp256k1 (grounded on the teacher's decred/dcrd dependency, used
// throughout vms/secp256k1fx and vms/platformvm for owner signatures) with
// SHA-256 content hashing.
package secp256k1signer

import (
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/zorachain/ledger/crypto"
)

var _ crypto.Oracle = (*Oracle)(nil)

// Oracle is a stateless secp256k1 + SHA-256 CryptoOracle.
type Oracle struct{}

func New() *Oracle {
	return &Oracle{}
}

// Verify checks a DER-encoded ECDSA signature over sha256(msg) by the given
// compressed or uncompressed public key.
func (Oracle) Verify(pubKeyBytes, msg, sig []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(msg)
	return signature.Verify(digest[:], pubKey)
}

// Hash returns sha256(msg).
func (Oracle) Hash(msg []byte) []byte {
	digest := sha256.Sum256(msg)
	return digest[:]
}
