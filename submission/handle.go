// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package submission implements SubmissionServer (spec.md §4.4): the
// block-construction pipeline that buffers pending transactions behind a
// content-addressed handle, opens a block, applies buffered transactions
// against LedgerState, and commits or aborts it.
package submission

import (
	"encoding/hex"

	"github.com/zorachain/ledger/crypto"
	"github.com/zorachain/ledger/ledger/txs"
)

// Handle is the client-facing transaction identifier: hex(hash(canonical
// encoding of the transaction with TxnSID pinned to zero)), spec.md §6's
// "Transaction content identifier". It is independent of where (or
// whether) the transaction ends up committed.
type Handle string

// NewHandle computes tx's Handle using oracle's content hash.
func NewHandle(oracle crypto.Oracle, tx *txs.Transaction) Handle {
	digest := oracle.Hash(tx.WithSID(txs.SIDZero).MarshalCanonical())
	return Handle(hex.EncodeToString(digest))
}

// Status is the lifecycle state of a submitted transaction, spec.md §4.4.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusPending
	StatusCommitted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCommitted:
		return "committed"
	default:
		return "unknown"
	}
}
