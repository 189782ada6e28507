// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"errors"
	"fmt"
)

// Block-pipeline errors, spec.md §7, distinct from the txs package's
// per-transaction errors because they describe misuse of the
// StartBlock/ApplyTransaction/FinishBlock/AbortBlock protocol itself.
var (
	ErrNoOpenBlock      = errors.New("ledger: no block is open")
	ErrBlockAlreadyOpen = errors.New("ledger: a block is already open")
	ErrUnknownTempSID   = errors.New("ledger: unknown TxnTempSID")
)

func newInternalError(msg string) error {
	return fmt.Errorf("ledger: internal inconsistency: %s", msg)
}
