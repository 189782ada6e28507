// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger implements LedgerState (spec.md §4.3): the four-phase
// block pipeline (StartBlock/ApplyTransaction/FinishBlock/AbortBlock)
// wrapped around LedgerStatus (ledger/state).
package ledger

import (
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/ledger/txs/effect"
	"github.com/zorachain/ledger/utils/set"
)

// appliedTxn records one accepted transaction's effect, kept in insertion
// order so FinishBlock can assign canonical TxnSIDs and UtxoAddresses in
// the ordering spec.md §4.3's "Ordering guarantee" requires.
type appliedTxn struct {
	tempSID txs.TxnTempSID
	eff     *effect.Effect
}

// BlockContext is the scratch overlay accumulating one candidate block's
// effects (spec.md §3: "overlay of additions/removals, temp-SID counter").
// It is created by LedgerState.StartBlock, passed by value (as a pointer
// the caller must not retain a second handle to — SubmissionServer holds
// at most one at a time per spec.md §4.4) and consumed by exactly one of
// FinishBlock or AbortBlock.
//
// Simplification vs. the teacher's state.Diff: because spec.md assigns
// UtxoAddresses only at FinishBlock, outputs produced by a transaction
// earlier in the same block are not yet addressable and so cannot be
// referenced by a later transaction's inputs in the same block — every
// input must name a UTXO already committed to LedgerStatus. This overlay
// therefore only needs to track spent addresses and asset-registry deltas
// for the replay/double-spend checks, not a full copy-on-write UTXO view.
type BlockContext struct {
	nextTempSID txs.TxnTempSID
	order       []appliedTxn

	// height is the height this block will occupy once committed, used to
	// stamp new Delegation/Undelegation records.
	height uint64

	spent set.Set[avax.Address]

	// overlayAssets mirrors LedgerStatus's asset registry plus any
	// creations/issuance bumps applied so far this block, so that
	// AssetCreation replay and AssetIssuance seq checks see in-block state.
	overlayAssets map[avax.AssetTypeCode]avax.Asset

	stakingOverlay *staking.Table
}

func newBlockContext(height uint64, baseAssets map[avax.AssetTypeCode]avax.Asset, baseStaking *staking.Table) *BlockContext {
	overlay := make(map[avax.AssetTypeCode]avax.Asset, len(baseAssets))
	for k, v := range baseAssets {
		overlay[k] = v.Clone()
	}
	return &BlockContext{
		height:         height,
		spent:          set.NewSet[avax.Address](0),
		overlayAssets:  overlay,
		stakingOverlay: baseStaking.Clone(),
	}
}

// PendingCount reports how many transactions have been applied to this
// block so far.
func (b *BlockContext) PendingCount() int {
	return len(b.order)
}
