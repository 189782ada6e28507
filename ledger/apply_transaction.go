// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"

	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking/delegation"
	"github.com/zorachain/ledger/ledger/state"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/ledger/txs/effect"
	"github.com/zorachain/ledger/utils/math"
	"github.com/zorachain/ledger/utils/set"
)

// applyToOverlay runs every overlay-dependent check spec.md §4.3 assigns to
// ApplyTransaction and, if every check passes, mutates blk in place. It
// never partially mutates blk: every read-only check (spends, asset
// registry) runs before the one step that can itself fail after starting
// to mutate (the staking table), and that step's Table methods are
// fail-fast before touching any map.
func applyToOverlay(base state.Chain, blk *BlockContext, eff *effect.Effect) error {
	seen := set.NewSet[avax.Address](len(eff.Spends))
	for _, spend := range eff.Spends {
		if blk.spent.Contains(spend.Addr) || seen.Contains(spend.Addr) {
			return txs.NewMissingInputError(fmt.Sprintf("utxo %s already spent this block", spend.Addr))
		}
		seen.Add(spend.Addr)
		utxo, ok := base.CheckUTXO(spend.Addr)
		if !ok {
			return txs.NewMissingInputError(fmt.Sprintf("utxo %s absent from overlay or never existed", spend.Addr))
		}
		if utxo.Out.AssetType != spend.ClaimedAsset || utxo.Out.Amount != spend.ClaimedAmount {
			return txs.NewInternalInconsistentError(fmt.Sprintf("utxo %s claim does not match stored record", spend.Addr))
		}
	}

	for _, creation := range eff.AssetCreations {
		if _, exists := blk.overlayAssets[creation.Properties.Code]; exists {
			return txs.NewDuplicateAssetError(fmt.Sprintf("asset %s already registered", creation.Properties.Code))
		}
	}

	// issued holds local copies of the assets this transaction issues, so a
	// second issuance of the same code is checked against the first.
	issued := make(map[avax.AssetTypeCode]avax.Asset, len(eff.AssetIssuances))
	for _, issuance := range eff.AssetIssuances {
		asset, exists := issued[issuance.Code]
		if !exists {
			asset, exists = blk.overlayAssets[issuance.Code]
		}
		if !exists {
			return txs.NewMissingInputError(fmt.Sprintf("asset %s not registered", issuance.Code))
		}
		if asset.HasIssued() && !issuance.SeqNum.GreaterThan(asset.LastIssuedSeq) {
			return txs.NewReplayError(fmt.Sprintf("issuance seq for asset %s is not strictly increasing", issuance.Code))
		}
		if _, err := math.Add64(asset.Units, issuance.Units); err != nil {
			return txs.NewInternalInconsistentError(fmt.Sprintf("asset %s issuance overflows unit counter", issuance.Code))
		}
		// Overflow already ruled out by the precheck above; this call cannot fail.
		_ = asset.RecordIssuance(issuance.SeqNum, issuance.Units)
		issued[issuance.Code] = asset
	}

	if err := delegation.Apply(blk.stakingOverlay, eff, blk.height); err != nil {
		return err
	}

	for _, spend := range eff.Spends {
		blk.spent.Add(spend.Addr)
	}
	for _, creation := range eff.AssetCreations {
		blk.overlayAssets[creation.Properties.Code] = avax.Asset{Properties: creation.Properties}
	}
	for code, asset := range issued {
		blk.overlayAssets[code] = asset
	}

	return nil
}
