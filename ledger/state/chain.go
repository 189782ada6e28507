// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state implements LedgerStatus (spec.md §4.1): the authoritative,
// side-effect-free ledger reader, plus the mutation entry point the ledger
// package's block pipeline commits into. Grounded on core/src/store/mod.rs's
// LedgerState (renamed Status here to avoid colliding with the package-level
// LedgerState type that owns the block pipeline).
package state

import (
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
)

// Chain is the read-only capability set spec.md §9's "narrow capability
// sets" design note calls for: everything a query or a block overlay needs
// to see of committed state, without being able to mutate it.
type Chain interface {
	CheckUTXO(addr avax.Address) (avax.UTXO, bool)
	GetAsset(code avax.AssetTypeCode) (avax.Asset, bool)
	// GetStaking returns an immutable snapshot of the staking table
	// (spec.md §4.1's "get_staking() -> immutable view").
	GetStaking() *staking.Table
	GetHeight() uint64
	GetStateCommitment() (root [32]byte, height uint64)
}

var _ Chain = (*Status)(nil)

// Status is the concrete LedgerStatus: the UTXO set, asset registry,
// staking table and height. Its public mutators are Commit and
// SetNextTxnSID, which only the ledger package's block pipeline calls, under
// the caller's RWMutex discipline (spec.md §5), and Restore, for loading a
// snapshot before the pipeline starts.
type Status struct {
	utxos      map[avax.Address]avax.UTXO
	assets     map[avax.AssetTypeCode]avax.Asset
	staking    *staking.Table
	height     uint64
	nextTxnSID uint64
}

func New() *Status {
	return &Status{
		utxos:   make(map[avax.Address]avax.UTXO),
		assets:  make(map[avax.AssetTypeCode]avax.Asset),
		staking: staking.NewTable(),
	}
}

// AssetCodes lists every registered asset's code, for callers that need to
// enumerate the registry (the block overlay snapshot).
func (s *Status) AssetCodes() []avax.AssetTypeCode {
	out := make([]avax.AssetTypeCode, 0, len(s.assets))
	for code := range s.assets {
		out = append(out, code)
	}
	return out
}

// NextTxnSID returns the TxnSID the next committed transaction will
// receive.
func (s *Status) NextTxnSID() uint64 {
	return s.nextTxnSID
}

// SetNextTxnSID advances the TxnSID counter past everything assigned in the
// block just committed.
func (s *Status) SetNextTxnSID(next uint64) {
	s.nextTxnSID = next
}

func (s *Status) CheckUTXO(addr avax.Address) (avax.UTXO, bool) {
	u, ok := s.utxos[addr]
	return u, ok
}

func (s *Status) GetAsset(code avax.AssetTypeCode) (avax.Asset, bool) {
	a, ok := s.assets[code]
	return a, ok
}

func (s *Status) GetStaking() *staking.Table {
	return s.staking.Clone()
}

func (s *Status) GetHeight() uint64 {
	return s.height
}

// CommitUpdate bundles everything a finished block contributes to
// LedgerStatus, assembled by the ledger package once canonical TxnSIDs and
// UtxoAddresses have been assigned.
type CommitUpdate struct {
	AddUTXOs    []avax.UTXO
	RemoveUTXOs []avax.Address
	// NewOrUpdatedAssets carries every asset touched this block: creations
	// and issuance/units bumps alike, already merged.
	NewOrUpdatedAssets []avax.Asset
	Staking            *staking.Table
}

// Commit applies a finished block's changes to LedgerStatus and advances
// height. It is called exactly once per FinishBlock, under the ledger
// package's exclusive lock.
func (s *Status) Commit(u CommitUpdate) {
	for _, addr := range u.RemoveUTXOs {
		delete(s.utxos, addr)
	}
	for _, utxo := range u.AddUTXOs {
		s.utxos[utxo.Addr] = utxo
	}
	for _, asset := range u.NewOrUpdatedAssets {
		s.assets[asset.Properties.Code] = asset
	}
	if u.Staking != nil {
		s.staking = u.Staking
	}
	s.height++
}
