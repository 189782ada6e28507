// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
)

// snapshotAsset is the wire form of avax.Asset: a plain struct literal
// cannot set Asset's unexported issuance-tracking field, so the snapshot
// carries it explicitly and restores through avax.RestoreAsset.
type snapshotAsset struct {
	Properties    avax.AssetProperties `json:"properties"`
	Units         uint64               `json:"units"`
	LastIssuedSeq avax.SeqNum          `json:"last_issued_seq"`
	EverIssued    bool                 `json:"ever_issued"`
}

// snapshotV1 is the on-disk representation of Status. Field names are part
// of the wire format; do not rename without bumping Version.
type snapshotV1 struct {
	Version     int                  `json:"version"`
	Height      uint64               `json:"height"`
	NextTxnSID  uint64               `json:"next_txn_sid"`
	UTXOs       []avax.UTXO          `json:"utxos"`
	Assets      []snapshotAsset      `json:"assets"`
	Validators  []staking.Validator  `json:"validators"`
	Delegations []staking.Delegation `json:"delegations"`
}

const snapshotVersion = 1

// Snapshot writes the full ledger state to w as a single JSON document. It
// is a pluggable hook: nothing in the block pipeline calls it, and holding
// a write is the caller's responsibility (typically taken under the same
// lock the ledger package serializes FinishBlock with).
func (s *Status) Snapshot(w io.Writer) error {
	snap := snapshotV1{
		Version:    snapshotVersion,
		Height:     s.height,
		NextTxnSID: s.nextTxnSID,
		UTXOs:      make([]avax.UTXO, 0, len(s.utxos)),
		Assets:     make([]snapshotAsset, 0, len(s.assets)),
	}
	for _, utxo := range s.utxos {
		snap.UTXOs = append(snap.UTXOs, utxo)
	}
	for _, asset := range s.assets {
		snap.Assets = append(snap.Assets, snapshotAsset{
			Properties:    asset.Properties,
			Units:         asset.Units,
			LastIssuedSeq: asset.LastIssuedSeq,
			EverIssued:    asset.HasIssued(),
		})
	}
	for _, v := range s.staking.Validators {
		snap.Validators = append(snap.Validators, v)
	}
	for _, d := range s.staking.Delegations {
		snap.Delegations = append(snap.Delegations, d)
	}

	enc := json.NewEncoder(w)
	return enc.Encode(snap)
}

// Restore replaces the receiver's entire state with the document r holds,
// produced by a prior Snapshot call. It is meant to run once, before the
// ledger package begins driving blocks through Status; callers must not
// call it against a Status already serving traffic.
func (s *Status) Restore(r io.Reader) error {
	var snap snapshotV1
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("state: decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("state: unsupported snapshot version %d", snap.Version)
	}

	utxos := make(map[avax.Address]avax.UTXO, len(snap.UTXOs))
	for _, u := range snap.UTXOs {
		utxos[u.Addr] = u
	}
	assets := make(map[avax.AssetTypeCode]avax.Asset, len(snap.Assets))
	for _, a := range snap.Assets {
		assets[a.Properties.Code] = avax.RestoreAsset(a.Properties, a.Units, a.LastIssuedSeq, a.EverIssued)
	}
	table := staking.NewTable()
	for _, v := range snap.Validators {
		table.RegisterValidator(v, 0)
	}
	for _, d := range snap.Delegations {
		delegator := ids.ShortIDFromPublicKey(d.DelegatorPubKey)
		table.Delegations[staking.DelegatorKey{Delegator: delegator, Validator: d.Validator}] = d
	}

	s.utxos = utxos
	s.assets = assets
	s.staking = table
	s.height = snap.Height
	s.nextTxnSID = snap.NextTxnSID
	return nil
}
