// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	src := New()

	code := avax.AssetTypeCode{1}
	addr := avax.Address{TxnSeq: 1, OpIndex: 0, OutputIndex: 0}
	owner := ids.ShortIDFromPublicKey([]byte("owner-pub"))

	validatorAddr := staking.TendermintAddr("validator-a")
	delegatorPub := []byte("delegator-pub")
	require.NoError(t, src.staking.Delegate(delegatorPub, ids.ShortIDFromPublicKey(delegatorPub), validatorAddr, staking.MinPower, &staking.Validator{ConsensusAddr: validatorAddr, PublicKey: []byte("pub")}, 1))

	src.Commit(CommitUpdate{
		AddUTXOs: []avax.UTXO{{
			Addr: addr,
			Out:  avax.Output{Amount: 500, AssetType: code, Owner: owner},
		}},
		NewOrUpdatedAssets: []avax.Asset{avax.RestoreAsset(avax.AssetProperties{Code: code}, 500, avax.SeqNumFromUint64(1), true)},
		Staking:            src.staking,
	})
	src.SetNextTxnSID(7)

	var buf bytes.Buffer
	require.NoError(t, src.Snapshot(&buf))

	dst := New()
	require.NoError(t, dst.Restore(&buf))

	require.Equal(t, src.GetHeight(), dst.GetHeight())
	require.Equal(t, src.NextTxnSID(), dst.NextTxnSID())

	utxo, ok := dst.CheckUTXO(addr)
	require.True(t, ok)
	require.Equal(t, uint64(500), utxo.Out.Amount)

	asset, ok := dst.GetAsset(code)
	require.True(t, ok)
	require.Equal(t, uint64(500), asset.Units)
	require.True(t, asset.HasIssued())

	v, ok := dst.GetStaking().GetValidator(validatorAddr)
	require.True(t, ok)
	require.Equal(t, staking.MinPower, v.Power)

	d, ok := dst.GetStaking().GetDelegation(ids.ShortIDFromPublicKey(delegatorPub), validatorAddr)
	require.True(t, ok)
	require.Equal(t, staking.MinPower, d.Amount)
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	dst := New()
	err := dst.Restore(bytes.NewBufferString(`{"version":99}`))
	require.Error(t, err)
}
