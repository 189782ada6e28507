// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"context"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/zorachain/ledger/crypto/secp256k1signer"
	"github.com/zorachain/ledger/ledger"
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/txs"
)

func mustKey(t *testing.T) (*secp256k1.PrivateKey, []byte) {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return priv, priv.PubKey().SerializeCompressed()
}

func assetCreationTxn(t *testing.T, oracle *secp256k1signer.Oracle, priv *secp256k1.PrivateKey, pub []byte, tag byte, nonce uint64) *txs.Transaction {
	t.Helper()
	var code avax.AssetTypeCode
	code[0] = tag
	props := avax.AssetProperties{Code: code, IssuerPublicKey: pub}
	op := &txs.AssetCreation{Body: txs.AssetCreationBody{Properties: props}}
	digest := oracle.Hash(op.Body.Properties.MarshalCanonical())
	op.BodySignature = txs.Signature{PubKey: pub, Sig: ecdsa.Sign(priv, digest).Serialize()}
	return txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{Nonce: nonce}, nil)
}

func TestHandleTransactionAutoFinalizesAtCapacity(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := ledger.New(oracle, nil, nil)
	priv, pub := mustKey(t)

	server := New(ls, oracle, nil, Config{BlockCapacity: 2})
	ctx := context.Background()

	h1, err := server.HandleTransaction(ctx, assetCreationTxn(t, oracle, priv, pub, 1, 1))
	require.NoError(t, err)
	require.False(t, server.AllCommitted())

	h2, err := server.HandleTransaction(ctx, assetCreationTxn(t, oracle, priv, pub, 2, 2))
	require.NoError(t, err)

	require.True(t, server.AllCommitted())

	rec1, ok := server.TxnStatus(h1)
	require.True(t, ok)
	require.Equal(t, StatusCommitted, rec1.Status)

	rec2, ok := server.TxnStatus(h2)
	require.True(t, ok)
	require.Equal(t, StatusCommitted, rec2.Status)
}

func TestCacheTransactionDuplicateHandleOverwritesByDefault(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := ledger.New(oracle, nil, nil)
	priv, pub := mustKey(t)

	server := New(ls, oracle, nil, Config{BlockCapacity: 10})
	require.NoError(t, server.BeginBlock())

	tx := assetCreationTxn(t, oracle, priv, pub, 3, 1)
	h1, err := server.CacheTransaction(tx)
	require.NoError(t, err)

	// Re-cache the identical transaction: same content, same Handle. The
	// ledger itself rejects the duplicate asset, but the duplicate-policy
	// check only governs the handle bookkeeping, not ledger acceptance.
	_, err = server.CacheTransaction(tx)
	require.Error(t, err)

	rec, ok := server.TxnStatus(h1)
	require.True(t, ok)
	require.Equal(t, StatusPending, rec.Status)

	require.NoError(t, server.AbortBlock())

	// A transaction with no operations applies cleanly every time, so caching
	// it twice reaches the overwrite itself: both submissions share one
	// Handle, and the later one's committed status (TxnSID 1) replaces the
	// earlier one's (TxnSID 0).
	empty := txs.NewTransaction(nil, txs.NoReplayToken{Nonce: 2}, nil)
	require.NoError(t, server.BeginBlock())
	e1, err := server.CacheTransaction(empty)
	require.NoError(t, err)
	e2, err := server.CacheTransaction(empty)
	require.NoError(t, err)
	require.Equal(t, e1, e2)
	require.NoError(t, server.EndBlock())

	rec, ok = server.TxnStatus(e1)
	require.True(t, ok)
	require.Equal(t, StatusCommitted, rec.Status)
	require.Equal(t, txs.TxnSID(1), rec.Result.SID)
}

func TestCacheTransactionDuplicateHandleRejectedWhenConfigured(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := ledger.New(oracle, nil, nil)
	priv, pub := mustKey(t)

	server := New(ls, oracle, nil, Config{BlockCapacity: 10, DuplicatePolicy: DuplicateReject})
	require.NoError(t, server.BeginBlock())

	tx := assetCreationTxn(t, oracle, priv, pub, 4, 1)
	_, err := server.CacheTransaction(tx)
	require.NoError(t, err)
	require.NoError(t, server.EndBlock())

	require.NoError(t, server.BeginBlock())
	_, err = server.CacheTransaction(tx)
	require.ErrorIs(t, err, ErrDuplicateHandle)
}

func TestAbortBlockLeavesPendingEntriesPending(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := ledger.New(oracle, nil, nil)
	priv, pub := mustKey(t)

	server := New(ls, oracle, nil, Config{BlockCapacity: 10})
	require.NoError(t, server.BeginBlock())

	tx := assetCreationTxn(t, oracle, priv, pub, 5, 1)
	h, err := server.CacheTransaction(tx)
	require.NoError(t, err)

	require.NoError(t, server.AbortBlock())

	rec, ok := server.TxnStatus(h)
	require.True(t, ok)
	require.Equal(t, StatusPending, rec.Status)
	require.True(t, server.AllCommitted())
}

func TestEndBlockRequiresPendingTransactions(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := ledger.New(oracle, nil, nil)
	server := New(ls, oracle, nil, Config{BlockCapacity: 10})
	require.NoError(t, server.BeginBlock())
	err := server.EndBlock()
	require.ErrorIs(t, err, ErrNothingPending)
}
