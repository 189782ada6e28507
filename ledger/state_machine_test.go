// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zorachain/ledger/crypto/secp256k1signer"
	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/txs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustKey(t *testing.T) (*secp256k1.PrivateKey, []byte) {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return priv, priv.PubKey().SerializeCompressed()
}

func sign(oracle *secp256k1signer.Oracle, priv *secp256k1.PrivateKey, msg []byte) []byte {
	digest := oracle.Hash(msg)
	return ecdsa.Sign(priv, digest).Serialize()
}

func assetCode(tag byte) avax.AssetTypeCode {
	var code avax.AssetTypeCode
	code[0] = tag
	return code
}

// creationTxn returns a signed single-operation transaction registering a
// brand-new asset type.
func creationTxn(t *testing.T, oracle *secp256k1signer.Oracle, priv *secp256k1.PrivateKey, pub []byte, code avax.AssetTypeCode, nonce uint64) *txs.Transaction {
	t.Helper()
	props := avax.AssetProperties{Code: code, IssuerPublicKey: pub}
	op := &txs.AssetCreation{Body: txs.AssetCreationBody{Properties: props}}
	op.BodySignature = txs.Signature{PubKey: pub, Sig: sign(oracle, priv, op.Body.Properties.MarshalCanonical())}
	return txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{Nonce: nonce}, nil)
}

func issuanceTxn(t *testing.T, oracle *secp256k1signer.Oracle, priv *secp256k1.PrivateKey, pub []byte, code avax.AssetTypeCode, seq uint64, amount uint64, owner ids.ShortID, nonce uint64) *txs.Transaction {
	t.Helper()
	op := &txs.AssetIssuance{Body: txs.AssetIssuanceBody{
		Code:    code,
		SeqNum:  avax.SeqNumFromUint64(seq),
		Outputs: []avax.Output{{Amount: amount, AssetType: code, Owner: owner}},
	}}
	op.BodySignature = txs.Signature{PubKey: pub, Sig: sign(oracle, priv, op.MarshalCanonical())}
	return txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{Nonce: nonce}, nil)
}

func transferTxn(t *testing.T, oracle *secp256k1signer.Oracle, priv *secp256k1.PrivateKey, pub []byte, addr avax.Address, code avax.AssetTypeCode, amount uint64, owner ids.ShortID, nonce uint64) *txs.Transaction {
	t.Helper()
	body := txs.AssetTransferBody{
		Inputs: []txs.TransferInput{{
			Addr:          addr,
			PublicKey:     pub,
			ClaimedAmount: amount,
			ClaimedAsset:  code,
		}},
		Outputs: []avax.Output{{Amount: amount, AssetType: code, Owner: owner}},
	}
	op := &txs.AssetTransfer{Body: body}
	op.OperationSignatures = []txs.Signature{{Sig: sign(oracle, priv, op.MarshalCanonical())}}
	return txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{Nonce: nonce}, nil)
}

// TestAssetLifecycleRoundTrip drives creation -> issuance -> transfer through
// one block each, confirming the UTXO produced by issuance is spendable by a
// later block's transfer.
func TestAssetLifecycleRoundTrip(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := New(oracle, nil, nil)
	priv, pub := mustKey(t)
	owner := ids.ShortIDFromPublicKey(pub)
	code := assetCode(10)

	_, err := ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(creationTxn(t, oracle, priv, pub, code, 1))
	require.NoError(t, err)
	_, err = ls.FinishBlock()
	require.NoError(t, err)

	asset, ok := ls.Chain().GetAsset(code)
	require.True(t, ok)
	require.False(t, asset.HasIssued())

	_, err = ls.StartBlock()
	require.NoError(t, err)
	tempSID, err := ls.ApplyTransaction(issuanceTxn(t, oracle, priv, pub, code, 1, 500, owner, 2))
	require.NoError(t, err)
	results, err := ls.FinishBlock()
	require.NoError(t, err)
	issued := results[tempSID]
	require.Len(t, issued.Addresses, 1)

	asset, ok = ls.Chain().GetAsset(code)
	require.True(t, ok)
	require.Equal(t, uint64(500), asset.Units)

	_, err = ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(transferTxn(t, oracle, priv, pub, issued.Addresses[0], code, 500, owner, 3))
	require.NoError(t, err)
	_, err = ls.FinishBlock()
	require.NoError(t, err)

	_, stillThere := ls.Chain().CheckUTXO(issued.Addresses[0])
	require.False(t, stillThere)
}

func TestApplyTransactionRejectsDoubleSpendWithinBlock(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := New(oracle, nil, nil)
	priv, pub := mustKey(t)
	owner := ids.ShortIDFromPublicKey(pub)
	code := assetCode(11)

	_, err := ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(creationTxn(t, oracle, priv, pub, code, 1))
	require.NoError(t, err)
	_, err = ls.FinishBlock()
	require.NoError(t, err)

	_, err = ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(issuanceTxn(t, oracle, priv, pub, code, 1, 100, owner, 2))
	require.NoError(t, err)
	results, err := ls.FinishBlock()
	require.NoError(t, err)
	addr := results[0].Addresses[0]

	_, err = ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(transferTxn(t, oracle, priv, pub, addr, code, 100, owner, 3))
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(transferTxn(t, oracle, priv, pub, addr, code, 100, owner, 4))
	require.ErrorIs(t, err, txs.ErrMissingInput)
}

func TestApplyTransactionRejectsIssuanceReplay(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := New(oracle, nil, nil)
	priv, pub := mustKey(t)
	owner := ids.ShortIDFromPublicKey(pub)
	code := assetCode(12)

	_, err := ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(creationTxn(t, oracle, priv, pub, code, 1))
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(issuanceTxn(t, oracle, priv, pub, code, 5, 10, owner, 2))
	require.NoError(t, err)
	_, err = ls.FinishBlock()
	require.NoError(t, err)

	_, err = ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.ApplyTransaction(issuanceTxn(t, oracle, priv, pub, code, 5, 10, owner, 3))
	require.ErrorIs(t, err, txs.ErrReplay)
	require.NoError(t, ls.AbortBlock())
}

func TestStartBlockRejectsDoubleOpen(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := New(oracle, nil, nil)
	_, err := ls.StartBlock()
	require.NoError(t, err)
	_, err = ls.StartBlock()
	require.ErrorIs(t, err, ErrBlockAlreadyOpen)
	require.NoError(t, ls.AbortBlock())
}

func TestApplyTransactionRequiresOpenBlock(t *testing.T) {
	oracle := &secp256k1signer.Oracle{}
	ls := New(oracle, nil, nil)
	priv, pub := mustKey(t)
	_, err := ls.ApplyTransaction(creationTxn(t, oracle, priv, pub, assetCode(13), 1))
	require.ErrorIs(t, err, ErrNoOpenBlock)
}
