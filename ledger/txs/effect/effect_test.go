// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package effect

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/require"

	"github.com/zorachain/ledger/crypto/secp256k1signer"
	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
	"github.com/zorachain/ledger/ledger/txs"
)

func mustKey(t *testing.T) (*secp256k1.PrivateKey, []byte) {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return priv, priv.PubKey().SerializeCompressed()
}

func sign(t *testing.T, priv *secp256k1.PrivateKey, msg []byte) []byte {
	t.Helper()
	oracle := secp256k1signer.Oracle{}
	digest := oracle.Hash(msg)
	sig := ecdsa.Sign(priv, digest)
	return sig.Serialize()
}

func assetCode(tag byte) avax.AssetTypeCode {
	var code avax.AssetTypeCode
	code[0] = tag
	return code
}

func TestComputeAssetCreation(t *testing.T) {
	oracle := secp256k1signer.Oracle{}
	priv, pub := mustKey(t)

	props := avax.AssetProperties{Code: assetCode(1), IssuerPublicKey: pub, AssetTypeTag: "widget"}
	op := &txs.AssetCreation{Body: txs.AssetCreationBody{Properties: props}}
	op.BodySignature = txs.Signature{PubKey: pub, Sig: sign(t, priv, op.Body.Properties.MarshalCanonical())}

	tx := txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{Nonce: 1}, nil)
	eff, err := Compute(oracle, nil, tx)
	require.NoError(t, err)
	require.Len(t, eff.AssetCreations, 1)
	require.Equal(t, props.Code, eff.AssetCreations[0].Properties.Code)
}

func TestComputeAssetCreationInvalidSignature(t *testing.T) {
	oracle := secp256k1signer.Oracle{}
	_, pub := mustKey(t)
	otherPriv, _ := mustKey(t)

	props := avax.AssetProperties{Code: assetCode(2)}
	op := &txs.AssetCreation{Body: txs.AssetCreationBody{Properties: props}}
	op.BodySignature = txs.Signature{PubKey: pub, Sig: sign(t, otherPriv, op.Body.Properties.MarshalCanonical())}

	tx := txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{}, nil)
	_, err := Compute(oracle, nil, tx)
	require.ErrorIs(t, err, txs.ErrSignature)
}

func TestComputeAssetTransferBalances(t *testing.T) {
	oracle := secp256k1signer.Oracle{}
	priv, pub := mustKey(t)
	code := assetCode(3)

	body := txs.AssetTransferBody{
		Inputs: []txs.TransferInput{{
			Addr:          avax.Address{TxnSeq: 1},
			PublicKey:     pub,
			ClaimedAmount: 100,
			ClaimedAsset:  code,
		}},
		Outputs: []avax.Output{{Amount: 100, AssetType: code, Owner: ids.ShortIDFromPublicKey(pub)}},
	}
	op := &txs.AssetTransfer{Body: body}
	op.OperationSignatures = []txs.Signature{{Sig: sign(t, priv, op.MarshalCanonical())}}

	tx := txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{}, nil)
	eff, err := Compute(oracle, nil, tx)
	require.NoError(t, err)
	require.Len(t, eff.Spends, 1)
	require.Equal(t, uint64(100), eff.Spends[0].ClaimedAmount)
}

func TestComputeAssetTransferImbalanced(t *testing.T) {
	oracle := secp256k1signer.Oracle{}
	priv, pub := mustKey(t)
	code := assetCode(4)

	body := txs.AssetTransferBody{
		Inputs: []txs.TransferInput{{
			Addr:          avax.Address{TxnSeq: 1},
			PublicKey:     pub,
			ClaimedAmount: 100,
			ClaimedAsset:  code,
		}},
		Outputs: []avax.Output{{Amount: 50, AssetType: code}},
	}
	op := &txs.AssetTransfer{Body: body}
	op.OperationSignatures = []txs.Signature{{Sig: sign(t, priv, op.MarshalCanonical())}}

	tx := txs.NewTransaction([]txs.Operation{op}, txs.NoReplayToken{}, nil)
	_, err := Compute(oracle, nil, tx)
	require.ErrorIs(t, err, txs.ErrInternalInconsistent)
}

func TestComputeDelegationContextRequiresPrincipalPayment(t *testing.T) {
	oracle := secp256k1signer.Oracle{}
	priv, pub := mustKey(t)

	del := &txs.Delegation{
		Body:   txs.DelegationBody{Validator: staking.TendermintAddr("validator-1")},
		PubKey: pub,
	}
	del.Signature = sign(t, priv, del.MarshalCanonical())

	tx := txs.NewTransaction([]txs.Operation{del}, txs.NoReplayToken{}, nil)
	_, err := Compute(oracle, nil, tx)
	require.ErrorIs(t, err, txs.ErrDelegationContext)
}

func TestComputeDelegationContextSucceedsWithPrincipalTransfer(t *testing.T) {
	oracle := secp256k1signer.Oracle{}
	priv, pub := mustKey(t)

	transferBody := txs.AssetTransferBody{
		Inputs: []txs.TransferInput{{
			Addr:          avax.Address{TxnSeq: 1},
			PublicKey:     pub,
			ClaimedAmount: staking.MinPower,
			ClaimedAsset:  avax.NativeAssetTypeCode,
		}},
		Outputs: []avax.Output{{
			Amount:    staking.MinPower,
			AssetType: avax.NativeAssetTypeCode,
			Owner:     staking.CoinbasePrincipalAddr,
		}},
	}
	transfer := &txs.AssetTransfer{Body: transferBody}
	transfer.OperationSignatures = []txs.Signature{{Sig: sign(t, priv, transfer.MarshalCanonical())}}

	del := &txs.Delegation{
		Body:   txs.DelegationBody{Validator: staking.TendermintAddr("validator-1")},
		PubKey: pub,
	}
	del.Signature = sign(t, priv, del.MarshalCanonical())

	tx := txs.NewTransaction([]txs.Operation{transfer, del}, txs.NoReplayToken{}, nil)
	eff, err := Compute(oracle, nil, tx)
	require.NoError(t, err)
	require.NotNil(t, eff.Delegation)
	require.Equal(t, staking.Amount(staking.MinPower), eff.Delegation.Amount)
}
