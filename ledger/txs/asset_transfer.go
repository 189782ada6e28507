// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"bytes"
	"encoding/binary"

	"github.com/zorachain/ledger/ledger/avax"
)

var _ Operation = (*AssetTransfer)(nil)

// TransferInput references a spendable UTXO, the key that authorizes
// spending it, and the sender's claim about what that UTXO holds. The claim
// is cross-checked against the actual UTXO record by LedgerState at apply
// time (an absent UTXO is a MissingInputError, a claim that does not match
// the stored record an InternalInconsistentError); TxnEffect uses it only to
// perform the self-contained per-asset balance check of spec.md §4.2.
type TransferInput struct {
	Addr          avax.Address       `json:"addr"`
	PublicKey     []byte             `json:"public_key"`
	ClaimedAmount uint64             `json:"claimed_amount"`
	ClaimedAsset  avax.AssetTypeCode `json:"claimed_asset"`
}

// AssetTransferBody moves value from existing UTXOs to new ones, optionally
// across asset types if the owner supplies a balanced multi-asset transfer;
// the CORE only checks same-asset-type conservation per spec.md §4.2
// ("transfer inputs/outputs fail asset-balance check").
type AssetTransferBody struct {
	Inputs  []TransferInput `json:"inputs"`
	Outputs []avax.Output   `json:"outputs"`
}

type AssetTransfer struct {
	Body               AssetTransferBody `json:"body"`
	OperationSignatures []Signature      `json:"operation_signatures"`
}

func (*AssetTransfer) Kind() OpKind { return OpAssetTransfer }

func (op *AssetTransfer) MarshalCanonical() []byte {
	buf := new(bytes.Buffer)

	var inCountBuf [4]byte
	binary.BigEndian.PutUint32(inCountBuf[:], uint32(len(op.Body.Inputs)))
	buf.Write(inCountBuf[:])
	for _, in := range op.Body.Inputs {
		buf.Write(in.Addr.MarshalCanonical())
		writeLenPrefixed(buf, in.PublicKey)
		var amtBuf [8]byte
		binary.BigEndian.PutUint64(amtBuf[:], in.ClaimedAmount)
		buf.Write(amtBuf[:])
		buf.Write(in.ClaimedAsset[:])
	}

	var outCountBuf [4]byte
	binary.BigEndian.PutUint32(outCountBuf[:], uint32(len(op.Body.Outputs)))
	buf.Write(outCountBuf[:])
	for _, out := range op.Body.Outputs {
		buf.Write(out.MarshalCanonical())
	}

	return buf.Bytes()
}
