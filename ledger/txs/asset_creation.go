// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"bytes"

	"github.com/zorachain/ledger/ledger/avax"
)

var _ Operation = (*AssetCreation)(nil)

// AssetCreationBody is the signed payload of an AssetCreation operation.
type AssetCreationBody struct {
	Properties avax.AssetProperties `json:"properties"`
}

// AssetCreation registers a new asset type (spec.md §3/§4.1).
type AssetCreation struct {
	Body          AssetCreationBody `json:"body"`
	BodySignature Signature         `json:"body_signature"`
}

func (*AssetCreation) Kind() OpKind { return OpAssetCreation }

func (op *AssetCreation) MarshalCanonical() []byte {
	buf := new(bytes.Buffer)
	buf.Write(op.Body.Properties.MarshalCanonical())
	return buf.Bytes()
}
