// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "encoding/json"

// OpKind tags which concrete Operation a transaction carries, matching
// spec.md §3's "Operation variants" row.
type OpKind uint8

const (
	OpAssetCreation OpKind = iota
	OpAssetIssuance
	OpAssetTransfer
	OpDelegation
	OpUndelegation
	OpClaimReward
)

func (k OpKind) String() string {
	switch k {
	case OpAssetCreation:
		return "AssetCreation"
	case OpAssetIssuance:
		return "AssetIssuance"
	case OpAssetTransfer:
		return "AssetTransfer"
	case OpDelegation:
		return "Delegation"
	case OpUndelegation:
		return "UnDelegation"
	case OpClaimReward:
		return "ClaimReward"
	default:
		return "Unknown"
	}
}

// Operation is the common surface every operation variant implements: a
// body plus a body signature by the originator (spec.md §3).
type Operation interface {
	Kind() OpKind
	// MarshalCanonical encodes the operation body in a fixed field order,
	// used both for signature verification and for the transaction's
	// overall content hash.
	MarshalCanonical() []byte
}

func decodeOperation(kind OpKind, data json.RawMessage) (Operation, error) {
	var op Operation
	switch kind {
	case OpAssetCreation:
		op = &AssetCreation{}
	case OpAssetIssuance:
		op = &AssetIssuance{}
	case OpAssetTransfer:
		op = &AssetTransfer{}
	case OpDelegation:
		op = &Delegation{}
	case OpUndelegation:
		op = &Undelegation{}
	case OpClaimReward:
		op = &ClaimReward{}
	default:
		return nil, NewParseError("unknown operation kind")
	}
	if err := json.Unmarshal(data, op); err != nil {
		return nil, NewParseError(err.Error())
	}
	return op, nil
}
