// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import "github.com/zorachain/ledger/ids"

// DelegationState is the lifecycle state of a Delegation record, as named
// by spec.md §3: Bond (actively staked), Free (undelegated, awaiting
// claim), Paid (reward claimed / principal returned).
type DelegationState uint8

const (
	Bond DelegationState = iota
	Free
	Paid
)

func (s DelegationState) String() string {
	switch s {
	case Bond:
		return "Bond"
	case Free:
		return "Free"
	case Paid:
		return "Paid"
	default:
		return "Unknown"
	}
}

// Delegation is a bond of native asset from a delegator to a validator
// (spec.md §3). Reward arithmetic is a non-goal (spec.md §1); RewardOwed is
// bookkeeping only, never computed by this package.
type Delegation struct {
	DelegatorPubKey []byte          `json:"delegator_pub_key"`
	Validator       TendermintAddr  `json:"validator"`
	Amount          Amount          `json:"amount"`
	StartHeight     uint64          `json:"start_height"`
	EndHeight       uint64          `json:"end_height"`
	State           DelegationState `json:"state"`
	RewardOwed      Amount          `json:"reward_owed"`
	ReceiverPubKey  []byte          `json:"receiver_pub_key"`
}

// DelegatorKey identifies one (delegator, validator) pair in the staking
// table.
type DelegatorKey struct {
	Delegator ids.ShortID
	Validator TendermintAddr
}
