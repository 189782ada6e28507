// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking holds the delegated proof-of-stake records referenced by
// spec.md §3's StakingTable row: validators, delegations, and the minimum
// power threshold a self-bonding validator must clear.
package staking

import (
	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/utils/units"
)

// Amount is a native-asset quantity, matching spec.md's Delegation.amount.
type Amount = uint64

// MinPower is the minimum self-bond a first-time validator must stake,
// grounded on STAKING_VALIDATOR_MIN_POWER in the original implementation,
// expressed in the native June denomination.
const MinPower Amount = 1 * units.MilliJune

// CoinbasePrincipalAddr is the well-known escrow address that receives
// delegated stake, grounded on COINBASE_PRINCIPAL_PK in the original
// implementation. Fixed at module init so every node agrees on it without
// needing a genesis parameter.
var CoinbasePrincipalAddr = func() ids.ShortID {
	var addr ids.ShortID
	copy(addr[:], []byte("zorachain-coinbase-principal"))
	return addr
}()

// TendermintAddr is the hex-encoded consensus-level address of a validator,
// matching the original's TendermintAddr alias.
type TendermintAddr string

// Validator is a consensus participant record. Commission is expressed in
// basis points (0-10000) to keep the type integer-only.
type Validator struct {
	ConsensusAddr TendermintAddr `json:"consensus_addr"`
	PublicKey     []byte         `json:"public_key"`
	Power         Amount         `json:"power"`
	CommissionBps uint32         `json:"commission_bps"`
	Owner         ids.ShortID    `json:"owner"`
}

// StakingIsBasicValid performs the structural checks spec.md §4.5 step 4
// requires of a self-staking validator payload: a non-empty consensus
// address, a public key, and a sane commission rate.
func (v Validator) StakingIsBasicValid() bool {
	return v.ConsensusAddr != "" && len(v.PublicKey) > 0 && v.CommissionBps <= 10_000
}
