// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"bytes"

	"github.com/zorachain/ledger/ledger/staking"
)

var (
	_ Operation = (*Delegation)(nil)
	_ Operation = (*Undelegation)(nil)
	_ Operation = (*ClaimReward)(nil)
)

// DelegationBody is the signed payload of a Delegation operation
// (spec.md §4.5): a target validator and, for a first-time self-bond, the
// validator record to register.
type DelegationBody struct {
	Validator        staking.TendermintAddr `json:"validator"`
	ValidatorStaking *staking.Validator     `json:"validator_staking,omitempty"`
	NoReplayToken    NoReplayToken          `json:"nonce"`
}

func (b DelegationBody) marshal() []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(string(b.Validator))
	if b.ValidatorStaking != nil {
		buf.WriteByte(1)
		buf.WriteString(string(b.ValidatorStaking.ConsensusAddr))
		writeLenPrefixed(buf, b.ValidatorStaking.PublicKey)
	} else {
		buf.WriteByte(0)
	}
	b.NoReplayToken.marshal(buf)
	return buf.Bytes()
}

// Delegation carries a delegator's request to bond stake to a validator.
// The delegator public key, not an address, is carried directly per
// spec.md §4.5 ("delegator public key").
type Delegation struct {
	Body      DelegationBody `json:"body"`
	PubKey    []byte         `json:"pubkey"`
	Signature []byte         `json:"signature"`
}

func (*Delegation) Kind() OpKind { return OpDelegation }

func (op *Delegation) MarshalCanonical() []byte {
	return op.Body.marshal()
}

// UndelegationBody requests that a Bond delegation transition to Free.
type UndelegationBody struct {
	Validator     staking.TendermintAddr `json:"validator"`
	NoReplayToken NoReplayToken          `json:"nonce"`
}

type Undelegation struct {
	Body      UndelegationBody `json:"body"`
	PubKey    []byte           `json:"pubkey"`
	Signature []byte           `json:"signature"`
}

func (*Undelegation) Kind() OpKind { return OpUndelegation }

func (op *Undelegation) MarshalCanonical() []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(string(op.Body.Validator))
	op.Body.NoReplayToken.marshal(buf)
	return buf.Bytes()
}

// ClaimRewardBody requests that a Free delegation transition to Paid.
type ClaimRewardBody struct {
	Validator     staking.TendermintAddr `json:"validator"`
	NoReplayToken NoReplayToken          `json:"nonce"`
}

type ClaimReward struct {
	Body      ClaimRewardBody `json:"body"`
	PubKey    []byte          `json:"pubkey"`
	Signature []byte          `json:"signature"`
}

func (*ClaimReward) Kind() OpKind { return OpClaimReward }

func (op *ClaimReward) MarshalCanonical() []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(string(op.Body.Validator))
	op.Body.NoReplayToken.marshal(buf)
	return buf.Bytes()
}
