// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package delegation implements spec.md §4.5's Delegation operation
// validator: the component responsible for the cross-operation invariant
// that a Delegation must be paired, within the same transaction, with a
// native-asset transfer to the staking escrow address from a single owner.
// The context check itself lives in ledger/txs/effect (it runs during the
// stateless TxnEffect computation, since it only inspects the transaction's
// own operations); this package owns applying an already-checked
// DelegationEffect/UndelegationEffect/ClaimRewardEffect to a staking.Table.
package delegation

import (
	"fmt"

	"github.com/zorachain/ledger/ledger/staking"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/ledger/txs/effect"
)

// Apply mutates table according to eff's staking-related effects (at most
// one of Delegation/Undelegation/ClaimReward is set per transaction, since
// ledger/txs/effect.Compute rejects a transaction carrying more than one
// staking operation). height stamps new delegation records' StartHeight and
// undelegated records' EndHeight. Returns an error wrapping txs.ErrStaking
// on any table-level rule violation (unknown validator, power overflow,
// delegation not found, delegation not free to claim). The minimum self-bond
// is checked earlier, by effect.Compute.
func Apply(table *staking.Table, eff *effect.Effect, height uint64) error {
	switch {
	case eff.Delegation != nil:
		d := eff.Delegation
		if err := table.Delegate(d.DelegatorPubKey, d.DelegatorAddr, d.Validator, d.Amount, d.NewValidator, height); err != nil {
			return fmt.Errorf("%w: %s", txs.ErrStaking, err)
		}
	case eff.Undelegation != nil:
		u := eff.Undelegation
		if err := table.Undelegate(u.DelegatorAddr, u.Validator, height); err != nil {
			return fmt.Errorf("%w: %s", txs.ErrStaking, err)
		}
	case eff.ClaimReward != nil:
		c := eff.ClaimReward
		if err := table.ClaimReward(c.DelegatorAddr, c.Validator); err != nil {
			return fmt.Errorf("%w: %s", txs.ErrStaking, err)
		}
	}
	return nil
}
