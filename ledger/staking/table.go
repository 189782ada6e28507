// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"errors"

	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/utils/math"
)

// StakingError kinds, matching spec.md §7.
var (
	ErrValidatorUnknown   = errors.New("staking: validator unknown")
	ErrStakeBelowMinimum  = errors.New("staking: stake below minimum power")
	ErrInvalidValidator   = errors.New("staking: invalid validator record")
	ErrDelegationNotFound = errors.New("staking: delegation not found")
	ErrDelegationNotFree  = errors.New("staking: delegation is not free to claim")
	ErrPowerOverflow      = errors.New("staking: validator power overflow")
)

// Table is the authoritative staking state: validators and delegations,
// with the invariant that the sum of delegator stakes to v equals
// v.Power (spec.md §3).
type Table struct {
	Validators  map[TendermintAddr]Validator
	Delegations map[DelegatorKey]Delegation
}

func NewTable() *Table {
	return &Table{
		Validators:  make(map[TendermintAddr]Validator),
		Delegations: make(map[DelegatorKey]Delegation),
	}
}

// Clone deep-copies the table, used by the ledger's block overlay so that
// an aborted block leaves the committed table untouched.
func (t *Table) Clone() *Table {
	out := NewTable()
	for k, v := range t.Validators {
		out.Validators[k] = v
	}
	for k, v := range t.Delegations {
		out.Delegations[k] = v
	}
	return out
}

func (t *Table) GetValidator(addr TendermintAddr) (Validator, bool) {
	v, ok := t.Validators[addr]
	return v, ok
}

func (t *Table) GetDelegation(delegator ids.ShortID, validator TendermintAddr) (Delegation, bool) {
	d, ok := t.Delegations[DelegatorKey{Delegator: delegator, Validator: validator}]
	return d, ok
}

// RegisterValidator inserts a brand-new validator at the given height,
// spec.md §4.5: "register it with td_power = stake_amount at current
// height".
func (t *Table) RegisterValidator(v Validator, height uint64) {
	t.Validators[v.ConsensusAddr] = v
	_ = height // height is recorded on the delegation record, not the validator
}

// Delegate increments delegator -> validator stake by amount and, if the
// validator is not yet in the table, registers newValidator first (a
// newValidator for an already known validator is ignored). Returns ErrValidatorUnknown
// if the validator does not exist and no self-staking payload was supplied,
// matching spec.md §4.5's "delegate() failure" clause.
func (t *Table) Delegate(
	delegatorPubKey []byte,
	delegator ids.ShortID,
	validatorAddr TendermintAddr,
	amount Amount,
	newValidator *Validator,
	height uint64,
) error {
	existingValidator, validatorExists := t.Validators[validatorAddr]
	if !validatorExists && newValidator == nil {
		return ErrValidatorUnknown
	}

	key := DelegatorKey{Delegator: delegator, Validator: validatorAddr}
	d, delegationExists := t.Delegations[key]
	if !delegationExists {
		d = Delegation{
			DelegatorPubKey: delegatorPubKey,
			Validator:       validatorAddr,
			StartHeight:     height,
			State:           Bond,
			ReceiverPubKey:  delegatorPubKey,
		}
	}

	// Compute every fallible result before writing anything: a power
	// overflow here must leave both maps exactly as they were.
	newAmount, err := math.Add64(d.Amount, amount)
	if err != nil {
		return ErrPowerOverflow
	}
	currentPower := existingValidator.Power
	newPower, err := math.Add64(currentPower, amount)
	if err != nil {
		return ErrPowerOverflow
	}

	if !validatorExists {
		t.RegisterValidator(*newValidator, height)
	}
	d.Amount = newAmount
	d.State = Bond
	t.Delegations[key] = d

	v := t.Validators[validatorAddr]
	v.Power = newPower
	t.Validators[validatorAddr] = v
	return nil
}

// Undelegate moves a Bond delegation to Free at the given height, the
// bookkeeping half of spec.md §3's Delegation.state transitions (reward
// accrual arithmetic itself remains out of scope per spec.md §1).
func (t *Table) Undelegate(delegator ids.ShortID, validatorAddr TendermintAddr, height uint64) error {
	key := DelegatorKey{Delegator: delegator, Validator: validatorAddr}
	d, ok := t.Delegations[key]
	if !ok {
		return ErrDelegationNotFound
	}
	d.State = Free
	d.EndHeight = height
	t.Delegations[key] = d

	v, ok := t.Validators[validatorAddr]
	if ok {
		newPower, err := math.Sub64(v.Power, d.Amount)
		if err != nil {
			newPower = 0
		}
		v.Power = newPower
		t.Validators[validatorAddr] = v
	}
	return nil
}

// ClaimReward moves a Free delegation to Paid. It does not compute the
// reward amount (non-goal); it only enforces the Free -> Paid transition.
func (t *Table) ClaimReward(delegator ids.ShortID, validatorAddr TendermintAddr) error {
	key := DelegatorKey{Delegator: delegator, Validator: validatorAddr}
	d, ok := t.Delegations[key]
	if !ok {
		return ErrDelegationNotFound
	}
	if d.State != Free {
		return ErrDelegationNotFree
	}
	d.State = Paid
	t.Delegations[key] = d
	return nil
}
