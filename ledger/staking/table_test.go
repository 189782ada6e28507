// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zorachain/ledger/ids"
)

func TestDelegateRegistersFirstTimeValidator(t *testing.T) {
	table := NewTable()
	delegator := ids.ShortID{1}
	validatorAddr := TendermintAddr("validator-a")
	newValidator := &Validator{ConsensusAddr: validatorAddr, PublicKey: []byte("pub"), CommissionBps: 500}

	err := table.Delegate([]byte("delegator-pub"), delegator, validatorAddr, MinPower, newValidator, 1)
	require.NoError(t, err)

	v, ok := table.GetValidator(validatorAddr)
	require.True(t, ok)
	require.Equal(t, MinPower, v.Power)

	d, ok := table.GetDelegation(delegator, validatorAddr)
	require.True(t, ok)
	require.Equal(t, Bond, d.State)
}

func TestDelegateUnknownValidatorWithoutSelfStakeFails(t *testing.T) {
	table := NewTable()
	err := table.Delegate([]byte("pub"), ids.ShortID{2}, TendermintAddr("nowhere"), MinPower, nil, 1)
	require.ErrorIs(t, err, ErrValidatorUnknown)
}

func TestDelegatePowerOverflowRejected(t *testing.T) {
	table := NewTable()
	validatorAddr := TendermintAddr("validator-b")
	newValidator := &Validator{ConsensusAddr: validatorAddr, PublicKey: []byte("pub")}
	require.NoError(t, table.Delegate([]byte("pub"), ids.ShortID{3}, validatorAddr, math.MaxUint64, newValidator, 1))

	err := table.Delegate([]byte("pub"), ids.ShortID{3}, validatorAddr, 1, nil, 2)
	require.ErrorIs(t, err, ErrPowerOverflow)
}

func TestDelegatePowerOverflowLeavesTableUnchanged(t *testing.T) {
	table := NewTable()
	validatorAddr := TendermintAddr("validator-overflow")
	newValidator := &Validator{ConsensusAddr: validatorAddr, PublicKey: []byte("pub")}
	require.NoError(t, table.Delegate([]byte("pub"), ids.ShortID{9}, validatorAddr, math.MaxUint64, newValidator, 1))

	before, ok := table.GetValidator(validatorAddr)
	require.True(t, ok)
	beforeDelegation, ok := table.GetDelegation(ids.ShortID{9}, validatorAddr)
	require.True(t, ok)

	err := table.Delegate([]byte("pub"), ids.ShortID{9}, validatorAddr, 1, nil, 2)
	require.ErrorIs(t, err, ErrPowerOverflow)

	after, ok := table.GetValidator(validatorAddr)
	require.True(t, ok)
	require.Equal(t, before, after)

	afterDelegation, ok := table.GetDelegation(ids.ShortID{9}, validatorAddr)
	require.True(t, ok)
	require.Equal(t, beforeDelegation, afterDelegation)
}

func TestUndelegateThenClaimReward(t *testing.T) {
	table := NewTable()
	delegator := ids.ShortID{4}
	validatorAddr := TendermintAddr("validator-c")
	newValidator := &Validator{ConsensusAddr: validatorAddr, PublicKey: []byte("pub")}
	require.NoError(t, table.Delegate([]byte("pub"), delegator, validatorAddr, MinPower, newValidator, 1))

	require.NoError(t, table.Undelegate(delegator, validatorAddr, 2))
	d, ok := table.GetDelegation(delegator, validatorAddr)
	require.True(t, ok)
	require.Equal(t, Free, d.State)

	v, ok := table.GetValidator(validatorAddr)
	require.True(t, ok)
	require.Equal(t, Amount(0), v.Power)

	require.NoError(t, table.ClaimReward(delegator, validatorAddr))
	d, ok = table.GetDelegation(delegator, validatorAddr)
	require.True(t, ok)
	require.Equal(t, Paid, d.State)

	require.ErrorIs(t, table.ClaimReward(delegator, validatorAddr), ErrDelegationNotFree)
}

func TestUndelegateUnknownFails(t *testing.T) {
	table := NewTable()
	err := table.Undelegate(ids.ShortID{5}, TendermintAddr("nowhere"), 1)
	require.ErrorIs(t, err, ErrDelegationNotFound)
}

func TestCloneIsIndependent(t *testing.T) {
	table := NewTable()
	validatorAddr := TendermintAddr("validator-d")
	newValidator := &Validator{ConsensusAddr: validatorAddr, PublicKey: []byte("pub")}
	require.NoError(t, table.Delegate([]byte("pub"), ids.ShortID{6}, validatorAddr, MinPower, newValidator, 1))

	clone := table.Clone()
	require.NoError(t, clone.Delegate([]byte("pub"), ids.ShortID{6}, validatorAddr, MinPower, nil, 2))

	v, _ := table.GetValidator(validatorAddr)
	require.Equal(t, MinPower, v.Power)
}
