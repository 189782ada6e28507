// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package effect computes TxnEffect (spec.md §4.2): the derived, validated
// projection of one transaction ready for application against the ledger
// overlay. Everything here is stateless with respect to the ledger — only
// signature checks and internal per-transaction arithmetic.
package effect

import (
	"io"

	"github.com/zorachain/ledger/crypto"
	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/utils/math"
)

// OpOutputs groups the outputs produced by a single operation, preserving
// the per-operation output_index scoping spec.md §3 requires for
// UtxoAddress (txn_seq, op_index, output_index).
type OpOutputs struct {
	OpIndex uint16
	Outputs []avax.Output
}

type AssetCreationEffect struct {
	OpIndex    uint16
	Properties avax.AssetProperties
}

type AssetIssuanceEffect struct {
	OpIndex uint16
	Code    avax.AssetTypeCode
	SeqNum  avax.SeqNum
	Units   uint64
}

type DelegationEffect struct {
	DelegatorPubKey []byte
	DelegatorAddr   ids.ShortID
	Validator       staking.TendermintAddr
	Amount          staking.Amount
	NewValidator    *staking.Validator
}

type UndelegationEffect struct {
	DelegatorAddr ids.ShortID
	Validator     staking.TendermintAddr
}

type ClaimRewardEffect struct {
	DelegatorAddr ids.ShortID
	Validator     staking.TendermintAddr
}

// SpendClaim pairs a referenced UTXO address with the sender's claim about
// its contents, so LedgerState can cross-check the claim against the
// actually-stored UTXO record at apply time (spec.md §4.3's MissingInput /
// InternalInconsistent split).
type SpendClaim struct {
	Addr          avax.Address
	ClaimedAsset  avax.AssetTypeCode
	ClaimedAmount uint64
}

// Effect is the validated projection of a transaction: everything the
// ledger needs to apply it, with all stateless checks already passed.
type Effect struct {
	Spends   []SpendClaim
	Produces []OpOutputs

	AssetCreations []AssetCreationEffect
	AssetIssuances []AssetIssuanceEffect

	Delegation   *DelegationEffect
	Undelegation *UndelegationEffect
	ClaimReward  *ClaimRewardEffect

	NoReplayToken txs.NoReplayToken
}

// Compute runs every check spec.md §4.2 assigns to TxnEffect and returns the
// resulting projection. rng is threaded through only to match the spec's
// re-blinding note (§9 "Randomness discipline"); it never influences the
// outcome.
func Compute(oracle crypto.Oracle, rng io.Reader, tx *txs.Transaction) (*Effect, error) {
	_ = rng // reserved for commitment re-blinding; validation never branches on it

	eff := &Effect{NoReplayToken: tx.Body.NoReplayToken}
	seenOpNonces := map[txs.NoReplayToken]struct{}{}

	var delegationCount int
	for i, op := range tx.Body.Operations {
		opIndex := uint16(i)
		switch o := op.(type) {
		case *txs.AssetCreation:
			if !oracle.Verify(o.BodySignature.PubKey, o.Body.Properties.MarshalCanonical(), o.BodySignature.Sig) {
				return nil, txs.NewSignatureError("asset creation body signature invalid")
			}
			eff.AssetCreations = append(eff.AssetCreations, AssetCreationEffect{
				OpIndex:    opIndex,
				Properties: o.Body.Properties,
			})

		case *txs.AssetIssuance:
			if o.Body.Confidential {
				return nil, txs.ErrUnsupported
			}
			if !oracle.Verify(o.BodySignature.PubKey, canonicalIssuanceBody(o), o.BodySignature.Sig) {
				return nil, txs.NewSignatureError("asset issuance body signature invalid")
			}
			var units uint64
			for _, out := range o.Body.Outputs {
				sum, err := math.Add64(units, out.Amount)
				if err != nil {
					return nil, txs.NewInternalInconsistentError("asset issuance output total overflows")
				}
				units = sum
			}
			eff.AssetIssuances = append(eff.AssetIssuances, AssetIssuanceEffect{
				OpIndex: opIndex,
				Code:    o.Body.Code,
				SeqNum:  o.Body.SeqNum,
				Units:   units,
			})
			eff.Produces = append(eff.Produces, OpOutputs{OpIndex: opIndex, Outputs: o.Body.Outputs})

		case *txs.AssetTransfer:
			if err := verifyTransfer(oracle, o); err != nil {
				return nil, err
			}
			for _, in := range o.Body.Inputs {
				eff.Spends = append(eff.Spends, SpendClaim{
					Addr:          in.Addr,
					ClaimedAsset:  in.ClaimedAsset,
					ClaimedAmount: in.ClaimedAmount,
				})
			}
			eff.Produces = append(eff.Produces, OpOutputs{OpIndex: opIndex, Outputs: o.Body.Outputs})

		case *txs.Delegation:
			delegationCount++
			if delegationCount > 1 {
				return nil, txs.NewDelegationContextError("more than one Delegation operation in transaction")
			}
			if eff.Undelegation != nil || eff.ClaimReward != nil {
				return nil, txs.NewDelegationContextError("more than one staking operation in transaction")
			}
			if _, dup := seenOpNonces[o.Body.NoReplayToken]; dup {
				return nil, txs.NewReplayError("duplicate op nonce within transaction")
			}
			seenOpNonces[o.Body.NoReplayToken] = struct{}{}

			if !oracle.Verify(o.PubKey, o.MarshalCanonical(), o.Signature) {
				return nil, txs.NewSignatureError("delegation signature invalid")
			}

			stakeAmount, err := checkDelegationContext(tx, o)
			if err != nil {
				return nil, err
			}

			var newValidator *staking.Validator
			if o.Body.ValidatorStaking != nil {
				v := o.Body.ValidatorStaking
				if !v.StakingIsBasicValid() ||
					stakeAmount < staking.MinPower ||
					string(o.Body.Validator) != string(v.ConsensusAddr) {
					return nil, txs.NewDelegationContextError("invalid validator self-staking payload")
				}
				copied := *v
				copied.Power = stakeAmount
				newValidator = &copied
			}

			eff.Delegation = &DelegationEffect{
				DelegatorPubKey: o.PubKey,
				DelegatorAddr:   ids.ShortIDFromPublicKey(o.PubKey),
				Validator:       o.Body.Validator,
				Amount:          stakeAmount,
				NewValidator:    newValidator,
			}

		case *txs.Undelegation:
			if eff.Delegation != nil || eff.Undelegation != nil || eff.ClaimReward != nil {
				return nil, txs.NewDelegationContextError("more than one staking operation in transaction")
			}
			if _, dup := seenOpNonces[o.Body.NoReplayToken]; dup {
				return nil, txs.NewReplayError("duplicate op nonce within transaction")
			}
			seenOpNonces[o.Body.NoReplayToken] = struct{}{}
			if !oracle.Verify(o.PubKey, undelegationBytes(o), o.Signature) {
				return nil, txs.NewSignatureError("undelegation signature invalid")
			}
			eff.Undelegation = &UndelegationEffect{
				DelegatorAddr: ids.ShortIDFromPublicKey(o.PubKey),
				Validator:     o.Body.Validator,
			}

		case *txs.ClaimReward:
			if eff.Delegation != nil || eff.Undelegation != nil || eff.ClaimReward != nil {
				return nil, txs.NewDelegationContextError("more than one staking operation in transaction")
			}
			if _, dup := seenOpNonces[o.Body.NoReplayToken]; dup {
				return nil, txs.NewReplayError("duplicate op nonce within transaction")
			}
			seenOpNonces[o.Body.NoReplayToken] = struct{}{}
			if !oracle.Verify(o.PubKey, claimRewardBytes(o), o.Signature) {
				return nil, txs.NewSignatureError("claim reward signature invalid")
			}
			eff.ClaimReward = &ClaimRewardEffect{
				DelegatorAddr: ids.ShortIDFromPublicKey(o.PubKey),
				Validator:     o.Body.Validator,
			}

		default:
			return nil, txs.NewParseError("unrecognized operation type")
		}
	}

	return eff, nil
}

func canonicalIssuanceBody(o *txs.AssetIssuance) []byte {
	return o.MarshalCanonical()
}

func undelegationBytes(o *txs.Undelegation) []byte {
	return o.MarshalCanonical()
}

func claimRewardBytes(o *txs.ClaimReward) []byte {
	return o.MarshalCanonical()
}

// verifyTransfer checks each input's authorizing signature and the
// per-asset-type conservation of value, purely from the transaction's own
// claims (spec.md §4.2's "internal operation inconsistency").
func verifyTransfer(oracle crypto.Oracle, o *txs.AssetTransfer) error {
	if len(o.Body.Inputs) == 0 {
		return txs.NewInternalInconsistentError("transfer with no inputs")
	}
	if len(o.OperationSignatures) != len(o.Body.Inputs) {
		return txs.NewSignatureError("transfer signature count mismatch")
	}
	body := o.MarshalCanonical()
	for i, in := range o.Body.Inputs {
		sig := o.OperationSignatures[i]
		if !oracle.Verify(in.PublicKey, body, sig.Sig) {
			return txs.NewSignatureError("transfer input signature invalid")
		}
	}

	inTotals := map[avax.AssetTypeCode]uint64{}
	for _, in := range o.Body.Inputs {
		sum, err := math.Add64(inTotals[in.ClaimedAsset], in.ClaimedAmount)
		if err != nil {
			return txs.NewInternalInconsistentError("transfer input total overflows")
		}
		inTotals[in.ClaimedAsset] = sum
	}
	outTotals := map[avax.AssetTypeCode]uint64{}
	for _, out := range o.Body.Outputs {
		sum, err := math.Add64(outTotals[out.AssetType], out.Amount)
		if err != nil {
			return txs.NewInternalInconsistentError("transfer output total overflows")
		}
		outTotals[out.AssetType] = sum
	}
	if len(inTotals) != len(outTotals) {
		return txs.NewInternalInconsistentError("transfer inputs and outputs do not balance per asset type")
	}
	for asset, in := range inTotals {
		if outTotals[asset] != in {
			return txs.NewInternalInconsistentError("transfer inputs and outputs do not balance per asset type")
		}
	}
	return nil
}
