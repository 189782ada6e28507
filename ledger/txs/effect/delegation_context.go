// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package effect

import (
	"bytes"

	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/utils/math"
)

// checkDelegationContext enforces spec.md §4.5 steps 2-3: collect every
// TransferAsset operation whose inputs are all owned by a single key equal
// to the delegator, sum the non-confidential native-asset outputs directed
// at the coinbase-principal address, and require the total be positive.
// Grounded line-for-line on check_delegation_context /
// check_delegation_context_principal in ledger/src/staking/ops/delegation.rs.
func checkDelegationContext(tx *txs.Transaction, op *txs.Delegation) (staking.Amount, error) {
	owner := op.PubKey

	var total uint64
	for _, raw := range tx.Body.Operations {
		transfer, ok := raw.(*txs.AssetTransfer)
		if !ok {
			continue
		}

		owners := map[string]struct{}{}
		for _, in := range transfer.Body.Inputs {
			owners[string(in.PublicKey)] = struct{}{}
		}
		if len(owners) != 1 {
			continue
		}
		if len(transfer.Body.Inputs) == 0 || !bytes.Equal(transfer.Body.Inputs[0].PublicKey, owner) {
			continue
		}

		for _, out := range transfer.Body.Outputs {
			if out.Confidential {
				continue
			}
			if out.AssetType != avax.NativeAssetTypeCode {
				continue
			}
			if out.Owner != staking.CoinbasePrincipalAddr {
				continue
			}
			sum, err := math.Add64(total, out.Amount)
			if err != nil {
				return 0, txs.NewInternalInconsistentError("delegation principal payment total overflows")
			}
			total = sum
		}
	}

	if total == 0 {
		return 0, txs.NewDelegationContextError("delegation amount is not paid correctly")
	}
	return total, nil
}
