// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"
	"sync"

	"github.com/zorachain/ledger/crypto"
	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/state"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/ledger/txs/effect"
	"github.com/zorachain/ledger/logging"
	"github.com/zorachain/ledger/metrics"
)

// LedgerState is the component spec.md §4.3 names LedgerState: the UTXO
// set, asset registry, and staking table, plus the block pipeline that
// mutates them. Callers outside this package that also hold
// SubmissionServer's lock must acquire it before calling into LedgerState
// (spec.md §5's lock-ordering rule); LedgerState never calls back into
// SubmissionServer, so no cycle is possible.
type LedgerState struct {
	mu     sync.RWMutex
	status *state.Status

	open *BlockContext

	oracle crypto.Oracle
	log    logging.Logger
	mx     *metrics.Metrics
}

func New(oracle crypto.Oracle, log logging.Logger, mx *metrics.Metrics) *LedgerState {
	if log == nil {
		log = logging.NewNoOp()
	}
	return &LedgerState{
		status: state.New(),
		oracle: oracle,
		log:    log,
		mx:     mx,
	}
}

// Chain exposes the read-only capability set for queries that do not need
// the block pipeline (spec.md §9's "narrow capability sets").
func (l *LedgerState) Chain() state.Chain {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// StartBlock opens a new BlockContext overlaying the currently committed
// state. Returns ErrBlockAlreadyOpen if one is already open (spec.md §4.3:
// one open block at a time).
func (l *LedgerState) StartBlock() (*BlockContext, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open != nil {
		return nil, ErrBlockAlreadyOpen
	}
	l.open = newBlockContext(l.status.GetHeight()+1, snapshotAssets(l.status), l.status.GetStaking())
	l.log.Debug("block started")
	return l.open, nil
}

// snapshotAssets copies every registered asset out of status for the new
// overlay, since Chain exposes lookups one code at a time rather than a
// bulk export.
func snapshotAssets(s *state.Status) map[avax.AssetTypeCode]avax.Asset {
	out := make(map[avax.AssetTypeCode]avax.Asset)
	for _, code := range s.AssetCodes() {
		a, _ := s.GetAsset(code)
		out[code] = a
	}
	return out
}

// ApplyTransaction computes tx's TxnEffect and, if it validates cleanly
// against both the pure transaction-internal rules and the open block's
// overlay, assigns it a TxnTempSID and records it for FinishBlock
// (spec.md §4.3). Returns ErrNoOpenBlock if StartBlock was never called.
func (l *LedgerState) ApplyTransaction(tx *txs.Transaction) (txs.TxnTempSID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open == nil {
		return 0, ErrNoOpenBlock
	}

	eff, err := effect.Compute(l.oracle, nil, tx)
	if err != nil {
		if l.mx != nil {
			l.mx.RejectedTxns.Inc()
		}
		return 0, err
	}

	if err := applyToOverlay(l.status, l.open, eff); err != nil {
		if l.mx != nil {
			l.mx.RejectedTxns.Inc()
		}
		return 0, err
	}

	tempSID := l.open.nextTempSID
	l.open.nextTempSID++
	l.open.order = append(l.open.order, appliedTxn{tempSID: tempSID, eff: eff})

	if l.mx != nil {
		l.mx.PendingTxns.Set(float64(l.open.PendingCount()))
	}
	return tempSID, nil
}

// FinishResult is what FinishBlock reports for each applied transaction:
// its canonical TxnSID and the UtxoAddresses assigned to its produced
// outputs, in operation order.
type FinishResult struct {
	SID       txs.TxnSID
	Addresses []avax.Address
}

// FinishBlock assigns canonical TxnSIDs and UtxoAddresses to every
// transaction applied to the open block, in application order (spec.md
// §4.3's ordering guarantee), commits the resulting UTXO/asset/staking
// deltas to LedgerStatus, and closes the block. Returns ErrNoOpenBlock if
// none is open.
func (l *LedgerState) FinishBlock() (map[txs.TxnTempSID]FinishResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open == nil {
		return nil, ErrNoOpenBlock
	}
	blk := l.open
	l.open = nil

	results := make(map[txs.TxnTempSID]FinishResult, len(blk.order))
	var addUTXOs []avax.UTXO
	var removeUTXOs []avax.Address

	nextSID := txs.TxnSID(l.status.NextTxnSID())
	for _, at := range blk.order {
		sid := nextSID
		nextSID++

		for _, spend := range at.eff.Spends {
			removeUTXOs = append(removeUTXOs, spend.Addr)
		}

		var addrs []avax.Address
		for _, produced := range at.eff.Produces {
			for outIdx, out := range produced.Outputs {
				addr := avax.Address{
					TxnSeq:      uint64(sid),
					OpIndex:     produced.OpIndex,
					OutputIndex: uint16(outIdx),
				}
				digest := l.oracle.Hash(append(addr.MarshalCanonical(), out.MarshalCanonical()...))
				id, err := ids.ToID(digest)
				if err != nil {
					return nil, newInternalError(fmt.Sprintf("oracle produced a %d-byte digest, want %d", len(digest), ids.IDLen))
				}
				addUTXOs = append(addUTXOs, avax.UTXO{Addr: addr, Out: out, Digest: id})
				addrs = append(addrs, addr)
			}
		}

		results[at.tempSID] = FinishResult{SID: sid, Addresses: addrs}
	}

	assets := make([]avax.Asset, 0, len(blk.overlayAssets))
	for _, a := range blk.overlayAssets {
		assets = append(assets, a)
	}

	l.status.Commit(state.CommitUpdate{
		AddUTXOs:           addUTXOs,
		RemoveUTXOs:        removeUTXOs,
		NewOrUpdatedAssets: assets,
		Staking:            blk.stakingOverlay,
	})
	l.status.SetNextTxnSID(uint64(nextSID))

	if l.mx != nil {
		l.mx.Height.Set(float64(l.status.GetHeight()))
		l.mx.PendingTxns.Set(0)
		l.mx.CommittedTxns.Add(float64(len(blk.order)))
		l.mx.BlocksFinalized.Inc()
	}
	l.log.Info("block finished")
	return results, nil
}

// AbortBlock discards the open block's overlay without touching
// LedgerStatus. Returns ErrNoOpenBlock if none is open.
func (l *LedgerState) AbortBlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.open == nil {
		return ErrNoOpenBlock
	}
	l.open = nil
	if l.mx != nil {
		l.mx.PendingTxns.Set(0)
	}
	l.log.Debug("block aborted")
	return nil
}
