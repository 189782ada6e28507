// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"context"
	"fmt"
	"sync"

	"github.com/zorachain/ledger/crypto"
	"github.com/zorachain/ledger/ledger"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/logging"
)

type pendingEntry struct {
	tempSID txs.TxnTempSID
	handle  Handle
}

// Server is SubmissionServer (spec.md §4.4): it buffers pending
// transactions behind a content-addressed Handle, opens a block on the
// first transaction after the previous one committed, and auto-finalizes
// once the block reaches its configured capacity.
//
// Lock ordering: Server's mutex is always acquired before calling into
// LedgerState, never the reverse, matching spec.md §5's rule — LedgerState
// never calls back into Server, so this ordering is enough to rule out
// deadlock.
type Server struct {
	mu sync.Mutex

	ledger *ledger.LedgerState
	oracle crypto.Oracle
	log    logging.Logger

	cfg  Config
	gate *capacityGate

	pending   []pendingEntry
	txnStatus map[Handle]StatusRecord

	// gateAcquired counts how many pending entries hold a capacityGate
	// permit, i.e. were cached through HandleTransaction rather than a
	// direct CacheTransaction call, so EndBlock/AbortBlock release exactly
	// as many permits as were acquired.
	gateAcquired int
}

// StatusRecord is what TxnStatus reports for a Handle once it has been
// committed: the canonical TxnSID and the UtxoAddresses assigned to its
// outputs, mirroring the original's `Committed((TxnSID, Vec<TxoSID>))`.
type StatusRecord struct {
	Status    Status
	Result    ledger.FinishResult
	HasResult bool
}

func New(ls *ledger.LedgerState, oracle crypto.Oracle, log logging.Logger, cfg Config) *Server {
	if log == nil {
		log = logging.NewNoOp()
	}
	if cfg.BlockCapacity <= 0 {
		cfg.BlockCapacity = 1
	}
	return &Server{
		ledger:    ls,
		oracle:    oracle,
		log:       log,
		cfg:       cfg,
		gate:      newCapacityGate(cfg.BlockCapacity),
		txnStatus: make(map[Handle]StatusRecord),
	}
}

// AllCommitted reports whether every previously cached transaction has
// been finalized, matching the original's `all_commited`.
func (s *Server) AllCommitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) == 0
}

// EligibleToCommit reports whether the open block has reached capacity.
func (s *Server) EligibleToCommit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) >= s.cfg.BlockCapacity
}

// BeginBlock opens a new block if none is open. Mirrors the original's
// `begin_block`, but surfaces LedgerState's error instead of panicking.
func (s *Server) BeginBlock() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginBlockLocked()
}

func (s *Server) beginBlockLocked() error {
	_, err := s.ledger.StartBlock()
	if err != nil && err != ledger.ErrBlockAlreadyOpen {
		return err
	}
	return nil
}

// CacheTransaction computes tx's Handle and effect, applies it to the open
// block, and records it Pending. A block must already be open (spec.md
// §4.4: "cache_transaction" assumes `begin_block` ran first).
func (s *Server) CacheTransaction(tx *txs.Transaction) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacheTransactionLocked(tx)
}

func (s *Server) cacheTransactionLocked(tx *txs.Transaction) (Handle, error) {
	handle := NewHandle(s.oracle, tx)

	if s.cfg.DuplicatePolicy == DuplicateReject {
		if _, exists := s.txnStatus[handle]; exists {
			return "", ErrDuplicateHandle
		}
	}

	tempSID, err := s.ledger.ApplyTransaction(tx)
	if err != nil {
		return "", fmt.Errorf("submission: transaction rejected: %w", err)
	}

	s.pending = append(s.pending, pendingEntry{tempSID: tempSID, handle: handle})
	s.txnStatus[handle] = StatusRecord{Status: StatusPending}
	return handle, nil
}

// EndBlock finishes the open block, updating every pending transaction's
// status to Committed with its assigned TxnSID/addresses. Mirrors the
// original's `end_block`.
func (s *Server) EndBlock() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endBlockLocked()
}

func (s *Server) endBlockLocked() error {
	if len(s.pending) == 0 {
		return ErrNothingPending
	}

	results, err := s.ledger.FinishBlock()
	if err != nil {
		return err
	}

	pending := s.pending
	s.pending = nil
	s.gate.release(s.gateAcquired)
	s.gateAcquired = 0

	for _, entry := range pending {
		result, ok := results[entry.tempSID]
		if !ok {
			s.log.Warn("temp sid missing from finish-block results")
			continue
		}
		s.txnStatus[entry.handle] = StatusRecord{Status: StatusCommitted, Result: result, HasResult: true}
	}
	return nil
}

// AbortBlock discards the open block without touching txnStatus: every
// transaction cached into it keeps its Pending entry (spec.md §4.4:
// "abort_block clears the pending list, leaves status entries as Pending";
// spec.md §7: "Pending status entries for aborted blocks persist as
// Pending until a policy-defined garbage collection pass removes them").
func (s *Server) AbortBlock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.AbortBlock(); err != nil {
		return err
	}
	s.pending = nil
	s.gate.release(s.gateAcquired)
	s.gateAcquired = 0
	return nil
}

// BeginCommit and EndCommit are documented no-op extension points carried
// over from the original (spec.md §9): the original's authors left their
// intended behavior unspecified, so this port does not guess at one.
func (s *Server) BeginCommit() {}
func (s *Server) EndCommit()   {}

// TxnStatus reports the current status of a previously cached handle.
func (s *Server) TxnStatus(handle Handle) (StatusRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.txnStatus[handle]
	return rec, ok
}

// HandleTransaction runs the full submit flow spec.md §4.4 describes:
// open a block if the previous one fully committed, cache tx, and
// auto-finalize once the block reaches capacity.
func (s *Server) HandleTransaction(ctx context.Context, tx *txs.Transaction) (Handle, error) {
	if err := s.gate.wait(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		if err := s.beginBlockLocked(); err != nil {
			s.gate.release(1)
			return "", err
		}
	}

	handle, err := s.cacheTransactionLocked(tx)
	if err != nil {
		s.gate.release(1)
		return "", err
	}
	s.gateAcquired++

	if len(s.pending) >= s.cfg.BlockCapacity {
		if err := s.endBlockLocked(); err != nil {
			s.log.Error("auto end-block failed")
		}
	}
	return handle, nil
}
