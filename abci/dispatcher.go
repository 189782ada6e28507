// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abci

import (
	"context"
	"encoding/json"

	"github.com/zorachain/ledger/crypto"
	"github.com/zorachain/ledger/ids"
	"github.com/zorachain/ledger/ledger"
	"github.com/zorachain/ledger/ledger/txs"
	"github.com/zorachain/ledger/logging"
	"github.com/zorachain/ledger/submission"
)

// Dispatcher is the thin reference Application: it decodes the
// JSON-serialized Transaction wire format (spec.md §6) and calls straight
// into submission.Server and ledger.LedgerState. It opens no network
// listener and speaks no tendermint RPC — the embedder owns that.
type Dispatcher struct {
	submission *submission.Server
	ledger     *ledger.LedgerState
	oracle     crypto.Oracle
	log        logging.Logger
	history    *replayGuard

	checkpointHeight uint64
	checkpointOK     bool
}

// NewDispatcher wires a Dispatcher around an already-constructed
// submission.Server/ledger.LedgerState pair. historyWindow bounds the
// replay guard's memory use.
func NewDispatcher(s *submission.Server, ls *ledger.LedgerState, oracle crypto.Oracle, log logging.Logger, historyWindow int) *Dispatcher {
	if log == nil {
		log = logging.NewNoOp()
	}
	return &Dispatcher{
		submission: s,
		ledger:     ls,
		oracle:     oracle,
		log:        log,
		history:    newReplayGuard(historyWindow),
	}
}

// SetCheckpoint records the embedder's last durable checkpoint, surfaced
// back out through LastCheckpoint. The core never calls this itself.
func (d *Dispatcher) SetCheckpoint(height uint64) {
	d.checkpointHeight = height
	d.checkpointOK = true
}

func (d *Dispatcher) LastCheckpoint() (uint64, bool) {
	return d.checkpointHeight, d.checkpointOK
}

func (d *Dispatcher) Info(InfoRequest) InfoResponse {
	chain := d.ledger.Chain()
	commitment, height := chain.GetStateCommitment()

	if d.submission.AllCommitted() {
		if err := d.submission.BeginBlock(); err != nil {
			d.log.Warn("begin block during Info failed")
		}
	}

	return InfoResponse{LastBlockHeight: height, LastBlockAppHash: commitment[:]}
}

func (d *Dispatcher) decode(raw []byte) (*txs.Transaction, ids.ID, error) {
	var tx txs.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, ids.Empty, err
	}
	digest := d.oracle.Hash(tx.WithSID(txs.SIDZero).MarshalCanonical())
	id, err := ids.ToID(digest)
	if err != nil {
		return &tx, ids.Empty, nil
	}
	return &tx, id, nil
}

// CheckTx decodes the candidate transaction and rejects anything already
// recorded in the replay guard, before it ever reaches the mempool proper.
func (d *Dispatcher) CheckTx(req CheckTxRequest) CheckTxResponse {
	_, id, err := d.decode(req.Tx)
	if err != nil {
		return CheckTxResponse{Accept: false, Log: "invalid format"}
	}
	if d.history.Contains(id) {
		return CheckTxResponse{Accept: false, Log: "historical transaction"}
	}
	return CheckTxResponse{Accept: true}
}

func (d *Dispatcher) BeginBlock(BeginBlockRequest) BeginBlockResponse {
	if d.submission.AllCommitted() {
		if err := d.submission.BeginBlock(); err != nil {
			d.log.Warn("begin block failed")
		}
	}
	return BeginBlockResponse{}
}

// DeliverTx decodes and hands the transaction to submission.Server,
// recording its content hash in the replay guard on acceptance.
func (d *Dispatcher) DeliverTx(req DeliverTxRequest) DeliverTxResponse {
	tx, id, err := d.decode(req.Tx)
	if err != nil {
		return DeliverTxResponse{Accept: false, Log: "invalid format"}
	}
	if d.history.Contains(id) {
		return DeliverTxResponse{Accept: false, Log: "historical transaction"}
	}

	if _, err := d.submission.HandleTransaction(context.Background(), tx); err != nil {
		return DeliverTxResponse{Accept: false, Log: err.Error()}
	}
	d.history.Record(id)
	return DeliverTxResponse{Accept: true}
}

func (d *Dispatcher) EndBlock(EndBlockRequest) EndBlockResponse {
	if !d.submission.AllCommitted() {
		if err := d.submission.EndBlock(); err != nil {
			d.log.Warn("end block failed")
		}
	}
	return EndBlockResponse{}
}

func (d *Dispatcher) Commit() CommitResponse {
	chain := d.ledger.Chain()
	commitment, _ := chain.GetStateCommitment()
	return CommitResponse{AppHash: commitment[:]}
}

var _ Application = (*Dispatcher)(nil)
