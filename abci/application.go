// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package abci specifies the external consensus-engine collaborator
// surface (spec.md §6) as a Go interface, plus a thin reference dispatcher
// that wires it to submission.Server and ledger.LedgerState. It never
// speaks a wire protocol to an actual consensus process — that belongs to
// the embedder.
package abci

// Application is the callback surface an external BFT consensus engine
// drives: Info once at startup, then CheckTx/BeginBlock/DeliverTx/
// EndBlock/Commit per block, matching spec.md §6's
// Info/CheckTx/BeginBlock/DeliverTx/EndBlock/Commit list.
type Application interface {
	Info(req InfoRequest) InfoResponse
	CheckTx(req CheckTxRequest) CheckTxResponse
	BeginBlock(req BeginBlockRequest) BeginBlockResponse
	DeliverTx(req DeliverTxRequest) DeliverTxResponse
	EndBlock(req EndBlockRequest) EndBlockResponse
	Commit() CommitResponse

	// LastCheckpoint is the checkpoint/health snapshot hook supplemented
	// from the original's callback/checkpoint.rs: the embedder reports the
	// last height it durably checkpointed, if any. The core never writes a
	// checkpoint itself (spec.md §1 non-goal retained).
	LastCheckpoint() (height uint64, ok bool)
}

type InfoRequest struct{}

type InfoResponse struct {
	LastBlockHeight  uint64
	LastBlockAppHash []byte
}

type CheckTxRequest struct {
	Tx []byte
}

type CheckTxResponse struct {
	Accept bool
	Log    string
}

type BeginBlockRequest struct {
	Height uint64
}

type BeginBlockResponse struct{}

type DeliverTxRequest struct {
	Tx []byte
}

type DeliverTxResponse struct {
	Accept bool
	Log    string
}

type EndBlockRequest struct {
	Height uint64
}

type EndBlockResponse struct{}

type CommitResponse struct {
	AppHash []byte
}
