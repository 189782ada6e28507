// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs holds the transaction and operation value types of spec.md
// §3's DataModel: the wire-level shape clients submit and the ledger core
// validates.
package txs

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	"github.com/zorachain/ledger/ids"
)

// TxnSID is the canonical monotonic sequence number assigned at
// FinishBlock, never reused.
type TxnSID uint64

// SIDZero is the sentinel TxnSID written into the transaction before
// hashing, so that the handle is independent of assigned identity
// (spec.md §6 "Transaction content identifier").
const SIDZero TxnSID = 0

// TxnTempSID is the provisional identifier a transaction is assigned while
// its owning block is open.
type TxnTempSID uint64

// NoReplayToken binds a transaction to a recent block hash with a random
// nonce, rejected by the embedder's mempool admission policy if the bound
// hash is outside the configured window (spec.md §6).
type NoReplayToken struct {
	Nonce          uint64
	BoundBlockHash ids.ID
}

func (t NoReplayToken) marshal(buf *bytes.Buffer) {
	var nonceBuf [8]byte
	binary.BigEndian.PutUint64(nonceBuf[:], t.Nonce)
	buf.Write(nonceBuf[:])
	buf.Write(t.BoundBlockHash[:])
}

// Signature is an owner's signature over an operation body.
type Signature struct {
	PubKey []byte `json:"pub_key"`
	Sig    []byte `json:"sig"`
}

func (s Signature) marshal(buf *bytes.Buffer) {
	writeLenPrefixed(buf, s.PubKey)
	writeLenPrefixed(buf, s.Sig)
}

func writeLenPrefixed(buf *bytes.Buffer, b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	buf.Write(lenBuf[:])
	buf.Write(b)
}

// Body is the signed payload of a transaction: its operations in order plus
// the no-replay token.
type Body struct {
	Operations    []Operation   `json:"-"`
	NoReplayToken NoReplayToken `json:"no_replay_token"`
}

// Transaction is the full wire-level transaction: a body plus the
// signatures authorizing it. SID is not part of the wire format; it is
// threaded through only so MarshalCanonical can pin it to SIDZero for the
// handle computation and to the assigned value once committed.
type Transaction struct {
	Body       Body        `json:"body"`
	Signatures []Signature `json:"signatures"`
	sid        TxnSID
}

func NewTransaction(ops []Operation, token NoReplayToken, sigs []Signature) *Transaction {
	return &Transaction{
		Body: Body{
			Operations:    ops,
			NoReplayToken: token,
		},
		Signatures: sigs,
		sid:        SIDZero,
	}
}

// WithSID returns a shallow copy of tx carrying the given TxnSID, used only
// for canonical-encoding purposes (the handle is computed with SIDZero).
func (tx *Transaction) WithSID(sid TxnSID) *Transaction {
	cp := *tx
	cp.sid = sid
	return &cp
}

// MarshalCanonical performs the deterministic, fixed-field-order binary
// encoding spec.md §6 and §9 require for TxnHandle computation: "a specific
// field-order binary encoding with a fixed sentinel for the not-yet-assigned
// TxnSID". Operations are encoded in slice order; never by map iteration.
func (tx *Transaction) MarshalCanonical() []byte {
	buf := new(bytes.Buffer)

	var sidBuf [8]byte
	binary.BigEndian.PutUint64(sidBuf[:], uint64(tx.sid))
	buf.Write(sidBuf[:])

	var opCountBuf [4]byte
	binary.BigEndian.PutUint32(opCountBuf[:], uint32(len(tx.Body.Operations)))
	buf.Write(opCountBuf[:])
	for _, op := range tx.Body.Operations {
		buf.WriteByte(byte(op.Kind()))
		writeLenPrefixed(buf, op.MarshalCanonical())
	}

	tx.Body.NoReplayToken.marshal(buf)

	var sigCountBuf [4]byte
	binary.BigEndian.PutUint32(sigCountBuf[:], uint32(len(tx.Signatures)))
	buf.Write(sigCountBuf[:])
	for _, sig := range tx.Signatures {
		sig.marshal(buf)
	}

	return buf.Bytes()
}

// wireTransaction is the JSON-on-the-wire shape (spec.md §6): operations are
// tagged by kind so they can be decoded back into their concrete type.
type wireTransaction struct {
	Body struct {
		Operations    []wireOperation `json:"operations"`
		NoReplayToken NoReplayToken   `json:"no_replay_token"`
	} `json:"body"`
	Signatures []Signature `json:"signatures"`
}

type wireOperation struct {
	Kind OpKind          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON implements the wire format of spec.md §6.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	w := wireTransaction{}
	w.Body.NoReplayToken = tx.Body.NoReplayToken
	w.Signatures = tx.Signatures
	for _, op := range tx.Body.Operations {
		data, err := json.Marshal(op)
		if err != nil {
			return nil, err
		}
		w.Body.Operations = append(w.Body.Operations, wireOperation{Kind: op.Kind(), Data: data})
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses a wire-format transaction, surfacing ParseError
// (spec.md §7) on malformed or unrecognized operation kinds.
func (tx *Transaction) UnmarshalJSON(b []byte) error {
	var w wireTransaction
	if err := json.Unmarshal(b, &w); err != nil {
		return NewParseError(err.Error())
	}
	tx.Body.NoReplayToken = w.Body.NoReplayToken
	tx.Signatures = w.Signatures
	tx.sid = SIDZero
	tx.Body.Operations = make([]Operation, 0, len(w.Body.Operations))
	for _, wop := range w.Body.Operations {
		op, err := decodeOperation(wop.Kind, wop.Data)
		if err != nil {
			return err
		}
		tx.Body.Operations = append(tx.Body.Operations, op)
	}
	return nil
}
