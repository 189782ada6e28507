// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package avax

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/zorachain/ledger/ids"
)

// Address identifies a UTXO by the triple spec.md §3 requires:
// (txn_seq, op_index, output_index), globally unique once assigned.
type Address struct {
	TxnSeq      uint64
	OpIndex     uint16
	OutputIndex uint16
}

// Compare orders two addresses lexicographically by (TxnSeq, OpIndex,
// OutputIndex), matching the ordering guarantee of spec.md §4.3/§8.
func (a Address) Compare(other Address) int {
	if a.TxnSeq != other.TxnSeq {
		if a.TxnSeq < other.TxnSeq {
			return -1
		}
		return 1
	}
	if a.OpIndex != other.OpIndex {
		if a.OpIndex < other.OpIndex {
			return -1
		}
		return 1
	}
	if a.OutputIndex != other.OutputIndex {
		if a.OutputIndex < other.OutputIndex {
			return -1
		}
		return 1
	}
	return 0
}

func (a Address) Less(other Address) bool {
	return a.Compare(other) < 0
}

func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d", a.TxnSeq, a.OpIndex, a.OutputIndex)
}

func (a Address) MarshalCanonical() []byte {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[0:8], a.TxnSeq)
	binary.BigEndian.PutUint16(buf[8:10], a.OpIndex)
	binary.BigEndian.PutUint16(buf[10:12], a.OutputIndex)
	return buf[:]
}

// Output is the spendable payload of a UTXO: an amount of a single asset
// type owned by an address, optionally confidential.
type Output struct {
	Amount       uint64
	Confidential bool
	AssetType    AssetTypeCode
	Owner        ids.ShortID
}

func (o Output) MarshalCanonical() []byte {
	buf := new(bytes.Buffer)
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], o.Amount)
	buf.Write(amt[:])
	if o.Confidential {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	buf.Write(o.AssetType[:])
	buf.Write(o.Owner[:])
	return buf.Bytes()
}

// UTXO is an unspent transaction output: its assigned address, the output
// record, and a content digest (spec.md §3).
type UTXO struct {
	Addr   Address
	Out    Output
	Digest ids.ID
}
