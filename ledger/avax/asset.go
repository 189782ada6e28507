// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package avax holds the value types shared by the ledger core: asset
// records, UTXO addresses and unspent outputs. Named after the teacher's
// vms/components/avax conventions.
package avax

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/zorachain/ledger/utils/math"
)

// AssetTypeCodeLen is fixed by spec: a 16 byte tag, unique across all
// created assets.
const AssetTypeCodeLen = 16

// AssetTypeCode is the 16 byte tag identifying an asset type.
type AssetTypeCode [AssetTypeCodeLen]byte

// NativeAssetTypeCode is the reserved code for the chain's native asset,
// "ASSET_TYPE_FRA" in the original implementation.
var NativeAssetTypeCode = AssetTypeCode{'A', 'S', 'S', 'E', 'T', '_', 'T', 'Y', 'P', 'E', '_', 'F', 'R', 'A'}

func (c AssetTypeCode) String() string {
	return string(bytes.TrimRight(c[:], "\x00"))
}

func (c AssetTypeCode) Compare(other AssetTypeCode) int {
	return bytes.Compare(c[:], other[:])
}

func (c AssetTypeCode) Less(other AssetTypeCode) bool {
	return c.Compare(other) < 0
}

func (c AssetTypeCode) Hex() string {
	return hex.EncodeToString(c[:])
}

func (c AssetTypeCode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Hex() + `"`), nil
}

func (c *AssetTypeCode) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("expected quoted string")
	}
	decoded, err := hex.DecodeString(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	if len(decoded) != AssetTypeCodeLen {
		return errors.New("wrong asset type code length")
	}
	copy(c[:], decoded)
	return nil
}

func (s SeqNum) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hex.EncodeToString(s[:]) + `"`), nil
}

func (s *SeqNum) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("expected quoted string")
	}
	decoded, err := hex.DecodeString(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	if len(decoded) != 16 {
		return errors.New("wrong seq num length")
	}
	copy(s[:], decoded)
	return nil
}

// AssetProperties are the immutable-unless-updatable facts recorded at
// asset creation.
type AssetProperties struct {
	Code             AssetTypeCode
	IssuerPublicKey  []byte
	Updatable        bool
	Memo             []byte
	ConfidentialMemo []byte
	AssetTypeTag     string
}

// MarshalCanonical writes AssetProperties in a fixed field order so that
// downstream content hashes are reproducible across runs.
func (p AssetProperties) MarshalCanonical() []byte {
	buf := new(bytes.Buffer)
	buf.Write(p.Code[:])
	writeBytes(buf, p.IssuerPublicKey)
	if p.Updatable {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	writeBytes(buf, p.Memo)
	writeBytes(buf, p.ConfidentialMemo)
	writeBytes(buf, []byte(p.AssetTypeTag))
	return buf.Bytes()
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	buf.Write(lenBuf[:])
	buf.Write(b)
}

// SeqNum is a 128 bit monotonic issuance sequence number, stored as raw
// big-endian bytes so that numeric comparison is a plain byte compare.
type SeqNum [16]byte

func SeqNumFromUint64(v uint64) SeqNum {
	var s SeqNum
	binary.BigEndian.PutUint64(s[8:], v)
	return s
}

func (s SeqNum) Compare(other SeqNum) int {
	return bytes.Compare(s[:], other[:])
}

func (s SeqNum) GreaterThan(other SeqNum) bool {
	return s.Compare(other) > 0
}

// Asset is the mutable record tracked by the asset registry: its immutable
// properties plus the running issuance counters invariant to spec.md §3
// ("seq strictly monotonic; units >= 0").
type Asset struct {
	Properties    AssetProperties
	Units         uint64
	LastIssuedSeq SeqNum
	everIssued    bool
}

func (a *Asset) HasIssued() bool {
	return a.everIssued
}

// RestoreAsset reconstructs an Asset from its snapshotted fields, used only
// by state.Status's snapshot/restore pair to rebuild the issuance-tracking
// private field that a plain struct literal cannot set from outside the
// package.
func RestoreAsset(props AssetProperties, units uint64, lastIssuedSeq SeqNum, everIssued bool) Asset {
	return Asset{
		Properties:    props,
		Units:         units,
		LastIssuedSeq: lastIssuedSeq,
		everIssued:    everIssued,
	}
}

// RecordIssuance advances the issuance counter and credits units. Callers
// must have already validated seqNum > a.LastIssuedSeq (or !a.everIssued).
func (a *Asset) RecordIssuance(seqNum SeqNum, units uint64) error {
	total, err := math.Add64(a.Units, units)
	if err != nil {
		return err
	}
	a.LastIssuedSeq = seqNum
	a.everIssued = true
	a.Units = total
	return nil
}

func (a Asset) Clone() Asset {
	out := a
	out.Properties.IssuerPublicKey = append([]byte(nil), a.Properties.IssuerPublicKey...)
	out.Properties.Memo = append([]byte(nil), a.Properties.Memo...)
	out.Properties.ConfidentialMemo = append([]byte(nil), a.Properties.ConfidentialMemo...)
	return out
}
