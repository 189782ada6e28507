// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/zorachain/ledger/ledger/avax"
	"github.com/zorachain/ledger/ledger/staking"
)

// GetStateCommitment returns a deterministic digest of committed state
// (spec.md §4.1): bytewise-equal states produce equal commitments. It covers
// the height, every UTXO, every asset record, and each validator's address
// and power, all written in sorted order so that map iteration order never
// leaks into the digest. Delegation records, other validator fields and the
// TxnSID counter are not part of the digest.
func (s *Status) GetStateCommitment() ([32]byte, uint64) {
	h := sha256.New()

	var heightBuf [8]byte
	binary.BigEndian.PutUint64(heightBuf[:], s.height)
	h.Write(heightBuf[:])

	addrs := make([]avax.Address, 0, len(s.utxos))
	for addr := range s.utxos {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].Less(addrs[j]) })
	for _, addr := range addrs {
		utxo := s.utxos[addr]
		h.Write(addr.MarshalCanonical())
		h.Write(utxo.Digest[:])
		h.Write(utxo.Out.MarshalCanonical())
	}

	codes := make([]avax.AssetTypeCode, 0, len(s.assets))
	for code := range s.assets {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].Less(codes[j]) })
	for _, code := range codes {
		asset := s.assets[code]
		h.Write(asset.Properties.MarshalCanonical())
		h.Write(asset.LastIssuedSeq[:])
		var unitsBuf [8]byte
		binary.BigEndian.PutUint64(unitsBuf[:], asset.Units)
		h.Write(unitsBuf[:])
	}

	validatorAddrs := make([]string, 0, len(s.staking.Validators))
	for addr := range s.staking.Validators {
		validatorAddrs = append(validatorAddrs, string(addr))
	}
	sort.Strings(validatorAddrs)
	for _, addr := range validatorAddrs {
		v := s.staking.Validators[staking.TendermintAddr(addr)]
		var powerBuf [8]byte
		binary.BigEndian.PutUint64(powerBuf[:], v.Power)
		h.Write([]byte(addr))
		h.Write(powerBuf[:])
	}

	var root [32]byte
	copy(root[:], h.Sum(nil))
	return root, s.height
}
