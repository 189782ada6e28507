// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"

	"github.com/mr-tron/base58"
)

const ShortIDLen = 20

var (
	ShortEmpty = ShortID{}

	errWrongShortIDLen = errors.New("wrong short id length")
)

// ShortID is a 20 byte identifier, used for owner and validator addresses.
type ShortID [ShortIDLen]byte

func ToShortID(bytes []byte) (ShortID, error) {
	if len(bytes) != ShortIDLen {
		return ShortID{}, errWrongShortIDLen
	}
	var id ShortID
	copy(id[:], bytes)
	return id, nil
}

func (id ShortID) String() string {
	return hex.EncodeToString(id[:])
}

// Base58 returns a base58-encoded rendering, used by wallet-facing display
// code that wants the teacher's CB58-adjacent address formatting rather than
// raw hex.
func (id ShortID) Base58() string {
	return base58.Encode(id[:])
}

func (id ShortID) Bytes() []byte {
	b := make([]byte, ShortIDLen)
	copy(b, id[:])
	return b
}

func (id ShortID) Compare(other ShortID) int {
	for i := range id {
		if id[i] < other[i] {
			return -1
		}
		if id[i] > other[i] {
			return 1
		}
	}
	return 0
}

func (id ShortID) Less(other ShortID) bool {
	return id.Compare(other) < 0
}

func (id ShortID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

func (id *ShortID) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return err
	}
	if s == "" {
		*id = ShortEmpty
		return nil
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	parsed, err := ToShortID(decoded)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ShortIDFromPublicKey derives an owner address from a raw public key by
// truncating its SHA-256 digest to ShortIDLen bytes.
func ShortIDFromPublicKey(pubKey []byte) ShortID {
	digest := sha256.Sum256(pubKey)
	var id ShortID
	copy(id[:], digest[:ShortIDLen])
	return id
}

// SortShortIDs sorts ids in place, ascending.
func SortShortIDs(ids []ShortID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
}

// SortIDs sorts ids in place, ascending.
func SortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
}
