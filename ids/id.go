// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ids defines the fixed-width identifier types used across the
// ledger core: content hashes and owner/validator addresses.
package ids

import (
	"encoding/hex"
	"errors"
	"fmt"
)

const IDLen = 32

var (
	Empty = ID{}

	errWrongIDLen = errors.New("wrong id length")
)

// ID is a 32 byte identifier, used for transaction and state content hashes.
type ID [IDLen]byte

// ToID creates an ID from a byte slice.
func ToID(bytes []byte) (ID, error) {
	if len(bytes) != IDLen {
		return ID{}, errWrongIDLen
	}
	var id ID
	copy(id[:], bytes)
	return id, nil
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

func (id ID) Bytes() []byte {
	b := make([]byte, IDLen)
	copy(b, id[:])
	return b
}

// Compare returns -1, 0, or 1 if id is less than, equal to, or greater than
// other, using a lexicographic comparison of the underlying bytes.
func (id ID) Compare(other ID) int {
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

func (id ID) Less(other ID) bool {
	return id.Compare(other) < 0
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", id.String())), nil
}

func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := unquote(b)
	if err != nil {
		return err
	}
	if s == "" {
		*id = Empty
		return nil
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	parsed, err := ToID(decoded)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func unquote(b []byte) (string, error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return "", errors.New("expected quoted string")
	}
	return string(b[1 : len(b)-1]), nil
}
