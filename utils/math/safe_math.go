// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package math provides overflow-checked arithmetic for balance checks,
// matching the teacher's utils/math helpers used by the flow checker in
// vms/platformvm/txs/executor/standard_tx_executor.go.
package math

import "errors"

var ErrOverflow = errors.New("arithmetic overflow")

func Add64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

func Sub64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}
