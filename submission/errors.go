// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import "errors"

var (
	ErrNoOpenBlock      = errors.New("submission: no block is open")
	ErrBlockAlreadyOpen = errors.New("submission: a block is already open")
	ErrNothingPending   = errors.New("submission: no pending transactions to finish")
	ErrDuplicateHandle  = errors.New("submission: duplicate transaction handle rejected")
)
