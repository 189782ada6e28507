// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

// DuplicatePolicy controls what happens when HandleTransaction computes a
// Handle that collides with one already recorded in txnStatus (spec.md §9,
// third Open Question).
type DuplicatePolicy uint8

const (
	// DuplicateOverwrite replaces the prior status entry with the new
	// transaction's, the default matching the original's test_txn_status
	// behavior (a second transaction with the same handle overwrites the
	// first's status once committed).
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateReject refuses to cache a transaction whose handle is
	// already known, returning ErrDuplicateHandle instead.
	DuplicateReject
)

// Config holds SubmissionServer's tunables.
type Config struct {
	// BlockCapacity is the number of transactions a block accepts before
	// EndBlock runs automatically (spec.md §4.4's "eligible_to_commit").
	BlockCapacity int
	// DuplicatePolicy governs repeat Handles; zero value is
	// DuplicateOverwrite.
	DuplicatePolicy DuplicatePolicy
}
