// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// capacityGate bounds how many transactions may be cached into the open
// block before a caller must wait for EndBlock/AbortBlock to free room,
// giving HandleTransaction's synchronous capacity check (spec.md §4.4's
// "eligible_to_commit") an asynchronous counterpart for callers that submit
// concurrently from multiple goroutines rather than a single consensus
// callback thread.
type capacityGate struct {
	sem *semaphore.Weighted
}

func newCapacityGate(capacity int) *capacityGate {
	return &capacityGate{sem: semaphore.NewWeighted(int64(capacity))}
}

// wait blocks until a slot in the open block is available or ctx is done.
func (g *capacityGate) wait(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// release returns n slots: all slots held by a block's transactions when
// that block is finished or aborted, or a single slot when a transaction
// fails to be cached.
func (g *capacityGate) release(n int) {
	if n > 0 {
		g.sem.Release(int64(n))
	}
}
