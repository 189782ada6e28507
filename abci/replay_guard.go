// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abci

import (
	"sync"

	"github.com/zorachain/ledger/ids"
)

// replayGuard is a bounded, in-memory set of recently seen transaction
// content hashes, supplementing spec.md §6 with the original's
// TX_HISTORY/Mapx duplicate check (callback/mod.rs) so CheckTx/DeliverTx
// reject replays before they ever reach submission.Server. Persistence is
// out of scope, so this is a simple ring buffer rather than the original's
// disk-backed Mapx: once capacity is exceeded, the oldest entry is evicted
// and could in principle be replayed again, trading unbounded memory for a
// bounded (and documented) re-admission window.
type replayGuard struct {
	mu       sync.Mutex
	capacity int
	order    []ids.ID
	seen     map[ids.ID]struct{}
}

func newReplayGuard(capacity int) *replayGuard {
	if capacity <= 0 {
		capacity = 1
	}
	return &replayGuard{
		capacity: capacity,
		seen:     make(map[ids.ID]struct{}, capacity),
	}
}

// Contains reports whether id was recorded and still within the window.
func (g *replayGuard) Contains(id ids.ID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.seen[id]
	return ok
}

// Record adds id to the window, evicting the oldest entry if at capacity.
func (g *replayGuard) Record(id ids.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[id]; ok {
		return
	}
	if len(g.order) >= g.capacity {
		oldest := g.order[0]
		g.order = g.order[1:]
		delete(g.seen, oldest)
	}
	g.order = append(g.order, id)
	g.seen[id] = struct{}{}
}
