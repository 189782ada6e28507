// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abci

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zorachain/ledger/ids"
)

func TestReplayGuardRecordAndContains(t *testing.T) {
	g := newReplayGuard(2)
	id1 := ids.ID{1}
	require.False(t, g.Contains(id1))
	g.Record(id1)
	require.True(t, g.Contains(id1))
}

func TestReplayGuardEvictsOldest(t *testing.T) {
	g := newReplayGuard(2)
	id1, id2, id3 := ids.ID{1}, ids.ID{2}, ids.ID{3}

	g.Record(id1)
	g.Record(id2)
	require.True(t, g.Contains(id1))

	g.Record(id3)
	require.False(t, g.Contains(id1))
	require.True(t, g.Contains(id2))
	require.True(t, g.Contains(id3))
}

func TestReplayGuardZeroCapacityClampsToOne(t *testing.T) {
	g := newReplayGuard(0)
	id1, id2 := ids.ID{1}, ids.ID{2}
	g.Record(id1)
	g.Record(id2)
	require.False(t, g.Contains(id1))
	require.True(t, g.Contains(id2))
}
