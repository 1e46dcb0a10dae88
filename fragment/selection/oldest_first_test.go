// Copyright 2024 The Bramble Authors
// This file is part of the bramble library.
//
// The bramble library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The bramble library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.

package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/fragment"
	"github.com/bramble-chain/bramble/ledger"
)

func fragOf(payload string) chaintypes.Fragment {
	return chaintypes.Fragment{Payload: []byte(payload)}
}

// TestOldestFirstMonotonicity covers property 6 and scenario S4: with
// max_per_block = K and N accepted candidates, the builder holds
// exactly min(K, N) fragments in insertion order, and the status log
// reflects InABlock for drained fragments, Pending for the rest.
func TestOldestFirstMonotonicity(t *testing.T) {
	pool := fragment.NewPool()
	log := fragment.NewStatusLog()
	f1, f2, f3 := fragOf("1"), fragOf("2"), fragOf("3")
	pool.Insert(log, f1)
	pool.Insert(log, f2)
	pool.Insert(log, f3)

	ctx := ledger.HeaderContentEvalContext{BlockDate: chaintypes.BlockDate{Epoch: 1, Slot: 1}}

	strat := NewOldestFirst()
	out := strat.Select(newRejectingLedger(nil), ledger.Parameters{}, ctx, log, pool, 2)
	require.Equal(t, Commit, out)

	built := strat.Finalize().Fragments()
	require.Equal(t, []chaintypes.Fragment{f1, f2}, built)

	s1, _ := log.Get(f1.ID())
	s2, _ := log.Get(f2.ID())
	require.Equal(t, fragment.InABlock, s1.Kind)
	require.Equal(t, fragment.InABlock, s2.Kind)

	s3, ok := log.Get(f3.ID())
	require.True(t, ok, "f3 was accepted into the pool, so it has a status log entry")
	require.Equal(t, fragment.Pending, s3.Kind, "f3 was never drained, so it remains Pending")

	_, ok = pool.Lookup(f3.ID())
	require.True(t, ok, "f3 remains resident, not drained")
}

// TestOldestFirstRejectedFragmentNotEmitted covers scenario S5 and
// property 8: a ledger-rejected fragment is logged Rejected and
// excluded from the builder, and removed from the pool.
func TestOldestFirstRejectedFragmentNotEmitted(t *testing.T) {
	pool := fragment.NewPool()
	log := fragment.NewStatusLog()
	f1, f2 := fragOf("1"), fragOf("2")
	pool.Insert(log, f1)
	pool.Insert(log, f2)

	l := newRejectingLedger(map[string]error{"2": errBadSig})

	strat := NewOldestFirst()
	strat.Select(l, ledger.Parameters{}, ledger.HeaderContentEvalContext{}, log, pool, 10)

	built := strat.Finalize().Fragments()
	require.Equal(t, []chaintypes.Fragment{f1}, built)

	s2, ok := log.Get(f2.ID())
	require.True(t, ok)
	require.Equal(t, fragment.Rejected, s2.Kind)
	require.ErrorIs(t, s2.Reason, errBadSig)

	require.Equal(t, 0, pool.Len())
}

// TestOldestFirstStatusLogCoverage covers property 7: after Select
// returns, every drained fragment has a terminal status.
func TestOldestFirstStatusLogCoverage(t *testing.T) {
	pool := fragment.NewPool()
	log := fragment.NewStatusLog()
	ids := make([]chaintypes.FragmentID, 0, 5)
	for i := 0; i < 5; i++ {
		f := fragOf(string(rune('a' + i)))
		pool.Insert(log, f)
		ids = append(ids, f.ID())
	}

	strat := NewOldestFirst()
	strat.Select(newRejectingLedger(nil), ledger.Parameters{}, ledger.HeaderContentEvalContext{}, log, pool, 5)

	for _, id := range ids {
		s, ok := log.Get(id)
		require.True(t, ok)
		require.NotEqual(t, fragment.Pending, s.Kind)
	}
}

func TestOldestFirstEmptyPool(t *testing.T) {
	pool := fragment.NewPool()
	log := fragment.NewStatusLog()
	strat := NewOldestFirst()

	out := strat.Select(newRejectingLedger(nil), ledger.Parameters{}, ledger.HeaderContentEvalContext{}, log, pool, 10)
	require.Equal(t, Commit, out)
	require.Empty(t, strat.Finalize().Fragments())
}
