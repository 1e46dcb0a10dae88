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
	"sort"

	"github.com/holiman/uint256"

	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/fragment"
	"github.com/bramble-chain/bramble/ledger"
)

var zeroFee = uint256.NewInt(0)

// HighestFeeFirst realizes the "additional strategies (e.g.,
// highest-fee-first)" pluggability spec.md §4.5/§9 calls out but
// leaves unimplemented: it evaluates pool candidates in descending
// Fragment.Fee order (a fragment with a nil Fee sorts as zero), ties
// broken by FIFO insertion order, instead of pure insertion order.
// Unlike OldestFirst, Select reports Commit or Reject through the
// shared Output enumeration.
type HighestFeeFirst struct {
	builder chaintypes.BlockBuilder
}

// NewHighestFeeFirst returns a strategy ready for one Select/Finalize
// round.
func NewHighestFeeFirst() *HighestFeeFirst {
	return &HighestFeeFirst{}
}

// Select implements Algorithm. It snapshots the pool's current
// residents, stable-sorts them by fee descending, then evaluates in
// that order until maxPerBlock are accepted or the sorted candidates
// are exhausted. Fragments the ledger rejects are still removed from
// the pool (and logged Rejected); fragments never reached because the
// limit was hit earlier remain resident and Pending.
func (s *HighestFeeFirst) Select(l ledger.Ledger, params ledger.Parameters, ctx ledger.HeaderContentEvalContext, log *fragment.StatusLog, pool *fragment.Pool, maxPerBlock int) Output {
	ids := pool.Snapshot()
	candidates := make([]chaintypes.Fragment, 0, len(ids))
	for _, id := range ids {
		if f, ok := pool.Lookup(id); ok {
			candidates = append(candidates, f)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return feeOf(candidates[i]).Cmp(feeOf(candidates[j])) > 0
	})

	accepted := 0
	for _, frag := range candidates {
		if accepted >= maxPerBlock {
			break
		}
		if _, ok := pool.Remove(frag.ID()); !ok {
			continue
		}
		if apply(l, params, frag, ctx, log) {
			s.builder.Append(frag)
			accepted++
		}
	}
	if accepted == 0 && len(candidates) > 0 {
		return Reject
	}
	return Commit
}

// Finalize implements Algorithm.
func (s *HighestFeeFirst) Finalize() *chaintypes.BlockBuilder {
	return &s.builder
}

// feeOf returns f.Fee, treating a nil Fee (no priority metadata
// attached) as zero so it sorts last.
func feeOf(f chaintypes.Fragment) *uint256.Int {
	if f.Fee == nil {
		return zeroFee
	}
	return f.Fee
}
