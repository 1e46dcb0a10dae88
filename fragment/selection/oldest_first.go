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
	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/fragment"
	"github.com/bramble-chain/bramble/ledger"
)

// OldestFirst is the baseline strategy specified in spec.md §4.5: it
// drains the pool's FIFO-by-time view oldest-first, accepting every
// fragment the ledger does not reject, until maxPerBlock are
// accepted or the pool is exhausted. Select always returns Commit;
// OldestFirst carries no richer feedback.
type OldestFirst struct {
	builder chaintypes.BlockBuilder
}

// NewOldestFirst returns a strategy ready for one Select/Finalize
// round.
func NewOldestFirst() *OldestFirst {
	return &OldestFirst{}
}

// Select implements Algorithm.
func (s *OldestFirst) Select(l ledger.Ledger, params ledger.Parameters, ctx ledger.HeaderContentEvalContext, log *fragment.StatusLog, pool *fragment.Pool, maxPerBlock int) Output {
	accepted := 0
	for accepted < maxPerBlock {
		id, ok := pool.PopOldest()
		if !ok {
			break
		}
		frag, ok := pool.Remove(id)
		if !ok {
			// Already removed by a concurrent caller; nothing to apply.
			continue
		}
		if apply(l, params, frag, ctx, log) {
			s.builder.Append(frag)
			accepted++
		}
	}
	return Commit
}

// Finalize implements Algorithm.
func (s *OldestFirst) Finalize() *chaintypes.BlockBuilder {
	return &s.builder
}
