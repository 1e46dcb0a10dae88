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

// Package selection implements the Fragment Selection Engine: the
// pluggable policy that drains fragment.Pool under ledger validation
// to assemble a new block body (spec.md §4.5). Algorithm is the
// two-operation contract every strategy implements; OldestFirst and
// HighestFeeFirst are the two concrete strategies this module ships.
package selection

import (
	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/fragment"
	"github.com/bramble-chain/bramble/ledger"
)

// Output tags the outcome of one Select call. OldestFirst never
// returns anything but Commit; the enumeration is kept in the public
// surface (per the design note in spec.md §9) so richer strategies
// can report finer-grained feedback without changing the Algorithm
// contract.
type Output int

const (
	// Commit means the strategy drained as much of the pool as its
	// limits allowed and is ready for Finalize.
	Commit Output = iota
	// RequestSmallerFee signals the caller should retry selection with
	// a lower minimum fee threshold. Unused by OldestFirst and
	// HighestFeeFirst; reserved for future strategies.
	RequestSmallerFee
	// RequestSmallerSize signals the caller should retry with a
	// smaller max block size. Unused by the strategies in this module.
	RequestSmallerSize
	// Reject means the strategy declined to produce a block body at
	// all. HighestFeeFirst returns it when it evaluated at least one
	// candidate and accepted none; OldestFirst never returns it.
	Reject
)

// Algorithm is the abstract selection-strategy capability: select may
// be invoked once per assembly, then finalize consumes the strategy
// and returns the accumulated block body (spec.md §4.5).
type Algorithm interface {
	// Select drains candidates from pool under params/ctx, updating
	// log and the pool as it goes, until maxPerBlock fragments have
	// been accepted or the pool is exhausted.
	Select(l ledger.Ledger, params ledger.Parameters, ctx ledger.HeaderContentEvalContext, log *fragment.StatusLog, pool *fragment.Pool, maxPerBlock int) Output
	// Finalize consumes the strategy and returns the accumulated block
	// body. Calling it before Select, or more than once, is a
	// programmer error.
	Finalize() *chaintypes.BlockBuilder
}

// apply runs one fragment through the ledger and records the outcome
// in log, returning whether it was accepted. Shared by every
// strategy in this package.
func apply(l ledger.Ledger, params ledger.Parameters, frag chaintypes.Fragment, ctx ledger.HeaderContentEvalContext, log *fragment.StatusLog) bool {
	id := frag.ID()
	if err := l.ApplyFragment(params, frag, ctx); err != nil {
		log.Modify(id, fragment.Status{Kind: fragment.Rejected, Reason: err})
		return false
	}
	log.Modify(id, fragment.Status{Kind: fragment.InABlock, BlockDate: ctx.BlockDate})
	return true
}
