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

package chain

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/ledger"
)

const knownBlockCacheSize = 4096

// MemChain is a minimal in-process Chain: it tracks only the set of
// block hashes it has already applied (for idempotency) and re-runs
// every fragment through a ledger.Ledger on each new block. It is not
// a substitute for a real storage/fork-choice layer; it exists so the
// intake router and the example node binary have something concrete
// to drive.
type MemChain struct {
	mu     sync.RWMutex
	params ledger.Parameters
	ledger ledger.Ledger
	known  *lru.Cache
	blocks []chaintypes.Block
}

// NewMemChain builds a MemChain that applies every fragment in an
// incoming block's body against l using params.
func NewMemChain(l ledger.Ledger, params ledger.Parameters) *MemChain {
	known, err := lru.New(knownBlockCacheSize)
	if err != nil {
		// Only fails for a non-positive size, which knownBlockCacheSize never is.
		panic(err)
	}
	return &MemChain{
		params: params,
		ledger: l,
		known:  known,
	}
}

// HandleIncomingBlock implements Chain. It takes the chain's write
// lock for the duration of application, as spec.md §5 requires: the
// caller (intake.Router) must not hold any other lock across this
// call.
func (c *MemChain) HandleIncomingBlock(ctx context.Context, block chaintypes.Block) error {
	hash := block.Header.Hash()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.known.Contains(hash) {
		return nil
	}

	evalCtx := ledger.HeaderContentEvalContext{BlockDate: block.Header.Date}
	for _, frag := range block.Fragments {
		if err := c.ledger.ApplyFragment(c.params, frag, evalCtx); err != nil {
			return err
		}
	}

	c.known.Add(hash, struct{}{})
	c.blocks = append(c.blocks, block)
	return nil
}

// Len reports how many distinct blocks have been applied, for tests
// and observability.
func (c *MemChain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}
