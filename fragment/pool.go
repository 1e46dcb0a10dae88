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

// Package fragment holds the mempool (Pool) and the fragment status
// log, the volatile process-local state the selection engine drains.
// Fragments have no persistence format; the pool's physical layout
// beyond insertion/lookup/removal/FIFO-by-time is not specified, so
// this is one reasonable implementation, not a contract other
// packages depend on structurally.
package fragment

import (
	"sync"

	"github.com/bramble-chain/bramble/chaintypes"
)

// Pool is the mempool of pending fragments: insertion, lookup and
// removal by identifier, and an oldest-first view by insertion time.
type Pool struct {
	mu     sync.Mutex
	byID   map[chaintypes.FragmentID]chaintypes.Fragment
	oldest []chaintypes.FragmentID
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{byID: make(map[chaintypes.FragmentID]chaintypes.Fragment)}
}

// Insert adds fragment to the pool and records its acceptance as
// Pending in log, per spec.md §3's lifecycle ("an entry is created
// Pending when the fragment is accepted into the pool"). Inserting a
// fragment whose ID is already present is a no-op, reports false, and
// leaves log untouched.
func (p *Pool) Insert(log *StatusLog, fragment chaintypes.Fragment) bool {
	p.mu.Lock()
	id := fragment.ID()
	if _, exists := p.byID[id]; exists {
		p.mu.Unlock()
		return false
	}
	p.byID[id] = fragment
	p.oldest = append(p.oldest, id)
	p.mu.Unlock()

	log.Modify(id, Status{Kind: Pending})
	return true
}

// Lookup returns the fragment for id, if resident.
func (p *Pool) Lookup(id chaintypes.FragmentID) (chaintypes.Fragment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.byID[id]
	return f, ok
}

// Remove deletes id from the pool's lookup map and returns the
// fragment that was there, if any. It does not touch the FIFO-by-time
// view; selection strategies that have already popped id from there
// call Remove to complete the drain.
func (p *Pool) Remove(id chaintypes.FragmentID) (chaintypes.Fragment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.byID[id]
	if ok {
		delete(p.byID, id)
	}
	return f, ok
}

// PopOldest removes and returns the oldest-resident identifier from
// the FIFO-by-time view, or reports false if the pool is empty. The
// fragment itself remains in the lookup map until Remove is called.
func (p *Pool) PopOldest() (chaintypes.FragmentID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.oldest) == 0 {
		return chaintypes.FragmentID{}, false
	}
	id := p.oldest[0]
	p.oldest = p.oldest[1:]
	return id, true
}

// Len reports how many fragments are currently in the lookup map.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}

// Snapshot returns a copy of the FIFO-by-time view, oldest first, for
// tests and observability. It does not mutate the pool. Because
// Remove does not touch that view, an ID removed but not yet popped
// still appears, and an ID popped but not yet removed does not.
func (p *Pool) Snapshot() []chaintypes.FragmentID {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]chaintypes.FragmentID, len(p.oldest))
	copy(out, p.oldest)
	return out
}
