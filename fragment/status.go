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

package fragment

import (
	"sync"

	"github.com/bramble-chain/bramble/chaintypes"
)

// StatusKind tags a Status's variant.
type StatusKind int

const (
	// Pending is the initial status for any fragment accepted into
	// the pool.
	Pending StatusKind = iota
	// InABlock is terminal: the fragment was selected into a block.
	InABlock
	// Rejected is terminal: the ledger refused the fragment during
	// selection.
	Rejected
)

// Status is a fragment's lifecycle status. Reason is only meaningful
// when Kind is Rejected; it holds the original ledger error rather
// than a pre-rendered string, per the design note in SPEC_FULL.md §7
// ("render to string only at the observability boundary").
type Status struct {
	Kind      StatusKind
	BlockDate chaintypes.BlockDate
	Reason    error
}

// String renders Status for logs and metrics; it is the one place
// Reason is turned into text.
func (s Status) String() string {
	switch s.Kind {
	case InABlock:
		return "in a block (" + s.BlockDate.String() + ")"
	case Rejected:
		if s.Reason != nil {
			return "rejected: " + s.Reason.Error()
		}
		return "rejected"
	default:
		return "pending"
	}
}

// StatusLog is the mapping from fragment identifier to lifecycle
// status. It does not enforce the Pending -> {InABlock, Rejected}
// state machine; that is the selection engine's responsibility
// (spec.md §4.6). It must be safe for concurrent access since the
// API promises no more than the caller's own serialization.
type StatusLog struct {
	mu  sync.Mutex
	log map[chaintypes.FragmentID]Status
}

// NewStatusLog returns an empty log.
func NewStatusLog() *StatusLog {
	return &StatusLog{log: make(map[chaintypes.FragmentID]Status)}
}

// Modify sets id's status unconditionally, creating the entry if
// absent.
func (l *StatusLog) Modify(id chaintypes.FragmentID, status Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log[id] = status
}

// Get returns id's current status, if any entry exists.
func (l *StatusLog) Get(id chaintypes.FragmentID) (Status, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.log[id]
	return s, ok
}

// Len reports how many fragments have an entry.
func (l *StatusLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.log)
}

// Counts reports how many entries currently hold each StatusKind, for
// the metrics package's gauges.
func (l *StatusLog) Counts() (pending, inABlock, rejected int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.log {
		switch s.Kind {
		case Pending:
			pending++
		case InABlock:
			inABlock++
		case Rejected:
			rejected++
		}
	}
	return pending, inABlock, rejected
}
