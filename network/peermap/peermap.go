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

// Package peermap implements the Peer Map: the concurrent registry
// mapping a peer identifier to its communication handles, with
// best-effort fan-out propagation and automatic unsubscription of
// broken peers (spec.md §4.3).
package peermap

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/internal/xlog"
	"github.com/bramble-chain/bramble/network/comm"
	"github.com/bramble-chain/bramble/topology"
)

// maxKnownBlocks bounds the per-peer set of announced header hashes
// used to skip redundant propagation. Grounded in the teacher
// lineage's eth.Peer.knownBlocks dedup pattern.
const maxKnownBlocks = 1024

type entry struct {
	comms *comm.PeerComms

	known     mapset.Set[chaintypes.HeaderHash]
	knownFIFO []chaintypes.HeaderHash
}

func newEntry(comms *comm.PeerComms) *entry {
	return &entry{
		comms: comms,
		known: mapset.NewThreadUnsafeSet[chaintypes.HeaderHash](),
	}
}

// markKnown records hash as already announced to this peer, evicting
// the oldest recorded hash if the set is at capacity.
func (e *entry) markKnown(hash chaintypes.HeaderHash) {
	if e.known.Contains(hash) {
		return
	}
	if e.known.Cardinality() >= maxKnownBlocks && len(e.knownFIFO) > 0 {
		oldest := e.knownFIFO[0]
		e.knownFIFO = e.knownFIFO[1:]
		e.known.Remove(oldest)
	}
	e.known.Add(hash)
	e.knownFIFO = append(e.knownFIFO, hash)
}

func (e *entry) knowsBlock(hash chaintypes.HeaderHash) bool {
	return e.known.Contains(hash)
}

// Map is the shared, mutation-safe registry of connected peers. All
// operations acquire a single exclusive lock for their duration; only
// non-blocking sends happen inside that critical section (spec.md
// §4.3/§5).
type Map struct {
	mu      sync.Mutex
	entries map[topology.NodeID]*entry
	log     xlog.Logger
}

// New returns an empty Map.
func New(log xlog.Logger) *Map {
	return &Map{
		entries: make(map[topology.NodeID]*entry),
		log:     log,
	}
}

// InsertPeer unconditionally installs a record for id. If one already
// existed, it is replaced and its channels closed.
func (m *Map) InsertPeer(id topology.NodeID, comms *comm.PeerComms) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.entries[id]; ok {
		prev.comms.Close()
	}
	m.entries[id] = newEntry(comms)
}

func (m *Map) ensure(id topology.NodeID) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		e = newEntry(comm.NewPeerComms())
		m.entries[id] = e
	}
	return e
}

// SubscribeToBlockEvents lazily creates id's record if absent and
// returns its merged announce+solicit stream.
func (m *Map) SubscribeToBlockEvents(id topology.NodeID) *comm.BlockEventSubscription {
	return m.ensure(id).comms.SubscribeBlockEvents()
}

// SubscribeToMessages lazily creates id's record if absent and
// returns its fragment relay stream.
func (m *Map) SubscribeToMessages(id topology.NodeID) *comm.Subscription[chaintypes.Fragment] {
	return m.ensure(id).comms.SubscribeFragments()
}

// SubscribeToGossip lazily creates id's record if absent and returns
// its gossip stream.
func (m *Map) SubscribeToGossip(id topology.NodeID) *comm.Subscription[comm.GossipMessage] {
	return m.ensure(id).comms.SubscribeGossip()
}

// Contains reports whether id currently has a record. Exposed for
// tests and observability only; propagation atomicity does not rely
// on callers checking this first.
func (m *Map) Contains(id topology.NodeID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[id]
	return ok
}

// Len reports the number of registered peers.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// removeLocked drops id's record and closes its channels. Callers
// must hold m.mu.
func (m *Map) removeLocked(id topology.NodeID) {
	if e, ok := m.entries[id]; ok {
		delete(m.entries, id)
		e.comms.Close()
	}
}

// PropagateBlock best-effort sends header as a block announcement to
// every node in nodes. A peer already known (per its bounded
// known-block set) to have this header is skipped without being
// treated as unreached. Per spec.md §4.3, NotSubscribed surrenders
// the peer into unreached without removing it; SubscriptionClosed,
// StreamOverflow, and Unexpected all remove the peer record.
func (m *Map) PropagateBlock(nodes []topology.Node, header chaintypes.Header) error {
	hash := header.Hash()

	m.mu.Lock()
	defer m.mu.Unlock()

	var unreached []topology.Node
	for _, node := range nodes {
		e, ok := m.entries[node.ID]
		if !ok {
			unreached = append(unreached, node)
			continue
		}
		if e.knowsBlock(hash) {
			continue
		}
		if err := e.comms.TrySendBlockAnnouncement(header); err != nil {
			m.handlePropagateFailure(node.ID, err)
			unreached = append(unreached, node)
			continue
		}
		e.markKnown(hash)
	}
	if len(unreached) == 0 {
		return nil
	}
	return &UnreachedError{Nodes: unreached}
}

// PropagateMessage best-effort relays payload as a fragment to every
// node in nodes.
func (m *Map) PropagateMessage(nodes []topology.Node, payload chaintypes.Fragment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var unreached []topology.Node
	for _, node := range nodes {
		e, ok := m.entries[node.ID]
		if !ok {
			unreached = append(unreached, node)
			continue
		}
		if err := e.comms.TrySendFragment(payload); err != nil {
			m.handlePropagateFailure(node.ID, err)
			unreached = append(unreached, node)
		}
	}
	if len(unreached) == 0 {
		return nil
	}
	return &UnreachedError{Nodes: unreached}
}

// PropagateGossipTo best-effort sends gossip to a single peer,
// surrendering it back to the caller if the peer is absent or its
// channel is broken.
func (m *Map) PropagateGossipTo(id topology.NodeID, gossip comm.GossipMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return &GossipUnreachedError{Gossip: gossip}
	}
	if err := e.comms.TrySendGossip(gossip); err != nil {
		m.handlePropagateFailure(id, err)
		return &GossipUnreachedError{Gossip: gossip}
	}
	return nil
}

// SolicitBlocks best-effort sends a solicitation for hashes to id.
// Overflow and other failures are only logged, never removing the
// peer: a solicitation is a low-priority request, not a health
// signal. Unlike the other propagation paths, an unknown peer is not
// surrendered to the caller here; there is no reconnect-on-demand
// path in this module (see SPEC_FULL.md §9 / DESIGN.md).
//
// TODO: dial and subscribe to id on demand when it has no record,
// instead of only warning and dropping the solicitation.
func (m *Map) SolicitBlocks(id topology.NodeID, hashes []chaintypes.HeaderHash) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		m.log.Warn("peer not available to solicit blocks from", "peer", id)
		return
	}
	if err := e.comms.TrySendBlockSolicitation(hashes); err != nil {
		m.log.Warn("block solicitation failed", "peer", id, "err", err)
	}
}

// handlePropagateFailure applies the §4.3 failure policy: everything
// except NotSubscribed removes the peer record. Caller must hold m.mu.
func (m *Map) handlePropagateFailure(id topology.NodeID, err error) {
	var kind comm.Outcome
	switch e := err.(type) {
	case *comm.SendError[chaintypes.Header]:
		kind = e.Outcome
	case *comm.SendError[chaintypes.Fragment]:
		kind = e.Outcome
	case *comm.SendError[comm.GossipMessage]:
		kind = e.Outcome
	case *comm.SendError[[]chaintypes.HeaderHash]:
		kind = e.Outcome
	default:
		kind = comm.Unexpected
	}

	m.log.Info("propagation to peer failed", "peer", id, "reason", kind)
	if kind == comm.NotSubscribed {
		return
	}
	m.log.Debug("unsubscribing peer", "peer", id)
	m.removeLocked(id)
}

// UnreachedError reports a partial propagation failure: the caller
// may choose to re-fan-out to the listed nodes later.
type UnreachedError struct {
	Nodes []topology.Node
}

func (e *UnreachedError) Error() string {
	return "peermap: unreached nodes"
}

// GossipUnreachedError surrenders a gossip payload that could not be
// delivered to its single target.
type GossipUnreachedError struct {
	Gossip comm.GossipMessage
}

func (e *GossipUnreachedError) Error() string {
	return "peermap: gossip target unreached"
}
