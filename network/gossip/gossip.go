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

// Package gossip is a thin fan-out helper over peermap.Map's
// single-target PropagateGossipTo, for callers that want to push one
// message to a whole known-peer set rather than naming one peer at a
// time. Actual topology maintenance (membership discovery, address
// exchange) is out of scope here; this package only tracks which
// NodeIDs the caller has told it about.
package gossip

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/bramble-chain/bramble/network/comm"
	"github.com/bramble-chain/bramble/network/peermap"
	"github.com/bramble-chain/bramble/topology"
)

// KnownPeers tracks a set of peer identifiers a gossip round should
// reach, independent of whether peermap.Map currently has a live
// record for each of them.
type KnownPeers struct {
	ids mapset.Set[topology.NodeID]
}

// NewKnownPeers returns an empty set.
func NewKnownPeers() *KnownPeers {
	return &KnownPeers{ids: mapset.NewThreadUnsafeSet[topology.NodeID]()}
}

// Add records id as a peer gossip should be fanned out to.
func (k *KnownPeers) Add(id topology.NodeID) {
	k.ids.Add(id)
}

// Remove drops id from the set, e.g. once a peer has been evicted
// from the peer map.
func (k *KnownPeers) Remove(id topology.NodeID) {
	k.ids.Remove(id)
}

// FanOut sends msg to every known peer via m, returning the subset
// that could not be reached.
func FanOut(m *peermap.Map, known *KnownPeers, msg comm.GossipMessage) []topology.NodeID {
	var unreached []topology.NodeID
	for id := range known.ids.Iter() {
		if err := m.PropagateGossipTo(id, msg); err != nil {
			unreached = append(unreached, id)
		}
	}
	return unreached
}
