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

package gossip

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bramble-chain/bramble/internal/xlog"
	"github.com/bramble-chain/bramble/network/comm"
	"github.com/bramble-chain/bramble/network/peermap"
	"github.com/bramble-chain/bramble/topology"
)

func nodeID(b byte) topology.NodeID {
	var id topology.NodeID
	id[0] = b
	return id
}

func TestFanOutReachesSubscribedPeers(t *testing.T) {
	m := peermap.New(xlog.Nop)
	a, b := nodeID(1), nodeID(2)
	subA := m.SubscribeToGossip(a)
	m.SubscribeToGossip(b)

	known := NewKnownPeers()
	known.Add(a)
	known.Add(b)

	msg := comm.GossipMessage{Payload: []byte("hello")}
	unreached := FanOut(m, known, msg)
	require.Empty(t, unreached)

	got := <-subA.C()
	require.Equal(t, msg, got)
}

func TestFanOutReportsUnreachedPeers(t *testing.T) {
	m := peermap.New(xlog.Nop)
	known := NewKnownPeers()
	known.Add(nodeID(9))

	unreached := FanOut(m, known, comm.GossipMessage{Payload: []byte("x")})
	require.Equal(t, []topology.NodeID{nodeID(9)}, unreached)
}

func TestKnownPeersRemove(t *testing.T) {
	known := NewKnownPeers()
	known.Add(nodeID(1))
	known.Remove(nodeID(1))

	m := peermap.New(xlog.Nop)
	unreached := FanOut(m, known, comm.GossipMessage{})
	require.Empty(t, unreached)
}
