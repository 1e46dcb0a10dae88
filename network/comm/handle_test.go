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

package comm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bramble-chain/bramble/chaintypes"
)

func TestTrySendWithoutSubscriptionIsNotSubscribed(t *testing.T) {
	p := NewPeerComms()
	err := p.TrySendBlockAnnouncement(chaintypes.Header{ProducerID: "a"})

	var sendErr *SendError[chaintypes.Header]
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, NotSubscribed, sendErr.Outcome)
}

// TestResubscribeSupersedesPriorStream covers property 4: a second
// subscribe on the same topic terminates the first stream and only
// items sent after resubscription reach the new one.
func TestResubscribeSupersedesPriorStream(t *testing.T) {
	p := NewPeerComms()

	first := p.SubscribeBlockAnnouncements()
	require.NoError(t, p.TrySendBlockAnnouncement(chaintypes.Header{ProducerID: "before"}))

	second := p.SubscribeBlockAnnouncements()

	// The first stream yields what was already queued, then closes.
	h, ok := <-first.C()
	require.True(t, ok)
	require.Equal(t, "before", h.ProducerID)
	_, ok = <-first.C()
	require.False(t, ok)

	require.NoError(t, p.TrySendBlockAnnouncement(chaintypes.Header{ProducerID: "after"}))
	h, ok = <-second.C()
	require.True(t, ok)
	require.Equal(t, "after", h.ProducerID)
}

func TestPeerCommsCloseTerminatesAllFourTopics(t *testing.T) {
	p := NewPeerComms()
	announce := p.SubscribeBlockAnnouncements()
	solicit := p.SubscribeBlockSolicitations()
	frag := p.SubscribeFragments()
	gossip := p.SubscribeGossip()

	p.Close()

	for _, closed := range []bool{
		isClosed(announce.C()),
		isClosed(solicit.C()),
		isClosed(frag.C()),
		isClosed(gossip.C()),
	} {
		require.True(t, closed)
	}
}

func isClosed[T any](c <-chan T) bool {
	select {
	case _, ok := <-c:
		return !ok
	default:
		return false
	}
}

func TestBlockEventSubscriptionMergesBothTopics(t *testing.T) {
	p := NewPeerComms()
	sub := p.SubscribeBlockEvents()

	require.NoError(t, p.TrySendBlockAnnouncement(chaintypes.Header{ProducerID: "x"}))
	require.NoError(t, p.TrySendBlockSolicitation([]chaintypes.HeaderHash{{1}}))

	seen := map[BlockEventKind]int{}
	for i := 0; i < 2; i++ {
		ev, ok := sub.Next(context.Background())
		require.True(t, ok)
		seen[ev.Kind]++
	}
	require.Equal(t, 1, seen[Announce])
	require.Equal(t, 1, seen[Solicit])
}
