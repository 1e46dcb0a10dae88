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

	"github.com/bramble-chain/bramble/chaintypes"
)

// BlockEventKind tags which side of a BlockEventSubscription produced
// an event.
type BlockEventKind int

const (
	// Announce is a block header announcement.
	Announce BlockEventKind = iota
	// Solicit is a request for blocks identified by hash.
	Solicit
)

// BlockEvent is one item from a merged BlockEventSubscription.
type BlockEvent struct {
	Kind   BlockEventKind
	Header chaintypes.Header
	Hashes []chaintypes.HeaderHash
}

// BlockEventSubscription is the composite stream the RPC transport
// subscribes a peer's outbound connection to: block announcements
// merged with block solicitations. Ordering between the two topics is
// unspecified; within each topic, order is FIFO (spec.md §4.2).
type BlockEventSubscription struct {
	announceSub *Subscription[chaintypes.Header]
	solicitSub  *Subscription[[]chaintypes.HeaderHash]

	announce <-chan chaintypes.Header
	solicit  <-chan []chaintypes.HeaderHash
}

func newBlockEventSubscription(announce *Subscription[chaintypes.Header], solicit *Subscription[[]chaintypes.HeaderHash]) *BlockEventSubscription {
	return &BlockEventSubscription{
		announceSub: announce,
		solicitSub:  solicit,
		announce:    announce.C(),
		solicit:     solicit.C(),
	}
}

// Next blocks until either side of the merged stream yields an item,
// ctx is cancelled, or both sides have closed. The second return
// value is false only in the latter two cases.
//
// A nil channel is never selectable, so once one side closes it drops
// out of the select without affecting the other.
func (s *BlockEventSubscription) Next(ctx context.Context) (BlockEvent, bool) {
	for {
		if s.announce == nil && s.solicit == nil {
			return BlockEvent{}, false
		}
		select {
		case <-ctx.Done():
			return BlockEvent{}, false
		case h, ok := <-s.announce:
			if !ok {
				s.announce = nil
				continue
			}
			return BlockEvent{Kind: Announce, Header: h}, true
		case hs, ok := <-s.solicit:
			if !ok {
				s.solicit = nil
				continue
			}
			return BlockEvent{Kind: Solicit, Hashes: hs}, true
		}
	}
}

// Unsubscribe drops both underlying subscriptions.
func (s *BlockEventSubscription) Unsubscribe() {
	s.announceSub.Unsubscribe()
	s.solicitSub.Unsubscribe()
}
