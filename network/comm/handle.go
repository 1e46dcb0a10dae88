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
	"sync"

	"github.com/bramble-chain/bramble/chaintypes"
)

// GossipMessage is the opaque payload exchanged on the gossip topic
// for peer-set/topology maintenance. Its contents are not interpreted
// here.
type GossipMessage struct {
	Payload []byte
}

// topicState holds the current subscription (or absence of one) for
// a single topic of a single peer. It implements the NotSubscribed /
// Subscribed(producer) state machine from spec.md §3.
type topicState[T any] struct {
	mu      sync.Mutex
	current *channel[T]
}

// subscribe installs a fresh channel, closing and replacing whatever
// was subscribed before. The previous consumer's stream terminates
// cleanly with no further items (spec.md §3, "re-subscribing
// replaces the state").
func (s *topicState[T]) subscribe() *Subscription[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.closeProducer()
	}
	ch := newChannel[T]()
	s.current = ch
	return &Subscription[T]{parent: ch}
}

// trySend enqueues item on the current subscription, if any.
func (s *topicState[T]) trySend(item T) error {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if cur == nil {
		return &SendError[T]{Outcome: NotSubscribed, Item: item}
	}
	return cur.trySend(item)
}

// close tears down any current subscription, closing its stream.
func (s *topicState[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.closeProducer()
		s.current = nil
	}
}

// PeerComms groups the four typed topic states for a single peer.
// Per spec.md §3, dropping (closing) a PeerComms closes all four
// channels; the zero value is ready to use, with every topic starting
// NotSubscribed.
type PeerComms struct {
	blockAnnouncements topicState[chaintypes.Header]
	blockSolicitations topicState[[]chaintypes.HeaderHash]
	fragments          topicState[chaintypes.Fragment]
	gossip             topicState[GossipMessage]
}

// NewPeerComms returns a PeerComms with every topic NotSubscribed.
func NewPeerComms() *PeerComms {
	return &PeerComms{}
}

// SubscribeBlockAnnouncements registers a fresh consumer for block
// header announcements.
func (p *PeerComms) SubscribeBlockAnnouncements() *Subscription[chaintypes.Header] {
	return p.blockAnnouncements.subscribe()
}

// SubscribeBlockSolicitations registers a fresh consumer for block
// solicitation requests.
func (p *PeerComms) SubscribeBlockSolicitations() *Subscription[[]chaintypes.HeaderHash] {
	return p.blockSolicitations.subscribe()
}

// SubscribeFragments registers a fresh consumer for fragment
// (transaction) relay.
func (p *PeerComms) SubscribeFragments() *Subscription[chaintypes.Fragment] {
	return p.fragments.subscribe()
}

// SubscribeGossip registers a fresh consumer for gossip messages.
func (p *PeerComms) SubscribeGossip() *Subscription[GossipMessage] {
	return p.gossip.subscribe()
}

// SubscribeBlockEvents returns the merged announce+solicit stream a
// transport task polls to serve a peer's BlockEvent subscription.
func (p *PeerComms) SubscribeBlockEvents() *BlockEventSubscription {
	return newBlockEventSubscription(p.blockAnnouncements.subscribe(), p.blockSolicitations.subscribe())
}

// TrySendBlockAnnouncement best-effort sends header to this peer.
func (p *PeerComms) TrySendBlockAnnouncement(header chaintypes.Header) error {
	return p.blockAnnouncements.trySend(header)
}

// TrySendBlockSolicitation best-effort sends a solicitation for
// hashes to this peer.
func (p *PeerComms) TrySendBlockSolicitation(hashes []chaintypes.HeaderHash) error {
	return p.blockSolicitations.trySend(hashes)
}

// TrySendFragment best-effort relays fragment to this peer.
func (p *PeerComms) TrySendFragment(fragment chaintypes.Fragment) error {
	return p.fragments.trySend(fragment)
}

// TrySendGossip best-effort sends a gossip message to this peer.
func (p *PeerComms) TrySendGossip(msg GossipMessage) error {
	return p.gossip.trySend(msg)
}

// Close tears down all four topic subscriptions, closing their
// streams. Called by the peer map when a peer record is removed.
func (p *PeerComms) Close() {
	p.blockAnnouncements.close()
	p.blockSolicitations.close()
	p.fragments.close()
	p.gossip.close()
}
