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

// Package intake implements the Block Intake Router: the single
// point that serialises application of inbound blocks to the chain
// and rebroadcasts locally-produced blocks to the network (spec.md
// §4.4). Router is the sole caller of Chain.HandleIncomingBlock;
// readers of the chain may proceed concurrently, but Router excludes
// both other writers and readers for the duration of one block
// (arbitrated inside the Chain implementation itself).
package intake

import (
	"context"
	"fmt"

	"github.com/bramble-chain/bramble/chain"
	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/internal/xlog"
	"github.com/bramble-chain/bramble/network/peermap"
	"github.com/bramble-chain/bramble/topology"
)

// Origin tags whether a Message arrived from the network or was
// produced locally by this node's leadership path. The tag
// determines whether Router rebroadcasts after applying it.
type Origin int

const (
	// NetworkBlock is a block received from a peer. Applied, never
	// rebroadcast.
	NetworkBlock Origin = iota
	// LeadershipBlock is a block this node produced. Applied, then
	// (only on success) broadcast to the network via the peer map.
	LeadershipBlock
)

// Message is one block-intake item: a block plus the origin that
// decides post-apply behavior.
type Message struct {
	Origin Origin
	Block  chaintypes.Block
}

// Router is the sole writer of the chain. It is safe for concurrent
// use: Apply calls serialise through Chain.HandleIncomingBlock, which
// is expected to hold whatever lock arbitrates chain writes for its
// own duration (spec.md §5).
type Router struct {
	chain     chain.Chain
	peers     *peermap.Map
	broadcast []topology.Node
	log       xlog.Logger
}

// New returns a Router that applies blocks to c and, for
// locally-produced blocks, broadcasts their header to targets via m.
func New(c chain.Chain, m *peermap.Map, targets []topology.Node, log xlog.Logger) *Router {
	return &Router{chain: c, peers: m, broadcast: targets, log: log}
}

// SetBroadcastTargets replaces the node list Apply fans out
// locally-produced block headers to.
func (r *Router) SetBroadcastTargets(targets []topology.Node) {
	r.broadcast = targets
}

// Apply dispatches msg per spec.md §4.4:
//
//   - NetworkBlock: apply to chain. No rebroadcast, regardless of
//     outcome; apply errors are returned to the caller to log, the
//     node continues operating.
//   - LeadershipBlock: apply to chain; only on success, hand the
//     block to the peer map for block-announcement broadcast. Apply
//     happens strictly before broadcast, so a rejected locally-produced
//     block is never advertised (the REDESIGN fix from spec.md §9: the
//     original source broadcast unconditionally, which this router
//     does not do).
func (r *Router) Apply(ctx context.Context, msg Message) error {
	if err := r.chain.HandleIncomingBlock(ctx, msg.Block); err != nil {
		if msg.Origin == LeadershipBlock {
			return fmt.Errorf("intake: leadership block rejected by chain: %w", err)
		}
		r.log.Warn("network block rejected by chain", "err", err, "date", msg.Block.Header.Date)
		return err
	}

	if msg.Origin != LeadershipBlock {
		return nil
	}
	if err := r.peers.PropagateBlock(r.broadcast, msg.Block.Header); err != nil {
		r.log.Info("leadership block broadcast incomplete", "err", err)
	}
	return nil
}
