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

// Package topology defines peer identity. Address encoding, key
// handling, and actual topology maintenance (peer discovery, gossip
// protocols for membership) are external collaborators; this package
// only fixes the identifier type the Peer Map keys its registry by.
package topology

import "fmt"

// NodeID names a remote node. It is a fixed-size opaque value so it
// is comparable, hashable, and usable directly as a map key or a
// mapset element.
type NodeID [20]byte

func (id NodeID) String() string {
	return fmt.Sprintf("%x", id[:])
}

// Node is a peer as known to the topology/gossip layer: an
// identifier plus whatever address information the transport needs
// to dial it. Address is opaque here; the transport owns its
// interpretation.
type Node struct {
	ID      NodeID
	Address string
}
