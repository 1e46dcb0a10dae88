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

// Package chaintypes holds the small set of data types shared by the
// network, intake, and fragment packages: blocks, headers, and the
// content-addressed identifiers derived from them. The ledger's
// transaction semantics and the chain's storage format are not part
// of this package; they are external collaborators (see package
// ledger and package chain).
package chaintypes

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// HeaderHash identifies a block header by content hash.
type HeaderHash [32]byte

func (h HeaderHash) String() string {
	return fmt.Sprintf("%x", h[:])
}

// BlockDate is the slot/epoch coordinate a block was produced for. Its
// internal structure is opaque to the core; only equality and the
// values leadership selection supplies are used here.
type BlockDate struct {
	Epoch uint32
	Slot  uint32
}

func (d BlockDate) String() string {
	return fmt.Sprintf("%d.%d", d.Epoch, d.Slot)
}

// Header is the portion of a block that gets announced and gossiped
// ahead of (or instead of) the full body.
type Header struct {
	ParentHash HeaderHash
	Date       BlockDate
	ProducerID string
	ContentLen int
}

// Hash derives the header's content hash. It is deterministic for a
// given Header value, which is all the core relies on. It uses the
// same legacy Keccak construction as Fragment.ID, matching the
// teacher's crypto package (crypto.Keccak256) rather than NIST
// SHA3-256.
func (h Header) Hash() HeaderHash {
	buf := fmt.Sprintf("%x|%s|%s|%d", h.ParentHash, h.Date, h.ProducerID, h.ContentLen)
	digest := sha3.NewLegacyKeccak256()
	digest.Write([]byte(buf))
	var hash HeaderHash
	copy(hash[:], digest.Sum(nil))
	return hash
}

// Block is a header plus the fragments it commits to. Ledger
// application semantics and persistence are out of scope; Block is
// inert data as far as this module is concerned.
type Block struct {
	Header    Header
	Fragments []Fragment
}

// BlockBuilder accumulates fragments selected for a new block body.
// It is produced by a selection.Algorithm's Finalize and consumed by
// the leadership path (external to this module) to assemble a Block.
type BlockBuilder struct {
	fragments []Fragment
}

// Append adds a fragment to the block under construction.
func (b *BlockBuilder) Append(f Fragment) {
	b.fragments = append(b.fragments, f)
}

// Fragments returns the fragments accumulated so far, oldest-selected
// first.
func (b *BlockBuilder) Fragments() []Fragment {
	return b.fragments
}

// Len reports how many fragments have been appended.
func (b *BlockBuilder) Len() int {
	return len(b.fragments)
}
