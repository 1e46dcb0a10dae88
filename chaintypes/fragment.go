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

package chaintypes

import (
	"fmt"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// FragmentID identifies a fragment by content hash. Two fragments
// with identical bytes have identical IDs.
type FragmentID [32]byte

func (id FragmentID) String() string {
	return fmt.Sprintf("%x", id[:])
}

// Fragment is an opaque, ledger-state-modifying payload (a
// transaction in the usual sense). Its wire encoding and the rules
// for whether the ledger accepts it are both external collaborators;
// Fragment here is just bytes plus the metadata the selection engine
// needs to order candidates.
type Fragment struct {
	Payload []byte

	// Fee is optional fee/priority metadata a selection strategy may
	// use to order candidates (see selection.HighestFeeFirst). The
	// OldestFirst strategy ignores it entirely.
	Fee *uint256.Int
}

// ID derives the fragment's content hash, using the same legacy Keccak
// construction the teacher's crypto package hashes everything with
// (crypto.Keccak256, not NIST SHA3-256 — the two differ in padding).
func (f Fragment) ID() FragmentID {
	h := sha3.NewLegacyKeccak256()
	h.Write(f.Payload)
	var id FragmentID
	copy(id[:], h.Sum(nil))
	return id
}
