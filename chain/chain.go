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

// Package chain declares the chain-application contract the intake
// router drives, plus a small in-memory reference implementation used
// by tests and the example node binary. Real block storage, fork
// choice, and ledger state transitions are external collaborators
// (spec non-goal); this package only arbitrates the single-writer
// lock the intake router is built around.
package chain

import (
	"context"

	"github.com/bramble-chain/bramble/chaintypes"
)

// Chain is the sole thing the intake router writes to. A call to
// HandleIncomingBlock must be idempotent for a block it has already
// applied.
type Chain interface {
	HandleIncomingBlock(ctx context.Context, block chaintypes.Block) error
}
