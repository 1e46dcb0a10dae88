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

// Package ledger declares the contract the fragment selection engine
// consumes to decide whether a candidate fragment may enter a block.
// The ledger's actual state-transition semantics are an external
// collaborator (spec non-goal); this package only fixes the shape of
// the call.
package ledger

import (
	"github.com/bramble-chain/bramble/chaintypes"
)

// Parameters are the ledger's consensus-critical knobs (fee
// schedule, protocol limits, and the like). The selection engine
// treats this as opaque configuration to forward to ApplyFragment.
type Parameters struct {
	MaxBlockContentLen int
}

// HeaderContentEvalContext carries the evaluation context a
// selection round runs under: the date the resulting block will
// carry, and anything else the ledger needs to evaluate a fragment
// as if it were already part of that block.
type HeaderContentEvalContext struct {
	BlockDate chaintypes.BlockDate
}

// Ledger is the read view the selection engine evaluates candidate
// fragments against. Implementations are not required to be
// deterministic across processes, only for a given (state, fragment,
// context) triple within one process.
type Ledger interface {
	// ApplyFragment reports whether fragment may be committed given
	// params and ctx. A non-nil error is a domain rejection (e.g. bad
	// signature, insufficient balance), not a system failure.
	ApplyFragment(params Parameters, fragment chaintypes.Fragment, ctx HeaderContentEvalContext) error
}
