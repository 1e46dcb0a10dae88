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

package fragment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bramble-chain/bramble/chaintypes"
)

func TestStatusLogModifyAndGet(t *testing.T) {
	log := NewStatusLog()
	id := frag("a").ID()

	_, ok := log.Get(id)
	require.False(t, ok)

	log.Modify(id, Status{Kind: Pending})
	s, ok := log.Get(id)
	require.True(t, ok)
	require.Equal(t, Pending, s.Kind)

	log.Modify(id, Status{Kind: InABlock, BlockDate: chaintypes.BlockDate{Epoch: 1, Slot: 2}})
	s, ok = log.Get(id)
	require.True(t, ok)
	require.Equal(t, InABlock, s.Kind)
	require.Equal(t, "in a block (1.2)", s.String())
}

func TestStatusRejectedPreservesStructuredError(t *testing.T) {
	wrapped := errors.New("bad sig")
	s := Status{Kind: Rejected, Reason: wrapped}

	require.ErrorIs(t, s.Reason, wrapped)
	require.Equal(t, "rejected: bad sig", s.String())
}

func TestStatusLogCounts(t *testing.T) {
	log := NewStatusLog()
	log.Modify(frag("1").ID(), Status{Kind: Pending})
	log.Modify(frag("2").ID(), Status{Kind: InABlock})
	log.Modify(frag("3").ID(), Status{Kind: InABlock})
	log.Modify(frag("4").ID(), Status{Kind: Rejected, Reason: errors.New("x")})

	pending, inABlock, rejected := log.Counts()
	require.Equal(t, 1, pending)
	require.Equal(t, 2, inABlock)
	require.Equal(t, 1, rejected)
	require.Equal(t, 4, log.Len())
}
