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

package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bramble-chain/bramble/chaintypes"
)

func TestSizeLimitedAcceptsWithinBudget(t *testing.T) {
	l := NewSizeLimited()
	err := l.ApplyFragment(Parameters{MaxBlockContentLen: 10}, chaintypes.Fragment{Payload: []byte("small")}, HeaderContentEvalContext{})
	require.NoError(t, err)
}

func TestSizeLimitedRejectsOverBudget(t *testing.T) {
	l := NewSizeLimited()
	err := l.ApplyFragment(Parameters{MaxBlockContentLen: 2}, chaintypes.Fragment{Payload: []byte("toolarge")}, HeaderContentEvalContext{})
	require.ErrorIs(t, err, ErrFragmentTooLarge)
}

func TestSizeLimitedZeroBudgetMeansUnbounded(t *testing.T) {
	l := NewSizeLimited()
	err := l.ApplyFragment(Parameters{}, chaintypes.Fragment{Payload: make([]byte, 1<<20)}, HeaderContentEvalContext{})
	require.NoError(t, err)
}
