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
	"errors"

	"github.com/bramble-chain/bramble/chaintypes"
)

// ErrFragmentTooLarge is returned by SizeLimited when a fragment's
// payload alone would exceed the configured content budget.
var ErrFragmentTooLarge = errors.New("ledger: fragment exceeds max block content length")

// SizeLimited is a minimal Ledger that accepts every fragment except
// one whose payload alone exceeds params.MaxBlockContentLen. Real
// ledger state-transition semantics (balances, scripts, signatures)
// are an external collaborator this module never implements (spec.md
// non-goal); SizeLimited exists so cmd/bramblenode and the package
// tests have a concrete, deterministic Ledger to drive the selection
// engine and chain against.
type SizeLimited struct{}

// NewSizeLimited returns a SizeLimited ledger.
func NewSizeLimited() SizeLimited {
	return SizeLimited{}
}

// ApplyFragment implements Ledger.
func (SizeLimited) ApplyFragment(params Parameters, fragment chaintypes.Fragment, _ HeaderContentEvalContext) error {
	if params.MaxBlockContentLen > 0 && len(fragment.Payload) > params.MaxBlockContentLen {
		return ErrFragmentTooLarge
	}
	return nil
}
