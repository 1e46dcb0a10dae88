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

package selection

import (
	"errors"

	"github.com/bramble-chain/bramble/chaintypes"
	"github.com/bramble-chain/bramble/ledger"
)

// rejectingLedger accepts every fragment except those whose payload
// is listed in reject, by content.
type rejectingLedger struct {
	reject map[string]error
}

func newRejectingLedger(reject map[string]error) *rejectingLedger {
	return &rejectingLedger{reject: reject}
}

func (l *rejectingLedger) ApplyFragment(_ ledger.Parameters, f chaintypes.Fragment, _ ledger.HeaderContentEvalContext) error {
	if err, bad := l.reject[string(f.Payload)]; bad {
		return err
	}
	return nil
}

var errBadSig = errors.New("bad sig")
