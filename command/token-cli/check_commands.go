// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/tokenflow/fault"
)

var (
	ErrRequiredIssuer    = fault.InvalidError("issuer is required")
	ErrRequiredFlowId    = fault.InvalidError("flow id is required")
	ErrRequiredParty     = fault.InvalidError("party is required")
	ErrRequiredRecipient = fault.InvalidError("recipient is required")
	ErrRequiredTxId      = fault.InvalidError("transaction id is required")
)

// party name is required
func checkParty(party string) (string, error) {
	if "" == party {
		return "", ErrRequiredParty
	}
	return party, nil
}

// issuer and recipient are required, the recipient may be a name or an account
func checkIssue(issuer string, recipient string, amount int64) error {
	if "" == issuer {
		return ErrRequiredIssuer
	}
	if "" == recipient {
		return ErrRequiredRecipient
	}
	if amount <= 0 {
		return fault.InvalidAmount
	}
	return nil
}

func checkTxId(txId string) (string, error) {
	if "" == txId {
		return "", ErrRequiredTxId
	}
	return txId, nil
}
