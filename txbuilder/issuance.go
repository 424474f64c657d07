// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/contract"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// NewIssuance - draft that creates amount tokens from issuer to recipient
//
// no inputs, a single token output, one Issue command signed by the
// issuer alone, the token contract attachment and no time window
func NewIssuance(issuer *account.Account, recipient *account.Account, amount int64, notary *account.Account) (*transactionrecord.WireTransaction, error) {
	if amount <= 0 {
		return nil, fault.InvalidAmount
	}
	if nil == issuer || nil == recipient {
		return nil, fault.MissingIdentity
	}

	state := &transactionrecord.TokenState{
		Issuer:    issuer,
		Recipient: recipient,
		Amount:    amount,
	}

	return New(notary).
		AddOutputState(state, contract.TokenContractName).
		AddCommand(transactionrecord.IssueCommand, issuer).
		ToWireTransaction()
}
