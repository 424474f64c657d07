// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// TokenContractName - identifies the token rule set, must match in
// builder and verifier
const TokenContractName = "bootcamp.TokenContract"

// TokenContract - rules for token states
type TokenContract struct{}

// Name - contract identifier
func (TokenContract) Name() string {
	return TokenContractName
}

// Verify - accept or reject a draft
//
// only issuance is defined; all other command types are rejected
func (c TokenContract) Verify(tx *transactionrecord.WireTransaction) error {
	if 1 != len(tx.Commands) {
		return fault.WrongCommandCount
	}
	command := tx.Commands[0]

	switch command.Type {
	case transactionrecord.IssueCommand:
		return c.verifyIssue(tx, &command)

	case transactionrecord.MoveCommand, transactionrecord.RedeemCommand:
		return fault.UnknownCommand

	default:
		return fault.UnknownCommand
	}
}

func (TokenContract) verifyIssue(tx *transactionrecord.WireTransaction, command *transactionrecord.Command) error {
	if 0 != len(tx.Inputs) {
		return fault.InputsNotAllowed
	}
	if 1 != len(tx.Outputs) {
		return fault.WrongOutputCount
	}

	output := tx.Outputs[0]
	if nil == output.Data {
		return fault.NotTokenState
	}
	if TokenContractName != output.Contract {
		return fault.WrongContract
	}

	state := output.Data
	if state.Amount <= 0 {
		return fault.NonPositiveAmount
	}

	// the issuer alone, exactly once
	if 1 != len(command.Signers) || !command.Signers[0].Equal(state.Issuer) {
		return fault.WrongIssueSigners
	}
	return nil
}
