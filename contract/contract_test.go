// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/contract"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// deterministic identities for the tests
func makeIdentity(b byte) *account.Account {
	key, err := account.PrivateKeyFromSeed(true, bytes.Repeat([]byte{b}, 32))
	if nil != err {
		panic(err)
	}
	return key.Account()
}

var (
	issuer    = makeIdentity(0x01)
	recipient = makeIdentity(0x02)
	notary    = makeIdentity(0x03)
)

func validIssuance() *transactionrecord.WireTransaction {
	return &transactionrecord.WireTransaction{
		Outputs: []transactionrecord.TransactionState{
			{
				Data: &transactionrecord.TokenState{
					Issuer:    issuer,
					Recipient: recipient,
					Amount:    99,
				},
				Contract: contract.TokenContractName,
				Notary:   notary,
			},
		},
		Commands: []transactionrecord.Command{
			{
				Type:    transactionrecord.IssueCommand,
				Signers: []*account.Account{issuer},
			},
		},
		Notary:      notary,
		Attachments: []merkle.Digest{contract.Attachment(contract.TokenContractName)},
	}
}

func TestVerifyValidIssuance(t *testing.T) {
	tx := validIssuance()
	assert.Nil(t, contract.TokenContract{}.Verify(tx), "valid issuance rejected")
	assert.Nil(t, contract.VerifyTransaction(tx), "valid transaction rejected")
}

func TestVerifyIsDeterministic(t *testing.T) {
	good := validIssuance()
	bad := validIssuance()
	bad.Outputs[0].Data.Amount = 0

	for i := 0; i < 3; i += 1 {
		assert.Nil(t, contract.VerifyTransaction(good), "run: %d", i)
		assert.Equal(t, fault.NonPositiveAmount, contract.VerifyTransaction(bad), "run: %d", i)
	}
}

func TestVerifySelfIssuance(t *testing.T) {
	tx := validIssuance()
	tx.Outputs[0].Data.Recipient = issuer
	assert.Nil(t, contract.VerifyTransaction(tx), "self issuance rejected")
}

func TestVerifyIssueViolations(t *testing.T) {
	tests := []struct {
		name   string
		modify func(tx *transactionrecord.WireTransaction)
		err    error
	}{
		{
			name: "inputs",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Inputs = []transactionrecord.StateRef{{TxId: merkle.NewDigest([]byte("x")), Index: 0}}
			},
			err: fault.InputsNotAllowed,
		},
		{
			name: "two outputs",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Outputs = append(tx.Outputs, tx.Outputs[0])
			},
			err: fault.WrongOutputCount,
		},
		{
			name: "zero amount",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Outputs[0].Data.Amount = 0
			},
			err: fault.NonPositiveAmount,
		},
		{
			name: "negative amount",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Outputs[0].Data.Amount = -5
			},
			err: fault.NonPositiveAmount,
		},
		{
			name: "recipient signer",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands[0].Signers = []*account.Account{recipient}
			},
			err: fault.WrongIssueSigners,
		},
		{
			name: "extra signer",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands[0].Signers = []*account.Account{issuer, recipient}
			},
			err: fault.WrongIssueSigners,
		},
		{
			name: "no signer",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands[0].Signers = nil
			},
			err: fault.WrongIssueSigners,
		},
		{
			name: "no command",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands = nil
			},
			err: fault.WrongCommandCount,
		},
		{
			name: "two commands",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands = append(tx.Commands, tx.Commands[0])
			},
			err: fault.WrongCommandCount,
		},
		{
			name: "move command",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands[0].Type = transactionrecord.MoveCommand
			},
			err: fault.UnknownCommand,
		},
		{
			name: "redeem command",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands[0].Type = transactionrecord.RedeemCommand
			},
			err: fault.UnknownCommand,
		},
		{
			name: "invalid command",
			modify: func(tx *transactionrecord.WireTransaction) {
				tx.Commands[0].Type = transactionrecord.InvalidCommand
			},
			err: fault.UnknownCommand,
		},
	}

	for _, test := range tests {
		tx := validIssuance()
		test.modify(tx)
		err := contract.VerifyTransaction(tx)
		assert.Equal(t, test.err, err, test.name)
		assert.True(t, fault.IsErrContract(err), "%s: not a contract error", test.name)
	}
}

func TestVerifyTransactionEnvelope(t *testing.T) {
	tx := validIssuance()
	tx.Attachments = nil
	assert.Equal(t, fault.MissingContractAttachment, contract.VerifyTransaction(tx), "no attachment")

	tx = validIssuance()
	tx.Outputs[0].Contract = "other.Contract"
	assert.Equal(t, fault.UnknownContract, contract.VerifyTransaction(tx), "unknown contract")

	tx = validIssuance()
	tx.Outputs[0].Notary = recipient
	assert.Equal(t, fault.WrongOutputNotary, contract.VerifyTransaction(tx), "output notary")

	tx = validIssuance()
	tx.Outputs = nil
	assert.Equal(t, fault.WrongOutputCount, contract.VerifyTransaction(tx), "no outputs")

	tx = validIssuance()
	tx.Outputs[0].Data = nil
	assert.Equal(t, fault.NotTokenState, contract.VerifyTransaction(tx), "no data")

	assert.Equal(t, fault.MissingParameters, contract.VerifyTransaction(nil), "nil transaction")
}

func TestLookup(t *testing.T) {
	c, err := contract.Lookup(contract.TokenContractName)
	if assert.Nil(t, err, "lookup error") {
		assert.Equal(t, contract.TokenContractName, c.Name(), "name")
	}

	_, err = contract.Lookup("bootcamp.Other")
	assert.Equal(t, fault.UnknownContract, err, "unknown")

	assert.Equal(t, merkle.NewDigest([]byte(contract.TokenContractName)), contract.Attachment(contract.TokenContractName), "attachment id")
}
