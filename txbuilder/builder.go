// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"time"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/contract"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// Builder - accumulates the parts of a draft transaction
//
// a builder is not safe for concurrent use
type Builder struct {
	notary      *account.Account
	inputs      []transactionrecord.StateRef
	outputs     []transactionrecord.TransactionState
	commands    []transactionrecord.Command
	attachments []merkle.Digest
	timeWindow  *transactionrecord.TimeWindow
	salt        merkle.Digest
}

// New - start a draft for the given notary
func New(notary *account.Account) *Builder {
	return &Builder{
		notary: notary,
	}
}

// AddInputState - consume an earlier output
func (b *Builder) AddInputState(ref transactionrecord.StateRef) *Builder {
	b.inputs = append(b.inputs, ref)
	return b
}

// AddOutputState - create a state governed by the named contract
func (b *Builder) AddOutputState(state *transactionrecord.TokenState, contractName string) *Builder {
	b.outputs = append(b.outputs, transactionrecord.TransactionState{
		Data:     state,
		Contract: contractName,
		Notary:   b.notary,
	})
	return b
}

// AddCommand - add an intent and its required signers
func (b *Builder) AddCommand(commandType transactionrecord.CommandType, signers ...*account.Account) *Builder {
	s := make([]*account.Account, len(signers))
	copy(s, signers)
	b.commands = append(b.commands, transactionrecord.Command{
		Type:    commandType,
		Signers: s,
	})
	return b
}

// AddAttachment - add an attachment id, repeats are ignored
func (b *Builder) AddAttachment(id merkle.Digest) *Builder {
	for _, a := range b.attachments {
		if a == id {
			return b
		}
	}
	b.attachments = append(b.attachments, id)
	return b
}

// SetTimeWindow - restrict when the transaction may be notarised
func (b *Builder) SetTimeWindow(from time.Time, until time.Time) *Builder {
	b.timeWindow = &transactionrecord.TimeWindow{
		From:  from,
		Until: until,
	}
	return b
}

// SetPrivacySalt - make the draft id unique, see NewPrivacySalt
func (b *Builder) SetPrivacySalt(salt merkle.Digest) *Builder {
	b.salt = salt
	return b
}

// ToWireTransaction - freeze the draft
//
// the code attachment of every output contract is added automatically
func (b *Builder) ToWireTransaction() (*transactionrecord.WireTransaction, error) {
	if nil == b.notary {
		return nil, fault.MissingNotary
	}

	for _, output := range b.outputs {
		b.AddAttachment(contract.Attachment(output.Contract))
	}

	tx := &transactionrecord.WireTransaction{
		Notary:      b.notary,
		TimeWindow:  b.timeWindow,
		PrivacySalt: b.salt,
	}
	if len(b.inputs) > 0 {
		tx.Inputs = append([]transactionrecord.StateRef{}, b.inputs...)
	}
	if len(b.outputs) > 0 {
		tx.Outputs = append([]transactionrecord.TransactionState{}, b.outputs...)
	}
	if len(b.commands) > 0 {
		tx.Commands = append([]transactionrecord.Command{}, b.commands...)
	}
	if len(b.attachments) > 0 {
		tx.Attachments = append([]merkle.Digest{}, b.attachments...)
	}
	return tx, nil
}
