// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// Contract - a named, pure rule set over a draft transaction
type Contract interface {
	Name() string
	Verify(tx *transactionrecord.WireTransaction) error
}

// all contracts known to this build
var registry = map[string]Contract{
	TokenContractName: TokenContract{},
}

// Lookup - find a contract by its name
func Lookup(name string) (Contract, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fault.UnknownContract
	}
	return c, nil
}

// Attachment - the attachment id that carries a contract's code reference
func Attachment(name string) merkle.Digest {
	return merkle.NewDigest([]byte(name))
}

// VerifyTransaction - run every contract named by the outputs
//
// each output must name a known contract, carry its attachment and use
// the transaction notary; each distinct contract is run once
func VerifyTransaction(tx *transactionrecord.WireTransaction) error {
	if nil == tx {
		return fault.MissingParameters
	}
	if 0 == len(tx.Outputs) {
		return fault.WrongOutputCount
	}

	contracts := make([]Contract, 0, 1)
	seen := make(map[string]struct{})

	for _, output := range tx.Outputs {
		if nil == output.Data {
			return fault.NotTokenState
		}
		c, err := Lookup(output.Contract)
		if nil != err {
			return err
		}
		if !hasAttachment(tx, Attachment(c.Name())) {
			return fault.MissingContractAttachment
		}
		if !output.Notary.Equal(tx.Notary) {
			return fault.WrongOutputNotary
		}
		if _, ok := seen[c.Name()]; !ok {
			seen[c.Name()] = struct{}{}
			contracts = append(contracts, c)
		}
	}

	for _, c := range contracts {
		if err := c.Verify(tx); nil != err {
			return err
		}
	}
	return nil
}

func hasAttachment(tx *transactionrecord.WireTransaction, id merkle.Digest) bool {
	for _, a := range tx.Attachments {
		if a == id {
			return true
		}
	}
	return false
}
