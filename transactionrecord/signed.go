// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
)

// TransactionSignature - a signature by one identity over a transaction id
type TransactionSignature struct {
	By        *account.Account  `json:"by"`
	Signature account.Signature `json:"signature"`
}

// Verify - check the signature against a transaction id
func (signature *TransactionSignature) Verify(id merkle.Digest) error {
	if !signature.By.IsValid() {
		return fault.MissingIdentity
	}
	return signature.By.Verify(id[:], signature.Signature)
}

// SignedTransaction - a draft together with the signatures collected so far
//
// the id is fixed when the draft is frozen and never changes as
// signatures are added
type SignedTransaction struct {
	Tx         *WireTransaction       `json:"tx"`
	Id         merkle.Digest          `json:"id"`
	Signatures []TransactionSignature `json:"signatures"`
}

// NewSignedTransaction - freeze a draft, no signatures yet
func NewSignedTransaction(tx *WireTransaction) (*SignedTransaction, error) {
	id, err := tx.Id()
	if nil != err {
		return nil, err
	}
	return &SignedTransaction{
		Tx:         tx,
		Id:         id,
		Signatures: []TransactionSignature{},
	}, nil
}

// WithSignature - a copy with one more signature appended
//
// a signature from an identity that already signed replaces nothing
// and the original is returned unchanged
func (stx *SignedTransaction) WithSignature(signature TransactionSignature) *SignedTransaction {
	if stx.SignedBy(signature.By) {
		return stx
	}
	signatures := make([]TransactionSignature, len(stx.Signatures), len(stx.Signatures)+1)
	copy(signatures, stx.Signatures)
	return &SignedTransaction{
		Tx:         stx.Tx,
		Id:         stx.Id,
		Signatures: append(signatures, signature),
	}
}

// SignedBy - check if an identity has already signed
func (stx *SignedTransaction) SignedBy(a *account.Account) bool {
	for _, signature := range stx.Signatures {
		if signature.By.Equal(a) {
			return true
		}
	}
	return false
}

// VerifySignatures - every attached signature must be valid for the id
func (stx *SignedTransaction) VerifySignatures() error {
	for i := range stx.Signatures {
		if err := stx.Signatures[i].Verify(stx.Id); nil != err {
			return err
		}
	}
	return nil
}

// VerifyRequiredSignatures - all signatures valid and every required
// signer plus the notary present, except those listed as allowed missing
func (stx *SignedTransaction) VerifyRequiredSignatures(allowedMissing ...*account.Account) error {
	if err := stx.VerifySignatures(); nil != err {
		return err
	}

	required := append(stx.Tx.RequiredSigners(), stx.Tx.Notary)

required_loop:
	for _, signer := range distinct(required) {
		for _, allowed := range allowedMissing {
			if signer.Equal(allowed) {
				continue required_loop
			}
		}
		if !stx.SignedBy(signer) {
			return fault.MissingSignature
		}
	}
	return nil
}
