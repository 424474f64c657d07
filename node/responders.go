// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/contract"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// serves one request payload from another node
type requestHandler func(ctx context.Context, from *account.Account, payload []byte) ([]byte, error)

// counterparty signing: the draft must be valid, name our notary and
// need our signature
func (n *Node) signRequest(ctx context.Context, from *account.Account, payload []byte) ([]byte, error) {
	stx, err := transactionrecord.UnpackSignedTransaction(payload)
	if nil != err {
		return nil, err
	}
	if !stx.Tx.Notary.Equal(n.notaryIdentity) {
		return nil, fault.WrongNotary
	}
	if !stx.SignedBy(from) {
		return nil, fault.MissingSignature
	}
	if err := stx.VerifySignatures(); nil != err {
		return nil, err
	}
	if err := contract.VerifyTransaction(stx.Tx); nil != err {
		return nil, err
	}

	required := false
	for _, signer := range stx.Tx.RequiredSigners() {
		if signer.Equal(n.identity) {
			required = true
			break
		}
	}
	if !required {
		return nil, fault.NotARequiredSigner
	}

	signature := n.Sign(stx.Id)
	n.log.Infof("tx: %s  signed for: %s", stx.Id, from)
	return signature.Pack()
}

// only the notary node serves these
func (n *Node) notariseRequest(ctx context.Context, from *account.Account, payload []byte) ([]byte, error) {
	if nil == n.service {
		return nil, fault.NotANotary
	}
	return n.service.Handle(ctx, payload)
}

// a finalised transaction from a participant: check everything
// before it reaches the vault
func (n *Node) finality(ctx context.Context, from *account.Account, payload []byte) ([]byte, error) {
	stx, err := transactionrecord.UnpackSignedTransaction(payload)
	if nil != err {
		return nil, err
	}
	if !stx.Tx.Notary.Equal(n.notaryIdentity) {
		return nil, fault.WrongNotary
	}
	if err := stx.VerifyRequiredSignatures(); nil != err {
		return nil, err
	}
	if err := contract.VerifyTransaction(stx.Tx); nil != err {
		return nil, err
	}
	if err := n.vault.Record(stx); nil != err {
		return nil, err
	}
	return []byte{}, nil
}
