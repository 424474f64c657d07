// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/notary"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
	"github.com/bitmark-inc/tokenflow/transport"
)

// Log - the node logger
func (n *Node) Log() *logger.L {
	return n.log
}

// MyIdentity - same as Identity
func (n *Node) MyIdentity() *account.Account {
	return n.identity
}

// Sign - sign a transaction id with the node key
func (n *Node) Sign(id merkle.Digest) transactionrecord.TransactionSignature {
	return transactionrecord.TransactionSignature{
		By:        n.identity,
		Signature: n.key.Sign(id[:]),
	}
}

// NotaryIdentity - the notary every transaction must name
func (n *Node) NotaryIdentity() *account.Account {
	return n.notaryIdentity
}

// Notary - local service on the notary node, a client elsewhere
func (n *Node) Notary() notary.Notary {
	return n.notary
}

// RequestSignature - ask a counterparty to sign
func (n *Node) RequestSignature(ctx context.Context, party *account.Account, stx *transactionrecord.SignedTransaction) (*transactionrecord.TransactionSignature, error) {
	packed, err := stx.Pack()
	if nil != err {
		return nil, err
	}
	reply, err := n.SendAndReceive(ctx, party, transport.SignRequest, packed)
	if nil != err {
		return nil, err
	}
	return transactionrecord.UnpackTransactionSignature(reply)
}

// RecordTransaction - store a finalised transaction in the vault
func (n *Node) RecordTransaction(stx *transactionrecord.SignedTransaction) error {
	return n.vault.Record(stx)
}

// Distribute - send a finalised transaction to each party and wait
// for them to record it
//
// every party is tried, the first error is returned
func (n *Node) Distribute(ctx context.Context, stx *transactionrecord.SignedTransaction, parties []*account.Account) error {
	packed, err := stx.Pack()
	if nil != err {
		return err
	}

	var first error
	for _, party := range parties {
		if party.Equal(n.identity) {
			continue
		}
		_, err := n.SendAndReceive(ctx, party, transport.Finality, packed)
		if nil != err {
			n.log.Warnf("tx: %s  distribute to: %s  error: %s", stx.Id, party, err)
			if nil == first {
				first = err
			}
			continue
		}
		n.log.Debugf("tx: %s  distributed to: %s", stx.Id, party)
	}
	return first
}
