// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"context"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
	"github.com/bitmark-inc/tokenflow/transport"
)

// Requester - one request/response exchange with a remote node
type Requester interface {
	SendAndReceive(ctx context.Context, to *account.Account, topic transport.Topic, payload []byte) ([]byte, error)
}

// Client - reaches a remote notary over a transport
type Client struct {
	notary    *account.Account
	requester Requester
}

// NewClient - create a client for the given notary identity
func NewClient(notary *account.Account, requester Requester) *Client {
	return &Client{
		notary:    notary,
		requester: requester,
	}
}

// Notarise - send the transaction and check the returned signature
func (c *Client) Notarise(ctx context.Context, stx *transactionrecord.SignedTransaction) (*transactionrecord.TransactionSignature, error) {
	packed, err := stx.Pack()
	if nil != err {
		return nil, err
	}

	reply, err := c.requester.SendAndReceive(ctx, c.notary, transport.NotariseRequest, packed)
	if nil != err {
		return nil, err
	}

	signature, err := transactionrecord.UnpackTransactionSignature(reply)
	if nil != err {
		return nil, err
	}
	if !signature.By.Equal(c.notary) {
		return nil, fault.WrongNotary
	}
	if err := signature.Verify(stx.Id); nil != err {
		return nil, err
	}
	return signature, nil
}

// Handle - serve a packed notarise request with a packed signature
func (s *Service) Handle(ctx context.Context, payload []byte) ([]byte, error) {
	stx, err := transactionrecord.UnpackSignedTransaction(payload)
	if nil != err {
		return nil, err
	}
	signature, err := s.Notarise(ctx, stx)
	if nil != err {
		return nil, err
	}
	packed, err := signature.Pack()
	if nil != err {
		return nil, err
	}
	return packed, nil
}
