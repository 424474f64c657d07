// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/notary"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// ServiceHub - the node services a running flow may use
//
// RequestSignature and Notary().Notarise are the suspension points,
// both block until a reply arrives or the context is done
type ServiceHub interface {
	Log() *logger.L
	MyIdentity() *account.Account
	Sign(id merkle.Digest) transactionrecord.TransactionSignature
	NotaryIdentity() *account.Account
	Notary() notary.Notary
	RequestSignature(ctx context.Context, party *account.Account, stx *transactionrecord.SignedTransaction) (*transactionrecord.TransactionSignature, error)
	RecordTransaction(stx *transactionrecord.SignedTransaction) error
	Distribute(ctx context.Context, stx *transactionrecord.SignedTransaction, parties []*account.Account) error
}

// Flow - anything that can be run by Start
type Flow interface {
	Call(ctx context.Context, hub ServiceHub) (*transactionrecord.SignedTransaction, error)
}
