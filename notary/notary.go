// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"context"

	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// Notary - stamps a transaction so its inputs are consumed at most once
//
// returns the notary signature over the transaction id, or
// fault.NotarisationConflict if any input was already consumed by a
// different transaction
type Notary interface {
	Notarise(ctx context.Context, stx *transactionrecord.SignedTransaction) (*transactionrecord.TransactionSignature, error)
}
