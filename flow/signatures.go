// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// sign locally then ask every other required signer in turn
//
// the notary is never asked here, it signs only through notarise
func collectSignatures(ctx context.Context, hub ServiceHub, stx *transactionrecord.SignedTransaction) (*transactionrecord.SignedTransaction, error) {
	notaryIdentity := hub.NotaryIdentity()

	stx = stx.WithSignature(hub.Sign(stx.Id))

	for _, signer := range stx.Tx.RequiredSigners() {
		if stx.SignedBy(signer) || signer.Equal(notaryIdentity) {
			continue
		}
		if err := ctx.Err(); nil != err {
			return nil, err
		}

		hub.Log().Debugf("tx: %s  request signature from: %s", stx.Id, signer)
		signature, err := hub.RequestSignature(ctx, signer, stx)
		if nil != err {
			return nil, err
		}
		if nil == signature || !signature.By.Equal(signer) {
			return nil, fault.MissingSignature
		}
		if err := signature.Verify(stx.Id); nil != err {
			return nil, err
		}
		stx = stx.WithSignature(*signature)
	}

	if err := stx.VerifyRequiredSignatures(notaryIdentity); nil != err {
		return nil, err
	}
	return stx, nil
}

// submit to the notary and attach its checked signature
func notarise(ctx context.Context, hub ServiceHub, stx *transactionrecord.SignedTransaction) (*transactionrecord.SignedTransaction, error) {
	notaryIdentity := hub.NotaryIdentity()

	signature, err := hub.Notary().Notarise(ctx, stx)
	if nil != err {
		return nil, err
	}
	if nil == signature || nil == signature.By {
		return nil, fault.MissingSignature
	}
	if !signature.By.Equal(notaryIdentity) {
		return nil, fault.WrongNotary
	}
	if err := signature.Verify(stx.Id); nil != err {
		return nil, err
	}

	stx = stx.WithSignature(*signature)
	if err := stx.VerifyRequiredSignatures(); nil != err {
		return nil, err
	}
	return stx, nil
}
