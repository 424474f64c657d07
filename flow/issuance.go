// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/contract"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
	"github.com/bitmark-inc/tokenflow/txbuilder"
)

// IssuanceFlow - the local node issues new tokens to a recipient
type IssuanceFlow struct {
	sync.RWMutex
	recipient *account.Account
	amount    int64
	started   bool
	state     State
	reason    error
}

// NewIssuanceFlow - create a flow, nothing happens until it is called
func NewIssuanceFlow(recipient *account.Account, amount int64) *IssuanceFlow {
	return &IssuanceFlow{
		recipient: recipient,
		amount:    amount,
		state:     Created,
	}
}

// Recipient - the party that receives the issued tokens
func (f *IssuanceFlow) Recipient() *account.Account {
	return f.recipient
}

// Amount - the quantity to issue
func (f *IssuanceFlow) Amount() int64 {
	return f.amount
}

// State - current lifecycle state, safe to call from any goroutine
func (f *IssuanceFlow) State() State {
	f.RLock()
	defer f.RUnlock()
	return f.state
}

// Reason - the error that aborted the flow, nil otherwise
func (f *IssuanceFlow) Reason() error {
	f.RLock()
	defer f.RUnlock()
	return f.reason
}

// Call - run the flow to completion
//
// the context may abort the flow at any point before the notary
// signature is attached; after that the transaction is recorded and
// distributed regardless
func (f *IssuanceFlow) Call(ctx context.Context, hub ServiceHub) (*transactionrecord.SignedTransaction, error) {
	log := hub.Log()

	f.Lock()
	if f.started {
		f.Unlock()
		return nil, fault.FlowAlreadyStarted
	}
	f.started = true
	f.Unlock()

	if err := ctx.Err(); nil != err {
		return nil, f.abort(ctx, log, err)
	}

	issuer := hub.MyIdentity()
	tx, err := txbuilder.NewIssuance(issuer, f.recipient, f.amount, hub.NotaryIdentity())
	if nil != err {
		return nil, f.abort(ctx, log, err)
	}
	tx.PrivacySalt, err = txbuilder.NewPrivacySalt()
	if nil != err {
		return nil, f.abort(ctx, log, err)
	}
	if err := contract.VerifyTransaction(tx); nil != err {
		return nil, f.abort(ctx, log, err)
	}
	stx, err := transactionrecord.NewSignedTransaction(tx)
	if nil != err {
		return nil, f.abort(ctx, log, err)
	}
	log.Infof("tx: %s  issuer: %s  recipient: %s  amount: %d", stx.Id, issuer, f.recipient, f.amount)
	f.transition(log, stx, Built)

	if err := ctx.Err(); nil != err {
		return nil, f.abort(ctx, log, err)
	}
	f.transition(log, stx, AwaitingSignatures)
	stx, err = collectSignatures(ctx, hub, stx)
	if nil != err {
		return nil, f.abort(ctx, log, err)
	}

	if err := ctx.Err(); nil != err {
		return nil, f.abort(ctx, log, err)
	}
	stx, err = notarise(ctx, hub, stx)
	if nil != err {
		return nil, f.abort(ctx, log, err)
	}
	f.transition(log, stx, Notarised)

	// finalising, the notary has consumed the inputs so finish even
	// if the caller has gone away
	finalCtx := context.WithoutCancel(ctx)

	if err := hub.RecordTransaction(stx); nil != err {
		return nil, f.abort(finalCtx, log, err)
	}

	f.transition(log, stx, Finalised)

	parties := make([]*account.Account, 0, 2)
	for _, party := range stx.Tx.Participants() {
		if !party.Equal(issuer) {
			parties = append(parties, party)
		}
	}
	if 0 != len(parties) {
		if err := hub.Distribute(finalCtx, stx, parties); nil != err {
			log.Warnf("tx: %s  distribution error: %s", stx.Id, err)
		}
	}

	return stx, nil
}

func (f *IssuanceFlow) transition(log *logger.L, stx *transactionrecord.SignedTransaction, next State) {
	f.Lock()
	previous := f.state
	f.state = next
	f.Unlock()

	log.Infof("tx: %s  state: %s → %s", stx.Id, previous, next)
}

// terminal failure, a done context is reported as a cancellation
func (f *IssuanceFlow) abort(ctx context.Context, log *logger.L, err error) error {
	if nil != ctx.Err() {
		err = fault.FlowCancelled
	}

	f.Lock()
	previous := f.state
	f.state = Aborted
	f.reason = err
	f.Unlock()

	log.Warnf("flow: aborted in state: %s  error: %s", previous, err)
	return err
}
