// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"github.com/bitmark-inc/tokenflow/counter"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

var flowIds counter.Sequence

// Future - the eventual result of a flow running in the background
type Future struct {
	id     uint64
	done   chan struct{}
	cancel context.CancelFunc
	stx    *transactionrecord.SignedTransaction
	err    error
}

// Start - run a flow in its own goroutine
//
// the flow sees a context derived from ctx, so cancelling ctx or
// calling Cancel on the future both abort it
func Start(ctx context.Context, hub ServiceHub, f Flow) *Future {
	ctx, cancel := context.WithCancel(ctx)
	future := &Future{
		id:     flowIds.Next(),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		stx, err := f.Call(ctx, hub)
		future.stx = stx
		future.err = err
		close(future.done)
	}()

	return future
}

// Id - unique within this process
func (future *Future) Id() uint64 {
	return future.id
}

// Done - closed when the flow has finished
func (future *Future) Done() <-chan struct{} {
	return future.done
}

// Get - wait for the result
//
// a done ctx stops the wait but does not cancel the flow
func (future *Future) Get(ctx context.Context) (*transactionrecord.SignedTransaction, error) {
	select {
	case <-future.done:
		return future.stx, future.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel - request cancellation, false if the flow had already finished
//
// a flow that has passed notarisation still finalises
func (future *Future) Cancel() bool {
	select {
	case <-future.done:
		return false
	default:
	}
	future.cancel()
	return true
}
