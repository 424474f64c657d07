// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"context"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
)

// Topic - what a message asks for
type Topic string

// the topics exchanged between nodes
const (
	SignRequest     = Topic("sign-request")     // payload: packed signed transaction
	NotariseRequest = Topic("notarise-request") // payload: packed signed transaction
	Finality        = Topic("finality")         // payload: packed signed transaction
	Response        = Topic("response")         // payload: packed result
)

// Message - one unit of delivery
//
// Session pairs a Response with the request that caused it
type Message struct {
	From    *account.Account
	To      *account.Account
	Topic   Topic
	Session uint64
	Payload []byte
}

// Endpoint - a node's attachment to a transport
type Endpoint interface {
	Identity() *account.Account
	Send(ctx context.Context, message Message) error
	Receive() <-chan Message
	Close()
}

// result status codes
const (
	statusOK    = 0x00
	statusError = 0x01
)

// PackResult - encode the outcome of a request for a Response payload
func PackResult(payload []byte, err error) []byte {
	if nil != err {
		return append([]byte{statusError}, err.Error()...)
	}
	return append([]byte{statusOK}, payload...)
}

// UnpackResult - recover the outcome from a Response payload
//
// remote errors become the matching local error value
func UnpackResult(result []byte) ([]byte, error) {
	if 0 == len(result) {
		return nil, fault.UnexpectedResponse
	}
	switch result[0] {
	case statusOK:
		return result[1:], nil
	case statusError:
		return nil, fault.Lookup(string(result[1:]))
	default:
		return nil, fault.UnexpectedResponse
	}
}
