// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/transport"
)

// an outstanding request waiting for its response
type session struct {
	peer  *account.Account
	reply chan transport.Message
}

// SendAndReceive - send one request and wait for the matching response
func (n *Node) SendAndReceive(ctx context.Context, to *account.Account, topic transport.Topic, payload []byte) ([]byte, error) {
	if nil == to {
		return nil, fault.MissingIdentity
	}

	id := n.sessionIds.Next()
	s := &session{
		peer:  to,
		reply: make(chan transport.Message, 1),
	}

	n.Lock()
	n.sessions[id] = s
	n.Unlock()

	defer func() {
		n.Lock()
		delete(n.sessions, id)
		n.Unlock()
	}()

	message := transport.Message{
		To:      to,
		Topic:   topic,
		Session: id,
		Payload: payload,
	}
	if err := n.endpoint.Send(ctx, message); nil != err {
		return nil, err
	}

	select {
	case response := <-s.reply:
		return transport.UnpackResult(response.Payload)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-n.ctx.Done():
		return nil, fault.EndpointClosed
	}
}

// hand a response to the session waiting for it
func (n *Node) deliver(message transport.Message) {
	n.Lock()
	s, ok := n.sessions[message.Session]
	n.Unlock()

	if !ok {
		n.log.Warnf("response from: %s  for unknown session: %d", message.From, message.Session)
		return
	}
	if !s.peer.Equal(message.From) {
		n.log.Warnf("session: %d  response from: %s  expected: %s", message.Session, message.From, s.peer)
		return
	}

	select {
	case s.reply <- message:
	default:
		n.log.Warnf("session: %d  duplicate response from: %s", message.Session, message.From)
	}
}

// reads the endpoint and routes each message
type dispatcher struct{}

// Run - loop until shutdown
func (d *dispatcher) Run(args interface{}, shutdown <-chan struct{}) {
	n := args.(*Node)
	log := n.log
	queue := n.endpoint.Receive()

	log.Info("dispatcher: starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case message := <-queue:
			n.dispatch(message)
		}
	}

	log.Info("dispatcher: stopped")
}

func (n *Node) dispatch(message transport.Message) {
	n.log.Debugf("from: %s  topic: %s  session: %d", message.From, message.Topic, message.Session)

	var handler requestHandler
	switch message.Topic {
	case transport.Response:
		n.deliver(message)
		return
	case transport.SignRequest:
		handler = n.signRequest
	case transport.NotariseRequest:
		handler = n.notariseRequest
	case transport.Finality:
		handler = n.finality
	default:
		n.log.Warnf("from: %s  unknown topic: %q", message.From, message.Topic)
		handler = func(ctx context.Context, from *account.Account, payload []byte) ([]byte, error) {
			return nil, fault.UnknownTopic
		}
	}

	select {
	case <-n.ctx.Done():
		return
	default:
	}

	n.workers.Add(1)
	go func() {
		defer n.workers.Done()
		n.respond(message, handler)
	}()
}

// run a handler and send back its result on the same session
func (n *Node) respond(message transport.Message, handler requestHandler) {
	ctx, cancel := context.WithTimeout(n.ctx, n.requestTimeout)
	defer cancel()

	payload, err := handler(ctx, message.From, message.Payload)
	if nil != err {
		n.log.Infof("from: %s  topic: %s  error: %s", message.From, message.Topic, err)
	}
	n.served.Increment()

	response := transport.Message{
		To:      message.From,
		Topic:   transport.Response,
		Session: message.Session,
		Payload: transport.PackResult(payload, err),
	}
	if err := n.endpoint.Send(ctx, response); nil != err {
		n.log.Warnf("response to: %s  session: %d  error: %s", message.From, message.Session, err)
	}
}
