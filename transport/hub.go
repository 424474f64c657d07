// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
)

// internal constants
const (
	queueSize = 1000
)

// Hub - in-process delivery between registered endpoints
type Hub struct {
	sync.RWMutex
	log       *logger.L
	endpoints map[string]*memoryEndpoint
}

type memoryEndpoint struct {
	hub       *Hub
	identity  *account.Account
	queue     chan Message
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub - create an empty hub
func NewHub(log *logger.L) *Hub {
	return &Hub{
		log:       log,
		endpoints: make(map[string]*memoryEndpoint),
	}
}

// Register - attach an identity to the hub
func (h *Hub) Register(identity *account.Account) (Endpoint, error) {
	if nil == identity {
		return nil, fault.MissingIdentity
	}

	h.Lock()
	defer h.Unlock()

	k := identity.Key()
	if _, ok := h.endpoints[k]; ok {
		return nil, fault.DuplicateParty
	}

	e := &memoryEndpoint{
		hub:      h,
		identity: identity,
		queue:    make(chan Message, queueSize),
		done:     make(chan struct{}),
	}
	h.endpoints[k] = e
	h.log.Infof("registered: %s", identity)
	return e, nil
}

// Count - number of attached endpoints
func (h *Hub) Count() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.endpoints)
}

func (h *Hub) lookup(identity *account.Account) (*memoryEndpoint, error) {
	if nil == identity {
		return nil, fault.MissingIdentity
	}
	h.RLock()
	defer h.RUnlock()
	e, ok := h.endpoints[identity.Key()]
	if !ok {
		return nil, fault.IdentityNotFound
	}
	return e, nil
}

func (h *Hub) remove(e *memoryEndpoint) {
	h.Lock()
	delete(h.endpoints, e.identity.Key())
	h.Unlock()
	h.log.Infof("removed: %s", e.identity)
}

// Identity - the identity this endpoint receives for
func (e *memoryEndpoint) Identity() *account.Account {
	return e.identity
}

// Send - queue a message for its destination
//
// blocks while the destination queue is full
func (e *memoryEndpoint) Send(ctx context.Context, message Message) error {
	select {
	case <-e.done:
		return fault.EndpointClosed
	default:
	}

	target, err := e.hub.lookup(message.To)
	if nil != err {
		return err
	}
	message.From = e.identity

	select {
	case target.queue <- message:
		e.hub.log.Debugf("%s → %s  topic: %s  session: %d  bytes: %d", e.identity, message.To, message.Topic, message.Session, len(message.Payload))
		return nil
	case <-target.done:
		return fault.EndpointClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive - channel to read from
func (e *memoryEndpoint) Receive() <-chan Message {
	return e.queue
}

// Close - detach from the hub, queued messages are abandoned
func (e *memoryEndpoint) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.hub.remove(e)
	})
}
