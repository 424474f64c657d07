// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/background"
	"github.com/bitmark-inc/tokenflow/counter"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/flow"
	"github.com/bitmark-inc/tokenflow/notary"
	"github.com/bitmark-inc/tokenflow/storage"
	"github.com/bitmark-inc/tokenflow/transport"
	"github.com/bitmark-inc/tokenflow/vault"
)

// defaults for zero configuration values
const (
	defaultRequestTimeout = 30 * time.Second
	defaultResultExpiry   = 10 * time.Minute
	resultCleanupInterval = time.Minute
)

// Configuration - what a node needs to start
//
// a node whose key matches the notary identity runs the notary service
type Configuration struct {
	Name           string
	Key            *account.PrivateKey
	NotaryIdentity *account.Account
	Database       *storage.Database
	FlowTimeout    time.Duration // zero means no limit
	RequestTimeout time.Duration // limit for serving one request
	ResultExpiry   time.Duration // how long finished flows stay queryable
}

// Node - one ledger participant
type Node struct {
	sync.Mutex

	log            *logger.L
	name           string
	key            *account.PrivateKey
	identity       *account.Account
	notaryIdentity *account.Account
	endpoint       transport.Endpoint
	db             *storage.Database
	vault          *vault.Vault
	service        *notary.Service
	notary         notary.Notary

	flowTimeout    time.Duration
	requestTimeout time.Duration

	sessions   map[uint64]*session
	sessionIds counter.Sequence
	flows      *cache.Cache
	running    counter.Counter
	served     counter.Counter

	ctx        context.Context
	cancel     context.CancelFunc
	workers    sync.WaitGroup
	background *background.T
	stopped    bool
	stopOnce   sync.Once
}

// New - create and start a node on an endpoint registered for its key
func New(conf *Configuration, endpoint transport.Endpoint) (*Node, error) {
	if nil == conf || nil == conf.Key || nil == conf.Database || nil == endpoint {
		return nil, fault.MissingParameters
	}
	if nil == conf.NotaryIdentity {
		return nil, fault.MissingNotary
	}

	identity := conf.Key.Account()
	if !endpoint.Identity().Equal(identity) {
		return nil, fault.ConfigurationInvalid
	}

	name := conf.Name
	if "" == name {
		name = identity.String()
	}

	requestTimeout := conf.RequestTimeout
	if 0 == requestTimeout {
		requestTimeout = defaultRequestTimeout
	}
	resultExpiry := conf.ResultExpiry
	if 0 == resultExpiry {
		resultExpiry = defaultResultExpiry
	}

	log := logger.New(name)

	ctx, cancel := context.WithCancel(context.Background())
	n := &Node{
		log:            log,
		name:           name,
		key:            conf.Key,
		identity:       identity,
		notaryIdentity: conf.NotaryIdentity,
		endpoint:       endpoint,
		db:             conf.Database,
		vault:          vault.New(identity, conf.Database, log),
		flowTimeout:    conf.FlowTimeout,
		requestTimeout: requestTimeout,
		sessions:       make(map[uint64]*session),
		flows:          cache.New(resultExpiry, resultCleanupInterval),
		ctx:            ctx,
		cancel:         cancel,
	}

	if conf.NotaryIdentity.Equal(identity) {
		n.service = notary.NewService(conf.Key, conf.Database, log)
		n.notary = n.service
	} else {
		n.notary = notary.NewClient(conf.NotaryIdentity, n)
	}

	n.background = background.Start(background.Processes{&dispatcher{}}, n)

	log.Infof("started: %s  identity: %s  notary: %t", name, identity, n.IsNotary())
	return n, nil
}

// Name - the configured name
func (n *Node) Name() string {
	return n.name
}

// Identity - the public identity of this node
func (n *Node) Identity() *account.Account {
	return n.identity
}

// IsNotary - true if this node runs the notary service
func (n *Node) IsNotary() bool {
	return nil != n.service
}

// Vault - transactions recorded by this node
func (n *Node) Vault() *vault.Vault {
	return n.vault
}

// RunningFlows - number of flows not yet finished
func (n *Node) RunningFlows() uint64 {
	return n.running.Uint64()
}

// ServedRequests - number of requests answered for other nodes
func (n *Node) ServedRequests() uint64 {
	return n.served.Uint64()
}

// StartFlow - run a flow with this node as its service hub
//
// a stopped node returns a future that fails with fault.FlowCancelled
func (n *Node) StartFlow(f flow.Flow) *flow.Future {
	n.Lock()
	if n.stopped {
		n.Unlock()
		return flow.Start(n.ctx, n, f)
	}
	n.workers.Add(1)
	n.Unlock()

	var ctx context.Context
	var cancel context.CancelFunc
	if 0 == n.flowTimeout {
		ctx, cancel = context.WithCancel(n.ctx)
	} else {
		ctx, cancel = context.WithTimeout(n.ctx, n.flowTimeout)
	}

	n.running.Increment()
	future := flow.Start(ctx, n, f)
	key := strconv.FormatUint(future.Id(), 10)
	n.flows.Set(key, future, cache.NoExpiration)

	go func() {
		defer n.workers.Done()
		<-future.Done()
		cancel()
		n.running.Decrement()
		n.flows.Set(key, future, cache.DefaultExpiration)
	}()

	n.log.Debugf("flow: %d  started", future.Id())
	return future
}

// Flow - a flow that is running or finished recently
func (n *Node) Flow(id uint64) (*flow.Future, error) {
	item, ok := n.flows.Get(strconv.FormatUint(id, 10))
	if !ok {
		return nil, fault.FlowNotFound
	}
	return item.(*flow.Future), nil
}

// Stop - abort running flows and detach from the transport
func (n *Node) Stop() {
	n.stopOnce.Do(func() {
		n.log.Info("stopping")

		n.Lock()
		n.stopped = true
		n.Unlock()

		n.cancel()
		n.background.Stop()
		n.workers.Wait()
		n.endpoint.Close()
		n.log.Info("stopped")
	})
}
