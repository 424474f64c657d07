// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/node"
	"github.com/bitmark-inc/tokenflow/storage"
	"github.com/bitmark-inc/tokenflow/transport"
)

const (
	defaultNotaryName = "notary"
	databaseSuffix    = ".leveldb"
)

// Configuration - network wide settings
//
// an empty data directory keeps every node database in memory
type Configuration struct {
	DataDirectory  string
	NotaryName     string
	NotaryKey      *account.PrivateKey // generated if nil
	FlowTimeout    time.Duration
	RequestTimeout time.Duration
}

// Network - one notary and any number of party nodes on a shared hub
type Network struct {
	sync.RWMutex

	log       *logger.L
	conf      Configuration
	hub       *transport.Hub
	notary    *node.Node
	parties   []*node.Node
	byName    map[string]*node.Node
	databases []*storage.Database
	stopped   bool
}

// New - create a network and start its notary node
func New(conf *Configuration) (*Network, error) {
	if nil == conf {
		conf = &Configuration{}
	}

	net := &Network{
		log:    logger.New("network"),
		conf:   *conf,
		hub:    transport.NewHub(logger.New("transport")),
		byName: make(map[string]*node.Node),
	}

	if "" == net.conf.NotaryName {
		net.conf.NotaryName = defaultNotaryName
	}

	key := net.conf.NotaryKey
	if nil == key {
		var err error
		key, err = account.NewPrivateKey(true)
		if nil != err {
			return nil, err
		}
		net.conf.NotaryKey = key
	}

	n, err := net.startNode(net.conf.NotaryName, key)
	if nil != err {
		net.Stop()
		return nil, err
	}
	net.notary = n

	net.log.Infof("notary: %s  identity: %s", n.Name(), n.Identity())
	return net, nil
}

// CreatePartyNode - add a party node, generating a key if none given
func (net *Network) CreatePartyNode(name string, key *account.PrivateKey) (*node.Node, error) {
	if nil == key {
		var err error
		key, err = account.NewPrivateKey(true)
		if nil != err {
			return nil, err
		}
	}

	n, err := net.startNode(name, key)
	if nil != err {
		return nil, err
	}

	net.Lock()
	net.parties = append(net.parties, n)
	net.Unlock()

	net.log.Infof("party: %s  identity: %s", name, n.Identity())
	return n, nil
}

// NotaryNodes - the notary nodes, only one in this network
func (net *Network) NotaryNodes() []*node.Node {
	return []*node.Node{net.notary}
}

// NotaryIdentity - the identity every transaction must name
func (net *Network) NotaryIdentity() *account.Account {
	return net.notary.Identity()
}

// PartyNodes - all party nodes in creation order
func (net *Network) PartyNodes() []*node.Node {
	net.RLock()
	defer net.RUnlock()

	parties := make([]*node.Node, len(net.parties))
	copy(parties, net.parties)
	return parties
}

// Node - find a node by name
func (net *Network) Node(name string) (*node.Node, error) {
	net.RLock()
	defer net.RUnlock()

	n, ok := net.byName[name]
	if !ok {
		return nil, fault.PartyNotFound
	}
	return n, nil
}

// NodeFor - find the node holding an identity
func (net *Network) NodeFor(identity *account.Account) (*node.Node, error) {
	net.RLock()
	defer net.RUnlock()

	for _, n := range net.byName {
		if n.Identity().Equal(identity) {
			return n, nil
		}
	}
	return nil, fault.PartyNotFound
}

// Stop - stop every node then close their databases
func (net *Network) Stop() {
	net.Lock()
	if net.stopped {
		net.Unlock()
		return
	}
	net.stopped = true
	parties := net.parties
	notary := net.notary
	databases := net.databases
	net.Unlock()

	for _, n := range parties {
		n.Stop()
	}
	if nil != notary {
		notary.Stop()
	}
	for _, db := range databases {
		db.Close()
	}
	net.log.Info("stopped")
}

func (net *Network) startNode(name string, key *account.PrivateKey) (*node.Node, error) {
	if "" == name {
		return nil, fault.MissingParameters
	}

	net.Lock()
	defer net.Unlock()

	if net.stopped {
		return nil, fault.NotInitialised
	}
	if _, ok := net.byName[name]; ok {
		return nil, fault.DuplicateParty
	}

	endpoint, err := net.hub.Register(key.Account())
	if nil != err {
		return nil, err
	}

	db, err := net.openDatabase(name)
	if nil != err {
		endpoint.Close()
		return nil, err
	}

	n, err := node.New(&node.Configuration{
		Name:           name,
		Key:            key,
		NotaryIdentity: net.conf.NotaryKey.Account(),
		Database:       db,
		FlowTimeout:    net.conf.FlowTimeout,
		RequestTimeout: net.conf.RequestTimeout,
	}, endpoint)
	if nil != err {
		endpoint.Close()
		db.Close()
		return nil, err
	}

	net.byName[name] = n
	net.databases = append(net.databases, db)
	return n, nil
}

func (net *Network) openDatabase(name string) (*storage.Database, error) {
	if "" == net.conf.DataDirectory {
		return storage.OpenMemory()
	}
	path := filepath.Join(net.conf.DataDirectory, name+databaseSuffix)
	return storage.Open(path, storage.ReadWrite)
}
