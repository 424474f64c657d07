// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenflow/counter"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/network"
	"github.com/bitmark-inc/tokenflow/rpc/certificate"
	"github.com/bitmark-inc/tokenflow/rpc/listeners"
	"github.com/bitmark-inc/tokenflow/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// lifetime of the client RPC service
type rpcState struct {
	sync.RWMutex

	log         *logger.L
	listener    listeners.Listener
	fingerprint [32]byte
	running     bool
}

var state rpcState

// live client connections across all listen addresses
var connectionCountRPC counter.Counter

// Initialise - start the JSON-RPC listeners serving the network
//
// an empty listen list leaves RPC disabled but still counts as started
func Initialise(rpcConfiguration *listeners.RPCConfiguration, nw *network.Network, version string) error {

	state.Lock()
	defer state.Unlock()

	if state.running {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	log.Info("starting…")

	if 0 == len(rpcConfiguration.Listen) {
		log.Infof("disable: %s", tlsName)
		state.log = log
		state.running = true
		return nil
	}

	tlsConfig, fingerprint, err := certificate.Load(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	handler := server.Create(log, version, &connectionCountRPC, nw)
	l, err := listeners.NewRPC(rpcConfiguration, log, &connectionCountRPC, handler, tlsConfig, fingerprint)
	if nil != err {
		return err
	}
	if err := l.Serve(); nil != err {
		log.Errorf("serve error: %s", err)
		return err
	}

	state.log = log
	state.listener = l
	state.fingerprint = fingerprint
	state.running = true

	return nil
}

// Addresses - where the listeners are bound, nil when disabled
func Addresses() []net.Addr {
	state.RLock()
	defer state.RUnlock()

	if nil == state.listener {
		return nil
	}
	return state.listener.Addresses()
}

// Fingerprint - SHA3-256 of the served certificate, zero when disabled
func Fingerprint() [32]byte {
	state.RLock()
	defer state.RUnlock()

	return state.fingerprint
}

// Finalise - close the listeners and wait for them to stop
func Finalise() error {

	state.Lock()
	defer state.Unlock()

	if !state.running {
		return fault.NotInitialised
	}

	log := state.log
	log.Info("shutting down…")

	if nil != state.listener {
		state.listener.Stop()
	}
	state.listener = nil
	state.fingerprint = [32]byte{}
	state.running = false

	log.Info("finished")
	log.Flush()

	return nil
}
