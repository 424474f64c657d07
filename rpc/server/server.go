// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/counter"
	"github.com/bitmark-inc/tokenflow/network"
	"github.com/bitmark-inc/tokenflow/rpc/node"
	"github.com/bitmark-inc/tokenflow/rpc/token"
)

// Create - an RPC server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, net *network.Network) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(node.New(log, net, start, version, rpcCount))
	_ = server.Register(token.New(log, net))

	return server
}
