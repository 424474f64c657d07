// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/counter"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/node"
	"github.com/bitmark-inc/tokenflow/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// limit for count
const maximumNodeList = 100

// Network - the nodes reported on
type Network interface {
	NotaryNodes() []*node.Node
	PartyNodes() []*node.Node
	NotaryIdentity() *account.Account
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Network Network
	counter *counter.Counter
}

// New - create the node RPC service
func New(log *logger.L, network Network, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Network: network,
		counter: counter,
	}
}

// ---

// NodeArguments - arguments for RPC
type NodeArguments struct {
	Start uint64 `json:"start,string"`
	Count int    `json:"count"`
}

// NodeEntry - one node of the network
type NodeEntry struct {
	Name           string           `json:"name"`
	Identity       *account.Account `json:"identity"`
	Notary         bool             `json:"notary"`
	RunningFlows   uint64           `json:"runningFlows"`
	ServedRequests uint64           `json:"servedRequests"`
}

// NodeReply - result from RPC
type NodeReply struct {
	Nodes     []NodeEntry `json:"nodes"`
	NextStart uint64      `json:"nextStart,string"`
}

// List - list the nodes, notaries first then parties in creation order
func (n *Node) List(arguments *NodeArguments, reply *NodeReply) error {

	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitN(n.Limiter, arguments.Count, maximumNodeList); nil != err {
		return err
	}

	all := append(n.Network.NotaryNodes(), n.Network.PartyNodes()...)

	start := arguments.Start
	if start > uint64(len(all)) {
		start = uint64(len(all))
	}
	end := start + uint64(arguments.Count)
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}

	nodes := make([]NodeEntry, 0, end-start)
	for _, item := range all[start:end] {
		nodes = append(nodes, entry(item))
	}

	reply.Nodes = nodes
	reply.NextStart = end

	return nil
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version string           `json:"version"`
	Uptime  string           `json:"uptime"`
	RPCs    uint64           `json:"rpcs"`
	Notary  *account.Account `json:"notary"`
	Parties int              `json:"parties"`
	Flows   uint64           `json:"flows"`
}

// Info - return some information about this network
func (n *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}

	parties := n.Network.PartyNodes()

	flows := uint64(0)
	for _, p := range parties {
		flows += p.RunningFlows()
	}

	reply.Version = n.Version
	reply.Uptime = time.Since(n.Start).String()
	reply.RPCs = n.counter.Uint64()
	reply.Notary = n.Network.NotaryIdentity()
	reply.Parties = len(parties)
	reply.Flows = flows

	return nil
}

func entry(n *node.Node) NodeEntry {
	return NodeEntry{
		Name:           n.Name(),
		Identity:       n.Identity(),
		Notary:         n.IsNotary(),
		RunningFlows:   n.RunningFlows(),
		ServedRequests: n.ServedRequests(),
	}
}
