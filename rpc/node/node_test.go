// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/counter"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/network"
	"github.com/bitmark-inc/tokenflow/rpc/fixtures"
	"github.com/bitmark-inc/tokenflow/rpc/node"
)

func setupNetwork(t *testing.T) *network.Network {
	net, err := network.New(&network.Configuration{
		NotaryName: "Notary",
		NotaryKey:  fixtures.PrivateKey(0xa1),
	})
	require.Nil(t, err, "network")

	for i, name := range []string{"PartyA", "PartyB", "PartyC"} {
		_, err = net.CreatePartyNode(name, fixtures.PrivateKey(0xa2+byte(i)))
		require.Nil(t, err, "party: %s", name)
	}
	return net
}

func TestNodeList(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	net := setupNetwork(t)
	defer net.Stop()

	ctr := counter.Counter(3)
	n := node.New(logger.New(fixtures.LogCategory), net, time.Now(), "1", &ctr)

	var reply node.NodeReply
	err := n.List(&node.NodeArguments{Start: 0, Count: 2}, &reply)
	require.Nil(t, err, "wrong List")
	require.Len(t, reply.Nodes, 2, "wrong node count")
	assert.Equal(t, "Notary", reply.Nodes[0].Name, "wrong first node")
	assert.True(t, reply.Nodes[0].Notary, "first node not notary")
	assert.True(t, reply.Nodes[0].Identity.Equal(fixtures.PrivateKey(0xa1).Account()), "wrong notary identity")
	assert.Equal(t, "PartyA", reply.Nodes[1].Name, "wrong second node")
	assert.False(t, reply.Nodes[1].Notary, "party is notary")
	assert.Equal(t, uint64(2), reply.NextStart, "wrong next start")

	reply = node.NodeReply{}
	err = n.List(&node.NodeArguments{Start: 2, Count: 10}, &reply)
	require.Nil(t, err, "wrong second List")
	require.Len(t, reply.Nodes, 2, "wrong remaining count")
	assert.Equal(t, "PartyB", reply.Nodes[0].Name, "wrong third node")
	assert.Equal(t, "PartyC", reply.Nodes[1].Name, "wrong fourth node")
	assert.Equal(t, uint64(4), reply.NextStart, "wrong final start")

	reply = node.NodeReply{}
	err = n.List(&node.NodeArguments{Start: 100, Count: 10}, &reply)
	require.Nil(t, err, "wrong List past end")
	assert.Len(t, reply.Nodes, 0, "nodes past end")
	assert.Equal(t, uint64(4), reply.NextStart, "wrong start past end")
}

func TestNodeListCount(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	net := setupNetwork(t)
	defer net.Stop()

	ctr := counter.Counter(0)
	n := node.New(logger.New(fixtures.LogCategory), net, time.Now(), "1", &ctr)

	var reply node.NodeReply
	err := n.List(&node.NodeArguments{Count: 0}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "zero count")

	err = n.List(&node.NodeArguments{Count: 101}, &reply)
	assert.Equal(t, fault.InvalidCount, err, "count too large")
}

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	net := setupNetwork(t)
	defer net.Stop()

	ctr := counter.Counter(3)
	start := time.Now().Add(-time.Minute)
	n := node.New(logger.New(fixtures.LogCategory), net, start, "1.2.3", &ctr)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	require.Nil(t, err, "wrong Info")

	assert.Equal(t, "1.2.3", reply.Version, "wrong version")
	assert.Equal(t, uint64(3), reply.RPCs, "wrong rpc count")
	assert.Equal(t, 3, reply.Parties, "wrong party count")
	assert.True(t, reply.Notary.Equal(fixtures.PrivateKey(0xa1).Account()), "wrong notary")

	uptime, err := time.ParseDuration(reply.Uptime)
	require.Nil(t, err, "uptime format")
	assert.True(t, uptime >= time.Minute, "wrong uptime: %s", reply.Uptime)
}
