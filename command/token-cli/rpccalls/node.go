// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/tokenflow/rpc/node"
)

// Info - daemon version and counters
func (c *Client) Info() (*node.InfoReply, error) {

	var reply node.InfoReply
	if err := c.call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Nodes - one page of the notary and party nodes
func (c *Client) Nodes(start uint64, count int) (*node.NodeReply, error) {

	args := node.NodeArguments{
		Start: start,
		Count: count,
	}

	var reply node.NodeReply
	if err := c.call("Node.List", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
