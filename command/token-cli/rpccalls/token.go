// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/rpc/token"
)

// IssueData - arguments for an issuance
type IssueData struct {
	Issuer    string
	Recipient string
	Amount    int64
}

// Issue - run an issuance flow on the issuer node and wait for it
func (c *Client) Issue(issueConfig *IssueData) (*token.IssueReply, error) {

	if issueConfig.Amount <= 0 {
		return nil, fault.InvalidAmount
	}

	args := token.IssueArguments{
		Issuer:    issueConfig.Issuer,
		Recipient: issueConfig.Recipient,
		Amount:    issueConfig.Amount,
	}

	var reply token.IssueReply
	if err := c.call("Token.Issue", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Flow - the progress of a flow started on a party
func (c *Client) Flow(party string, flowId uint64) (*token.FlowReply, error) {

	args := token.FlowArguments{
		Party:  party,
		FlowId: flowId,
	}

	var reply token.FlowReply
	if err := c.call("Token.Flow", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Balance - sum of the unconsumed tokens held by a party
func (c *Client) Balance(party string) (*token.BalanceReply, error) {

	args := token.BalanceArguments{
		Party: party,
	}

	var reply token.BalanceReply
	if err := c.call("Token.Balance", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Holdings - the unconsumed tokens held by a party
func (c *Client) Holdings(party string, count int) (*token.HoldingsReply, error) {

	if count <= 0 {
		return nil, fault.InvalidCount
	}

	args := token.HoldingsArguments{
		Party: party,
		Count: count,
	}

	var reply token.HoldingsReply
	if err := c.call("Token.Holdings", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transaction - fetch a finalised transaction from a party's vault
func (c *Client) Transaction(party string, txId string) (*token.TransactionReply, error) {

	var id merkle.Digest
	if err := id.UnmarshalText([]byte(txId)); nil != err {
		return nil, err
	}

	args := token.TransactionArguments{
		Party: party,
		TxId:  id,
	}

	var reply token.TransactionReply
	if err := c.call("Token.Transaction", &args, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
