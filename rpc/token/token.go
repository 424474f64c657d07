// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/flow"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/node"
	"github.com/bitmark-inc/tokenflow/rpc/ratelimit"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
	"github.com/bitmark-inc/tokenflow/vault"
)

const (
	rateLimitToken = 100
	rateBurstToken = 50

	// limit for count
	maximumHoldings = 100

	// how long an Issue call waits for its flow
	defaultWait = 60 * time.Second
)

// Directory - finds the nodes that the calls act for
type Directory interface {
	Node(name string) (*node.Node, error)
}

// Token - type for RPC calls
type Token struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Directory Directory
	Wait      time.Duration
}

// New - create the token RPC service
func New(log *logger.L, directory Directory) *Token {
	return &Token{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitToken, rateBurstToken),
		Directory: directory,
		Wait:      defaultWait,
	}
}

// ---

// IssueArguments - arguments for RPC
//
// recipient is either a party name or a Base58 account
type IssueArguments struct {
	Issuer    string `json:"issuer"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount,string"`
}

// IssueReply - result from RPC
type IssueReply struct {
	TxId      merkle.Digest    `json:"txId"`
	FlowId    uint64           `json:"flowId,string"`
	Issuer    *account.Account `json:"issuer"`
	Recipient *account.Account `json:"recipient"`
	Amount    int64            `json:"amount,string"`
	Notary    *account.Account `json:"notary"`
	State     string           `json:"state"`
}

// Issue - run an issuance flow on the issuer node and wait for it
//
// if the wait expires the reply carries the flow id and its current
// state but no transaction id; the flow keeps running and Token.Flow
// reports its outcome
func (token *Token) Issue(arguments *IssueArguments, reply *IssueReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.Issuer || "" == arguments.Recipient {
		return fault.MissingParameters
	}

	issuer, err := token.Directory.Node(arguments.Issuer)
	if nil != err {
		return err
	}
	if issuer.IsNotary() {
		return fault.NotAParty
	}

	recipient, err := token.resolve(arguments.Recipient)
	if nil != err {
		return err
	}

	token.Log.Infof("issue: %d  from: %s  to: %s", arguments.Amount, arguments.Issuer, recipient)

	f := flow.NewIssuanceFlow(recipient, arguments.Amount)
	future := issuer.StartFlow(f)

	ctx, cancel := context.WithTimeout(context.Background(), token.Wait)
	defer cancel()

	_, _ = future.Get(ctx)

	reply.FlowId = future.Id()
	reply.Issuer = issuer.Identity()
	reply.Recipient = recipient
	reply.Amount = arguments.Amount
	reply.Notary = issuer.NotaryIdentity()

	select {
	case <-future.Done():
	default:
		token.Log.Infof("flow: %d  state: %s  still running", future.Id(), f.State())
		reply.State = f.State().String()
		return nil
	}

	stx, err := future.Get(context.Background())
	if nil != err {
		token.Log.Warnf("flow: %d  state: %s  error: %s", future.Id(), f.State(), err)
		return flowError(err)
	}

	reply.TxId = stx.Id
	reply.Notary = stx.Tx.Notary
	reply.State = f.State().String()

	return nil
}

// flow errors leave the service as fault values
func flowError(err error) error {
	switch err {
	case context.Canceled, context.DeadlineExceeded:
		return fault.FlowCancelled
	}
	return err
}

// ---

// FlowArguments - arguments for RPC
type FlowArguments struct {
	Party  string `json:"party"`
	FlowId uint64 `json:"flowId,string"`
}

// FlowReply - result from RPC
type FlowReply struct {
	FlowId uint64        `json:"flowId,string"`
	Done   bool          `json:"done"`
	TxId   merkle.Digest `json:"txId"`
	Error  string        `json:"error,omitempty"`
}

// Flow - report on a flow started on a node
func (token *Token) Flow(arguments *FlowArguments, reply *FlowReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.Party {
		return fault.MissingParameters
	}

	n, err := token.Directory.Node(arguments.Party)
	if nil != err {
		return err
	}

	future, err := n.Flow(arguments.FlowId)
	if nil != err {
		return err
	}

	reply.FlowId = future.Id()
	select {
	case <-future.Done():
	default:
		return nil
	}

	reply.Done = true
	stx, err := future.Get(context.Background())
	if nil != err {
		reply.Error = flowError(err).Error()
		return nil
	}
	reply.TxId = stx.Id
	return nil
}

// ---

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Party string `json:"party"`
}

// BalanceReply - result from RPC
type BalanceReply struct {
	Party   *account.Account `json:"party"`
	Balance int64            `json:"balance,string"`
	Count   int              `json:"count"`
}

// Balance - sum of the tokens a party holds as recipient
func (token *Token) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	n, err := token.party(arguments)
	if nil != err {
		return err
	}

	balance, count, err := n.Vault().Balance()
	if nil != err {
		return err
	}

	reply.Party = n.Identity()
	reply.Balance = balance
	reply.Count = count

	return nil
}

// ---

// HoldingsArguments - arguments for RPC
type HoldingsArguments struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

// HoldingsReply - result from RPC
type HoldingsReply struct {
	Party  *account.Account   `json:"party"`
	Tokens []vault.OwnedToken `json:"tokens"`
	More   bool               `json:"more"`
}

// Holdings - list the token states a party holds
func (token *Token) Holdings(arguments *HoldingsArguments, reply *HoldingsReply) error {

	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitN(token.Limiter, arguments.Count, maximumHoldings); nil != err {
		return err
	}

	n, err := token.party(&BalanceArguments{Party: arguments.Party})
	if nil != err {
		return err
	}

	tokens, err := n.Vault().Tokens()
	if nil != err {
		return err
	}

	reply.Party = n.Identity()
	if len(tokens) > arguments.Count {
		tokens = tokens[:arguments.Count]
		reply.More = true
	}
	reply.Tokens = tokens

	return nil
}

// ---

// TransactionArguments - arguments for RPC
type TransactionArguments struct {
	Party string        `json:"party"`
	TxId  merkle.Digest `json:"txId"`
}

// TransactionReply - result from RPC
type TransactionReply struct {
	Packed      transactionrecord.Packed             `json:"packed"`
	Transaction *transactionrecord.SignedTransaction `json:"transaction"`
}

// Transaction - fetch a finalised transaction from a party's vault
func (token *Token) Transaction(arguments *TransactionArguments, reply *TransactionReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.MissingParameters
	}

	n, err := token.party(&BalanceArguments{Party: arguments.Party})
	if nil != err {
		return err
	}

	stx, err := n.Vault().Get(arguments.TxId)
	if nil != err {
		return err
	}

	packed, err := stx.Pack()
	if nil != err {
		return err
	}

	reply.Packed = packed
	reply.Transaction = stx

	return nil
}

// a party node by name
func (token *Token) party(arguments *BalanceArguments) (*node.Node, error) {
	if nil == arguments || "" == arguments.Party {
		return nil, fault.MissingParameters
	}
	return token.Directory.Node(arguments.Party)
}

// a party name, else a Base58 account
func (token *Token) resolve(name string) (*account.Account, error) {
	n, err := token.Directory.Node(name)
	if nil == err {
		return n.Identity(), nil
	}
	if !fault.IsErrNotFound(err) {
		return nil, err
	}

	a, err := account.FromBase58(name)
	if nil != err {
		return nil, fault.PartyNotFound
	}
	return a, nil
}
