// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tokenflow/command/token-cli/rpccalls"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/network"
	"github.com/bitmark-inc/tokenflow/rpc"
	"github.com/bitmark-inc/tokenflow/rpc/certificate"
	"github.com/bitmark-inc/tokenflow/rpc/fixtures"
	"github.com/bitmark-inc/tokenflow/rpc/listeners"
)

// start a two party network behind the RPC listener
func setupServer(t *testing.T) (string, func()) {
	fixtures.SetupTestLogger()

	dir, err := os.MkdirTemp("", "token-cli")
	require.Nil(t, err, "temp dir")

	certificateFile, keyFile := fixtures.WriteCertificate(dir)

	nw, err := network.New(nil)
	require.Nil(t, err, "network")
	_, err = nw.CreatePartyNode("PartyA", nil)
	require.Nil(t, err, "party a")
	_, err = nw.CreatePartyNode("PartyB", nil)
	require.Nil(t, err, "party b")

	err = rpc.Initialise(&listeners.RPCConfiguration{
		MaximumConnections: 10,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        certificateFile,
		PrivateKey:         keyFile,
	}, nw, "0.1")
	require.Nil(t, err, "rpc initialise")

	addresses := rpc.Addresses()
	require.Len(t, addresses, 1, "addresses")

	return addresses[0].String(), func() {
		_ = rpc.Finalise()
		nw.Stop()
		os.RemoveAll(dir)
		fixtures.TeardownTestLogger()
	}
}

func TestClientIssue(t *testing.T) {
	connect, teardown := setupServer(t)
	defer teardown()

	var verbose bytes.Buffer
	client, err := rpccalls.NewClient(connect, "", true, &verbose)
	require.Nil(t, err, "new client")
	defer client.Close()

	issue, err := client.Issue(&rpccalls.IssueData{
		Issuer:    "PartyA",
		Recipient: "PartyB",
		Amount:    99,
	})
	require.Nil(t, err, "wrong issue")
	assert.Equal(t, int64(99), issue.Amount, "wrong amount")
	assert.False(t, issue.TxId.IsZero(), "missing tx id")
	assert.True(t, strings.Contains(verbose.String(), "Token.Issue reply"), "verbose output: %s", verbose.String())

	balance, err := client.Balance("PartyB")
	require.Nil(t, err, "wrong balance")
	assert.Equal(t, int64(99), balance.Balance, "wrong balance")
	assert.Equal(t, 1, balance.Count, "wrong count")

	holdings, err := client.Holdings("PartyB", 10)
	require.Nil(t, err, "wrong holdings")
	require.Len(t, holdings.Tokens, 1, "wrong holdings")
	assert.Equal(t, issue.TxId, holdings.Tokens[0].Ref.TxId, "wrong state ref")

	tx, err := client.Transaction("PartyB", issue.TxId.String())
	require.Nil(t, err, "wrong transaction")
	assert.Equal(t, issue.TxId, tx.Transaction.Id, "wrong transaction id")
	assert.Equal(t, 2, len(tx.Transaction.Signatures), "wrong signature count")

	flow, err := client.Flow("PartyA", issue.FlowId)
	require.Nil(t, err, "wrong flow")
	assert.True(t, flow.Done, "flow not done")
	assert.Equal(t, issue.TxId, flow.TxId, "wrong flow tx id")
	assert.Equal(t, "", flow.Error, "flow error")
}

func TestClientNodes(t *testing.T) {
	connect, teardown := setupServer(t)
	defer teardown()

	client, err := rpccalls.NewClient(connect, "", false, nil)
	require.Nil(t, err, "new client")
	defer client.Close()

	info, err := client.Info()
	require.Nil(t, err, "wrong info")
	assert.Equal(t, "0.1", info.Version, "wrong version")
	assert.Equal(t, 2, info.Parties, "wrong parties")

	nodes, err := client.Nodes(0, 10)
	require.Nil(t, err, "wrong nodes")
	require.Len(t, nodes.Nodes, 3, "wrong node count")
	assert.True(t, nodes.Nodes[0].Notary, "notary not first")
	assert.Equal(t, "PartyA", nodes.Nodes[1].Name, "wrong first party")
	assert.Equal(t, uint64(3), nodes.NextStart, "wrong next start")
}

func TestClientErrors(t *testing.T) {
	connect, teardown := setupServer(t)
	defer teardown()

	client, err := rpccalls.NewClient(connect, "", false, nil)
	require.Nil(t, err, "new client")
	defer client.Close()

	_, err = client.Issue(&rpccalls.IssueData{Issuer: "PartyA", Recipient: "PartyB"})
	assert.Equal(t, fault.InvalidAmount, err, "zero amount")

	_, err = client.Issue(&rpccalls.IssueData{Issuer: "PartyA", Recipient: "Nobody", Amount: 1})
	assert.Equal(t, fault.PartyNotFound, err, "unknown recipient")

	_, err = client.Holdings("PartyA", 0)
	assert.Equal(t, fault.InvalidCount, err, "zero count")

	_, err = client.Transaction("PartyA", "not-hex")
	assert.Equal(t, fault.NotDigest, err, "bad tx id")

	_, err = client.Flow("PartyA", 12345)
	assert.Equal(t, fault.FlowNotFound, err, "unknown flow")
}

func TestClientFingerprint(t *testing.T) {
	connect, teardown := setupServer(t)
	defer teardown()

	_, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", fixtures.Certificate(), fixtures.Key())
	require.Nil(t, err, "certificate")

	client, err := rpccalls.NewClient(connect, hex.EncodeToString(fingerprint[:]), false, nil)
	require.Nil(t, err, "matching fingerprint")
	_, err = client.Info()
	assert.Nil(t, err, "info")
	client.Close()

	wrong := strings.Repeat("00", len(fingerprint))
	_, err = rpccalls.NewClient(connect, wrong, false, nil)
	if assert.NotNil(t, err, "wrong fingerprint accepted") {
		assert.True(t, strings.Contains(err.Error(), fault.FingerprintMismatch.Error()), "wrong error: %s", err)
	}

	_, err = rpccalls.NewClient(connect, "zz", false, nil)
	assert.NotNil(t, err, "bad hex accepted")
}
