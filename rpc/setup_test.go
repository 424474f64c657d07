// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/network"
	"github.com/bitmark-inc/tokenflow/rpc"
	"github.com/bitmark-inc/tokenflow/rpc/certificate"
	"github.com/bitmark-inc/tokenflow/rpc/fixtures"
	"github.com/bitmark-inc/tokenflow/rpc/listeners"
	"github.com/bitmark-inc/tokenflow/rpc/token"
)

func TestInitialise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "rpc-setup")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certificateFile, keyFile := fixtures.WriteCertificate(dir)

	nw, err := network.New(nil)
	require.Nil(t, err, "network")
	defer nw.Stop()
	_, err = nw.CreatePartyNode("PartyA", nil)
	require.Nil(t, err, "party a")
	_, err = nw.CreatePartyNode("PartyB", nil)
	require.Nil(t, err, "party b")

	configuration := &listeners.RPCConfiguration{
		MaximumConnections: 10,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        certificateFile,
		PrivateKey:         keyFile,
	}

	err = rpc.Initialise(configuration, nw, "0.1")
	require.Nil(t, err, "wrong Initialise")

	err = rpc.Initialise(configuration, nw, "0.1")
	assert.Equal(t, fault.AlreadyInitialised, err, "second Initialise")

	addresses := rpc.Addresses()
	require.Len(t, addresses, 1, "addresses")

	_, expected, err := certificate.Load(logger.New(fixtures.LogCategory), "test", certificateFile, keyFile)
	require.Nil(t, err, "load certificate")
	assert.Equal(t, expected, rpc.Fingerprint(), "wrong fingerprint")

	conn, err := tls.Dial("tcp", addresses[0].String(), &tls.Config{InsecureSkipVerify: true})
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(conn)

	var issue token.IssueReply
	err = client.Call("Token.Issue", &token.IssueArguments{Issuer: "PartyA", Recipient: "PartyB", Amount: 99}, &issue)
	assert.Nil(t, err, "wrong Token.Issue")
	_ = client.Close()

	assert.Nil(t, rpc.Finalise(), "wrong Finalise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "second Finalise")
	assert.Equal(t, [32]byte{}, rpc.Fingerprint(), "fingerprint kept after Finalise")
	assert.Nil(t, rpc.Addresses(), "addresses kept after Finalise")
}

func TestInitialiseDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := rpc.Initialise(&listeners.RPCConfiguration{}, nil, "0.1")
	require.Nil(t, err, "wrong Initialise")
	assert.Nil(t, rpc.Addresses(), "listening while disabled")
	assert.Nil(t, rpc.Finalise(), "wrong Finalise")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := rpc.Initialise(&listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        "/nonexistent/rpc.crt",
		PrivateKey:         "/nonexistent/rpc.key",
	}, nil, "0.1")
	assert.NotNil(t, err, "missing certificate accepted")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "initialised after failure")
}
