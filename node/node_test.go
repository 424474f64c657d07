// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/flow"
	"github.com/bitmark-inc/tokenflow/node"
	"github.com/bitmark-inc/tokenflow/storage"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
	"github.com/bitmark-inc/tokenflow/transport"
	"github.com/bitmark-inc/tokenflow/txbuilder"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "node-test")
	if nil != err {
		panic(err)
	}
	_ = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      "node.log",
		Size:      50000,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func makeKey(b byte) *account.PrivateKey {
	key, err := account.PrivateKeyFromSeed(true, bytes.Repeat([]byte{b}, 32))
	if nil != err {
		panic(err)
	}
	return key
}

var (
	notaryKey = makeKey(0x81)
	aliceKey  = makeKey(0x82)
	bobKey    = makeKey(0x83)
	carolKey  = makeKey(0x84)
)

type testNetwork struct {
	hub    *transport.Hub
	notary *node.Node
	alice  *node.Node
	bob    *node.Node
	carol  *node.Node
}

func startNode(t *testing.T, hub *transport.Hub, name string, key *account.PrivateKey) *node.Node {
	endpoint, err := hub.Register(key.Account())
	require.Nil(t, err, "register: %s", name)
	db, err := storage.OpenMemory()
	require.Nil(t, err, "database: %s", name)

	n, err := node.New(&node.Configuration{
		Name:           name,
		Key:            key,
		NotaryIdentity: notaryKey.Account(),
		Database:       db,
		RequestTimeout: 5 * time.Second,
	}, endpoint)
	require.Nil(t, err, "node: %s", name)
	return n
}

func setupNetwork(t *testing.T) *testNetwork {
	hub := transport.NewHub(logger.New("hub"))
	return &testNetwork{
		hub:    hub,
		notary: startNode(t, hub, "notary", notaryKey),
		alice:  startNode(t, hub, "alice", aliceKey),
		bob:    startNode(t, hub, "bob", bobKey),
		carol:  startNode(t, hub, "carol", carolKey),
	}
}

func (tn *testNetwork) stop() {
	tn.alice.Stop()
	tn.bob.Stop()
	tn.carol.Stop()
	tn.notary.Stop()
}

func getResult(t *testing.T, future *flow.Future) (*transactionrecord.SignedTransaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return future.Get(ctx)
}

func TestNewRejects(t *testing.T) {
	hub := transport.NewHub(logger.New("hub"))
	endpoint, err := hub.Register(aliceKey.Account())
	require.Nil(t, err, "register")
	defer endpoint.Close()

	db, err := storage.OpenMemory()
	require.Nil(t, err, "database")
	defer db.Close()

	_, err = node.New(nil, endpoint)
	assert.Equal(t, fault.MissingParameters, err, "nil configuration")

	_, err = node.New(&node.Configuration{Key: aliceKey, Database: db}, endpoint)
	assert.Equal(t, fault.MissingNotary, err, "no notary")

	_, err = node.New(&node.Configuration{Key: bobKey, Database: db, NotaryIdentity: notaryKey.Account()}, endpoint)
	assert.Equal(t, fault.ConfigurationInvalid, err, "endpoint for another identity")
}

func TestIssue(t *testing.T) {
	tn := setupNetwork(t)
	defer tn.stop()

	assert.True(t, tn.notary.IsNotary(), "notary node")
	assert.False(t, tn.alice.IsNotary(), "party node")

	future := tn.alice.StartFlow(flow.NewIssuanceFlow(tn.bob.Identity(), 99))
	stx, err := getResult(t, future)
	require.Nil(t, err, "issue")

	assert.True(t, tn.alice.Vault().Has(stx.Id), "issuer vault")
	assert.True(t, tn.bob.Vault().Has(stx.Id), "recipient vault")
	assert.False(t, tn.carol.Vault().Has(stx.Id), "bystander vault")

	balance, count, err := tn.bob.Vault().Balance()
	require.Nil(t, err, "balance")
	assert.Equal(t, int64(99), balance, "recipient balance")
	assert.Equal(t, 1, count, "recipient tokens")

	balance, _, err = tn.alice.Vault().Balance()
	require.Nil(t, err, "balance")
	assert.Equal(t, int64(0), balance, "issuer balance")

	f, err := tn.alice.Flow(future.Id())
	require.Nil(t, err, "flow lookup")
	assert.Equal(t, future, f, "same future")

	_, err = tn.alice.Flow(future.Id() + 1000000)
	assert.Equal(t, fault.FlowNotFound, err, "unknown flow")

	assert.NotEqual(t, uint64(0), tn.notary.ServedRequests(), "notary requests")
}

func TestCounterpartySigning(t *testing.T) {
	tn := setupNetwork(t)
	defer tn.stop()

	// carol prepares an issuance that alice must sign
	tx, err := txbuilder.NewIssuance(aliceKey.Account(), bobKey.Account(), 5, notaryKey.Account())
	require.Nil(t, err, "issuance")
	stx, err := transactionrecord.NewSignedTransaction(tx)
	require.Nil(t, err, "signed transaction")
	stx = stx.WithSignature(tn.carol.Sign(stx.Id))

	signature, err := tn.carol.RequestSignature(context.Background(), aliceKey.Account(), stx)
	require.Nil(t, err, "alice signs")
	assert.True(t, signature.By.Equal(aliceKey.Account()), "signer")
	assert.Nil(t, signature.Verify(stx.Id), "signature")

	// bob is not a required signer
	_, err = tn.carol.RequestSignature(context.Background(), bobKey.Account(), stx)
	assert.Equal(t, fault.NotARequiredSigner, err, "bob signs")

	// the requester must have signed
	unsigned, err := transactionrecord.NewSignedTransaction(tx)
	require.Nil(t, err, "signed transaction")
	_, err = tn.carol.RequestSignature(context.Background(), aliceKey.Account(), unsigned)
	assert.Equal(t, fault.MissingSignature, err, "unsigned request")
}

func TestRequestErrors(t *testing.T) {
	tn := setupNetwork(t)
	defer tn.stop()

	tx, err := txbuilder.NewIssuance(aliceKey.Account(), bobKey.Account(), 5, notaryKey.Account())
	require.Nil(t, err, "issuance")
	stx, err := transactionrecord.NewSignedTransaction(tx)
	require.Nil(t, err, "signed transaction")
	packed, err := stx.Pack()
	require.Nil(t, err, "pack")

	_, err = tn.alice.SendAndReceive(context.Background(), bobKey.Account(), transport.NotariseRequest, packed)
	assert.Equal(t, fault.NotANotary, err, "bob is not a notary")

	_, err = tn.alice.SendAndReceive(context.Background(), bobKey.Account(), transport.Topic("gossip"), packed)
	assert.Equal(t, fault.UnknownTopic, err, "unknown topic")

	_, err = tn.alice.SendAndReceive(context.Background(), bobKey.Account(), transport.Finality, packed)
	assert.Equal(t, fault.MissingSignature, err, "finality without signatures")

	_, err = tn.alice.SendAndReceive(context.Background(), bobKey.Account(), transport.SignRequest, []byte{0x01, 0x02})
	assert.True(t, fault.IsErrRecord(err), "garbage payload: %v", err)

	_, err = tn.alice.SendAndReceive(context.Background(), makeKey(0x99).Account(), transport.SignRequest, packed)
	assert.Equal(t, fault.IdentityNotFound, err, "unknown destination")
}

func TestNegativeAmount(t *testing.T) {
	tn := setupNetwork(t)
	defer tn.stop()

	_, err := getResult(t, tn.alice.StartFlow(flow.NewIssuanceFlow(tn.bob.Identity(), -1)))
	assert.Equal(t, fault.InvalidAmount, err, "negative amount")

	balance, count, err := tn.bob.Vault().Balance()
	require.Nil(t, err, "balance")
	assert.Equal(t, int64(0), balance, "balance")
	assert.Equal(t, 0, count, "count")
}

func TestStartAfterStop(t *testing.T) {
	tn := setupNetwork(t)
	tn.stop()

	_, err := getResult(t, tn.alice.StartFlow(flow.NewIssuanceFlow(tn.bob.Identity(), 1)))
	assert.Equal(t, fault.FlowCancelled, err, "stopped node")

	tn.alice.Stop()
}
