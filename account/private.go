// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/tokenflow/fault"
)

// PrivateKey - signing key held by a node
//
// the key never leaves the node; only the derived account is shared
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// NewPrivateKey - create a key from secure random data
func NewPrivateKey(test bool) (*PrivateKey, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: privateKey,
	}, nil
}

// PrivateKeyFromSeed - deterministic key from a 32 byte seed
func PrivateKeyFromSeed(test bool, seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.InvalidSeed
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// PrivateKeyFromHexSeed - as PrivateKeyFromSeed with a hex encoded seed
func PrivateKeyFromHexSeed(test bool, hexSeed string) (*PrivateKey, error) {
	seed, err := hex.DecodeString(hexSeed)
	if nil != err {
		return nil, fault.InvalidSeed
	}
	return PrivateKeyFromSeed(test, seed)
}

// Account - the public identity for this key
func (key *PrivateKey) Account() *Account {
	a, err := New(key.Test, key.PrivateKey.Public().(ed25519.PublicKey))
	if nil != err {
		panic(err)
	}
	return a
}

// Sign - sign a message
func (key *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(key.PrivateKey, message))
}
