// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/tokenflow/fault"
)

// Account - the public identity of a party or notary
//
// an account is opaque: it is known only by its public key and the
// network the key belongs to, and is never modified once created
type Account struct {
	test      bool
	publicKey ed25519.PublicKey
}

// New - wrap an ed25519 public key
func New(test bool, publicKey []byte) (*Account, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.InvalidKeyLength
	}
	k := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(k, publicKey)
	return &Account{
		test:      test,
		publicKey: k,
	}, nil
}

// IsValid - true for a non-nil account holding a complete key
func (account *Account) IsValid() bool {
	return nil != account && ed25519.PublicKeySize == len(account.publicKey)
}

// IsTesting - true if the key belongs to the test network
func (account *Account) IsTesting() bool {
	return account.test
}

// PublicKey - copy of the raw public key
func (account *Account) PublicKey() []byte {
	return append([]byte{}, account.publicKey...)
}

// Equal - two accounts are the same identity if their encoded keys match
func (account *Account) Equal(other *Account) bool {
	if !account.IsValid() || !other.IsValid() {
		return false
	}
	return account.test == other.test && bytes.Equal(account.publicKey, other.publicKey)
}

// Key - comparable value for use as a map key
func (account *Account) Key() string {
	return string(account.Bytes())
}

// Verify - check a signature by this account over a message
func (account *Account) Verify(message []byte, signature Signature) error {
	if !account.IsValid() {
		return fault.MissingIdentity
	}
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(account.publicKey, message, signature) {
		return fault.InvalidSignature
	}
	return nil
}
