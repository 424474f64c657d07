// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/util"
)

// encoded form: Varint64(variant) ‖ public key
//
// variant bits: algorithm << 4 | testFlag | publicFlag
const (
	publicFlag     = 0x01
	testFlag       = 0x02
	algorithmShift = 4

	algorithmED25519 = 1

	// text form appends the leading bytes of sha3-256(encoded)
	checksumLength = 4
)

// Bytes - the encoded key
func (account *Account) Bytes() []byte {
	variant := uint64(algorithmED25519<<algorithmShift | publicFlag)
	if account.test {
		variant |= testFlag
	}
	return append(util.ToVarint64(variant), account.publicKey...)
}

// FromBytes - decode an encoded key
func FromBytes(buffer []byte) (*Account, error) {
	variant, n := util.FromVarint64(buffer)
	if 0 == n || publicFlag != variant&publicFlag {
		return nil, fault.InvalidKeyType
	}
	if algorithmED25519 != variant>>algorithmShift {
		return nil, fault.InvalidKeyType
	}
	if ed25519.PublicKeySize != len(buffer)-n {
		return nil, fault.InvalidKeyLength
	}
	return New(0 != variant&testFlag, buffer[n:])
}

// String - base58 text form with checksum
func (account *Account) String() string {
	if !account.IsValid() {
		return "<nil>"
	}
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	return util.ToBase58(append(buffer, checksum[:checksumLength]...))
}

// FromBase58 - decode the text form produced by String
func FromBase58(s string) (*Account, error) {
	buffer := util.FromBase58(s)
	if len(buffer) <= checksumLength {
		return nil, fault.CannotDecodeAccount
	}

	split := len(buffer) - checksumLength
	checksum := sha3.Sum256(buffer[:split])
	if !bytes.Equal(checksum[:checksumLength], buffer[split:]) {
		return nil, fault.ChecksumMismatch
	}
	return FromBytes(buffer[:split])
}

// MarshalText - JSON form is the base58 text
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert base58 JSON text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}
