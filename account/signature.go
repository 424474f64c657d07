// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/tokenflow/fault"
)

// Signature - an ed25519 signature, hex in text form
type Signature []byte

func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

func (signature Signature) GoString() string {
	return "<signature:" + signature.String() + ">"
}

// MarshalText - hex JSON form
func (signature Signature) MarshalText() ([]byte, error) {
	return []byte(signature.String()), nil
}

// UnmarshalText - only complete signatures are accepted
func (signature *Signature) UnmarshalText(s []byte) error {
	if hex.EncodedLen(ed25519.SignatureSize) != len(s) {
		return fault.InvalidSignature
	}
	b, err := hex.DecodeString(string(s))
	if nil != err {
		return fault.InvalidSignature
	}
	*signature = b
	return nil
}
