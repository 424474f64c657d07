// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
)

const (
	seedA = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	seedB = "1f1e1d1c1b1a191817161514131211100f0e0d0c0b0a09080706050403020100"
)

func makeKey(t *testing.T, seed string) *account.PrivateKey {
	key, err := account.PrivateKeyFromHexSeed(true, seed)
	if nil != err {
		t.Fatalf("key from seed: %q  error: %s", seed, err)
	}
	return key
}

func TestBase58RoundTrip(t *testing.T) {
	a := makeKey(t, seedA).Account()

	s := a.String()
	b, err := account.FromBase58(s)
	assert.Nil(t, err, "decode error")
	assert.True(t, a.Equal(b), "decoded account differs")
	assert.True(t, b.IsTesting(), "test flag lost")
	assert.Equal(t, a.PublicKey(), b.PublicKey(), "wrong public key")
}

func TestBase58Corrupted(t *testing.T) {
	s := makeKey(t, seedA).Account().String()

	// change the final character to break the checksum
	last := s[len(s)-1]
	replacement := byte('2')
	if '2' == last {
		replacement = '3'
	}
	corrupted := s[:len(s)-1] + string(replacement)

	_, err := account.FromBase58(corrupted)
	assert.NotNil(t, err, "corrupted account accepted")

	_, err = account.FromBase58("")
	assert.Equal(t, fault.CannotDecodeAccount, err, "empty account accepted")
}

func TestFromBytes(t *testing.T) {
	a := makeKey(t, seedA).Account()

	b, err := account.FromBytes(a.Bytes())
	assert.Nil(t, err, "decode error")
	assert.Equal(t, a.Key(), b.Key(), "wrong key")

	_, err = account.FromBytes(a.Bytes()[:10])
	assert.Equal(t, fault.InvalidKeyLength, err, "short key accepted")

	_, err = account.FromBytes([]byte{0x00, 0x01})
	assert.Equal(t, fault.InvalidKeyType, err, "private key code accepted")

	_, err = account.FromBytes([]byte{0x21, 0x01})
	assert.Equal(t, fault.InvalidKeyType, err, "unknown algorithm accepted")
}

func TestNew(t *testing.T) {
	key := makeKey(t, seedA)

	a, err := account.New(false, key.Account().PublicKey())
	assert.Nil(t, err, "new")
	assert.False(t, a.IsTesting(), "test flag set")
	assert.False(t, a.Equal(key.Account()), "live and test accounts equal")

	_, err = account.New(true, []byte{1, 2, 3})
	assert.Equal(t, fault.InvalidKeyLength, err, "short key accepted")

	var missing *account.Account
	assert.False(t, missing.IsValid(), "nil account valid")
	assert.Equal(t, "<nil>", missing.String(), "nil account text")
	assert.Equal(t, fault.MissingIdentity, missing.Verify([]byte("x"), key.Sign([]byte("x"))), "nil account verified")
}

func TestEqual(t *testing.T) {
	a := makeKey(t, seedA).Account()
	a2 := makeKey(t, seedA).Account()
	b := makeKey(t, seedB).Account()

	assert.True(t, a.Equal(a2), "same key not equal")
	assert.False(t, a.Equal(b), "different keys equal")
	assert.False(t, a.Equal(nil), "nil equal")
}

func TestSignature(t *testing.T) {
	key := makeKey(t, seedA)
	message := []byte("transaction id")

	signature := key.Sign(message)
	assert.Nil(t, key.Account().Verify(message, signature), "valid signature rejected")

	assert.Equal(t, fault.InvalidSignature, key.Account().Verify([]byte("other"), signature), "wrong message accepted")
	assert.Equal(t, fault.InvalidSignature, makeKey(t, seedB).Account().Verify(message, signature), "wrong key accepted")
	assert.Equal(t, fault.InvalidSignature, key.Account().Verify(message, signature[:10]), "short signature accepted")
}

func TestJSON(t *testing.T) {
	type holder struct {
		Owner     *account.Account  `json:"owner"`
		Signature account.Signature `json:"signature"`
	}

	key := makeKey(t, seedA)
	h := holder{
		Owner:     key.Account(),
		Signature: key.Sign([]byte("x")),
	}

	buffer, err := json.Marshal(h)
	assert.Nil(t, err, "marshal error")

	var decoded holder
	err = json.Unmarshal(buffer, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.True(t, h.Owner.Equal(decoded.Owner), "wrong owner")
	assert.Equal(t, hex.EncodeToString(h.Signature), decoded.Signature.String(), "wrong signature")

	err = json.Unmarshal([]byte(`{"signature":"0102"}`), &decoded)
	assert.Equal(t, fault.InvalidSignature, err, "short signature accepted")
}

func TestInvalidSeed(t *testing.T) {
	_, err := account.PrivateKeyFromHexSeed(true, "0102")
	assert.Equal(t, fault.InvalidSeed, err, "short seed accepted")

	_, err = account.PrivateKeyFromHexSeed(true, "zz")
	assert.Equal(t, fault.InvalidSeed, err, "non-hex seed accepted")
}
