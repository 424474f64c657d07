// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
)

func TestNewDigest(t *testing.T) {
	// SHA3-256 of the empty string
	expected := "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"

	d := merkle.NewDigest([]byte{})
	assert.Equal(t, expected, d.String(), "wrong digest")
	assert.False(t, d.IsZero(), "digest is zero")
	assert.True(t, merkle.Digest{}.IsZero(), "zero digest not detected")
}

func TestScanFmt(t *testing.T) {
	d := merkle.NewDigest([]byte("bootcamp.TokenContract"))

	var scanned merkle.Digest
	n, err := fmt.Sscan(d.String(), &scanned)
	assert.Nil(t, err, "scan error")
	assert.Equal(t, 1, n, "wrong scan count")
	assert.Equal(t, d, scanned, "wrong scanned digest")
}

func TestJSON(t *testing.T) {
	d := merkle.NewDigest([]byte("some record"))

	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, `"`+d.String()+`"`, string(buffer), "wrong JSON")

	var decoded merkle.Digest
	err = json.Unmarshal(buffer, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, d, decoded, "wrong decoded digest")

	err = json.Unmarshal([]byte(`"1234"`), &decoded)
	assert.Equal(t, fault.NotDigest, err, "short digest accepted")
}

func TestDigestFromBytes(t *testing.T) {
	var d merkle.Digest
	assert.Equal(t, fault.NotDigest, merkle.DigestFromBytes(&d, []byte{1, 2, 3}), "short buffer accepted")

	src := merkle.NewDigest([]byte("x"))
	assert.Nil(t, merkle.DigestFromBytes(&d, src[:]), "valid buffer rejected")
	assert.Equal(t, src, d, "wrong digest")
}
