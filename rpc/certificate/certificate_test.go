// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/rpc/certificate"
	"github.com/bitmark-inc/tokenflow/rpc/fixtures"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer := fixtures.Certificate()
	key := fixtures.Key()

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")
}

func TestGetMismatchedKey(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, otherKey, err := certificate.Generate("other", nil)
	require.Nil(t, err, "generate")

	_, _, err = certificate.Get(logger.New(fixtures.LogCategory), "test", fixtures.Certificate(), string(otherKey))
	assert.NotNil(t, err, "mismatched key accepted")
}

func TestCreateAndLoad(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := os.MkdirTemp("", "certificate-test")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")

	err = certificate.Create("node", certificateFile, keyFile, []string{"localhost"})
	require.Nil(t, err, "create")

	info, err := os.Stat(keyFile)
	require.Nil(t, err, "stat key")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "key permissions")

	tlsConfig, fingerprint, err := certificate.Load(logger.New(fixtures.LogCategory), "test", certificateFile, keyFile)
	require.Nil(t, err, "load")
	assert.Equal(t, certificate.Fingerprint(tlsConfig.Certificates[0].Certificate[0]), fingerprint, "fingerprint")

	err = certificate.Create("node", certificateFile, keyFile, nil)
	assert.Equal(t, fault.CertificateFileExists, err, "overwrite")

	_, _, err = certificate.Load(logger.New(fixtures.LogCategory), "test", filepath.Join(dir, "absent.crt"), keyFile)
	assert.NotNil(t, err, "missing file")
}
