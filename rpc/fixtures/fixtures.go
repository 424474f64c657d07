// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for the rpc package tests
package fixtures

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/rpc/certificate"
)

const (
	LogCategory = "testing"
	logFile     = "rpc-test.log"
)

var (
	logDirectory string

	generate  sync.Once
	testCert  string
	testKey   string
	certError error
)

// SetupTestLogger - initialise the logger into a fresh directory
func SetupTestLogger() {
	dir, err := os.MkdirTemp("", "rpc-test")
	if nil != err {
		panic(err)
	}
	logDirectory = dir

	_ = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      logFile,
		Size:      50000,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
}

// TeardownTestLogger - stop the logger and remove its files
func TeardownTestLogger() {
	logger.Finalise()
	_ = os.RemoveAll(logDirectory)
}

// Certificate - a self signed PEM certificate for 127.0.0.1
func Certificate() string {
	generateCertificate()
	return testCert
}

// Key - the private key matching Certificate
func Key() string {
	generateCertificate()
	return testKey
}

// WriteCertificate - store the test certificate and key in dir
func WriteCertificate(dir string) (string, string) {
	generateCertificate()
	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	if err := os.WriteFile(certificateFile, []byte(testCert), 0600); nil != err {
		panic(err)
	}
	if err := os.WriteFile(keyFile, []byte(testKey), 0600); nil != err {
		panic(err)
	}
	return certificateFile, keyFile
}

// PrivateKey - a deterministic key derived from a single byte
func PrivateKey(b byte) *account.PrivateKey {
	key, err := account.PrivateKeyFromSeed(true, bytes.Repeat([]byte{b}, 32))
	if nil != err {
		panic(err)
	}
	return key
}

func generateCertificate() {
	generate.Do(func() {
		cert, key, err := certificate.Generate("test", []string{"127.0.0.1"})
		testCert, testKey, certError = string(cert), string(key), err
	})
	if nil != certError {
		panic(certError)
	}
}
