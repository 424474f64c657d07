// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/rpc/certificate"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a tokenflowd
//
// the daemon uses a self signed certificate so a non-blank hex
// fingerprint is the only check on the server identity
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		MinVersion:         tls.VersionTLS12,
	}

	if "" != fingerprint {
		expected, err := hex.DecodeString(fingerprint)
		if nil != err {
			return nil, err
		}
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) {
				return fault.FingerprintMismatch
			}
			actual := certificate.Fingerprint(rawCerts[0])
			if !bytes.Equal(expected, actual[:]) {
				return fault.FingerprintMismatch
			}
			return nil
		}
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the tokenflowd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

// server errors arrive as plain text so map them to the known values
func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	c.output(method+" request", arguments)

	err := c.client.Call(method, arguments, reply)
	if se, ok := err.(rpc.ServerError); ok {
		return fault.Lookup(string(se))
	} else if nil != err {
		return err
	}

	c.output(method+" reply", reply)
	return nil
}

func (c *Client) output(title string, message interface{}) {
	if !c.verbose || nil == c.handle {
		return
	}
	fmt.Fprintf(c.handle, "%s:\n", title)
	_ = printJson(c.handle, message)
}
