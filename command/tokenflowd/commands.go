// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokenflow/flow"
	"github.com/bitmark-inc/tokenflow/network"
	"github.com/bitmark-inc/tokenflow/rpc/certificate"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	seedLength = 32

	issueWait = 60 * time.Second
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.Create("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-seed", "seed":
		seed := make([]byte, seedLength)
		if _, err := rand.Read(seed); nil != err {
			exitwithstatus.Message("error: generate seed: %s", err)
		}
		fmt.Printf("%s\n", hex.EncodeToString(seed))

	case "start", "run":
		return false // continue processing

	case "issue", "i":
		return false // defer processing until network is running

	case "identities", "ids", "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-seed                   (seed)   - display a random hex seed for a node key\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  identities                 (ids)    - display the account of every configured node\n")
		fmt.Printf("\n")

		fmt.Printf("  issue ISSUER RECIPIENT N   (i)      - run one issuance flow then exit\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "identities", "ids":
		for _, n := range append([]NodeType{options.Notary}, options.Parties...) {
			if "" == n.Seed {
				fmt.Printf("%s: *generated at start*\n", n.Name)
				continue
			}
			key, err := options.privateKey(n)
			if nil != err {
				exitwithstatus.Message("error: node: %q  seed error: %s", n.Name, err)
			}
			fmt.Printf("%s: %s\n", n.Name, key.Account())
		}

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to network command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// network command handler
// the nodes are running so these commands can drive flows
func processNetworkCommand(log *logger.L, arguments []string, net *network.Network) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "issue", "i":
		if len(arguments) < 3 {
			exitwithstatus.Message("missing arguments: ISSUER RECIPIENT AMOUNT")
		}

		issuer, err := net.Node(arguments[0])
		if nil != err {
			exitwithstatus.Message("error: issuer: %q  error: %s", arguments[0], err)
		}
		recipient, err := net.Node(arguments[1])
		if nil != err {
			exitwithstatus.Message("error: recipient: %q  error: %s", arguments[1], err)
		}
		amount, err := strconv.ParseInt(arguments[2], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in amount: %s", err)
		}

		f := flow.NewIssuanceFlow(recipient.Identity(), amount)
		future := issuer.StartFlow(f)

		ctx, cancel := context.WithTimeout(context.Background(), issueWait)
		defer cancel()

		stx, err := future.Get(ctx)
		if nil != err {
			log.Errorf("issue flow: %d  state: %s  error: %s", future.Id(), f.State(), err)
			exitwithstatus.Message("issue error: %s  state: %s", err, f.State())
		}

		s, err := json.MarshalIndent(stx, "", "  ")
		if nil != err {
			exitwithstatus.Message("transaction JSON error: %s", err)
		}
		fmt.Printf("%s\n", s)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
