// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect     string
	fingerprint string
	verbose     bool
	e           io.Writer
	w           io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:2130"

func main() {

	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "token-cli"
	app.Usage = "issue and inspect tokens on a tokenflowd network"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e
	app.Metadata = make(map[string]interface{})

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " tokenflowd RPC `HOST:PORT`",
			EnvVar: "TOKENFLOW_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  " expected SHA3-256 RPC certificate `HEX` fingerprint",
			EnvVar: "TOKENFLOW_FINGERPRINT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "display tokenflowd info",
			ArgsUsage: " ",
			Action:    runInfo,
		},
		{
			Name:      "nodes",
			Usage:     "list the notary and party nodes",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " position of first node `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " number of nodes to list `COUNT`",
				},
			},
			Action: runNodes,
		},
		{
			Name:      "issue",
			Usage:     "issue tokens from one party to another",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "issuer, i",
					Value: "",
					Usage: "*issuing party `NAME`",
				},
				cli.StringFlag{
					Name:  "recipient, r",
					Value: "",
					Usage: "*receiving party `NAME` or `ACCOUNT`",
				},
				cli.Int64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*number of tokens `AMOUNT`",
				},
			},
			Action: runIssue,
		},
		{
			Name:      "flow",
			Usage:     "display the progress of a flow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "party, p",
					Value: "",
					Usage: "*party `NAME` that started the flow",
				},
				cli.Uint64Flag{
					Name:  "flow-id, F",
					Value: 0,
					Usage: "*flow `ID` from issue",
				},
			},
			Action: runFlow,
		},
		{
			Name:      "balance",
			Usage:     "display the token balance of a party",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "party, p",
					Value: "",
					Usage: "*party `NAME`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "holdings",
			Usage:     "list the unconsumed tokens of a party",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "party, p",
					Value: "",
					Usage: "*party `NAME`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum tokens to list `COUNT`",
				},
			},
			Action: runHoldings,
		},
		{
			Name:      "transaction",
			Usage:     "display a finalised transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "party, p",
					Value: "",
					Usage: "*party `NAME` holding the transaction",
				},
				cli.StringFlag{
					Name:  "txid, t",
					Value: "",
					Usage: "*transaction `TXID`",
				},
			},
			Action: runTransaction,
		},
		{
			Name:  "version",
			Usage: "display token-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		connect := c.GlobalString("connect")
		if "" == connect {
			return fmt.Errorf("connect: %q is not a HOST:PORT", connect)
		}

		c.App.Metadata["config"] = &metadata{
			connect:     connect,
			fingerprint: c.GlobalString("fingerprint"),
			verbose:     c.GlobalBool("verbose"),
			e:           c.App.ErrWriter,
			w:           c.App.Writer,
		}

		return nil
	}

	return app
}
