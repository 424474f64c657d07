// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/tokenflow/command/token-cli/rpccalls"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	party, err := checkParty(c.String("party"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "party: %s\n", party)
	}

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Balance(party)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
