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

func runIssue(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	issuer := c.String("issuer")
	recipient := c.String("recipient")
	amount := c.Int64("amount")

	if err := checkIssue(issuer, recipient, amount); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "issuer: %s\n", issuer)
		fmt.Fprintf(m.e, "recipient: %s\n", recipient)
		fmt.Fprintf(m.e, "amount: %d\n", amount)
	}

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	issueConfig := &rpccalls.IssueData{
		Issuer:    issuer,
		Recipient: recipient,
		Amount:    amount,
	}

	response, err := client.Issue(issueConfig)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
