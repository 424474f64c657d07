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

func runFlow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	party, err := checkParty(c.String("party"))
	if nil != err {
		return err
	}

	flowId := c.Uint64("flow-id")
	if 0 == flowId {
		return ErrRequiredFlowId
	}

	if m.verbose {
		fmt.Fprintf(m.e, "party: %s\n", party)
		fmt.Fprintf(m.e, "flow id: %d\n", flowId)
	}

	client, err := rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Flow(party, flowId)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
