// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/tokenflow/background"
)

type printer struct {
	topics chan string
	done   chan struct{}
}

func (p *printer) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		select {
		case topic := <-p.topics:
			fmt.Printf("%s: %s\n", args, topic)
			close(p.done)
		case <-shutdown:
			return
		}
	}
}

func Example() {
	p := &printer{
		topics: make(chan string, 1),
		done:   make(chan struct{}),
	}

	t := background.Start(background.Processes{p}, "PartyA")
	p.topics <- "finality"
	<-p.done
	t.Stop()

	// Output: PartyA: finality
}
