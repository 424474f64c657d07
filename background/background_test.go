// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokenflow/background"
)

// drains a queue of message topics until shutdown
type consumer struct {
	queue    chan string
	handled  int64
	finished int32
	args     interface{}
}

func (c *consumer) Run(args interface{}, shutdown <-chan struct{}) {
	c.args = args
	defer atomic.StoreInt32(&c.finished, 1)

	for {
		select {
		case <-shutdown:
			return
		case <-c.queue:
			atomic.AddInt64(&c.handled, 1)
		}
	}
}

func TestStartStop(t *testing.T) {
	first := &consumer{queue: make(chan string, 10)}
	second := &consumer{queue: make(chan string, 10)}

	p := background.Start(background.Processes{first, second}, "node-a")

	for _, topic := range []string{"sign-request", "finality", "response"} {
		first.queue <- topic
	}
	second.queue <- "notarise-request"

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if 3 == atomic.LoadInt64(&first.handled) && 1 == atomic.LoadInt64(&second.handled) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	p.Stop()

	assert.Equal(t, int64(3), atomic.LoadInt64(&first.handled), "first handled")
	assert.Equal(t, int64(1), atomic.LoadInt64(&second.handled), "second handled")
	for i, c := range []*consumer{first, second} {
		assert.Equal(t, int32(1), atomic.LoadInt32(&c.finished), "%d: still running after Stop", i)
		assert.Equal(t, "node-a", c.args, "%d: wrong args", i)
	}

	// repeated stop returns at once
	p.Stop()
}

func TestStopWithoutProcesses(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
