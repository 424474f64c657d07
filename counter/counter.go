// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned value safe for concurrent update
//
// a node keeps one for running flows and one for served requests;
// the RPC layer uses one as its live connection count
type Counter uint64

// Increment - add one and return the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract one and return the new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - true when nothing is counted
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}

// Sequence - source of unique non-zero identifiers
//
// zero is never returned so it can mark "no id"
type Sequence struct {
	last uint64
}

// Next - the next identifier
func (s *Sequence) Next() uint64 {
	return atomic.AddUint64(&s.last, 1)
}
