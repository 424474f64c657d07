// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package flow - ledger flows as explicit state machines
//
// a flow runs in its own goroutine behind a Future and reaches the
// rest of the node only through a ServiceHub, so the same flow can be
// driven by a real node or by a mock hub in tests
//
// the issuance flow moves through:
//
//   Created → Built → AwaitingSignatures → Notarised → Finalised
//
// and any failure before Finalised moves it to Aborted
package flow
