// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transport - message passing between nodes
//
// nodes never share memory; every exchange is a Message carrying
// packed bytes, addressed by the identity of the receiving node
//
// the Hub delivers messages between endpoints in one process
package transport
