// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - one LevelDB database per node, split into pools
//
// a pool is a key range sharing a one byte prefix taken from the
// `prefix` tag on the Pools struct; a node owns its database, so any
// number of nodes may run in one process
//
// Key notation:
// 1. ++           = concatenation of byte data
// 2. 0x00 ++ "VERSION" (outside every pool) holds the layout version
// 3. txId         = transaction digest as 32 byte SHA3-256(packed wire transaction)
// 4. index        = output position as big endian uint64 (8 bytes)
// 5. owner        = account bytes (key variant ++ 32 byte public key)
//
// Transactions:
//
//   T ++ txId                  - finalised transactions known to this node
//                                data: packed signed transaction
//
// Consumed:
//
//   C ++ txId ++ index         - input states consumed (notary only)
//                                data: consuming txId
//
// Owned:
//
//   O ++ owner ++ txId ++ index - token states where owner is the recipient
//                                 data: big endian uint64 amount
package storage
