// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read a daemon configuration written in Lua
//
// the file is a script that returns a table; the table is decoded
// into a Go struct through gluamapper tags, so the script may compute
// values, read seed files or call os.getenv before returning
package configuration
