// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - sentinel errors grouped by class
//
// each error is a single typed string value so callers compare with
// == and classify with the IsErrX predicates; errors sent as text
// between nodes or over RPC are turned back into the same value by
// Lookup
package fault
