// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuilder

import (
	"crypto/rand"

	"github.com/bitmark-inc/tokenflow/merkle"
)

// NewPrivacySalt - random salt so that repeated drafts get distinct ids
func NewPrivacySalt() (merkle.Digest, error) {
	var salt merkle.Digest
	if _, err := rand.Read(salt[:]); nil != err {
		return salt, err
	}
	return salt, nil
}
