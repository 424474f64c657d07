// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

// State - position of a flow in its lifecycle
type State int

// all flow states
const (
	Created            State = iota // not yet called
	Built              State = iota // draft built and verified
	AwaitingSignatures State = iota // collecting required signatures
	Notarised          State = iota // notary signature obtained
	Finalised          State = iota // recorded, cannot be cancelled
	Aborted            State = iota // terminal failure
)

// String - printable state name
func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Built:
		return "Built"
	case AwaitingSignatures:
		return "AwaitingSignatures"
	case Notarised:
		return "Notarised"
	case Finalised:
		return "Finalised"
	case Aborted:
		return "Aborted"
	default:
		return "*unknown*"
	}
}

// IsTerminal - true once no further transition is possible
func (s State) IsTerminal() bool {
	return Finalised == s || Aborted == s
}
