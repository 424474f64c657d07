// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/util"
)

// TagType - type code for packed records
type TagType uint64

// enumerate the possible packed record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	WireTransactionTag      = TagType(iota) // unsigned draft
	SignedTransactionTag    = TagType(iota) // draft plus signatures
	TransactionSignatureTag = TagType(iota) // a single signature over a tx id

	// this item must be last
	InvalidTag = TagType(iota)
)

// CommandType - closed set of command intents
type CommandType uint64

// enumerate the command types
// this is encoded as a Varint64 in each packed command
const (
	NullCommand   = CommandType(iota) // not a valid command
	IssueCommand  = CommandType(iota) // create value from nothing
	MoveCommand   = CommandType(iota) // reserved: change owner
	RedeemCommand = CommandType(iota) // reserved: destroy value

	// this item must be last
	InvalidCommand = CommandType(iota)
)

// String - name of a command type
func (c CommandType) String() string {
	switch c {
	case IssueCommand:
		return "Issue"
	case MoveCommand:
		return "Move"
	case RedeemCommand:
		return "Redeem"
	default:
		return "*unknown*"
	}
}

// Packed - packed records are just a byte slice
type Packed []byte

// TokenState - a quantity of value created by an issuer for a recipient
type TokenState struct {
	Issuer    *account.Account `json:"issuer"`    // base58
	Recipient *account.Account `json:"recipient"` // base58
	Amount    int64            `json:"amount"`    // must be > 0
}

// Participants - the parties that must be told about this state
func (state *TokenState) Participants() []*account.Account {
	return distinct([]*account.Account{state.Issuer, state.Recipient})
}

// TransactionState - an output: a state bound to its contract and notary
type TransactionState struct {
	Data     *TokenState      `json:"data"`
	Contract string           `json:"contract"` // name of the rule set that governs Data
	Notary   *account.Account `json:"notary"`   // base58
}

// StateRef - points to an output of an earlier transaction
type StateRef struct {
	TxId  merkle.Digest `json:"txId"`
	Index uint64        `json:"index"`
}

// String - txid:index
func (ref StateRef) String() string {
	return fmt.Sprintf("%s:%d", ref.TxId, ref.Index)
}

// Command - a typed intent and the identities that must sign for it
type Command struct {
	Type    CommandType        `json:"type"`
	Signers []*account.Account `json:"signers"`
}

// HasSigner - check if an account is one of the command signers
func (command *Command) HasSigner(a *account.Account) bool {
	for _, s := range command.Signers {
		if s.Equal(a) {
			return true
		}
	}
	return false
}

// TimeWindow - optional validity interval, zero times are open ends
//
// a bound cannot be the Unix epoch itself
type TimeWindow struct {
	From  time.Time `json:"from"`
	Until time.Time `json:"until"`
}

// WireTransaction - the unsigned draft
//
// PrivacySalt separates otherwise identical drafts, a zero salt is
// allowed but two such drafts share an id
type WireTransaction struct {
	Inputs      []StateRef         `json:"inputs"`
	Outputs     []TransactionState `json:"outputs"`
	Commands    []Command          `json:"commands"`
	Notary      *account.Account   `json:"notary"`
	Attachments []merkle.Digest    `json:"attachments"`
	TimeWindow  *TimeWindow        `json:"timeWindow"`
	PrivacySalt merkle.Digest      `json:"privacySalt"`
}

// Id - the transaction id is the digest of the packed draft
func (tx *WireTransaction) Id() (merkle.Digest, error) {
	packed, err := tx.Pack()
	if nil != err {
		return merkle.Digest{}, err
	}
	return packed.MakeLink(), nil
}

// TokenOutputs - the token states of all outputs in order
func (tx *WireTransaction) TokenOutputs() []*TokenState {
	states := make([]*TokenState, 0, len(tx.Outputs))
	for _, output := range tx.Outputs {
		if nil != output.Data {
			states = append(states, output.Data)
		}
	}
	return states
}

// RequiredSigners - union of all command signers, in first seen order
func (tx *WireTransaction) RequiredSigners() []*account.Account {
	signers := make([]*account.Account, 0, len(tx.Commands))
	for _, command := range tx.Commands {
		signers = append(signers, command.Signers...)
	}
	return distinct(signers)
}

// Participants - every party named in an output
func (tx *WireTransaction) Participants() []*account.Account {
	parties := make([]*account.Account, 0, 2*len(tx.Outputs))
	for _, state := range tx.TokenOutputs() {
		parties = append(parties, state.Participants()...)
	}
	return distinct(parties)
}

// MakeLink - Create an link for a packed record
func (record Packed) MakeLink() merkle.Digest {
	return merkle.NewDigest(record)
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed to its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	recordType, n := util.FromVarint64(record)
	if 0 == n {
		return NullTag
	}
	return TagType(recordType)
}

// drop nil and repeated accounts, keeping the first occurrence
func distinct(accounts []*account.Account) []*account.Account {
	seen := make(map[string]struct{}, len(accounts))
	result := make([]*account.Account, 0, len(accounts))
	for _, a := range accounts {
		if !a.IsValid() {
			continue
		}
		k := a.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, a)
	}
	return result
}
