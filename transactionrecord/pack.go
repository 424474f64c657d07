// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"math"
	"time"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/util"
)

// limits applied by both packer and unpacker
const (
	maxItemCount          = 1024
	maxContractNameLength = 256
	maxFieldLength        = 8192
)

// Pack - pack a WireTransaction
//
// Pack Varint64(tag) followed by each list as Varint64(count) and
// its items with fields in order as the structs above
func (tx *WireTransaction) Pack() (Packed, error) {
	if nil == tx.Notary {
		return nil, fault.MissingNotary
	}
	if len(tx.Inputs) > maxItemCount || len(tx.Outputs) > maxItemCount ||
		len(tx.Commands) > maxItemCount || len(tx.Attachments) > maxItemCount {
		return nil, fault.InvalidCount
	}

	message := util.ToVarint64(uint64(WireTransactionTag))

	message = appendUint64(message, uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		message = appendBytes(message, input.TxId[:])
		message = appendUint64(message, input.Index)
	}

	message = appendUint64(message, uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		state := output.Data
		if nil == state || nil == state.Issuer || nil == state.Recipient || nil == output.Notary {
			return nil, fault.MissingIdentity
		}
		if len(output.Contract) > maxContractNameLength {
			return nil, fault.WrongContract
		}
		message = appendString(message, output.Contract)
		message = appendAccount(message, output.Notary)
		message = appendAccount(message, state.Issuer)
		message = appendAccount(message, state.Recipient)
		message = appendUint64(message, uint64(state.Amount))
	}

	message = appendUint64(message, uint64(len(tx.Commands)))
	for _, command := range tx.Commands {
		if len(command.Signers) > maxItemCount {
			return nil, fault.InvalidCount
		}
		message = appendUint64(message, uint64(command.Type))
		message = appendUint64(message, uint64(len(command.Signers)))
		for _, signer := range command.Signers {
			if nil == signer {
				return nil, fault.MissingIdentity
			}
			message = appendAccount(message, signer)
		}
	}

	message = appendAccount(message, tx.Notary)

	message = appendUint64(message, uint64(len(tx.Attachments)))
	for _, attachment := range tx.Attachments {
		message = appendBytes(message, attachment[:])
	}

	if nil == tx.TimeWindow {
		message = appendUint64(message, 0)
	} else {
		if !packableTime(tx.TimeWindow.From) || !packableTime(tx.TimeWindow.Until) {
			return nil, fault.InvalidTimeWindow
		}
		if !tx.TimeWindow.From.IsZero() && !tx.TimeWindow.Until.IsZero() &&
			!tx.TimeWindow.From.Before(tx.TimeWindow.Until) {
			return nil, fault.InvalidTimeWindow
		}
		message = appendUint64(message, 1)
		message = appendTime(message, tx.TimeWindow.From)
		message = appendTime(message, tx.TimeWindow.Until)
	}

	message = appendBytes(message, tx.PrivacySalt[:])

	return message, nil
}

// Pack - pack a SignedTransaction
//
// Pack Varint64(tag) followed by the packed draft as a byte field and
// then Varint64(count) signatures each as account followed by bytes
func (stx *SignedTransaction) Pack() (Packed, error) {
	if nil == stx.Tx {
		return nil, fault.MissingParameters
	}
	wire, err := stx.Tx.Pack()
	if nil != err {
		return nil, err
	}
	if len(stx.Signatures) > maxItemCount {
		return nil, fault.InvalidCount
	}

	message := util.ToVarint64(uint64(SignedTransactionTag))
	message = appendBytes(message, wire)
	message = appendUint64(message, uint64(len(stx.Signatures)))
	for _, signature := range stx.Signatures {
		if nil == signature.By {
			return nil, fault.MissingIdentity
		}
		message = appendAccount(message, signature.By)
		message = appendBytes(message, signature.Signature)
	}
	return message, nil
}

// Pack - pack a single TransactionSignature
func (signature *TransactionSignature) Pack() (Packed, error) {
	if nil == signature.By {
		return nil, fault.MissingIdentity
	}
	message := util.ToVarint64(uint64(TransactionSignatureTag))
	message = appendAccount(message, signature.By)
	message = appendBytes(message, signature.Signature)
	return message, nil
}

// append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an address to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	return appendBytes(buffer, address.Bytes())
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, util.ToVarint64(value)...)
}

// limits of a time held as int64 unix nanoseconds
var (
	earliestTime = time.Unix(0, math.MinInt64)
	latestTime   = time.Unix(0, math.MaxInt64)
)

// true if appendTime gives back the same instant on unpacking
//
// 0 is reserved for the zero time so the epoch itself cannot be a bound
func packableTime(t time.Time) bool {
	if t.IsZero() {
		return true
	}
	if t.Before(earliestTime) || t.After(latestTime) {
		return false
	}
	return 0 != t.UnixNano()
}

// append a time as Varint64 unix nanoseconds, zero time as 0
func appendTime(buffer Packed, t time.Time) Packed {
	if t.IsZero() {
		return appendUint64(buffer, 0)
	}
	return appendUint64(buffer, uint64(t.UnixNano()))
}
