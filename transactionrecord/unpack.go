// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"time"

	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/util"
)

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   stx, ok := result.(*transactionrecord.SignedTransaction)
// or:
//   switch tx := result.(type) {
//   case *transactionrecord.WireTransaction:
func (record Packed) Unpack() (t interface{}, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			t = nil
			n = 0
			e = fault.NotTransactionPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.NotTransactionPack
	}

unpack_switch:
	switch TagType(recordType) {

	case WireTransactionTag:
		tx := &WireTransaction{}

		// inputs
		inputCount, inputOffset := util.ClippedVarint64(record[n:], 0, maxItemCount)
		if 0 == inputOffset {
			break unpack_switch
		}
		n += inputOffset
		if inputCount > 0 {
			tx.Inputs = make([]StateRef, 0, inputCount)
		}
		for i := 0; i < inputCount; i += 1 {
			txId, k := readBytes(record, n, 1, maxFieldLength)
			if 0 == k {
				break unpack_switch
			}
			n += k
			ref := StateRef{}
			if err := merkle.DigestFromBytes(&ref.TxId, txId); nil != err {
				return nil, 0, err
			}
			index, indexLength := util.FromVarint64(record[n:])
			if 0 == indexLength {
				break unpack_switch
			}
			n += indexLength
			ref.Index = index
			tx.Inputs = append(tx.Inputs, ref)
		}

		// outputs
		outputCount, outputOffset := util.ClippedVarint64(record[n:], 0, maxItemCount)
		if 0 == outputOffset {
			break unpack_switch
		}
		n += outputOffset
		if outputCount > 0 {
			tx.Outputs = make([]TransactionState, 0, outputCount)
		}
		for i := 0; i < outputCount; i += 1 {
			contractName, k := readBytes(record, n, 0, maxContractNameLength)
			if 0 == k {
				break unpack_switch
			}
			n += k

			notary, k, err := readAccount(record, n)
			if nil != err {
				return nil, 0, err
			}
			if 0 == k {
				break unpack_switch
			}
			n += k

			issuer, k, err := readAccount(record, n)
			if nil != err {
				return nil, 0, err
			}
			if 0 == k {
				break unpack_switch
			}
			n += k

			recipient, k, err := readAccount(record, n)
			if nil != err {
				return nil, 0, err
			}
			if 0 == k {
				break unpack_switch
			}
			n += k

			amount, amountLength := util.FromVarint64(record[n:])
			if 0 == amountLength {
				break unpack_switch
			}
			n += amountLength

			tx.Outputs = append(tx.Outputs, TransactionState{
				Data: &TokenState{
					Issuer:    issuer,
					Recipient: recipient,
					Amount:    int64(amount),
				},
				Contract: string(contractName),
				Notary:   notary,
			})
		}

		// commands
		commandCount, commandOffset := util.ClippedVarint64(record[n:], 0, maxItemCount)
		if 0 == commandOffset {
			break unpack_switch
		}
		n += commandOffset
		if commandCount > 0 {
			tx.Commands = make([]Command, 0, commandCount)
		}
		for i := 0; i < commandCount; i += 1 {
			commandType, commandTypeLength := util.FromVarint64(record[n:])
			if 0 == commandTypeLength {
				break unpack_switch
			}
			n += commandTypeLength

			signerCount, signerOffset := util.ClippedVarint64(record[n:], 0, maxItemCount)
			if 0 == signerOffset {
				break unpack_switch
			}
			n += signerOffset

			command := Command{
				Type:    CommandType(commandType),
				Signers: make([]*account.Account, 0, signerCount),
			}
			for j := 0; j < signerCount; j += 1 {
				signer, k, err := readAccount(record, n)
				if nil != err {
					return nil, 0, err
				}
				if 0 == k {
					break unpack_switch
				}
				n += k
				command.Signers = append(command.Signers, signer)
			}
			tx.Commands = append(tx.Commands, command)
		}

		// notary
		notary, k, err := readAccount(record, n)
		if nil != err {
			return nil, 0, err
		}
		if 0 == k {
			break unpack_switch
		}
		n += k
		tx.Notary = notary

		// attachments
		attachmentCount, attachmentOffset := util.ClippedVarint64(record[n:], 0, maxItemCount)
		if 0 == attachmentOffset {
			break unpack_switch
		}
		n += attachmentOffset
		if attachmentCount > 0 {
			tx.Attachments = make([]merkle.Digest, 0, attachmentCount)
		}
		for i := 0; i < attachmentCount; i += 1 {
			b, k := readBytes(record, n, 1, maxFieldLength)
			if 0 == k {
				break unpack_switch
			}
			n += k
			var d merkle.Digest
			if err := merkle.DigestFromBytes(&d, b); nil != err {
				return nil, 0, err
			}
			tx.Attachments = append(tx.Attachments, d)
		}

		// optional time window
		present, presentLength := util.ClippedVarint64(record[n:], 0, 1)
		if 0 == presentLength {
			break unpack_switch
		}
		n += presentLength
		if 1 == present {
			from, fromLength := util.FromVarint64(record[n:])
			if 0 == fromLength {
				break unpack_switch
			}
			n += fromLength
			until, untilLength := util.FromVarint64(record[n:])
			if 0 == untilLength {
				break unpack_switch
			}
			n += untilLength
			tx.TimeWindow = &TimeWindow{
				From:  timeFromUint64(from),
				Until: timeFromUint64(until),
			}
		}

		salt, k := readBytes(record, n, 1, maxFieldLength)
		if 0 == k {
			break unpack_switch
		}
		n += k
		if err := merkle.DigestFromBytes(&tx.PrivacySalt, salt); nil != err {
			return nil, 0, err
		}
		return tx, n, nil

	case SignedTransactionTag:
		wire, k := readBytes(record, n, 1, maxFieldLength*maxItemCount)
		if 0 == k {
			break unpack_switch
		}
		n += k

		inner, innerLength, err := Packed(wire).Unpack()
		if nil != err {
			return nil, 0, err
		}
		tx, ok := inner.(*WireTransaction)
		if !ok || innerLength != len(wire) {
			return nil, 0, fault.NotTransactionPack
		}

		signatureCount, signatureOffset := util.ClippedVarint64(record[n:], 0, maxItemCount)
		if 0 == signatureOffset {
			break unpack_switch
		}
		n += signatureOffset

		stx := &SignedTransaction{
			Tx:         tx,
			Id:         Packed(wire).MakeLink(),
			Signatures: make([]TransactionSignature, 0, signatureCount),
		}
		for i := 0; i < signatureCount; i += 1 {
			signature, k, err := readSignature(record, n)
			if nil != err {
				return nil, 0, err
			}
			if 0 == k {
				break unpack_switch
			}
			n += k
			stx.Signatures = append(stx.Signatures, signature)
		}
		return stx, n, nil

	case TransactionSignatureTag:
		signature, k, err := readSignature(record, n)
		if nil != err {
			return nil, 0, err
		}
		if 0 == k {
			break unpack_switch
		}
		n += k
		return &signature, n, nil

	default: // also NullTag
		return nil, 0, fault.NotTransactionPack
	}
	return nil, 0, fault.TruncatedRecord
}

// UnpackSignedTransaction - unpack a complete record that must hold
// exactly one signed transaction
func UnpackSignedTransaction(record Packed) (*SignedTransaction, error) {
	t, n, err := record.Unpack()
	if nil != err {
		return nil, err
	}
	stx, ok := t.(*SignedTransaction)
	if !ok || n != len(record) {
		return nil, fault.NotTransactionPack
	}
	return stx, nil
}

// UnpackTransactionSignature - unpack a complete record that must hold
// exactly one signature
func UnpackTransactionSignature(record Packed) (*TransactionSignature, error) {
	t, n, err := record.Unpack()
	if nil != err {
		return nil, err
	}
	signature, ok := t.(*TransactionSignature)
	if !ok || n != len(record) {
		return nil, fault.NotTransactionPack
	}
	return signature, nil
}

// read a length prefixed field starting at offset n
//
// returns the field and the total bytes consumed, 0 if truncated
func readBytes(record Packed, n int, minimum int, maximum int) ([]byte, int) {
	length, offset := util.ClippedVarint64(record[n:], minimum, maximum)
	if 0 == offset {
		return nil, 0
	}
	start := n + offset
	if start+length > len(record) {
		return nil, 0
	}
	b := make([]byte, length)
	copy(b, record[start:start+length])
	return b, offset + length
}

func readAccount(record Packed, n int) (*account.Account, int, error) {
	b, k := readBytes(record, n, 1, maxFieldLength)
	if 0 == k {
		return nil, 0, nil
	}
	a, err := account.FromBytes(b)
	if nil != err {
		return nil, 0, err
	}
	return a, k, nil
}

func readSignature(record Packed, n int) (TransactionSignature, int, error) {
	by, k, err := readAccount(record, n)
	if nil != err || 0 == k {
		return TransactionSignature{}, 0, err
	}
	signature, l := readBytes(record, n+k, 1, maxFieldLength)
	if 0 == l {
		return TransactionSignature{}, 0, nil
	}
	return TransactionSignature{
		By:        by,
		Signature: account.Signature(signature),
	}, k + l, nil
}

func timeFromUint64(value uint64) time.Time {
	if 0 == value {
		return time.Time{}
	}
	return time.Unix(0, int64(value)).UTC()
}
