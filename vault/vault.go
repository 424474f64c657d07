// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/storage"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// OwnedToken - a token state held by the vault owner
type OwnedToken struct {
	Ref   transactionrecord.StateRef    `json:"ref"`
	State *transactionrecord.TokenState `json:"state"`
}

// Vault - finalised transactions seen by one node
type Vault struct {
	sync.Mutex
	log   *logger.L
	owner *account.Account
	db    *storage.Database
}

// New - create a vault for an owner over an open database
func New(owner *account.Account, db *storage.Database, log *logger.L) *Vault {
	return &Vault{
		log:   log,
		owner: owner,
		db:    db,
	}
}

// Record - store a finalised transaction
//
// recording the same transaction again has no effect
func (v *Vault) Record(stx *transactionrecord.SignedTransaction) error {
	v.Lock()
	defer v.Unlock()

	if v.db.Transactions.Has(stx.Id[:]) {
		v.log.Debugf("already recorded: %s", stx.Id)
		return nil
	}

	packed, err := stx.Pack()
	if nil != err {
		return err
	}

	batch := v.db.NewBatch()
	batch.Put(v.db.Transactions, stx.Id[:], packed)

	owned := 0
	for i, output := range stx.Tx.Outputs {
		if nil == output.Data || !output.Data.Recipient.Equal(v.owner) {
			continue
		}
		batch.PutN(v.db.Owned, ownedKey(v.owner, stx.Id, uint64(i)), uint64(output.Data.Amount))
		owned += 1
	}

	if err := batch.Commit(); nil != err {
		v.log.Errorf("record: %s  error: %s", stx.Id, err)
		return err
	}
	v.log.Infof("recorded: %s  owned outputs: %d", stx.Id, owned)
	return nil
}

// Has - check if a transaction is recorded
func (v *Vault) Has(id merkle.Digest) bool {
	return v.db.Transactions.Has(id[:])
}

// Get - fetch a recorded transaction
func (v *Vault) Get(id merkle.Digest) (*transactionrecord.SignedTransaction, error) {
	packed := v.db.Transactions.Get(id[:])
	if nil == packed {
		return nil, fault.TransactionNotFound
	}
	return transactionrecord.UnpackSignedTransaction(packed)
}

// Transactions - every recorded transaction in id order
func (v *Vault) Transactions() ([]*transactionrecord.SignedTransaction, error) {
	result := make([]*transactionrecord.SignedTransaction, 0)
	err := v.db.Transactions.NewFetchCursor().Map(func(key []byte, value []byte) error {
		stx, err := transactionrecord.UnpackSignedTransaction(value)
		if nil != err {
			return err
		}
		result = append(result, stx)
		return nil
	})
	return result, err
}

// Tokens - token states where the owner is the recipient
func (v *Vault) Tokens() ([]OwnedToken, error) {
	prefix := v.owner.Bytes()
	result := make([]OwnedToken, 0)

	err := v.db.Owned.NewFetchCursor().Prefix(prefix).Map(func(key []byte, value []byte) error {
		ref, err := refFromKey(key[len(prefix):])
		if nil != err {
			return err
		}
		stx, err := v.Get(ref.TxId)
		if nil != err {
			return err
		}
		if ref.Index >= uint64(len(stx.Tx.Outputs)) {
			return fault.OutputNotFound
		}
		result = append(result, OwnedToken{
			Ref:   ref,
			State: stx.Tx.Outputs[ref.Index].Data,
		})
		return nil
	})
	return result, err
}

// Balance - total amount and number of owned token states
//
// a total beyond the range of int64 is fault.BalanceOverflow
func (v *Vault) Balance() (int64, int, error) {
	prefix := v.owner.Bytes()
	total := int64(0)
	count := 0

	err := v.db.Owned.NewFetchCursor().Prefix(prefix).Map(func(key []byte, value []byte) error {
		if 8 != len(value) {
			return fault.TruncatedRecord
		}
		amount := int64(binary.BigEndian.Uint64(value))
		if amount < 0 || total > math.MaxInt64-amount {
			return fault.BalanceOverflow
		}
		total += amount
		count += 1
		return nil
	})
	return total, count, err
}

// owner ++ txId ++ index
func ownedKey(owner *account.Account, id merkle.Digest, index uint64) []byte {
	key := append(owner.Bytes(), id[:]...)
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, index)
	return append(key, n...)
}

func refFromKey(key []byte) (transactionrecord.StateRef, error) {
	ref := transactionrecord.StateRef{}
	if merkle.DigestLength+8 != len(key) {
		return ref, fault.TruncatedRecord
	}
	if err := merkle.DigestFromBytes(&ref.TxId, key[:merkle.DigestLength]); nil != err {
		return ref, err
	}
	ref.Index = binary.BigEndian.Uint64(key[merkle.DigestLength:])
	return ref, nil
}
