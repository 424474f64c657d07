// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokenflow/account"
	"github.com/bitmark-inc/tokenflow/fault"
	"github.com/bitmark-inc/tokenflow/merkle"
	"github.com/bitmark-inc/tokenflow/storage"
	"github.com/bitmark-inc/tokenflow/transactionrecord"
)

// Service - single node uniqueness provider
//
// the service does not run contracts, participants do that before
// signing; it checks signatures, time window and input uniqueness
//
// the mutex covers check and commit of the consumed-state pool so
// that two transactions spending the same input cannot both succeed
type Service struct {
	sync.Mutex
	log      *logger.L
	key      *account.PrivateKey
	identity *account.Account
	db       *storage.Database
	now      func() time.Time
}

// NewService - create a notary that records consumed states in db
func NewService(key *account.PrivateKey, db *storage.Database, log *logger.L) *Service {
	return &Service{
		log:      log,
		key:      key,
		identity: key.Account(),
		db:       db,
		now:      time.Now,
	}
}

// Identity - the notary identity that transactions must name
func (s *Service) Identity() *account.Account {
	return s.identity
}

// Notarise - check and commit the inputs of a transaction and sign it
//
// submitting the same transaction again returns a fresh signature
func (s *Service) Notarise(ctx context.Context, stx *transactionrecord.SignedTransaction) (*transactionrecord.TransactionSignature, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if nil == stx || nil == stx.Tx {
		return nil, fault.MissingParameters
	}
	if !stx.Tx.Notary.Equal(s.identity) {
		s.log.Warnf("tx: %s  names notary: %s", stx.Id, stx.Tx.Notary)
		return nil, fault.WrongNotary
	}

	id, err := stx.Tx.Id()
	if nil != err {
		return nil, err
	}
	if id != stx.Id {
		return nil, fault.TransactionIdMismatch
	}

	if err := s.checkTimeWindow(stx.Tx.TimeWindow); nil != err {
		s.log.Infof("tx: %s  rejected: %s", stx.Id, err)
		return nil, err
	}

	// every required signer except this notary
	if err := stx.VerifyRequiredSignatures(s.identity); nil != err {
		s.log.Infof("tx: %s  signatures rejected: %s", stx.Id, err)
		return nil, err
	}

	if err := s.consume(stx); nil != err {
		return nil, err
	}

	signature := &transactionrecord.TransactionSignature{
		By:        s.identity,
		Signature: s.key.Sign(stx.Id[:]),
	}
	s.log.Infof("notarised: %s  inputs: %d", stx.Id, len(stx.Tx.Inputs))
	return signature, nil
}

// ConsumedBy - the transaction that consumed a state, if any
func (s *Service) ConsumedBy(ref transactionrecord.StateRef) (merkle.Digest, bool) {
	var id merkle.Digest
	value := s.db.Consumed.Get(refKey(ref))
	if nil == value {
		return id, false
	}
	if err := merkle.DigestFromBytes(&id, value); nil != err {
		logger.Panicf("notary: consumed record for: %s  error: %s", ref, err)
	}
	return id, true
}

// check every input then commit them all in one batch
func (s *Service) consume(stx *transactionrecord.SignedTransaction) error {
	s.Lock()
	defer s.Unlock()

	batch := s.db.NewBatch()
	for _, ref := range stx.Tx.Inputs {
		if id, ok := s.ConsumedBy(ref); ok && id != stx.Id {
			s.log.Warnf("tx: %s  input: %s  already consumed by: %s", stx.Id, ref, id)
			return fault.NotarisationConflict
		}
		batch.Put(s.db.Consumed, refKey(ref), stx.Id[:])
	}

	if 0 == batch.Len() {
		return nil
	}
	return batch.Commit()
}

func (s *Service) checkTimeWindow(window *transactionrecord.TimeWindow) error {
	if nil == window {
		return nil
	}
	now := s.now()
	if !window.From.IsZero() && now.Before(window.From) {
		return fault.OutsideTimeWindow
	}
	if !window.Until.IsZero() && !now.Before(window.Until) {
		return fault.OutsideTimeWindow
	}
	return nil
}

// txId ++ index
func refKey(ref transactionrecord.StateRef) []byte {
	key := make([]byte, merkle.DigestLength+8)
	copy(key, ref.TxId[:])
	binary.BigEndian.PutUint64(key[merkle.DigestLength:], ref.Index)
	return key
}
