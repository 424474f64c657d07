// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/tokenflow/fault"
)

// Batch - a set of writes applied atomically by Commit
//
// a batch is not safe for concurrent use
type Batch struct {
	database *Database
	batch    *leveldb.Batch
}

// NewBatch - start an empty batch
func (d *Database) NewBatch() *Batch {
	return &Batch{
		database: d,
		batch:    new(leveldb.Batch),
	}
}

// Put - queue a key/value write to a pool
func (b *Batch) Put(p *PoolHandle, key []byte, value []byte) {
	b.batch.Put(p.prefixKey(key), value)
}

// PutN - queue a uint64 write as 8 byte big endian
func (b *Batch) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	b.Put(p, key, buffer)
}

// Delete - queue a key removal from a pool
func (b *Batch) Delete(p *PoolHandle, key []byte) {
	b.batch.Delete(p.prefixKey(key))
}

// Len - number of queued operations
func (b *Batch) Len() int {
	return b.batch.Len()
}

// Commit - write all queued operations or none of them
func (b *Batch) Commit() error {
	b.database.RLock()
	defer b.database.RUnlock()
	if nil == b.database.db {
		return fault.NotInitialised
	}
	err := b.database.db.Write(b.batch, nil)
	if nil == err {
		b.batch.Reset()
	}
	return err
}
