// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/tokenflow/fault"
)

// FetchCursor - walks one pool in key order
//
// keys handed to callers never include the pool prefix
type FetchCursor struct {
	pool  *PoolHandle
	span  util.Range
	after []byte // resume point; nil until a Fetch returns something
}

// NewFetchCursor - cursor over the whole pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		span: util.Range{
			Start: []byte{p.prefix},
			Limit: p.limit,
		},
	}
}

// Seek - start at key (inclusive)
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.span.Start = cursor.pool.prefixKey(key)
	cursor.after = nil
	return cursor
}

// Prefix - only keys beginning with key
func (cursor *FetchCursor) Prefix(key []byte) *FetchCursor {
	cursor.span = *util.BytesPrefix(cursor.pool.prefixKey(key))
	cursor.after = nil
	return cursor
}

// Fetch - the next count elements; an empty result means the end
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.scan(func(e Element) bool {
		results = append(results, e)
		return len(results) < count
	})
	if n := len(results); n > 0 {
		cursor.after = cursor.pool.prefixKey(results[n-1].Key)
	}
	return results, err
}

// Map - call f for every remaining element, stopping at its first error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}

	var callbackErr error
	err := cursor.scan(func(e Element) bool {
		callbackErr = f(e.Key, e.Value)
		return nil == callbackErr
	})
	if nil != callbackErr {
		return callbackErr
	}
	return err
}

// feed copies of the elements to visit until it returns false
func (cursor *FetchCursor) scan(visit func(Element) bool) error {
	d := cursor.pool.database
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return fault.NotInitialised
	}

	iter := d.db.NewIterator(&cursor.span, nil)
	defer iter.Release()

	if nil != cursor.after {
		if !iter.Seek(cursor.after) {
			return iter.Error()
		}
		if bytes.Equal(iter.Key(), cursor.after) && !iter.Next() {
			return iter.Error()
		}
	} else if !iter.First() {
		return iter.Error()
	}

	for ok := true; ok; ok = iter.Next() {
		e := Element{
			Key:   append([]byte{}, iter.Key()[1:]...),
			Value: append([]byte{}, iter.Value()...),
		}
		if !visit(e) {
			break
		}
	}
	return iter.Error()
}
