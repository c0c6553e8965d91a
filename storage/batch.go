// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/custodia-inc/vaultd/fault"
)

// Batch - a group of pool mutations committed atomically
//
// a batch touching several pools either lands completely or not at
// all; abandon by simply dropping the batch
type Batch struct {
	batch leveldb.Batch
	count int
}

// NewBatch - start an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// Put - queue a key/value store into a pool
func (b *Batch) Put(pool *PoolHandle, key []byte, value []byte) {
	b.batch.Put(pool.prefixKey(key), value)
	b.count += 1
}

// Delete - queue a key removal from a pool
func (b *Batch) Delete(pool *PoolHandle, key []byte) {
	b.batch.Delete(pool.prefixKey(key))
	b.count += 1
}

// Commit - write all queued mutations in one database write
func (b *Batch) Commit() error {
	if 0 == b.count {
		return nil
	}

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return fault.NotInitialised
	}
	return poolData.db.Write(&b.batch, nil)
}
