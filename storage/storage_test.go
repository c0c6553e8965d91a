// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/storage"
)

var testDatabase string

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "storage-test")
	if nil != err {
		os.Exit(1)
	}
	testDatabase = filepath.Join(dir, "test")

	err = storage.Initialise(testDatabase, false)
	if nil != err {
		os.RemoveAll(dir)
		os.Exit(1)
	}

	rc := m.Run()

	storage.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func TestPutGetDelete(t *testing.T) {
	p := storage.Pool.TestData

	key := []byte("key-one")
	value := []byte("value-one")

	assert.False(t, p.Has(key), "key present before put")
	p.Put(key, value)
	assert.True(t, p.Has(key), "key absent after put")
	assert.Equal(t, value, p.Get(key), "value mismatch")

	p.Delete(key)
	assert.False(t, p.Has(key), "key present after delete")
	assert.Nil(t, p.Get(key), "value present after delete")
}

func TestPutNGetN(t *testing.T) {
	p := storage.Pool.TestData

	key := []byte("counter")
	p.PutN(key, 0x123456789abcdef0)

	n, ok := p.GetN(key)
	assert.True(t, ok, "counter missing")
	assert.Equal(t, uint64(0x123456789abcdef0), n, "counter mismatch")
	p.Delete(key)

	_, ok = p.GetN([]byte("absent"))
	assert.False(t, ok, "absent counter reported present")
}

func TestScan(t *testing.T) {
	p := storage.Pool.TestData

	expected := map[string]string{
		"scan-a": "alpha",
		"scan-b": "beta",
		"scan-c": "gamma",
	}
	for k, v := range expected {
		p.Put([]byte(k), []byte(v))
	}

	seen := make(map[string]string)
	err := p.Scan(func(key []byte, value []byte) error {
		seen[string(key)] = string(value)
		return nil
	})
	assert.Nil(t, err, "scan error")
	assert.Equal(t, expected, seen, "scan mismatch")

	for k := range expected {
		p.Delete([]byte(k))
	}
}

func TestBatchCommit(t *testing.T) {
	p := storage.Pool.TestData

	p.Put([]byte("batch-old"), []byte("stale"))

	b := storage.NewBatch()
	b.Put(p, []byte("batch-new"), []byte("fresh"))
	b.Delete(p, []byte("batch-old"))

	// nothing lands before commit
	assert.False(t, p.Has([]byte("batch-new")), "batch applied before commit")
	assert.True(t, p.Has([]byte("batch-old")), "batch applied before commit")

	err := b.Commit()
	assert.Nil(t, err, "commit error")

	assert.Equal(t, []byte("fresh"), p.Get([]byte("batch-new")), "batch put missing")
	assert.False(t, p.Has([]byte("batch-old")), "batch delete missing")
	p.Delete([]byte("batch-new"))
}

func TestPoolIsolation(t *testing.T) {
	key := []byte("shared-key")
	storage.Pool.TestData.Put(key, []byte("test-data"))
	defer storage.Pool.TestData.Delete(key)

	assert.False(t, storage.Pool.Vaults.Has(key), "key leaked across pools")
	assert.Nil(t, storage.Pool.Vaults.Get(key), "value leaked across pools")
}

func TestLastElement(t *testing.T) {
	p := storage.Pool.TestData

	p.Put([]byte("zz-last"), []byte("omega"))
	defer p.Delete([]byte("zz-last"))

	element, found := p.LastElement()
	assert.True(t, found, "no last element")
	assert.Equal(t, []byte("zz-last"), element.Key, "wrong last key")
	assert.Equal(t, []byte("omega"), element.Value, "wrong last value")
}
