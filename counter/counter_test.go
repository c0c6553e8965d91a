// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	assert.True(t, c.IsZero(), "initial counter not zero")

	assert.Equal(t, uint64(1), c.Increment(), "wrong increment")
	assert.Equal(t, uint64(2), c.Increment(), "wrong increment")
	assert.Equal(t, uint64(1), c.Decrement(), "wrong decrement")
	assert.Equal(t, uint64(1), c.Uint64(), "wrong value")
	assert.Equal(t, uint64(0), c.Decrement(), "wrong decrement")
	assert.True(t, c.IsZero(), "counter not zero")
}

func TestCounterConcurrent(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup

	n := 100
	for i := 0; i < n; i += 1 {
		wg.Add(1)
		go func() {
			c.Increment()
			wg.Done()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(n), c.Uint64(), "lost increments")
}
