// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/background"
)

// simple background process that counts ticks until shutdown
type ticker struct {
	count int
}

func (t *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	delay := args.(time.Duration)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(delay):
			t.count += 1
		}
	}
}

func TestStartStop(t *testing.T) {
	tk := &ticker{}

	processes := background.Processes{tk}
	b := background.Start(processes, time.Millisecond)

	time.Sleep(25 * time.Millisecond)
	b.Stop()

	assert.True(t, tk.count > 0, "background never ran")

	count := tk.count
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, count, tk.count, "background still running after stop")
}

func TestStopNil(t *testing.T) {
	var b *background.T
	b.Stop() // must not panic
}
