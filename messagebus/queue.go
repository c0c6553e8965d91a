// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/custodia-inc/vaultd/counter"
)

// internal constants
const (
	queueSize = 1000
)

// Message - event record queued by an engine operation
type Message struct {
	From string      // originating subsystem, e.g. "vault", "trading"
	Item interface{} // the record, JSON marshallable
}

var (
	queue = make(chan Message, queueSize)

	// count of messages dropped because no publisher was draining
	dropped counter.Counter
)

// Send - queue an event record, never blocks
func Send(from string, item interface{}) {
	select {
	case queue <- Message{From: from, Item: item}:
	default:
		dropped.Increment()
	}
}

// Chan - channel to read from
func Chan() <-chan Message {
	return queue
}

// Dropped - number of records dropped since start
func Dropped() uint64 {
	return dropped.Uint64()
}
