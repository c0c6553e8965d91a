// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package journal - durable, broadcast record of engine activity
//
// Every committed mutation appends a record to the events pool under a
// monotonic sequence number and hands a copy to the message bus for
// the publisher.  Records are append-only; the journal is never read
// back by the engine itself.
package journal

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/messagebus"
	"github.com/custodia-inc/vaultd/storage"
)

// record kinds
const (
	VaultCreated     = "vault.created"
	AssetDeposited   = "vault.deposited"
	PolicyChanged    = "vault.policy"
	GrantChanged     = "vault.grant"
	AssetWithdrawn   = "vault.withdrawn"
	TransferResolved = "transfer.resolved"
	BidCreated       = "trade.bid"
	BidCancelled     = "trade.cancel"
	BidMatched       = "trade.match"
	FundsDeposited   = "funds.deposit"
)

var globalData struct {
	sync.Mutex
	log         *logger.L
	sequence    uint64
	initialised bool
}

// Initialise - prepare the journal
//
// continues the sequence from the last stored record
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("journal")
	globalData.log.Info("starting…")

	if element, found := storage.Pool.Events.LastElement(); found {
		if 8 != len(element.Key) {
			globalData.log.Criticalf("corrupt journal key: %x", element.Key)
			return fault.DataInconsistent
		}
		globalData.sequence = binary.BigEndian.Uint64(element.Key)
	}

	globalData.initialised = true
	return nil
}

// Finalise - shut down the journal
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// record layout:
//   1 byte   kind length
//   n bytes  kind
//   m bytes  detail

// Record - append a record and broadcast it
func Record(kind string, detail []byte) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return
	}

	globalData.sequence += 1

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, globalData.sequence)

	packed := make([]byte, 0, 1+len(kind)+len(detail))
	packed = append(packed, byte(len(kind)))
	packed = append(packed, kind...)
	packed = append(packed, detail...)

	storage.Pool.Events.Put(key, packed)

	messagebus.Send(kind, detail)

	globalData.log.Debugf("record: %d  kind: %s", globalData.sequence, kind)
}

// Sequence - current record count
func Sequence() uint64 {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.sequence
}
