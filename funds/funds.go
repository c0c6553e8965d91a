// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funds - per-principal balance ledger backing the escrow
//
// Each principal has a balance and a reserved amount.  Bid creation
// moves funds from balance to reserved; cancellation moves them back;
// settlement consumes the reservation and credits the participants.
// The ledger itself never decides amounts, the trading engine does.
package funds

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
)

type account struct {
	balance  uint64
	reserved uint64
}

// globals for this module
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	accounts    map[principal.Principal]*account
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - start up the ledger, reloading accounts from storage
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("funds")
	globalData.log.Info("starting…")

	globalData.accounts = make(map[principal.Principal]*account)

	err := storage.Pool.Accounts.Scan(func(key []byte, value []byte) error {
		p, err := principal.FromBytes(key)
		if nil != err {
			return fault.DataInconsistent
		}
		if 16 != len(value) {
			return fault.DataInconsistent
		}
		globalData.accounts[p] = &account{
			balance:  binary.BigEndian.Uint64(value[0:8]),
			reserved: binary.BigEndian.Uint64(value[8:16]),
		}
		return nil
	})
	if nil != err {
		return err
	}

	globalData.log.Infof("loaded %d accounts", len(globalData.accounts))

	globalData.initialised = true
	return nil
}

// Finalise - shut down the ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.accounts = nil
	globalData.initialised = false
	return nil
}

// fetch or create an account, lock already held
func getAccount(p principal.Principal) *account {
	a, ok := globalData.accounts[p]
	if !ok {
		a = &account{}
		globalData.accounts[p] = a
	}
	return a
}

// write-through, lock already held
func store(p principal.Principal, a *account) {
	value := make([]byte, 16)
	binary.BigEndian.PutUint64(value[0:8], a.balance)
	binary.BigEndian.PutUint64(value[8:16], a.reserved)
	storage.Pool.Accounts.Put(p.Bytes(), value)
}

// Deposit - add spendable funds to a principal's account
func Deposit(p principal.Principal, amount uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if 0 == amount {
		return fault.ZeroAmount
	}

	a := getAccount(p)
	if a.balance+amount < a.balance {
		return fault.AmountOverflow
	}
	a.balance += amount
	store(p, a)

	journal.Record(journal.FundsDeposited, p.Bytes())
	return nil
}

// Balance - current spendable and reserved amounts
func Balance(p principal.Principal) (uint64, uint64) {
	globalData.RLock()
	defer globalData.RUnlock()

	a, ok := globalData.accounts[p]
	if !ok {
		return 0, 0
	}
	return a.balance, a.reserved
}

// Reserve - move funds from balance to reserved
func Reserve(p principal.Principal, amount uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	a := getAccount(p)
	if a.balance < amount {
		return fault.InsufficientFunds
	}
	if a.reserved+amount < a.reserved {
		return fault.AmountOverflow
	}
	a.balance -= amount
	a.reserved += amount
	store(p, a)
	return nil
}

// Release - return reserved funds to balance
func Release(p principal.Principal, amount uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	a := getAccount(p)
	if a.reserved < amount {
		globalData.log.Criticalf("release beyond reservation: %s  amount: %d", p, amount)
		return fault.DataInconsistent
	}
	if a.balance+amount < a.balance {
		return fault.AmountOverflow
	}
	a.reserved -= amount
	a.balance += amount
	store(p, a)
	return nil
}

// Consume - remove reserved funds, paying them out of the account
func Consume(p principal.Principal, amount uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	a := getAccount(p)
	if a.reserved < amount {
		globalData.log.Criticalf("consume beyond reservation: %s  amount: %d", p, amount)
		return fault.DataInconsistent
	}
	a.reserved -= amount
	store(p, a)
	return nil
}

// Credit - add funds without journalling a deposit
//
// used by settlement payouts; a zero amount or a Nobody beneficiary
// is a no-op so callers need not special-case empty splits
func Credit(p principal.Principal, amount uint64) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised || 0 == amount || p.IsZero() {
		return
	}

	a := getAccount(p)
	if a.balance+amount < a.balance {
		globalData.log.Criticalf("credit overflow: %s  amount: %d", p, amount)
		return
	}
	a.balance += amount
	store(p, a)
}
