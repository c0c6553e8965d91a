// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package funds_test

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/funds"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
)

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "funds-test")
	if nil != err {
		os.Exit(1)
	}

	logConfig := logger.Configuration{
		Directory: dir,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logConfig); nil != err {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}
	if err := storage.Initialise(filepath.Join(dir, "test"), false); nil != err {
		panic(fmt.Sprintf("storage initialization failed: %s", err))
	}
	if err := funds.Initialise(); nil != err {
		panic(fmt.Sprintf("funds initialization failed: %s", err))
	}

	rc := m.Run()

	funds.Finalise()
	storage.Finalise()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

func makePrincipal(seed byte) principal.Principal {
	var p principal.Principal
	p[0] = seed
	return p
}

func TestDepositAndBalance(t *testing.T) {
	alice := makePrincipal(1)

	balance, reserved := funds.Balance(alice)
	assert.Equal(t, uint64(0), balance, "fresh account has balance")
	assert.Equal(t, uint64(0), reserved, "fresh account has reservation")

	err := funds.Deposit(alice, 1000)
	assert.Nil(t, err, "deposit error")

	err = funds.Deposit(alice, 0)
	assert.Equal(t, fault.ZeroAmount, err, "zero deposit accepted")

	balance, reserved = funds.Balance(alice)
	assert.Equal(t, uint64(1000), balance, "balance mismatch")
	assert.Equal(t, uint64(0), reserved, "reservation mismatch")
}

func TestDepositOverflow(t *testing.T) {
	dave := makePrincipal(4)

	err := funds.Deposit(dave, math.MaxUint64)
	assert.Nil(t, err, "deposit error")

	// the balance saturates by rejection, never by wrapping
	err = funds.Deposit(dave, 1)
	assert.Equal(t, fault.AmountOverflow, err, "wrapped deposit accepted")

	balance, _ := funds.Balance(dave)
	assert.Equal(t, uint64(math.MaxUint64), balance, "balance mismatch")
}

func TestReserveReleaseConsume(t *testing.T) {
	bob := makePrincipal(2)

	err := funds.Deposit(bob, 500)
	assert.Nil(t, err, "deposit error")

	err = funds.Reserve(bob, 600)
	assert.Equal(t, fault.InsufficientFunds, err, "over-reservation accepted")

	err = funds.Reserve(bob, 300)
	assert.Nil(t, err, "reserve error")

	balance, reserved := funds.Balance(bob)
	assert.Equal(t, uint64(200), balance, "balance mismatch")
	assert.Equal(t, uint64(300), reserved, "reservation mismatch")

	err = funds.Release(bob, 100)
	assert.Nil(t, err, "release error")

	err = funds.Release(bob, 500)
	assert.Equal(t, fault.DataInconsistent, err, "over-release accepted")

	err = funds.Consume(bob, 200)
	assert.Nil(t, err, "consume error")

	balance, reserved = funds.Balance(bob)
	assert.Equal(t, uint64(300), balance, "balance mismatch")
	assert.Equal(t, uint64(0), reserved, "reservation mismatch")

	err = funds.Consume(bob, 1)
	assert.Equal(t, fault.DataInconsistent, err, "over-consume accepted")
}

func TestCredit(t *testing.T) {
	carol := makePrincipal(3)

	funds.Credit(carol, 250)
	balance, _ := funds.Balance(carol)
	assert.Equal(t, uint64(250), balance, "credit missing")

	// no-op cases
	funds.Credit(carol, 0)
	funds.Credit(principal.Nobody, 99)

	balance, _ = funds.Balance(carol)
	assert.Equal(t, uint64(250), balance, "zero credit changed balance")
	nobodyBalance, _ := funds.Balance(principal.Nobody)
	assert.Equal(t, uint64(0), nobodyBalance, "Nobody was credited")
}
