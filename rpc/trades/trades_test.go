// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trades_test

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/funds"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/rpc/trades"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/trading"
	"github.com/custodia-inc/vaultd/vault"
)

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "trades-rpc-test")
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
	if err := journal.Initialise(); nil != err {
		panic(fmt.Sprintf("journal initialization failed: %s", err))
	}
	if err := vault.Initialise(nil); nil != err {
		panic(fmt.Sprintf("vault initialization failed: %s", err))
	}
	if err := funds.Initialise(); nil != err {
		panic(fmt.Sprintf("funds initialization failed: %s", err))
	}
	if err := trading.Initialise(nil); nil != err {
		panic(fmt.Sprintf("trading initialization failed: %s", err))
	}

	rc := m.Run()

	trading.Finalise()
	funds.Finalise()
	vault.Finalise()
	journal.Finalise()
	storage.Finalise()
	logger.Finalise()
	os.RemoveAll(dir)
	os.Exit(rc)
}

// a principal backed by a real key pair, so requests can be signed
func makeSigner(t *testing.T) (principal.Principal, ed25519.PrivateKey) {
	public, private, err := ed25519.GenerateKey(nil)
	assert.Nil(t, err, "key generation error")
	p, err := principal.FromBytes(public)
	assert.Nil(t, err, "principal error")
	return p, private
}

func TestCancelNeedsSignature(t *testing.T) {
	service := trades.New(logger.New("test-trades"))

	buyer, buyerKey := makeSigner(t)
	buyerVault, _, err := vault.Create(buyer)
	assert.Nil(t, err, "vault error")

	err = funds.Deposit(buyer, 500)
	assert.Nil(t, err, "funds error")

	a, err := asset.New("art/print", []byte("cancel signature target"))
	assert.Nil(t, err, "asset error")

	var created trades.CreateReply
	err = service.Create(&trades.CreateArguments{
		AssetId:     a.Id,
		TargetVault: buyerVault,
		Buyer:       buyer,
		Price:       200,
	}, &created)
	assert.Nil(t, err, "bid error")

	// claiming the buyer without a signature
	arguments := &trades.CancelArguments{
		BidId:  created.BidId,
		Caller: buyer,
	}
	var cancelled trades.CancelReply
	err = service.Cancel(arguments, &cancelled)
	assert.Equal(t, fault.InvalidSignature, err, "unsigned cancel accepted")

	// a stranger signing their own cancel is rejected by ownership
	stranger, strangerKey := makeSigner(t)
	foreign := &trades.CancelArguments{
		BidId:  created.BidId,
		Caller: stranger,
	}
	foreign.Signature = ed25519.Sign(strangerKey, foreign.SignatureData())
	err = service.Cancel(foreign, &cancelled)
	assert.Equal(t, fault.NotOwner, err, "foreign cancel accepted")

	// forging the buyer without the buyer's key fails verification
	arguments.Signature = ed25519.Sign(strangerKey, arguments.SignatureData())
	err = service.Cancel(arguments, &cancelled)
	assert.Equal(t, fault.InvalidSignature, err, "forged signature accepted")

	// the buyer's own signature closes the bid and returns the escrow
	arguments.Signature = ed25519.Sign(buyerKey, arguments.SignatureData())
	err = service.Cancel(arguments, &cancelled)
	assert.Nil(t, err, "cancel error")
	assert.True(t, cancelled.OK, "cancel not confirmed")

	balance, reserved := funds.Balance(buyer)
	assert.Equal(t, uint64(500), balance, "escrow not returned")
	assert.Equal(t, uint64(0), reserved, "reservation not cleared")
}
