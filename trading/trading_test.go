// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading_test

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/funds"
	"github.com/custodia-inc/vaultd/hook"
	"github.com/custodia-inc/vaultd/hook/mock_hook"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/trading"
	"github.com/custodia-inc/vaultd/vault"
	"github.com/custodia-inc/vaultd/vaultid"
)

func TestMain(m *testing.M) {
	dir, err := ioutil.TempDir("", "trading-test")
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

func makePrincipal(seed byte) principal.Principal {
	var p principal.Principal
	p[0] = seed
	p[31] = ^seed
	return p
}

func makeAsset(t *testing.T, payload string) *asset.Asset {
	a, err := asset.New("art/print", []byte(payload))
	assert.Nil(t, err, "asset creation error")
	return a
}

// restart the trading engine with a settlement hook installed
func withSettlement(t *testing.T, settlement hook.Settlement) func() {
	err := trading.Finalise()
	assert.Nil(t, err, "finalise error")
	err = trading.Initialise(settlement)
	assert.Nil(t, err, "initialise error")
	return func() {
		trading.Finalise()
		trading.Initialise(nil)
	}
}

func TestCreateBid(t *testing.T) {
	buyer := makePrincipal(1)
	buyerVault, _, err := vault.Create(buyer)
	assert.Nil(t, err, "vault error")

	a := makeAsset(t, "create bid target")

	_, err = trading.CreateBid(a.Id, buyerVault, buyer, 0, trading.Commission{})
	assert.Equal(t, fault.ZeroPrice, err, "zero price accepted")

	_, err = trading.CreateBid(a.Id, vaultid.ID{}, buyer, 100, trading.Commission{})
	assert.Equal(t, fault.VaultNotFound, err, "unknown target vault accepted")

	_, err = trading.CreateBid(a.Id, buyerVault, buyer, 100, trading.Commission{})
	assert.Equal(t, fault.InsufficientFunds, err, "unfunded bid accepted")

	// a commission needs a beneficiary
	err = funds.Deposit(buyer, 1000)
	assert.Nil(t, err, "funds error")
	_, err = trading.CreateBid(a.Id, buyerVault, buyer, 100, trading.Commission{Amount: 10})
	assert.Equal(t, fault.MissingParameters, err, "beneficiary-less commission accepted")

	id, err := trading.CreateBid(a.Id, buyerVault, buyer, 100, trading.Commission{Beneficiary: makePrincipal(2), Amount: 10})
	assert.Nil(t, err, "bid error")

	balance, reserved := funds.Balance(buyer)
	assert.Equal(t, uint64(890), balance, "balance mismatch")
	assert.Equal(t, uint64(110), reserved, "reservation mismatch")

	bid, err := trading.Get(id)
	assert.Nil(t, err, "bid query error")
	assert.Equal(t, uint64(100), bid.Price, "price mismatch")
	assert.Equal(t, uint64(110), bid.Reserved, "reserved mismatch")
}

func TestCancelBid(t *testing.T) {
	buyer := makePrincipal(3)
	buyerVault, _, err := vault.Create(buyer)
	assert.Nil(t, err, "vault error")
	err = funds.Deposit(buyer, 500)
	assert.Nil(t, err, "funds error")

	a := makeAsset(t, "cancel bid target")
	id, err := trading.CreateBid(a.Id, buyerVault, buyer, 200, trading.Commission{})
	assert.Nil(t, err, "bid error")

	err = trading.CancelBid(trading.BidID{}, buyer)
	assert.Equal(t, fault.BidNotFound, err, "unknown bid cancelled")

	err = trading.CancelBid(id, makePrincipal(4))
	assert.Equal(t, fault.NotOwner, err, "foreign cancel accepted")

	err = trading.CancelBid(id, buyer)
	assert.Nil(t, err, "cancel error")

	balance, reserved := funds.Balance(buyer)
	assert.Equal(t, uint64(500), balance, "escrow not returned")
	assert.Equal(t, uint64(0), reserved, "reservation not cleared")

	// a bid closes exactly once
	err = trading.CancelBid(id, buyer)
	assert.Equal(t, fault.AlreadyClosed, err, "double cancel accepted")
}

func TestMatchBid(t *testing.T) {
	royaltyBeneficiary := makePrincipal(10)

	ctl := gomock.NewController(t)
	defer ctl.Finish()
	settlement := mock_hook.NewMockSettlement(ctl)
	settlement.EXPECT().
		Royalty(uint64(1000), asset.TypeTag("art/print")).
		Return(uint64(100), royaltyBeneficiary)

	restore := withSettlement(t, settlement)
	defer restore()

	seller := makePrincipal(11)
	buyer := makePrincipal(12)
	askBeneficiary := makePrincipal(13)
	buyBeneficiary := makePrincipal(14)

	sellerVault, sellerToken, err := vault.Create(seller)
	assert.Nil(t, err, "vault error")
	buyerVault, _, err := vault.Create(buyer)
	assert.Nil(t, err, "vault error")

	a := makeAsset(t, "match target")
	err = vault.Deposit(sellerVault, a)
	assert.Nil(t, err, "deposit error")

	err = funds.Deposit(buyer, 2000)
	assert.Nil(t, err, "funds error")

	id, err := trading.CreateBid(a.Id, buyerVault, buyer, 1000,
		trading.Commission{Beneficiary: buyBeneficiary, Amount: 50})
	assert.Nil(t, err, "bid error")

	err = trading.MatchBid(id, sellerToken, a.Id, sellerVault, buyerVault,
		trading.Commission{Beneficiary: askBeneficiary, Amount: 30})
	assert.Nil(t, err, "match error")

	// the asset moved
	assert.False(t, vault.HasAsset(sellerVault, a.Id), "asset still with seller")
	assert.True(t, vault.HasAsset(buyerVault, a.Id), "asset not with buyer")

	// the reservation split: 870 + 30 + 100 + 50 == 1050
	sellerBalance, _ := funds.Balance(seller)
	assert.Equal(t, uint64(870), sellerBalance, "seller payout mismatch")
	askBalance, _ := funds.Balance(askBeneficiary)
	assert.Equal(t, uint64(30), askBalance, "ask commission mismatch")
	royaltyBalance, _ := funds.Balance(royaltyBeneficiary)
	assert.Equal(t, uint64(100), royaltyBalance, "royalty mismatch")
	buyBalance, _ := funds.Balance(buyBeneficiary)
	assert.Equal(t, uint64(50), buyBalance, "buy commission mismatch")

	buyerBalance, buyerReserved := funds.Balance(buyer)
	assert.Equal(t, uint64(950), buyerBalance, "buyer balance mismatch")
	assert.Equal(t, uint64(0), buyerReserved, "buyer reservation not consumed")

	// one-shot: neither match nor cancel works again
	err = trading.MatchBid(id, sellerToken, a.Id, sellerVault, buyerVault, trading.Commission{})
	assert.Equal(t, fault.AlreadyClosed, err, "double match accepted")
	err = trading.CancelBid(id, buyer)
	assert.Equal(t, fault.AlreadyClosed, err, "cancel after match accepted")

	// the settlement shows up in the recent window
	recent := trading.Recent()
	found := false
	for _, s := range recent {
		if s.BidId == id {
			found = true
			assert.Equal(t, seller, s.Seller, "settlement seller mismatch")
			assert.Equal(t, uint64(100), s.Royalty, "settlement royalty mismatch")
		}
	}
	assert.True(t, found, "settlement missing from recent")
}

func TestBidReservationOverflow(t *testing.T) {
	buyer := makePrincipal(30)
	buyerVault, _, err := vault.Create(buyer)
	assert.Nil(t, err, "vault error")

	err = funds.Deposit(buyer, 10)
	assert.Nil(t, err, "funds error")

	a := makeAsset(t, "overflow bid target")

	// price plus commission must not wrap into an affordable reservation
	_, err = trading.CreateBid(a.Id, buyerVault, buyer, math.MaxUint64,
		trading.Commission{Beneficiary: makePrincipal(31), Amount: 2})
	assert.Equal(t, fault.AmountOverflow, err, "wrapped reservation accepted")

	balance, reserved := funds.Balance(buyer)
	assert.Equal(t, uint64(10), balance, "failed bid touched balance")
	assert.Equal(t, uint64(0), reserved, "failed bid reserved funds")

	// a maximal price alone is fine, it just needs the funds
	_, err = trading.CreateBid(a.Id, buyerVault, buyer, math.MaxUint64, trading.Commission{})
	assert.Equal(t, fault.InsufficientFunds, err, "unfunded maximal bid accepted")
}

func TestMatchRoyaltyOverflow(t *testing.T) {
	royaltyBeneficiary := makePrincipal(32)

	ctl := gomock.NewController(t)
	defer ctl.Finish()
	settlement := mock_hook.NewMockSettlement(ctl)
	settlement.EXPECT().
		Royalty(uint64(100), asset.TypeTag("art/print")).
		Return(uint64(math.MaxUint64), royaltyBeneficiary)

	restore := withSettlement(t, settlement)
	defer restore()

	seller := makePrincipal(33)
	buyer := makePrincipal(34)

	sellerVault, sellerToken, err := vault.Create(seller)
	assert.Nil(t, err, "vault error")
	buyerVault, _, err := vault.Create(buyer)
	assert.Nil(t, err, "vault error")

	a := makeAsset(t, "royalty overflow target")
	err = vault.Deposit(sellerVault, a)
	assert.Nil(t, err, "deposit error")

	err = funds.Deposit(buyer, 200)
	assert.Nil(t, err, "funds error")

	id, err := trading.CreateBid(a.Id, buyerVault, buyer, 100, trading.Commission{})
	assert.Nil(t, err, "bid error")

	// royalty plus ask commission must not wrap below the price
	err = trading.MatchBid(id, sellerToken, a.Id, sellerVault, buyerVault,
		trading.Commission{Beneficiary: makePrincipal(35), Amount: 2})
	assert.Equal(t, fault.CommissionExceedsPrice, err, "wrapped royalty accepted")

	assert.True(t, vault.HasAsset(sellerVault, a.Id), "failed match moved asset")
	_, reserved := funds.Balance(buyer)
	assert.Equal(t, uint64(100), reserved, "failed match touched escrow")

	sellerBalance, _ := funds.Balance(seller)
	assert.Equal(t, uint64(0), sellerBalance, "failed match credited seller")
}

func TestMatchChecks(t *testing.T) {
	seller := makePrincipal(20)
	buyer := makePrincipal(21)

	sellerVault, sellerToken, err := vault.Create(seller)
	assert.Nil(t, err, "vault error")
	buyerVault, _, err := vault.Create(buyer)
	assert.Nil(t, err, "vault error")

	a := makeAsset(t, "match checks target")
	err = vault.Deposit(sellerVault, a)
	assert.Nil(t, err, "deposit error")

	err = funds.Deposit(buyer, 1000)
	assert.Nil(t, err, "funds error")

	id, err := trading.CreateBid(a.Id, buyerVault, buyer, 300, trading.Commission{})
	assert.Nil(t, err, "bid error")

	// wrong asset or wrong target vault
	other := makeAsset(t, "some other asset")
	err = trading.MatchBid(id, sellerToken, other.Id, sellerVault, buyerVault, trading.Commission{})
	assert.Equal(t, fault.MissingParameters, err, "wrong asset accepted")
	err = trading.MatchBid(id, sellerToken, a.Id, sellerVault, sellerVault, trading.Commission{})
	assert.Equal(t, fault.MissingParameters, err, "wrong target vault accepted")

	// ask commission larger than the price
	err = trading.MatchBid(id, sellerToken, a.Id, sellerVault, buyerVault,
		trading.Commission{Beneficiary: makePrincipal(22), Amount: 301})
	assert.Equal(t, fault.CommissionExceedsPrice, err, "oversized commission accepted")

	// forged capability moves nothing and keeps the escrow
	forged, err := capability.New()
	assert.Nil(t, err, "token error")
	err = trading.MatchBid(id, forged, a.Id, sellerVault, buyerVault, trading.Commission{})
	assert.Equal(t, fault.NotAuthorized, err, "forged match accepted")
	assert.True(t, vault.HasAsset(sellerVault, a.Id), "failed match moved asset")

	_, reserved := funds.Balance(buyer)
	assert.Equal(t, uint64(300), reserved, "failed match touched escrow")

	// still cancellable after all the failures
	err = trading.CancelBid(id, buyer)
	assert.Nil(t, err, "cancel error")
}
