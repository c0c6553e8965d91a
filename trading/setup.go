// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	gocache "github.com/patrickmn/go-cache"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/hook"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/vaultid"
)

// how long settled trades stay visible to the recent query
const (
	recentExpiry  = 10 * time.Minute
	recentCleanup = time.Minute
)

// Commission - a payout carved from a trade
type Commission struct {
	Beneficiary principal.Principal `json:"beneficiary"`
	Amount      uint64              `json:"amount"`
}

// Bid - escrowed intent to buy one asset into one vault
//
// reserved covers price plus the buy-side commission and drops to
// zero when the bid closes
type Bid struct {
	Id          BidID               `json:"id"`
	AssetId     asset.AssetID       `json:"assetId"`
	Buyer       principal.Principal `json:"buyer"`
	TargetVault vaultid.ID          `json:"targetVault"`
	Price       uint64              `json:"price"`
	Reserved    uint64              `json:"reserved"`
	Commission  Commission          `json:"commission"`
}

// Settlement - record of a matched trade
type Settlement struct {
	BidId         BidID               `json:"bidId"`
	AssetId       asset.AssetID       `json:"assetId"`
	Seller        principal.Principal `json:"seller"`
	Buyer         principal.Principal `json:"buyer"`
	Price         uint64              `json:"price"`
	Royalty       uint64              `json:"royalty"`
	AskCommission uint64              `json:"askCommission"`
	BuyCommission uint64              `json:"buyCommission"`
	When          time.Time           `json:"when"`
}

// globals for this module
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	bids        map[BidID]*Bid
	settlement  hook.Settlement
	recent      *gocache.Cache
	initialised bool
}

// global data
var globalData globalDataType

// Initialise - start up the trading engine
//
// reloads open and closed bids from storage; a nil settlement hook
// means no royalties are ever deducted
func Initialise(settlement hook.Settlement) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("trading")
	globalData.log.Info("starting…")

	globalData.bids = make(map[BidID]*Bid)
	globalData.settlement = settlement
	globalData.recent = gocache.New(recentExpiry, recentCleanup)

	err := storage.Pool.Bids.Scan(func(key []byte, value []byte) error {
		id, err := BidIDFromBytes(key)
		if nil != err {
			return fault.DataInconsistent
		}
		bid, err := unpackBid(id, value)
		if nil != err {
			return err
		}
		globalData.bids[id] = bid
		return nil
	})
	if nil != err {
		return err
	}

	globalData.log.Infof("loaded %d bids", len(globalData.bids))

	globalData.initialised = true
	return nil
}

// Finalise - shut down the trading engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.bids = nil
	globalData.settlement = nil
	globalData.recent = nil
	globalData.initialised = false
	return nil
}

// packed bid record layout:
//   32 bytes  asset id
//   32 bytes  buyer principal
//   32 bytes  target vault
//    8 bytes  price, big endian
//    8 bytes  reserved, big endian
//   32 bytes  commission beneficiary
//    8 bytes  commission amount, big endian
func (b *Bid) pack() []byte {
	packed := make([]byte, 0, 152)
	packed = append(packed, b.AssetId.Bytes()...)
	packed = append(packed, b.Buyer.Bytes()...)
	packed = append(packed, b.TargetVault.Bytes()...)

	numbers := make([]byte, 16)
	binary.BigEndian.PutUint64(numbers[0:8], b.Price)
	binary.BigEndian.PutUint64(numbers[8:16], b.Reserved)
	packed = append(packed, numbers...)

	packed = append(packed, b.Commission.Beneficiary.Bytes()...)

	amount := make([]byte, 8)
	binary.BigEndian.PutUint64(amount, b.Commission.Amount)
	packed = append(packed, amount...)
	return packed
}

func unpackBid(id BidID, packed []byte) (*Bid, error) {
	if 152 != len(packed) {
		return nil, fault.DataInconsistent
	}

	assetId, err := asset.AssetIDFromBytes(packed[0:32])
	if nil != err {
		return nil, fault.DataInconsistent
	}
	buyer, err := principal.FromBytes(packed[32:64])
	if nil != err {
		return nil, fault.DataInconsistent
	}
	targetVault, err := vaultid.FromBytes(packed[64:96])
	if nil != err {
		return nil, fault.DataInconsistent
	}
	beneficiary, err := principal.FromBytes(packed[112:144])
	if nil != err {
		return nil, fault.DataInconsistent
	}

	return &Bid{
		Id:          id,
		AssetId:     assetId,
		Buyer:       buyer,
		TargetVault: targetVault,
		Price:       binary.BigEndian.Uint64(packed[96:104]),
		Reserved:    binary.BigEndian.Uint64(packed[104:112]),
		Commission: Commission{
			Beneficiary: beneficiary,
			Amount:      binary.BigEndian.Uint64(packed[144:152]),
		},
	}, nil
}
