// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trading

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/funds"
	"github.com/custodia-inc/vaultd/journal"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/storage"
	"github.com/custodia-inc/vaultd/vault"
	"github.com/custodia-inc/vaultd/vaultid"
)

// CreateBid - escrow an offer to buy an asset into a vault
//
// reserves price plus commission from the buyer's account
func CreateBid(assetId asset.AssetID, targetVault vaultid.ID, buyer principal.Principal, price uint64, commission Commission) (BidID, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return BidID{}, fault.NotInitialised
	}
	if 0 == price {
		return BidID{}, fault.ZeroPrice
	}
	if 0 != commission.Amount && commission.Beneficiary.IsZero() {
		return BidID{}, fault.MissingParameters
	}
	if !vault.IsCustodyVault(targetVault) {
		return BidID{}, fault.VaultNotFound
	}

	id, err := newBidID()
	if nil != err {
		return BidID{}, err
	}

	reserve := price + commission.Amount
	if reserve < price {
		return BidID{}, fault.AmountOverflow
	}
	err = funds.Reserve(buyer, reserve)
	if nil != err {
		return BidID{}, err
	}

	bid := &Bid{
		Id:          id,
		AssetId:     assetId,
		Buyer:       buyer,
		TargetVault: targetVault,
		Price:       price,
		Reserved:    reserve,
		Commission:  commission,
	}

	storage.Pool.Bids.Put(id.Bytes(), bid.pack())
	globalData.bids[id] = bid

	globalData.log.Infof("bid: %s  asset: %s  price: %d", id, assetId, price)
	journal.Record(journal.BidCreated, id.Bytes())
	return id, nil
}

// CancelBid - close a bid and return its escrow
//
// only the buyer may cancel; a closed bid stays closed
func CancelBid(id BidID, caller principal.Principal) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	bid, ok := globalData.bids[id]
	if !ok {
		return fault.BidNotFound
	}
	if caller != bid.Buyer {
		return fault.NotOwner
	}
	if 0 == bid.Reserved {
		return fault.AlreadyClosed
	}

	err := funds.Release(bid.Buyer, bid.Reserved)
	if nil != err {
		return err
	}

	bid.Reserved = 0
	storage.Pool.Bids.Put(id.Bytes(), bid.pack())

	globalData.log.Infof("cancel: %s", id)
	journal.Record(journal.BidCancelled, id.Bytes())
	return nil
}

// MatchBid - settle a bid against an asset held by the seller
//
// the capability must authorize the seller vault; the asset moves to
// the bid's target vault and the reservation splits into seller
// payment, royalty and the two commissions.  The whole reservation is
// always paid out, so funds are conserved.
func MatchBid(id BidID, token capability.Token, assetId asset.AssetID, sellerVault vaultid.ID, buyerVault vaultid.ID, askCommission Commission) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	bid, ok := globalData.bids[id]
	if !ok {
		return fault.BidNotFound
	}
	if 0 == bid.Reserved {
		return fault.AlreadyClosed
	}
	if assetId != bid.AssetId || buyerVault != bid.TargetVault {
		return fault.MissingParameters
	}
	if 0 != askCommission.Amount && askCommission.Beneficiary.IsZero() {
		return fault.MissingParameters
	}
	if !vault.IsCustodyVault(sellerVault) || !vault.IsCustodyVault(buyerVault) {
		return fault.TypeMismatch
	}

	tag, err := vault.AssetType(sellerVault, assetId)
	if nil != err {
		return err
	}

	royalty := uint64(0)
	royaltyBeneficiary := principal.Nobody
	if nil != globalData.settlement {
		royalty, royaltyBeneficiary = globalData.settlement.Royalty(bid.Price, tag)
		if royaltyBeneficiary.IsZero() {
			royalty = 0
		}
	}
	// both deductions must fit inside the price, summed without wrapping
	if askCommission.Amount > bid.Price || royalty > bid.Price-askCommission.Amount {
		return fault.CommissionExceedsPrice
	}

	seller, err := vault.OwnerOf(sellerVault)
	if nil != err {
		return err
	}

	// the point of no return: the asset moves or nothing happens
	_, err = vault.Settle(sellerVault, buyerVault, token, assetId, bid.Buyer)
	if nil != err {
		return err
	}

	// asset moved, pay out the whole reservation
	err = funds.Consume(bid.Buyer, bid.Reserved)
	if nil != err {
		globalData.log.Criticalf("escrow lost for bid: %s  error: %s", id, err)
		return err
	}
	sellerAmount := bid.Price - royalty - askCommission.Amount
	funds.Credit(seller, sellerAmount)
	funds.Credit(askCommission.Beneficiary, askCommission.Amount)
	funds.Credit(royaltyBeneficiary, royalty)
	funds.Credit(bid.Commission.Beneficiary, bid.Commission.Amount)

	bid.Reserved = 0
	storage.Pool.Bids.Put(id.Bytes(), bid.pack())

	settled := Settlement{
		BidId:         id,
		AssetId:       assetId,
		Seller:        seller,
		Buyer:         bid.Buyer,
		Price:         bid.Price,
		Royalty:       royalty,
		AskCommission: askCommission.Amount,
		BuyCommission: bid.Commission.Amount,
		When:          time.Now().UTC(),
	}
	globalData.recent.Set(id.String(), settled, gocache.DefaultExpiration)

	globalData.log.Infof("match: %s  asset: %s  seller: %s", id, assetId, seller)
	journal.Record(journal.BidMatched, id.Bytes())
	return nil
}

// Get - a copy of a bid for status queries
func Get(id BidID) (Bid, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	bid, ok := globalData.bids[id]
	if !ok {
		return Bid{}, fault.BidNotFound
	}
	return *bid, nil
}

// Recent - settlements still inside the expiry window
func Recent() []Settlement {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil
	}

	items := globalData.recent.Items()
	settlements := make([]Settlement, 0, len(items))
	for _, item := range items {
		if s, ok := item.Object.(Settlement); ok {
			settlements = append(settlements, s)
		}
	}
	return settlements
}
