// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package trades - the Trading JSON-RPC service
package trades

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/fault"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/rpc/ratelimit"
	"github.com/custodia-inc/vaultd/trading"
	"github.com/custodia-inc/vaultd/vaultid"
)

const (
	rateLimitTrading = 100
	rateBurstTrading = 50
)

// Trading - type for RPC calls
type Trading struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the service
func New(log *logger.L) *Trading {
	return &Trading{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitTrading, rateBurstTrading),
	}
}

// ---

// CreateArguments - escrow an offer
type CreateArguments struct {
	AssetId     asset.AssetID       `json:"assetId"`
	TargetVault vaultid.ID          `json:"targetVault"`
	Buyer       principal.Principal `json:"buyer"`
	Price       uint64              `json:"price"`
	Commission  trading.Commission  `json:"commission"`
}

// CreateReply - the new bid
type CreateReply struct {
	BidId trading.BidID `json:"bidId"`
}

// Create - escrow a bid
func (t *Trading) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	id, err := trading.CreateBid(arguments.AssetId, arguments.TargetVault, arguments.Buyer, arguments.Price, arguments.Commission)
	if nil != err {
		return err
	}
	reply.BidId = id
	return nil
}

// ---

// CancelArguments - close a bid, buyer only
//
// signed by the caller, only the buyer's signature can succeed
type CancelArguments struct {
	BidId     trading.BidID       `json:"bidId"`
	Caller    principal.Principal `json:"caller"`
	Signature []byte              `json:"signature"`
}

// SignatureData - the canonical bytes covered by the signature
func (arguments *CancelArguments) SignatureData() []byte {
	data := []byte("vaultd.cancel")
	data = append(data, arguments.BidId.Bytes()...)
	data = append(data, arguments.Caller.Bytes()...)
	return data
}

// CancelReply - success indication
type CancelReply struct {
	OK bool `json:"ok"`
}

// Cancel - return the escrow and close the bid
func (t *Trading) Cancel(arguments *CancelArguments, reply *CancelReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	if !arguments.Caller.Verify(arguments.SignatureData(), arguments.Signature) {
		return fault.InvalidSignature
	}

	err := trading.CancelBid(arguments.BidId, arguments.Caller)
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// ---

// MatchArguments - settle a bid with the seller's capability
type MatchArguments struct {
	BidId       trading.BidID      `json:"bidId"`
	Capability  capability.Token   `json:"capability"`
	AssetId     asset.AssetID      `json:"assetId"`
	SellerVault vaultid.ID         `json:"sellerVault"`
	BuyerVault  vaultid.ID         `json:"buyerVault"`
	Commission  trading.Commission `json:"commission"`
}

// MatchReply - success indication
type MatchReply struct {
	OK bool `json:"ok"`
}

// Match - settle a bid
func (t *Trading) Match(arguments *MatchArguments, reply *MatchReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	err := trading.MatchBid(arguments.BidId, arguments.Capability, arguments.AssetId, arguments.SellerVault, arguments.BuyerVault, arguments.Commission)
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// ---

// StatusArguments - look up a bid
type StatusArguments struct {
	BidId trading.BidID `json:"bidId"`
}

// StatusReply - the bid record
type StatusReply struct {
	Bid trading.Bid `json:"bid"`
}

// Status - current state of a bid
func (t *Trading) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	bid, err := trading.Get(arguments.BidId)
	if nil != err {
		return err
	}
	reply.Bid = bid
	return nil
}

// ---

// RecentArguments - empty arguments for the recent query
type RecentArguments struct{}

// RecentReply - settlements inside the expiry window
type RecentReply struct {
	Settlements []trading.Settlement `json:"settlements"`
}

// Recent - recently settled trades
func (t *Trading) Recent(_ *RecentArguments, reply *RecentReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	reply.Settlements = trading.Recent()
	return nil
}
