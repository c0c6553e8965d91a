// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"golang.org/x/crypto/ed25519"

	"github.com/custodia-inc/vaultd/rpc/trades"
)

// CreateBid - escrow a bid
func (c *Client) CreateBid(arguments *trades.CreateArguments) (*trades.CreateReply, error) {
	var reply trades.CreateReply
	if err := c.client.Call("Trading.Create", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Trading.Create", reply)
	return &reply, nil
}

// CancelBid - close a bid and release its escrow, signed by the buyer
func (c *Client) CancelBid(arguments *trades.CancelArguments, key ed25519.PrivateKey) (*trades.CancelReply, error) {
	arguments.Signature = ed25519.Sign(key, arguments.SignatureData())

	var reply trades.CancelReply
	if err := c.client.Call("Trading.Cancel", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Trading.Cancel", reply)
	return &reply, nil
}

// MatchBid - settle a bid with the seller's capability
func (c *Client) MatchBid(arguments *trades.MatchArguments) (*trades.MatchReply, error) {
	var reply trades.MatchReply
	if err := c.client.Call("Trading.Match", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Trading.Match", reply)
	return &reply, nil
}

// BidStatus - current state of a bid
func (c *Client) BidStatus(arguments *trades.StatusArguments) (*trades.StatusReply, error) {
	var reply trades.StatusReply
	if err := c.client.Call("Trading.Status", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Trading.Status", reply)
	return &reply, nil
}

// RecentSettlements - settlements inside the expiry window
func (c *Client) RecentSettlements() (*trades.RecentReply, error) {
	var reply trades.RecentReply
	if err := c.client.Call("Trading.Recent", trades.RecentArguments{}, &reply); err != nil {
		return nil, err
	}
	c.printJson("Trading.Recent", reply)
	return &reply, nil
}
