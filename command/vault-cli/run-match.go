// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/capability"
	"github.com/custodia-inc/vaultd/rpc/trades"
	"github.com/custodia-inc/vaultd/trading"
	"github.com/custodia-inc/vaultd/vaultid"
)

func runMatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	bidId, err := trading.BidIDFromString(c.String("bid"))
	if nil != err {
		return err
	}

	if "" == c.String("capability") {
		return fmt.Errorf("missing capability")
	}
	token, err := capability.TokenFromString(c.String("capability"))
	if nil != err {
		return err
	}

	assetId, err := asset.AssetIDFromString(c.String("asset"))
	if nil != err {
		return err
	}

	sellerVault, err := vaultid.FromString(c.String("seller"))
	if nil != err {
		return err
	}

	buyerVault, err := vaultid.FromString(c.String("buyer"))
	if nil != err {
		return err
	}

	commission, err := commissionFromFlags(c, m, "beneficiary")
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.MatchBid(&trades.MatchArguments{
		BidId:       bidId,
		Capability:  token,
		AssetId:     assetId,
		SellerVault: sellerVault,
		BuyerVault:  buyerVault,
		Commission:  commission,
	})
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
