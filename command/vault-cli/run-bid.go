// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/asset"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/rpc/trades"
	"github.com/custodia-inc/vaultd/trading"
	"github.com/custodia-inc/vaultd/vaultid"
)

// the optional commission flags shared by bid and match
func commissionFromFlags(c *cli.Context, m *metadata, beneficiaryFlag string) (trading.Commission, error) {

	commission := trading.Commission{
		Amount: c.Uint64("commission"),
	}

	if beneficiary := c.String(beneficiaryFlag); "" != beneficiary {
		p, err := resolvePrincipal(m, beneficiary)
		if nil != err {
			return trading.Commission{}, err
		}
		commission.Beneficiary = p
	} else {
		commission.Beneficiary = principal.Nobody
	}
	return commission, nil
}

func runBid(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	assetId, err := asset.AssetIDFromString(c.String("asset"))
	if nil != err {
		return err
	}

	targetVault, err := vaultid.FromString(c.String("vault"))
	if nil != err {
		return err
	}

	buyer, err := currentPrincipal(c, m)
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

	reply, err := client.CreateBid(&trades.CreateArguments{
		AssetId:     assetId,
		TargetVault: targetVault,
		Buyer:       buyer,
		Price:       c.Uint64("price"),
		Commission:  commission,
	})
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runCancel(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	bidId, err := trading.BidIDFromString(c.String("bid"))
	if nil != err {
		return err
	}

	caller, err := currentPrivate(c, m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.CancelBid(&trades.CancelArguments{
		BidId:  bidId,
		Caller: caller.Principal,
	}, caller.PrivateKey)
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runTrade(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	bidId, err := trading.BidIDFromString(c.String("bid"))
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.BidStatus(&trades.StatusArguments{
		BidId: bidId,
	})
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runRecent(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.RecentSettlements()
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
