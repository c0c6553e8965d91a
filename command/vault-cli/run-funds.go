// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/rpc/funding"
)

func runFund(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	p, err := currentPrincipal(c, m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.DepositFunds(&funding.DepositArguments{
		Principal: p,
		Amount:    c.Uint64("amount"),
	})
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	p, err := currentPrincipal(c, m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Balance(&funding.BalanceArguments{
		Principal: p,
	})
	if nil != err {
		return err
	}

	printJson(m.w, reply)
	return nil
}
