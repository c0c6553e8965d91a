// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/custodia-inc/vaultd/rpc/funding"
)

// DepositFunds - add spendable funds to an account
func (c *Client) DepositFunds(arguments *funding.DepositArguments) (*funding.BalanceReply, error) {
	var reply funding.BalanceReply
	if err := c.client.Call("Funds.Deposit", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Funds.Deposit", reply)
	return &reply, nil
}

// Balance - current account state
func (c *Client) Balance(arguments *funding.BalanceArguments) (*funding.BalanceReply, error) {
	var reply funding.BalanceReply
	if err := c.client.Call("Funds.Balance", arguments, &reply); err != nil {
		return nil, err
	}
	c.printJson("Funds.Balance", reply)
	return &reply, nil
}
