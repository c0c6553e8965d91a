// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funding - the Funds JSON-RPC service
package funding

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/custodia-inc/vaultd/funds"
	"github.com/custodia-inc/vaultd/principal"
	"github.com/custodia-inc/vaultd/rpc/ratelimit"
)

const (
	rateLimitFunds = 100
	rateBurstFunds = 50
)

// Funds - type for RPC calls
type Funds struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// New - create the service
func New(log *logger.L) *Funds {
	return &Funds{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFunds, rateBurstFunds),
	}
}

// ---

// DepositArguments - add spendable funds
type DepositArguments struct {
	Principal principal.Principal `json:"principal"`
	Amount    uint64              `json:"amount"`
}

// BalanceReply - account state after the operation
type BalanceReply struct {
	Balance  uint64 `json:"balance"`
	Reserved uint64 `json:"reserved"`
}

// Deposit - fund an account
func (f *Funds) Deposit(arguments *DepositArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	err := funds.Deposit(arguments.Principal, arguments.Amount)
	if nil != err {
		return err
	}
	reply.Balance, reply.Reserved = funds.Balance(arguments.Principal)
	return nil
}

// ---

// BalanceArguments - account to query
type BalanceArguments struct {
	Principal principal.Principal `json:"principal"`
}

// Balance - current account state
func (f *Funds) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(f.Limiter); nil != err {
		return err
	}

	reply.Balance, reply.Reserved = funds.Balance(arguments.Principal)
	return nil
}
